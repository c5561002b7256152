package rolodex

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/agustinfitipaldi/blood/internal/forms"
	"github.com/agustinfitipaldi/blood/internal/logger"
	"github.com/agustinfitipaldi/blood/internal/store"
)

// ViewMode is the current display mode of the rolodex.
type ViewMode int

const (
	// ViewCarousel is the card carousel, the default mode.
	ViewCarousel ViewMode = iota
	// ViewDetail is the scrollable full history of the selected component.
	ViewDetail
	// ViewForm is a modal CRUD form layered over the carousel.
	ViewForm
)

// formKind tracks which form flow is active, including the two-stage
// pick-then-act flows for edit and delete.
type formKind int

const (
	formNone formKind = iota
	formCreateComponent
	formAddEntry
	formPickEdit
	formEditEntry
	formPickDelete
	formConfirmDelete
)

// dbTimeout bounds every data provider call made during a render refresh.
const dbTimeout = 5 * time.Second

// Options configures the rolodex model.
type Options struct {
	// MinWidth and MinHeight gate rendering; below them the calibration
	// frame is shown instead of cards. Zero values use the defaults.
	MinWidth  int
	MinHeight int
	// RecentLimit is how many value rows each card shows, clamped to the
	// rows the card layout reserves.
	RecentLimit int
	Logger      logger.Logger
}

// componentData is the per-component snapshot read from the store on the
// last refresh. View renders purely from these snapshots, which keeps
// repeated renders without intervening events bit-identical.
type componentData struct {
	recent []store.Entry
	series []store.Entry // full history; loaded for the current component only
}

// Model is the Bubble Tea model for the rolodex. One input event produces
// one state transition and one render; there are no timers and no
// background work.
type Model struct {
	store *store.Store
	log   logger.Logger

	nav        Nav
	components []store.Component
	data       map[int64]componentData

	width     int
	height    int
	minWidth  int
	minHeight int

	recentLimit int

	mode        ViewMode
	detail      viewport.Model
	detailReady bool

	// Form inputs live behind pointers: Bubble Tea copies the model on
	// every Update, and the huh bindings must keep writing into the same
	// allocation the completion handler reads from.
	form          *huh.Form
	activeForm    formKind
	componentIn   *forms.ComponentInput
	entryIn       *forms.EntryInput
	pickedEntryID *int64
	confirmDelete *bool

	status   string
	err      error
	quitting bool
}

// NewModel creates a rolodex model and performs the initial data load.
func NewModel(st *store.Store, opts Options) (Model, error) {
	if opts.MinWidth == 0 {
		opts.MinWidth = MinScreenWidth
	}
	if opts.MinHeight == 0 {
		opts.MinHeight = MinScreenHeight
	}
	if opts.RecentLimit < 1 || opts.RecentLimit > cardValueRows {
		opts.RecentLimit = cardValueRows
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[rolodex]")
	}

	m := Model{
		store:       st,
		log:         opts.Logger,
		minWidth:    opts.MinWidth,
		minHeight:   opts.MinHeight,
		recentLimit: opts.RecentLimit,
		mode:        ViewCarousel,
		data:        make(map[int64]componentData),
	}

	if err := m.refresh(0); err != nil {
		return m, err
	}
	return m, nil
}

// Init implements tea.Model. The rolodex is strictly event-driven, so there
// is no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeDetail()
		if m.mode == ViewForm {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == ViewForm {
			return m.updateForm(msg)
		}
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		if m.mode == ViewDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Forms run their own message pump (cursor blink and friends).
	if m.mode == ViewForm {
		return m.updateForm(msg)
	}
	return m, nil
}

// Selected returns the currently selected component and true, or false when
// the list is empty.
func (m Model) Selected() (store.Component, bool) {
	if len(m.components) == 0 {
		return store.Component{}, false
	}
	return m.components[m.nav.Index()], true
}

// Mode returns the current view mode.
func (m Model) Mode() ViewMode {
	return m.mode
}

// refresh re-reads the component list and the entry snapshots for every
// visible card. preferredID keeps the selection on a component across list
// changes; 0 means keep the current index.
func (m *Model) refresh(preferredID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	components, err := m.store.ListComponents(ctx)
	if err != nil {
		return err
	}
	m.components = components
	m.nav.ListChanged(components, preferredID)

	m.data = make(map[int64]componentData)
	for _, idx := range m.visibleIndexes() {
		c := components[idx]
		recent, err := m.store.RecentEntries(ctx, c.ID, m.recentLimit)
		if err != nil {
			return err
		}
		d := componentData{recent: recent}
		if idx == m.nav.Index() {
			if d.series, err = m.store.AllEntries(ctx, c.ID); err != nil {
				return err
			}
		}
		m.data[c.ID] = d
	}

	if m.mode == ViewDetail {
		m.setDetailContent()
	}
	return nil
}

// reload wraps refresh for event handlers: a provider failure becomes the
// error frame rather than a crash or a half-drawn buffer.
func (m *Model) reload(preferredID int64) {
	if err := m.refresh(preferredID); err != nil {
		m.log.Error("refresh failed: %v", err)
		m.err = err
		return
	}
	m.err = nil
}

// visibleIndexes returns the indexes of the cards in the current window:
// the selection plus its neighbors. With two components the single neighbor
// appears once; with one there are no neighbors.
func (m Model) visibleIndexes() []int {
	count := len(m.components)
	if count == 0 {
		return nil
	}
	cur := m.nav.Index()
	if count == 1 {
		return []int{cur}
	}

	prev := (cur - 1 + count) % count
	next := (cur + 1) % count

	indexes := []int{cur}
	if next != cur {
		indexes = append(indexes, next)
	}
	if prev != cur && prev != next {
		indexes = append(indexes, prev)
	}
	return indexes
}

// openForm activates a form flow as the modal layer.
func (m *Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.activeForm = kind
	m.form = form
	m.mode = ViewForm
	m.status = ""
	return *m, form.Init()
}

func (m *Model) closeForm() {
	m.activeForm = formNone
	m.form = nil
	m.mode = ViewCarousel
}

// updateForm delegates a message to the active form and reacts to its
// terminal states.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// completeForm commits a finished form, or chains into the second stage of
// a pick-then-act flow.
func (m Model) completeForm() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	kind := m.activeForm
	m.closeForm()

	switch kind {
	case formCreateComponent:
		c, err := m.componentIn.Component()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		id, err := m.store.CreateComponent(ctx, c)
		if err != nil {
			m.status = firstLine(err)
			return m, nil
		}
		m.reload(id)
		m.status = fmt.Sprintf("Created %s", c.Name)

	case formAddEntry:
		cur, ok := m.Selected()
		if !ok {
			return m, nil
		}
		e, err := m.entryIn.Entry(cur.ID, 0)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if _, err := m.store.AddEntry(ctx, e); err != nil {
			m.status = firstLine(err)
			return m, nil
		}
		m.reload(cur.ID)
		m.status = fmt.Sprintf("Added %s entry for %s", e.Date, cur.Name)

	case formPickEdit:
		cur, ok := m.Selected()
		if !ok {
			return m, nil
		}
		picked, ok := m.entryByID(cur.ID, *m.pickedEntryID)
		if !ok {
			return m, nil
		}
		m.entryIn = &forms.EntryInput{
			Value: fmt.Sprintf("%g", picked.Value),
			Date:  picked.Date,
			Notes: picked.Notes,
		}
		return m.openForm(formEditEntry, forms.NewEntryForm(m.entryIn, cur.Unit, "Edit value"))

	case formEditEntry:
		cur, ok := m.Selected()
		if !ok {
			return m, nil
		}
		e, err := m.entryIn.Entry(cur.ID, *m.pickedEntryID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if err := m.store.UpdateEntry(ctx, e); err != nil {
			m.status = firstLine(err)
			return m, nil
		}
		m.reload(cur.ID)
		m.status = "Entry updated"

	case formPickDelete:
		m.confirmDelete = new(bool)
		return m.openForm(formConfirmDelete,
			forms.NewConfirmForm("Delete this entry?", m.confirmDelete))

	case formConfirmDelete:
		if !*m.confirmDelete {
			return m, nil
		}
		cur, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if err := m.store.DeleteEntry(ctx, *m.pickedEntryID); err != nil {
			m.status = firstLine(err)
			return m, nil
		}
		m.reload(cur.ID)
		m.status = "Entry deleted"
	}

	return m, nil
}

// entryByID finds an entry in the current component's loaded history.
func (m Model) entryByID(componentID, entryID int64) (store.Entry, bool) {
	for _, e := range m.data[componentID].series {
		if e.ID == entryID {
			return e, true
		}
	}
	return store.Entry{}, false
}

func firstLine(err error) string {
	s := err.Error()
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
