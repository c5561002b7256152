package rolodex

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agustinfitipaldi/blood/internal/forms"
)

// Key bindings for the carousel and detail modes. Form mode has its own
// handling inside huh.
const (
	KeyQuit     = "q"
	KeyQuitAlt  = "ctrl+c"
	KeyNext     = "j"
	KeyNextAlt  = "down"
	KeyPrev     = "k"
	KeyPrevAlt  = "up"
	KeyNewEntry = "n"
	KeyEdit     = "e"
	KeyDelete   = "d"
	KeyNewComp  = "c"
	KeyDetail   = "enter"
	KeyBack     = "esc"
)

// KeyHints is the footer line listing the active bindings.
const KeyHints = "j/k nav · enter history · n new · e edit · d delete · c component · q quit"

// HandleKeyMsg processes one key event for the carousel and detail modes.
// It reports whether the key was consumed; unrecognized keys are ignored
// without any state change so the caller can route them elsewhere.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Quit works everywhere outside a form.
	if key == KeyQuit || key == KeyQuitAlt {
		m.quitting = true
		return true, tea.Quit
	}

	if m.mode == ViewDetail {
		if key == KeyBack {
			m.mode = ViewCarousel
			return true, nil
		}
		// Remaining keys scroll the viewport; the model delegates them.
		return false, nil
	}

	switch key {
	case KeyNext, KeyNextAlt:
		m.nav.Next(len(m.components))
		m.reload(0)
		return true, nil

	case KeyPrev, KeyPrevAlt:
		m.nav.Prev(len(m.components))
		m.reload(0)
		return true, nil

	case KeyNewComp:
		m.componentIn = &forms.ComponentInput{}
		_, cmd := m.openForm(formCreateComponent, forms.NewComponentForm(m.componentIn))
		return true, cmd

	case KeyNewEntry:
		cur, ok := m.Selected()
		if !ok {
			return true, nil
		}
		m.entryIn = &forms.EntryInput{}
		_, cmd := m.openForm(formAddEntry, forms.NewEntryForm(m.entryIn, cur.Unit, "New value"))
		return true, cmd

	case KeyEdit:
		cur, ok := m.Selected()
		if !ok || len(m.data[cur.ID].series) == 0 {
			return true, nil
		}
		m.pickedEntryID = new(int64)
		_, cmd := m.openForm(formPickEdit,
			forms.NewEntryPicker("Edit which entry?", cur.Unit, m.data[cur.ID].series, m.pickedEntryID))
		return true, cmd

	case KeyDelete:
		cur, ok := m.Selected()
		if !ok || len(m.data[cur.ID].series) == 0 {
			return true, nil
		}
		m.pickedEntryID = new(int64)
		_, cmd := m.openForm(formPickDelete,
			forms.NewEntryPicker("Delete which entry?", cur.Unit, m.data[cur.ID].series, m.pickedEntryID))
		return true, cmd

	case KeyDetail:
		if _, ok := m.Selected(); !ok {
			return true, nil
		}
		m.mode = ViewDetail
		m.resizeDetail()
		m.setDetailContent()
		return true, nil
	}

	return false, nil
}
