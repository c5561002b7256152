// Package forms builds the huh forms used for component and entry CRUD.
// The rolodex model runs them as a modal layer over the carousel; the
// collected inputs are parsed here into store types before anything is
// committed.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/agustinfitipaldi/blood/internal/store"
)

// ComponentInput holds the raw strings collected for a new component.
type ComponentInput struct {
	Name      string
	Unit      string
	Min       string
	Max       string
	LongTitle string
}

// NewComponentForm builds the create-component form.
func NewComponentForm(in *ComponentInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Component name").
				Description("e.g. HbA1c, Creatinine, LDL Cholesterol").
				Placeholder("HbA1c").
				Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("component name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Description("Display unit for values").
				Placeholder("mmol/mol").
				Value(&in.Unit).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("unit is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Normal range minimum (optional)").
				Placeholder("20").
				Value(&in.Min).
				Validate(optionalNumber),
			huh.NewInput().
				Title("Normal range maximum (optional)").
				Placeholder("42").
				Value(&in.Max).
				Validate(func(s string) error {
					if err := optionalNumber(s); err != nil {
						return err
					}
					return rangeOrdered(in.Min, s)
				}),
			huh.NewInput().
				Title("Long title (optional)").
				Description("Descriptive name shown in exports").
				Placeholder("Glycated haemoglobin").
				Value(&in.LongTitle),
		),
	)
}

// Component parses the collected strings into a store.Component.
func (in ComponentInput) Component() (store.Component, error) {
	c := store.Component{
		Name:      strings.TrimSpace(in.Name),
		Unit:      strings.TrimSpace(in.Unit),
		LongTitle: strings.TrimSpace(in.LongTitle),
	}
	if c.Name == "" {
		return c, fmt.Errorf("component name is required")
	}
	if c.Unit == "" {
		return c, fmt.Errorf("unit is required")
	}

	var err error
	if c.NormalMin, err = parseOptionalFloat(in.Min); err != nil {
		return c, fmt.Errorf("normal minimum: %w", err)
	}
	if c.NormalMax, err = parseOptionalFloat(in.Max); err != nil {
		return c, fmt.Errorf("normal maximum: %w", err)
	}
	if c.NormalMin != nil && c.NormalMax != nil && *c.NormalMin > *c.NormalMax {
		return c, fmt.Errorf("normal minimum %.2f exceeds maximum %.2f", *c.NormalMin, *c.NormalMax)
	}
	return c, nil
}

// EntryInput holds the raw strings collected for an entry.
type EntryInput struct {
	Value string
	Date  string
	Notes string
}

// NewEntryForm builds the add/edit entry form. The title distinguishes the
// two flows; for edits the inputs arrive prefilled.
func NewEntryForm(in *EntryInput, unit, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s (%s)", title, unit)).
				Placeholder("39.8").
				Value(&in.Value).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return fmt.Errorf("enter a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Description("Leave empty for today").
				Placeholder(time.Now().Format(store.DateLayout)).
				Value(&in.Date).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if err := store.ValidateDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD form")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&in.Notes),
		),
	)
}

// Entry parses the collected strings into a store.Entry. An empty date
// defaults to today.
func (in EntryInput) Entry(componentID, entryID int64) (store.Entry, error) {
	e := store.Entry{
		ID:          entryID,
		ComponentID: componentID,
		Notes:       strings.TrimSpace(in.Notes),
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(in.Value), 64)
	if err != nil {
		return e, fmt.Errorf("value: enter a number")
	}
	e.Value = value

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = time.Now().Format(store.DateLayout)
	}
	if err := store.ValidateDate(date); err != nil {
		return e, err
	}
	e.Date = date

	return e, nil
}

// NewEntryPicker builds a select form over a component's entries, most
// recent first, for the edit and delete flows.
func NewEntryPicker(title, unit string, entries []store.Entry, selected *int64) *huh.Form {
	options := make([]huh.Option[int64], 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		label := fmt.Sprintf("%s  %.2f %s", e.Date, e.Value, unit)
		if e.Notes != "" {
			label += fmt.Sprintf("  (%s)", truncateNotes(e.Notes, 30))
		}
		options = append(options, huh.NewOption(label, e.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title(title).
				Options(options...).
				Value(selected),
		),
	)
}

// NewConfirmForm builds a yes/no confirmation.
func NewConfirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(value),
		),
	)
}

func optionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number or leave empty")
	}
	return nil
}

// rangeOrdered rejects a maximum below an already-entered minimum. Parse
// failures are left to the per-field validators.
func rangeOrdered(minStr, maxStr string) error {
	minStr, maxStr = strings.TrimSpace(minStr), strings.TrimSpace(maxStr)
	if minStr == "" || maxStr == "" {
		return nil
	}
	minV, errMin := strconv.ParseFloat(minStr, 64)
	maxV, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil {
		return nil
	}
	if maxV < minV {
		return fmt.Errorf("maximum is below the minimum")
	}
	return nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a number", s)
	}
	return &v, nil
}

func truncateNotes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
