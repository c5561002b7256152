package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/agustinfitipaldi/blood/internal/errors"
	"github.com/agustinfitipaldi/blood/internal/logger"
	"github.com/agustinfitipaldi/blood/internal/rolodex"
	"github.com/agustinfitipaldi/blood/internal/store"
)

// rolodexCommand opens the database and runs the carousel TUI.
func rolodexCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New(errors.ErrTerm,
			"Standard output is not a terminal",
			"The rolodex needs an interactive terminal; use 'blood export' for scripted access")
	}

	log := logger.NewEnvLogger("[blood]")
	if w, h, err := term.GetSize(fd); err == nil && (w < cfg.MinWidth || h < cfg.MinHeight) {
		// The TUI shows its calibration screen for this; just note it.
		log.Debug("terminal %dx%d below %dx%d", w, h, cfg.MinWidth, cfg.MinHeight)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	model, err := rolodex.NewModel(st, rolodex.Options{
		MinWidth:    cfg.MinWidth,
		MinHeight:   cfg.MinHeight,
		RecentLimit: cfg.Recent,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
