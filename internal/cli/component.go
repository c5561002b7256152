package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/agustinfitipaldi/blood/internal/errors"
	"github.com/agustinfitipaldi/blood/internal/forms"
	"github.com/agustinfitipaldi/blood/internal/store"
	"github.com/agustinfitipaldi/blood/internal/ui"
)

var componentRmForce bool

var componentCmd = &cobra.Command{
	Use:   "component",
	Short: "Manage tracked components",
	Long: `Manage the tracked lab components outside the TUI.

Examples:
  blood component list
  blood component add
  blood component rm HbA1c`,
}

var componentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components and their entry counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return componentListCommand()
	},
}

var componentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a component interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return componentAddCommand()
	},
}

var componentRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a component and all its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return componentRmCommand(args[0], componentRmForce)
	},
}

func init() {
	componentRmCmd.Flags().BoolVarP(&componentRmForce, "force", "f", false, "skip the confirmation prompt")

	componentCmd.AddCommand(componentListCmd)
	componentCmd.AddCommand(componentAddCmd)
	componentCmd.AddCommand(componentRmCmd)
	rootCmd.AddCommand(componentCmd)
}

func componentListCommand() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	components, err := st.ListComponents(ctx)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		fmt.Println("No components yet. Run 'blood component add' to create one.")
		return nil
	}

	columns := []ui.TableColumn{
		{Title: "NAME", Width: 20},
		{Title: "UNIT", Width: 10},
		{Title: "RANGE", Width: 16},
		{Title: "ENTRIES", Width: 8},
		{Title: "LATEST", Width: 24},
	}

	rows := make([][]string, 0, len(components))
	for _, c := range components {
		count, err := st.EntryCount(ctx, c.ID)
		if err != nil {
			return err
		}

		latest := "-"
		if recent, err := st.RecentEntries(ctx, c.ID, 1); err == nil && len(recent) > 0 {
			e := recent[len(recent)-1]
			latest = fmt.Sprintf("%s %.2f %s", e.Date, e.Value, c.Unit)
		}

		rows = append(rows, []string{
			c.Name,
			c.Unit,
			formatRange(c),
			strconv.Itoa(count),
			latest,
		})
	}

	fmt.Println(ui.RenderSimpleTable(columns, rows))
	return nil
}

func componentAddCommand() error {
	var in forms.ComponentInput
	if err := forms.NewComponentForm(&in).Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Println("Cancelled.")
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrTerm,
			"Failed to collect component details",
			"Check terminal compatibility")
	}

	c, err := in.Component()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Invalid component details",
			"Check the entered values and try again")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.CreateComponent(context.Background(), c); err != nil {
		return err
	}

	fmt.Printf("%s Created %s (%s)\n", ui.SymbolSuccess, c.Name, c.Unit)
	return nil
}

func componentRmCommand(name string, force bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	c, err := st.FindComponent(ctx, name)
	if err != nil {
		return err
	}

	count, err := st.EntryCount(ctx, c.ID)
	if err != nil {
		return err
	}

	if !force {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s and its %d entries?", c.Name, count)).
					Affirmative("Delete").
					Negative("Keep").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil || !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := st.DeleteComponent(ctx, c.ID); err != nil {
		return err
	}

	fmt.Printf("%s Deleted %s (%d entries)\n", ui.SymbolSuccess, c.Name, count)
	return nil
}

// formatRange renders a component's normal range for table output.
func formatRange(c store.Component) string {
	switch {
	case c.NormalMin != nil && c.NormalMax != nil:
		return fmt.Sprintf("%g-%g", *c.NormalMin, *c.NormalMax)
	case c.NormalMin != nil:
		return fmt.Sprintf("≥ %g", *c.NormalMin)
	case c.NormalMax != nil:
		return fmt.Sprintf("≤ %g", *c.NormalMax)
	default:
		return "-"
	}
}
