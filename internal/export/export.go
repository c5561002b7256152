// Package export writes measurement history as CSV for use outside the
// tracker, one row per entry with its component metadata alongside.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/agustinfitipaldi/blood/internal/errors"
	"github.com/agustinfitipaldi/blood/internal/store"
)

// Header is the CSV column layout.
var Header = []string{
	"component", "long_title", "unit", "date", "value", "notes", "normal_min", "normal_max",
}

// WriteCSV exports entries to w. An empty componentName exports every
// component; otherwise only the named one. Returns the number of entry rows
// written, excluding the header.
func WriteCSV(ctx context.Context, w io.Writer, st *store.Store, componentName string) (int, error) {
	var components []store.Component

	if componentName != "" {
		c, err := st.FindComponent(ctx, componentName)
		if err != nil {
			return 0, err
		}
		components = []store.Component{c}
	} else {
		var err error
		if components, err = st.ListComponents(ctx); err != nil {
			return 0, err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrExport,
			"Failed to write CSV header",
			"Check the output destination is writable")
	}

	rows := 0
	for _, c := range components {
		entries, err := st.AllEntries(ctx, c.ID)
		if err != nil {
			return rows, err
		}
		for _, e := range entries {
			record := []string{
				c.Name,
				c.LongTitle,
				c.Unit,
				e.Date,
				strconv.FormatFloat(e.Value, 'f', -1, 64),
				e.Notes,
				formatBound(c.NormalMin),
				formatBound(c.NormalMax),
			}
			if err := cw.Write(record); err != nil {
				return rows, errors.WrapWithCode(err, errors.ErrExport,
					fmt.Sprintf("Failed to write CSV row for %s", c.Name),
					"Check the output destination is writable")
			}
			rows++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, errors.WrapWithCode(err, errors.ErrExport,
			"Failed to flush CSV output",
			"Check the output destination is writable")
	}
	return rows, nil
}

// formatBound renders an optional range bound, empty when unset.
func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
