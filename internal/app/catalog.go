package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/suggest"
)

// WriteCatalog lists entries on w. Plain output is a pretty JSON array;
// colored output is one row per entry, glyph and identifier drawn in the
// entry's color followed by its hex value.
func WriteCatalog(w io.Writer, entries []callout.Entry, colored bool) error {
	if !colored {
		data, err := callout.MarshalEntries(entries, true)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	rows := make([]suggest.Row, len(entries))
	width := 0
	for i, e := range entries {
		rows[i] = suggest.NewRow(e)
		width = max(width, rows[i].Width())
	}

	var sb strings.Builder
	for i, row := range rows {
		c := row.Color
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, row.Text())
		sb.WriteString(strings.Repeat(" ", width-row.Width()+2))
		fmt.Fprintf(&sb, "%s  %s\n", entries[i].Color.Hex(), row.Icon)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
