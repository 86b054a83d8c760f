package callout

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// MarshalEntries encodes entries as a JSON array of
// {"id", "icon", "color", "hex"} objects. With indent set the output is
// pretty-printed.
func MarshalEntries(entries []Entry, indent bool) ([]byte, error) {
	out := []byte("[]")
	for i, e := range entries {
		var err error
		out, err = sjson.SetBytes(out, "-1", map[string]string{
			"id":    e.ID,
			"icon":  e.Icon,
			"color": e.Color.String(),
			"hex":   e.Color.Hex(),
		})
		if err != nil {
			return nil, fmt.Errorf("encode entry %d (%s): %w", i, e.ID, err)
		}
	}
	if indent {
		out = pretty.Pretty(out)
	}
	return out, nil
}
