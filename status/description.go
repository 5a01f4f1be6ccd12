package status

import (
	"strings"

	"github.com/goccy/go-json"
)

// Description is a chat component. Servers send either a bare string,
// a component object, or an array of components.
type Description struct {
	Text      string        `json:"text"`
	Translate string        `json:"translate,omitempty"`
	Color     string        `json:"color,omitempty"`
	Bold      bool          `json:"bold,omitempty"`
	Italic    bool          `json:"italic,omitempty"`
	Extra     []Description `json:"extra,omitempty"`
}

type description Description

func (d *Description) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	switch {
	case strings.HasPrefix(trimmed, `"`):
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*d = Description{Text: text}

	case strings.HasPrefix(trimmed, "["):
		var parts []Description
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*d = Description{Extra: parts}

	default:
		var obj description
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*d = Description(obj)
	}

	return nil
}

// String flattens the component tree into plain text, dropping
// legacy § formatting codes.
func (d Description) String() string {
	var sb strings.Builder
	d.flatten(&sb)
	return StripFormatting(sb.String())
}

func (d Description) flatten(sb *strings.Builder) {
	if d.Text != "" {
		sb.WriteString(d.Text)
	} else {
		sb.WriteString(d.Translate)
	}

	for _, e := range d.Extra {
		e.flatten(sb)
	}
}

// StripFormatting removes § color and style codes from s.
func StripFormatting(s string) string {
	if !strings.ContainsRune(s, '§') {
		return s
	}

	var sb strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case skip:
			skip = false
		case r == '§':
			skip = true
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
