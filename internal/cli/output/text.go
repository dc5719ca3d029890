// Package output provides output formatting for formseal-cli.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Pair is one labeled value in text output.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of label/value rows. Order is preserved in
// the rendered output, unlike a map.
type Pairs []Pair

// Add appends a labeled value.
func (p *Pairs) Add(key string, value any) {
	*p = append(*p, Pair{Key: key, Value: fmt.Sprintf("%v", value)})
}

// TextFormatter formats data as aligned key/value lines.
type TextFormatter struct{}

// Format renders Pairs as aligned "Key:  Value" lines. Other values
// fall back to indented JSON so nothing is silently dropped.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	pairs, ok := data.(Pairs)
	if !ok {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p.Key, p.Value)
	}
	return tw.Flush()
}
