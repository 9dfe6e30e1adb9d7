package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// printer writes command results as text or JSON.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(cmd *cobra.Command, opts *RootOptions) printer {
	return printer{format: opts.Format, w: cmd.OutOrStdout()}
}

// print encodes v in JSON mode, otherwise calls text.
func (p printer) print(v any, text func(w io.Writer)) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(p.w)
	return nil
}

// lines prints one string per line, or a JSON array.
func (p printer) lines(items []string) error {
	if items == nil {
		items = []string{}
	}
	return p.print(items, func(w io.Writer) {
		for _, item := range items {
			fmt.Fprintln(w, item)
		}
	})
}
