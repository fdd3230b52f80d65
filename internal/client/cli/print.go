package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/focuskeeper/internal/client/api"
)

// printFocus writes f and its immediate children as an indented list.
func printFocus(w io.Writer, f *api.Focus) {
	fmt.Fprintf(w, "%s (%s)\n", f.Name, f.ID)
	if len(f.Children) == 0 {
		fmt.Fprintln(w, "  (no children)")
		return
	}
	for _, c := range f.Children {
		fmt.Fprintf(w, "  - %s (%s)\n", c.Name, c.ID)
	}
}
