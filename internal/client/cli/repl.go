package cli

import (
	"context"
	"fmt"
	"strings"
)

// runREPL reads commands line by line until EOF or "exit"/"quit". Command
// errors are reported and the loop continues.
func (a *App) runREPL(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to FocusKeeper CLI (type 'help' for commands)")
	for {
		fmt.Fprint(a.out, "fk> ")
		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return
			default:
				if cerr := a.exec(ctx, parts[0], parts[1:]); cerr != nil {
					fmt.Fprintln(a.out, "Error:", cerr)
				}
			}
		}
		if err != nil {
			return
		}
	}
}
