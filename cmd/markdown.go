package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal. On rendering errors
// the raw markdown is still readable, print it as is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintln(os.Stderr, "markdown rendering failed:", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
