package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard mirrors text to the system clipboard. The desktop clipboard works
// whether or not this succeeds.
func copyToClipboard(s string) error {
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
