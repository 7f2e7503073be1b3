// Package clipboard copies rendered numerals to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend exists on this host.
var ErrUnavailable = errors.New("clipboard not available")

// Write copies text to the system clipboard.
func Write(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard backend (pbcopy, xclip, xsel,
// wl-copy or the Windows API) was found.
func Available() bool {
	return !clipboard.Unsupported
}
