//go:build windows
// +build windows

package prompt

import (
	"io"
	"os"
)

// openTTY opens the console input buffer. Output goes to stderr so prompts
// stay visible when stdout is redirected.
func openTTY() (io.Reader, io.Writer, io.Closer, error) {
	conin, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	return conin, os.Stderr, conin, nil
}
