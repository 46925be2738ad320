//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly
// +build linux darwin freebsd netbsd openbsd dragonfly

package prompt

import (
	"io"
	"os"
)

// openTTY opens /dev/tty for both reading and writing. Prompts must not go
// through stdin, which may carry piped input for other consumers.
func openTTY() (io.Reader, io.Writer, io.Closer, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	return tty, tty, tty, nil
}
