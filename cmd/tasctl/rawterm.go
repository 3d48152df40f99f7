// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// rawTerm puts stdin into raw mode for the duration of the program so
// single keystrokes reach us immediately, without waiting for Enter and
// without the terminal echoing them back.
type rawTerm struct {
	f       *os.File
	canAttr syscall.Termios
	rawAttr syscall.Termios
}

func newRawTerm(f *os.File) (*rawTerm, error) {
	t := &rawTerm{f: f}
	if err := termios.Tcgetattr(t.f.Fd(), &t.canAttr); err != nil {
		return nil, err
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)
	return t, nil
}

func (t *rawTerm) enter() error {
	return termios.Tcsetattr(t.f.Fd(), termios.TCIFLUSH, &t.rawAttr)
}

func (t *rawTerm) restore() error {
	return termios.Tcsetattr(t.f.Fd(), termios.TCIFLUSH, &t.canAttr)
}

func (t *rawTerm) readKey() (byte, error) {
	var b [1]byte
	if _, err := t.f.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
