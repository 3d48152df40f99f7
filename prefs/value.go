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

package prefs

import (
	"fmt"
	"strconv"

	"github.com/retrotas/tas-engine/curated"
)

// Value is the dynamic type accepted by Set() and returned by a Generic's
// getter. It carries no behaviour of its own.
type Value = interface{}

// value is the interface every concrete preference type implements so a
// Disk can store them in a single collection.
type value interface {
	Set(Value) error
	String() string
}

const (
	ErrInvalidValue = "prefs: invalid value (%v)"
)

// Bool is a boolean preference value.
type Bool struct {
	v bool
}

func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.v = t
	case string:
		b.v = t == "true"
	default:
		return curated.Errorf(ErrInvalidValue, v)
	}
	return nil
}

func (b *Bool) Get() bool { return b.v }

func (b *Bool) String() string { return strconv.FormatBool(b.v) }

// String is a string preference value, optionally truncated to a maximum
// length.
type String struct {
	v      string
	maxLen int
}

func (s *String) Set(v Value) error {
	t, ok := v.(string)
	if !ok {
		return curated.Errorf(ErrInvalidValue, v)
	}
	s.v = t
	s.crop()
	return nil
}

// SetMaxLen sets the maximum length for the string, cropping the current
// value if it is already longer. A length of zero removes the limit but
// does not restore any characters already cropped away.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.crop()
}

func (s *String) crop() {
	if s.maxLen > 0 && len(s.v) > s.maxLen {
		s.v = s.v[:s.maxLen]
	}
}

func (s *String) Get() string { return s.v }

func (s *String) String() string { return s.v }

// Int is an integer preference value.
type Int struct {
	v int
}

func (n *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		n.v = t
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return curated.Errorf(ErrInvalidValue, v)
		}
		n.v = i
	default:
		return curated.Errorf(ErrInvalidValue, v)
	}
	return nil
}

func (n *Int) Get() int { return n.v }

func (n *Int) String() string { return strconv.Itoa(n.v) }

// Float is a floating point preference value.
type Float struct {
	v float64
}

func (f *Float) Set(v Value) error {
	switch t := v.(type) {
	case float64:
		f.v = t
	case float32:
		f.v = float64(t)
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return curated.Errorf(ErrInvalidValue, v)
		}
		f.v = n
	default:
		return curated.Errorf(ErrInvalidValue, v)
	}
	return nil
}

func (f *Float) Get() float64 { return f.v }

func (f *Float) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }

// Generic adapts an arbitrary setter/getter pair to the value interface,
// for preferences whose disk representation doesn't map directly onto one
// of the concrete types above.
type Generic struct {
	setFn func(Value) error
	getFn func() Value
}

// NewGeneric returns a Generic value backed by setFn and getFn.
func NewGeneric(setFn func(Value) error, getFn func() Value) *Generic {
	return &Generic{setFn: setFn, getFn: getFn}
}

func (g *Generic) Set(v Value) error { return g.setFn(v) }

func (g *Generic) String() string { return fmt.Sprintf("%v", g.getFn()) }
