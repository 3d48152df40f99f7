package buttons

import "strings"

// Mask is the 17-bit logical button state for a single controller sample.
type Mask uint32

// The 17 logical buttons, stable across the movie text format, the binary
// blob and ManualState. Bit positions must never be renumbered: doing so
// would silently corrupt every previously recorded movie.
const (
	A Mask = 1 << iota
	B
	X
	Y
	L
	R
	ZL
	ZR
	Plus
	Minus
	Up
	Down
	Left
	Right
	StickL
	StickR
	Home
)

// All is the union of every defined button bit.
const All = A | B | X | Y | L | R | ZL | ZR | Plus | Minus | Up | Down | Left | Right | StickL | StickR | Home

// names lists, in declaration order, every accepted token for a button
// together with its canonical name. The first entry for a given Mask is
// the canonical spelling used when formatting.
var names = []struct {
	mask    Mask
	tokens  []string
	display string
}{
	{A, []string{"A"}, "A"},
	{B, []string{"B"}, "B"},
	{X, []string{"X"}, "X"},
	{Y, []string{"Y"}, "Y"},
	{L, []string{"L"}, "L"},
	{R, []string{"R"}, "R"},
	{ZL, []string{"ZL"}, "ZL"},
	{ZR, []string{"ZR"}, "ZR"},
	{Plus, []string{"Plus", "Start"}, "Plus"},
	{Minus, []string{"Minus", "Select"}, "Minus"},
	{Up, []string{"Up"}, "Up"},
	{Down, []string{"Down"}, "Down"},
	{Left, []string{"Left"}, "Left"},
	{Right, []string{"Right"}, "Right"},
	{StickL, []string{"StickL", "L3"}, "StickL"},
	{StickR, []string{"StickR", "R3"}, "StickR"},
	{Home, []string{"Home"}, "Home"},
}

// ParseToken resolves a single case-insensitive button token (e.g. "Start",
// "l3", "ZR") to its Mask bit. Returns 0, false if the token is not
// recognised.
func ParseToken(token string) (Mask, bool) {
	token = strings.TrimSpace(token)
	for _, n := range names {
		for _, t := range n.tokens {
			if strings.EqualFold(t, token) {
				return n.mask, true
			}
		}
	}
	return 0, false
}

// ParseList parses a '|' or '+' separated list of button tokens, as found in
// the F,... lines of a .ctm file. An unrecognised token is reported by
// returning false alongside the mask accumulated so far.
func ParseList(s string) (Mask, bool) {
	var m Mask
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == '+'
	})
	for _, f := range fields {
		b, ok := ParseToken(f)
		if !ok {
			return m, false
		}
		m |= b
	}
	return m, true
}

// String formats the mask as a '|' separated list of canonical button
// names, in bit order. An empty mask formats as the empty string.
func (m Mask) String() string {
	var parts []string
	for _, n := range names {
		if m&n.mask != 0 {
			parts = append(parts, n.display)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every bit in sub is set in m.
func (m Mask) Has(sub Mask) bool {
	return m&sub == sub
}
