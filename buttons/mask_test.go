package buttons_test

import (
	"testing"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		token string
		want  buttons.Mask
		ok    bool
	}{
		{"A", buttons.A, true},
		{"start", buttons.Plus, true},
		{"Select", buttons.Minus, true},
		{"l3", buttons.StickL, true},
		{"R3", buttons.StickR, true},
		{"nonsense", 0, false},
	}
	for _, c := range cases {
		got, ok := buttons.ParseToken(c.token)
		require.Equal(t, c.ok, ok, c.token)
		if ok {
			require.Equal(t, c.want, got, c.token)
		}
	}
}

func TestParseList(t *testing.T) {
	m, ok := buttons.ParseList("A|B+Start")
	require.True(t, ok)
	require.Equal(t, buttons.A|buttons.B|buttons.Plus, m)

	m, ok = buttons.ParseList("")
	require.True(t, ok)
	require.Equal(t, buttons.Mask(0), m)

	_, ok = buttons.ParseList("A|bogus")
	require.False(t, ok)
}

func TestMaskStringRoundTrip(t *testing.T) {
	m := buttons.A | buttons.StickL | buttons.Home
	s := m.String()
	got, ok := buttons.ParseList(s)
	require.True(t, ok)
	require.Equal(t, m, got)
}

func TestByteFromFloatEndpoints(t *testing.T) {
	require.Equal(t, byte(1), buttons.ByteFromFloat(-1))
	require.Equal(t, byte(128), buttons.ByteFromFloat(0))
	require.Equal(t, byte(255), buttons.ByteFromFloat(1))
}

func TestFloatFromByteRoundTrip(t *testing.T) {
	for _, v := range []float32{-1, -0.5, 0, 0.25, 1} {
		b := buttons.ByteFromFloat(v)
		got := buttons.FloatFromByte(b)
		require.InDelta(t, v, got, 2.0/255.0)
	}
}

func TestClampStickAndTrigger(t *testing.T) {
	require.Equal(t, float32(-1), buttons.ClampStick(-5))
	require.Equal(t, float32(1), buttons.ClampStick(5))
	require.Equal(t, float32(0), buttons.ClampTrigger(-1))
	require.Equal(t, float32(1), buttons.ClampTrigger(5))
}
