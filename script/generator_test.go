package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/script"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tas.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGeneratorCallsTasFrameWithNumericButtons(t *testing.T) {
	path := writeScript(t, `
function tas_frame(frame, port)
  return 1.0, -1.0, 0.0, 0.0, 0.0, 0.0, frame % 2
end
`)
	g, err := script.NewGenerator(path)
	require.NoError(t, err)
	defer g.Close()

	state, err := g.Frame(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1.0), state.LX)
	require.Equal(t, float32(-1.0), state.LY)
	require.EqualValues(t, 0, state.Buttons)

	state, err = g.Frame(1, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, state.Buttons)
}

func TestGeneratorAcceptsStringButtonList(t *testing.T) {
	path := writeScript(t, `
function tas_frame(frame, port)
  return 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, "A|B"
end
`)
	g, err := script.NewGenerator(path)
	require.NoError(t, err)
	defer g.Close()

	state, err := g.Frame(0, 0)
	require.NoError(t, err)
	require.EqualValues(t, buttons.A|buttons.B, state.Buttons)
}

func TestGeneratorClampsOutOfRangeSticks(t *testing.T) {
	path := writeScript(t, `
function tas_frame(frame, port)
  return 5.0, -5.0, 0.0, 0.0, 0.0, 0.0, 0
end
`)
	g, err := script.NewGenerator(path)
	require.NoError(t, err)
	defer g.Close()

	state, err := g.Frame(0, 0)
	require.NoError(t, err)
	require.LessOrEqual(t, state.LX, float32(1.0))
	require.GreaterOrEqual(t, state.LY, float32(-1.0))
}

func TestNewGeneratorRejectsMissingEntryPoint(t *testing.T) {
	path := writeScript(t, `x = 1`)
	_, err := script.NewGenerator(path)
	require.Error(t, err)
}

func TestNewGeneratorRejectsUnreadableFile(t *testing.T) {
	_, err := script.NewGenerator(filepath.Join(t.TempDir(), "missing.lua"))
	require.Error(t, err)
}
