package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retrotas/tas-engine/config"
	"github.com/retrotas/tas-engine/movie"
	"github.com/retrotas/tas-engine/tasengine"
)

func writeMovie(t *testing.T, path string, rerecordCount uint32) {
	t.Helper()
	var buf bytes.Buffer
	var s movie.Store
	err := movie.ExportText(&buf, &s, movie.ExportOptions{
		Metadata: movie.Metadata{RerecordCount: rerecordCount},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func pollUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, cond(), "condition never became true within %s", timeout)
}

// A change to the movie file alone, with the project file untouched, must
// still trigger a reload: Watch tracks the movie path the project names,
// not just the project file itself.
func TestWatchReloadsOnMovieFileChangeAlone(t *testing.T) {
	dir := t.TempDir()
	moviePath := filepath.Join(dir, "run.ctm")
	writeMovie(t, moviePath, 1)

	projectPath := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(projectPath, []byte(
		"movie_path: "+moviePath+"\nmode: playback\npolicy: read_only\n",
	), 0o644))

	e := tasengine.NewEngine(noopClock{}, noopSystem{}, noopVpad{})
	w, err := config.Watch(projectPath, e)
	require.NoError(t, err)
	defer w.Close()

	require.EqualValues(t, 1, e.RerecordCount())

	writeMovie(t, moviePath, 7)
	pollUntil(t, 2*time.Second, func() bool {
		return e.RerecordCount() == 7
	})
}
