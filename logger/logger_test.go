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

package logger_test

import (
	"strings"
	"testing"

	"github.com/retrotas/tas-engine/logger"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	var buf strings.Builder

	logger.Write(&buf)
	require.Equal(t, "", buf.String())

	logger.Log("test", "this is a test")
	buf.Reset()
	logger.Write(&buf)
	require.Equal(t, "test: this is a test\n", buf.String())

	logger.Log("test2", "this is another test")
	buf.Reset()
	logger.Write(&buf)
	require.Equal(t, "test: this is a test\ntest2: this is another test\n", buf.String())

	// asking for too many entries in a Tail() should be okay
	buf.Reset()
	logger.Tail(&buf, 100)
	require.Equal(t, "test: this is a test\ntest2: this is another test\n", buf.String())

	// asking for exactly the correct number of entries is okay
	buf.Reset()
	logger.Tail(&buf, 2)
	require.Equal(t, "test: this is a test\ntest2: this is another test\n", buf.String())

	// asking for fewer entries is okay too
	buf.Reset()
	logger.Tail(&buf, 1)
	require.Equal(t, "test2: this is another test\n", buf.String())

	// and no entries
	buf.Reset()
	logger.Tail(&buf, 0)
	require.Equal(t, "", buf.String())
}

func TestLoggerDropsOldestWhenFull(t *testing.T) {
	logger.Clear()
	for i := 0; i < 1100; i++ {
		logger.Logf("cat", "entry %d", i)
	}
	var buf strings.Builder
	logger.Tail(&buf, 1)
	require.Equal(t, "cat: entry 1099\n", buf.String())
}
