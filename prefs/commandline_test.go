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

package prefs_test

import (
	"testing"

	"github.com/retrotas/tas-engine/prefs"
	"github.com/stretchr/testify/require"
)

func TestCommandLineStackValues(t *testing.T) {
	require.Equal(t, "", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo::bar")
	require.Equal(t, "foo::bar", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("   foo:: bar ")
	require.Equal(t, "foo::bar", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo::bar; baz::qux")
	require.Equal(t, "baz::qux; foo::bar", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo_bar")
	require.Equal(t, "", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo_bar;baz::qux")
	require.Equal(t, "baz::qux", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo::bar;baz_qux")
	ok, _ := prefs.GetCommandLinePref("baz")
	require.False(t, ok)
	require.Equal(t, "foo::bar", prefs.PopCommandLineStack())
}

func TestCommandLineStack(t *testing.T) {
	require.Equal(t, "", prefs.PopCommandLineStack())

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")
	require.Equal(t, "baz::qux", prefs.PopCommandLineStack())
	require.Equal(t, "foo::bar", prefs.PopCommandLineStack())
}
