// This file is part of the TAS engine.
//
// The TAS engine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The TAS engine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the TAS engine.  If not, see <https://www.gnu.org/licenses/>.

// Package tasengine is the process-wide controller state machine that sits
// between a host emulator's VPAD poll path and its frame-presentation
// path. It owns movie playback and record, manual-override input with
// turbo and passthrough, the query that resolves one of those sources for
// a single VPAD mapping, and the frame-advance pause/step barrier that
// gates the host's CPU and render threads.
//
// Everything lives under one Engine value and one mutex, in the shape of
// the teacher's hardware/input.Input: a single struct, methods instead of
// free functions, and a small number of deliberate, documented lock drops
// rather than a web of smaller locks.
package tasengine
