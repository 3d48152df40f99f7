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

// Package movie holds the in-memory representation of a recorded TAS movie
// and its two on-disk forms:
//
// 1) the '.ctm' text format (see ExportText/ImportText), a human-editable
//    and diffable representation intended for version control.
//
// 2) the binary blob format (see SerializeBlob/DeserializeBlob), a compact
//    representation intended to travel inside a host savestate so that
//    loading a savestate also restores the movie it was recorded against.
//
// The Store type owns one PlayerTimeline per controller port and provides
// the step-and-hold sampling (GetFrameFor) that the playback engine and the
// rest of the host query against.
package movie
