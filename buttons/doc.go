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

// Package buttons defines the 17-bit logical button mask shared by the
// movie file format, the binary savestate blob, and the manual-input
// layer, plus the VPAD mapping id space used by the query router.
//
// There is exactly one definition of the button mask in this module. Every
// other package that needs to know what "A" or "StickL" means imports this
// package rather than redeclaring the bits.
package buttons
