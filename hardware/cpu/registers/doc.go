// This file is part of Gopher68K.
//
// Gopher68K is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68K is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68K.  If not, see <https://www.gnu.org/licenses/>.

// Package registers implements the register file of the 68000 family,
// including the stack pointer shadowing rules: A7 always aliases the stack
// pointer selected by the supervisor and master bits of the status register.
//
// The package also defines the register index ABI used by embedders to
// address registers by number. The numbering is stable and must not change
// between releases.
package registers
