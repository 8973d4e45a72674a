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

// Package curated is a drop-in replacement for the errors package in the
// standard library. Curated errors identify themselves with a pattern string,
// which allows other parts of the project to check for the presence of a
// specific error in an error chain with the Is() and Has() functions.
//
// Packages that raise curated errors should define their pattern strings as
// exported constants alongside the code that raises them. For example, the
// pattern used by the bus package to indicate an access outside of the
// populated address space:
//
//	curated.Errorf(bus.AddressError, address)
//
// which an embedder can test for with:
//
//	curated.Is(err, bus.AddressError)
package curated
