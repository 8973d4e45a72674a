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

//go:build !statsview
// +build !statsview

package statsview

import (
	"io"
)

// Address of the local statistics server. Meaningless when the project has
// been built without the statsview build constraint.
const Address = ""

// Launch is a no-op. Build with the statsview constraint for a working
// statistics server.
func Launch(output io.Writer) {
	output.Write([]byte("no stats server available in this build\n"))
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
