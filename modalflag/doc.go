// This file is part of rompatch.
//
// rompatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// rompatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with rompatch.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// In this context, a mode is a special command line argument that when
// specified puts the program into a different mode of operation, each mode
// being different enough to require its own set of flags and expected
// arguments. The go command is a good example of a program with modes
// (build, doc, get, test, etc.)
//
// Basic usage, for a program with "apply" and "info" modes:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("APPLY", "INFO")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		// help messages are printed automatically
//		return
//	case modalflag.ParseError:
//		fmt.Println(err)
//		return
//	}
//
//	switch md.Mode() {
//	case "APPLY":
//		// prepare for the next layer of arguments. flags added after
//		// NewMode() apply to this mode only
//		md.NewMode()
//		quiet := md.AddBool("quiet", false, "no progress information")
//		p, err := md.Parse()
//		...
//	case "INFO":
//		...
//	}
//
// After parsing, arguments that are not flags and not a sub-mode selector
// are available through the RemainingArgs() and GetArg() functions. Sub-mode
// comparisons are case insensitive and the first sub-mode in the list given
// to AddSubModes() is the default when no selector is present.
package modalflag
