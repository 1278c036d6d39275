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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error. Unlike the fmt package, the pattern is also
// the identity of the error:
//
//	e := curated.Errorf("patching: wrong number of bytes: %d", n)
//
//	if curated.Is(e, "patching: wrong number of bytes: %d") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar to Is() but checks whether the pattern occurs
// anywhere in the error chain, rather than only at the head. Packages that
// return curated errors export their patterns as constants so that callers
// can test for specific conditions without string matching on the formatted
// message.
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. We can think of the difference between curated and
// uncurated errors as the difference between 'expected' and 'unexpected'
// failures, depending on how we choose to handle the result of a function
// call.
//
// The Error() function implementation normalises the message chain by
// removing duplicate adjacent parts. The practical advantage is that it
// alleviates the problem of when and how to wrap errors as they pass up
// through the call stack.
package curated
