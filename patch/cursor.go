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

package patch

import (
	"github.com/sevenbit/rompatch/curated"
)

// cursor is an owned, mutable read position into a patch buffer. For the UPS
// and BPS formats the buffer given to the cursor excludes the fixed-length
// footer, meaning that any read straying into the footer fails in the same
// way as a read past the end of the file.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) readByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, curated.Errorf(TruncatedPatch, "unexpected end of patch data")
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// read returns the next n bytes as a subslice of the patch buffer. No copy is
// made so the caller must not modify the returned slice.
//
// A negative n means a length field has overflowed the int conversion. No
// buffer can satisfy such a read so it is reported as a truncation.
func (c *cursor) read(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, curated.Errorf(TruncatedPatch, "unexpected end of patch data")
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
