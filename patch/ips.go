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
	"encoding/binary"
)

// the three bytes that terminate an IPS patch. the format overloads the
// offset field rather than reserving a numeric sentinel, meaning that a
// genuine write to offset 0x454f46 cannot be expressed.
const ipsTerminator = "EOF"

// applyIPS implements the IPS format: records of (3 byte big-endian offset,
// 2 byte big-endian size, size literal bytes), with a zero size marking an
// RLE record of (2 byte count, 1 byte value).
//
// IPS predates any notion of integrity checking. There are no checksums to
// verify and no declared sizes to honour; a record beyond the end of the
// source simply grows the output.
func applyIPS(source []byte, data []byte, onProgress ProgressFunc) ([]byte, error) {
	c := &cursor{data: data}
	if _, err := c.read(len(ipsMagic)); err != nil {
		return nil, err
	}

	// IPS has no footer so progress is measured against the whole patch
	prog := newProgress(onProgress, len(data))

	out := make([]byte, len(source))
	copy(out, source)

	for {
		p, err := c.read(3)
		if err != nil {
			return nil, err
		}
		if string(p) == ipsTerminator {
			break // for loop
		}
		offset := int(p[0])<<16 | int(p[1])<<8 | int(p[2])

		p, err = c.read(2)
		if err != nil {
			return nil, err
		}
		size := int(binary.BigEndian.Uint16(p))

		if size != 0 {
			lit, err := c.read(size)
			if err != nil {
				return nil, err
			}
			out = extend(out, offset+size)
			copy(out[offset:], lit)
		} else {
			// a zero size signals an RLE record
			p, err = c.read(2)
			if err != nil {
				return nil, err
			}
			count := int(binary.BigEndian.Uint16(p))

			value, err := c.readByte()
			if err != nil {
				return nil, err
			}

			out = extend(out, offset+count)
			for i := 0; i < count; i++ {
				out[offset+i] = value
			}
		}

		if err := prog.advance(c.pos); err != nil {
			return nil, err
		}
	}

	// some IPS files carry data after the terminator (unofficial extensions
	// this package does not interpret). progress completes at the terminator
	if err := prog.advance(len(data)); err != nil {
		return nil, err
	}

	return out, nil
}

// extend the buffer with zero bytes so that it is at least end bytes long.
func extend(b []byte, end int) []byte {
	if end <= len(b) {
		return b
	}
	return append(b, make([]byte, end-len(b))...)
}
