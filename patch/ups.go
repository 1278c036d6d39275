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
	"fmt"

	"github.com/sevenbit/rompatch/curated"
)

// applyUPS implements the UPS format: a header of two variable-length sizes
// followed by hunks of (skip distance, XOR bytes, zero terminator), ending
// with the 12 byte CRC32 footer.
//
// The output starts as a copy of the source, truncated or zero-padded to the
// declared target size. XOR bytes are applied in place; everything the hunks
// skip over is left as it was.
func applyUPS(source []byte, data []byte, onProgress ProgressFunc) ([]byte, error) {
	if len(data) < len(upsMagic)+crcFooterLen {
		return nil, curated.Errorf(InvalidPatch, "UPS patch is too short to contain a footer")
	}

	// the cursor covers the body only. a read straying into the footer is a
	// truncation, not a footer parse
	body := data[:len(data)-crcFooterLen]
	c := &cursor{data: body}
	if _, err := c.read(len(upsMagic)); err != nil {
		return nil, err
	}

	// the declared source size is informational. allocation is governed by
	// the target size alone
	if _, err := c.readVUps(); err != nil {
		return nil, err
	}
	targetSize, err := c.readVUps()
	if err != nil {
		return nil, err
	}
	if targetSize > maxTargetSize {
		return nil, curated.Errorf(InvalidPatch,
			fmt.Sprintf("declared target size of %d bytes is not plausible", targetSize))
	}

	out := make([]byte, targetSize)
	copy(out, source)

	prog := newProgress(onProgress, len(body))

	var pos int
	for c.remaining() > 0 {
		skip, err := c.readVUps()
		if err != nil {
			return nil, err
		}
		pos += int(skip)

		for {
			b, err := c.readByte()
			if err != nil {
				return nil, err
			}
			if b == 0x00 {
				// hunk terminator. the zero byte itself is not applied
				break // inner for loop
			}
			if pos < 0 || pos >= len(out) {
				return nil, curated.Errorf(InvalidPatch, "hunk writes beyond the declared target size")
			}
			out[pos] ^= b
			pos++
		}

		// the byte at the hunk boundary is unchanged between source and
		// target
		pos++

		if err := prog.advance(c.pos); err != nil {
			return nil, err
		}
	}

	if err := verifyChecksums(data, source, out); err != nil {
		return nil, err
	}

	return out, nil
}
