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

// the four BPS actions, encoded in the low two bits of every action word.
const (
	bpsSourceRead = 0b00
	bpsTargetRead = 0b01
	bpsSourceCopy = 0b10
	bpsTargetCopy = 0b11
)

// minimum length of a BPS patch: magic, three single-byte sizes and the
// footer. anything shorter is rejected before parsing begins.
const bpsMinLength = 16

// applyBPS implements the BPS format: a header of three variable-length
// sizes and free-form metadata, a body of action words and the 12 byte CRC32
// footer.
//
// Three positions are tracked through the body. The write position advances
// with every action; the source and target read positions are adjusted only
// by the signed offsets of their respective copy actions.
func applyBPS(source []byte, data []byte, onProgress ProgressFunc) ([]byte, error) {
	if len(data) < bpsMinLength {
		return nil, curated.Errorf(InvalidPatch,
			fmt.Sprintf("BPS patch is only %d bytes", len(data)))
	}

	// the cursor covers the body only. a read straying into the footer is a
	// truncation, not a footer parse
	body := data[:len(data)-crcFooterLen]
	c := &cursor{data: body}
	if _, err := c.read(len(bpsMagic)); err != nil {
		return nil, err
	}

	// the declared source size is informational. a wrong source is caught by
	// the CRC32 check, not by its length
	if _, err := c.readVBps(); err != nil {
		return nil, err
	}
	targetSize, err := c.readVBps()
	if err != nil {
		return nil, err
	}
	if targetSize > maxTargetSize {
		return nil, curated.Errorf(InvalidPatch,
			fmt.Sprintf("declared target size of %d bytes is not plausible", targetSize))
	}

	// metadata is free-form and not interpreted
	metaSize, err := c.readVBps()
	if err != nil {
		return nil, err
	}
	if _, err := c.read(int(metaSize)); err != nil {
		return nil, err
	}

	out := make([]byte, targetSize)

	prog := newProgress(onProgress, len(body))

	var outOff, srcOff, tgtOff int

	for c.remaining() > 0 {
		word, err := c.readVBps()
		if err != nil {
			return nil, err
		}

		length := int(word>>2) + 1
		if length <= 0 || outOff+length > len(out) {
			return nil, curated.Errorf(InvalidPatch, "action writes beyond the declared target size")
		}

		switch word & 3 {
		case bpsSourceRead:
			// passthrough from the source, aligned with the write position
			if outOff+length > len(source) {
				return nil, curated.Errorf(InvalidPatch, "source read beyond the end of the source")
			}
			copy(out[outOff:outOff+length], source[outOff:])

		case bpsTargetRead:
			// literal bytes from the patch itself
			lit, err := c.read(length)
			if err != nil {
				return nil, err
			}
			copy(out[outOff:], lit)

		case bpsSourceCopy:
			offset, err := c.readVBpsSigned()
			if err != nil {
				return nil, err
			}
			srcOff += int(offset)
			if srcOff < 0 || srcOff+length > len(source) {
				return nil, curated.Errorf(InvalidPatch, "source copy beyond the limits of the source")
			}
			copy(out[outOff:outOff+length], source[srcOff:])
			srcOff += length

		case bpsTargetCopy:
			offset, err := c.readVBpsSigned()
			if err != nil {
				return nil, err
			}
			tgtOff += int(offset)
			if tgtOff < 0 || tgtOff >= outOff {
				return nil, curated.Errorf(InvalidPatch, "target copy from unwritten output")
			}

			// copied byte by byte because the read range is allowed to
			// overlap the bytes this same action has just written. that
			// overlap is how the format expresses runs and repeats
			for i := 0; i < length; i++ {
				out[outOff+i] = out[tgtOff+i]
			}
			tgtOff += length
		}

		outOff += length

		if err := prog.advance(c.pos); err != nil {
			return nil, err
		}
	}

	if err := verifyChecksums(data, source, out); err != nil {
		return nil, err
	}

	return out, nil
}
