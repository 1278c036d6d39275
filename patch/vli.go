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

// The UPS and BPS formats each define their own variable-length integer
// encoding. Both use seven data bits per byte, least significant group
// first, with bit 7 marking the final byte. The accumulation arithmetic
// differs however, so the same value encodes to different byte sequences in
// the two formats and the codecs cannot be shared.

// readVUps decodes a UPS variable-length integer. Each byte contributes
// seven bits, shifted into place.
func (c *cursor) readVUps() (uint64, error) {
	var v uint64
	var shift uint

	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 != 0 {
			return v, nil
		}
		shift += 7
	}
}

// readVBps decodes a BPS variable-length integer. Each byte contributes
// seven bits multiplied by the running shift, and the shift itself is added
// back in after every non-terminal byte. The offset keeps small values dense
// and makes the encoding of any value unique.
func (c *cursor) readVBps() (uint64, error) {
	var v uint64
	shift := uint64(1)

	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		v += uint64(b&0x7f) * shift
		if b&0x80 != 0 {
			return v, nil
		}
		shift <<= 7
		v += shift
	}
}

// readVBpsSigned decodes the signed variant used by the BPS copy actions.
// The low bit of the unsigned value is the sign.
func (c *cursor) readVBpsSigned() (int64, error) {
	v, err := c.readVBps()
	if err != nil {
		return 0, err
	}
	if v&1 == 1 {
		return -int64(v >> 1), nil
	}
	return int64(v >> 1), nil
}

// appendVUps encodes v with the UPS scheme, appending to p. The encoders in
// this file exist for the benefit of the tests; the engine itself never
// encodes.
func appendVUps(p []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(p, b|0x80)
		}
		p = append(p, b)
	}
}

// appendVBps encodes v with the BPS scheme, appending to p.
func appendVBps(p []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(p, b|0x80)
		}
		p = append(p, b)
		v--
	}
}

// appendVBpsSigned encodes v with the signed BPS scheme, appending to p.
func appendVBpsSigned(p []byte, v int64) []byte {
	if v < 0 {
		return appendVBps(p, uint64(-v)<<1|1)
	}
	return appendVBps(p, uint64(v)<<1)
}
