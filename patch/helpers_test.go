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

package patch_test

import (
	"encoding/binary"
	"hash/crc32"
)

// withFooter completes a UPS or BPS patch body with the 12 byte footer: the
// CRC32 of the source, the CRC32 of the intended target and the patch's
// checksum of itself (everything before the final four bytes).
//
// Fixture bodies in these tests hard-code their variable-length integers.
// All the values involved are below 128, where both the UPS and BPS schemes
// encode the value v as the single byte 0x80|v.
func withFooter(body []byte, source []byte, target []byte) []byte {
	p := make([]byte, 0, len(body)+12)
	p = append(p, body...)
	p = binary.LittleEndian.AppendUint32(p, crc32.ChecksumIEEE(source))
	p = binary.LittleEndian.AppendUint32(p, crc32.ChecksumIEEE(target))
	p = binary.LittleEndian.AppendUint32(p, crc32.ChecksumIEEE(p))
	return p
}
