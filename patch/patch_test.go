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
	"testing"

	"github.com/sevenbit/rompatch/curated"
	"github.com/sevenbit/rompatch/patch"
	"github.com/sevenbit/rompatch/test"
)

func TestPeek(t *testing.T) {
	f, ok := patch.Peek([]byte("PATCHxxxxxx"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f, patch.FormatIPS)

	f, ok = patch.Peek([]byte("UPS1xxxxxx"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f, patch.FormatUPS)

	f, ok = patch.Peek([]byte("BPS1xxxxxx"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f, patch.FormatBPS)

	f, ok = patch.Peek([]byte("XPS1xxxxxx"))
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, f, patch.FormatUnknown)

	// a short buffer is never recognised
	f, ok = patch.Peek([]byte("UPS"))
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, f, patch.FormatUnknown)

	// an empty buffer is fine too
	_, ok = patch.Peek(nil)
	test.ExpectFailure(t, ok)
}

// an unrecognised magic is a format failure, reported before any other field
// is read
func TestApplyUnrecognised(t *testing.T) {
	out, err := patch.Apply([]byte{0x01}, []byte("GARBAGEGARBAGE"), nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, patch.InvalidPatch))
	if out != nil {
		t.Fatal("no output expected")
	}

	_, err = patch.Apply([]byte{0x01}, nil, nil)
	test.ExpectSuccess(t, curated.Is(err, patch.InvalidPatch))
}

func TestFormatString(t *testing.T) {
	test.ExpectEquality(t, patch.FormatIPS.String(), "IPS")
	test.ExpectEquality(t, patch.FormatUPS.String(), "UPS")
	test.ExpectEquality(t, patch.FormatBPS.String(), "BPS")
	test.ExpectEquality(t, patch.FormatUnknown.String(), "unknown")
}

func TestSummarise(t *testing.T) {
	source, p, target := upsSingleHunk()

	sm, err := patch.Summarise(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sm.Format, patch.FormatUPS)
	test.ExpectEquality(t, sm.PatchLength, len(p))
	test.ExpectEquality(t, sm.SourceSize, uint64(6))
	test.ExpectEquality(t, sm.TargetSize, uint64(6))
	test.ExpectEquality(t, sm.SourceCRC, crc32.ChecksumIEEE(source))
	test.ExpectEquality(t, sm.TargetCRC, crc32.ChecksumIEEE(target))

	// the patch's own checksum covers everything up to its own four bytes
	test.ExpectEquality(t, sm.PatchCRC, binary.LittleEndian.Uint32(p[len(p)-4:]))
	test.ExpectEquality(t, sm.PatchCRC, crc32.ChecksumIEEE(p[:len(p)-4]))

	source, p, _ = bpsAllModes()
	sm, err = patch.Summarise(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sm.Format, patch.FormatBPS)
	test.ExpectEquality(t, sm.SourceSize, uint64(8))
	test.ExpectEquality(t, sm.TargetSize, uint64(12))
	test.ExpectEquality(t, sm.MetadataSize, uint64(0))
	test.ExpectEquality(t, sm.SourceCRC, crc32.ChecksumIEEE(source))

	// IPS files carry nothing to summarise beyond the format
	sm, err = patch.Summarise(append([]byte("PATCH"), "EOF"...))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sm.Format, patch.FormatIPS)
	test.ExpectEquality(t, sm.SourceSize, uint64(0))

	// unrecognised data cannot be summarised
	_, err = patch.Summarise([]byte("XPS1xxxxxxxxxxxxxxxx"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, patch.InvalidPatch))
}
