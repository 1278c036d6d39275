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
	"bytes"
	"testing"

	"github.com/sevenbit/rompatch/curated"
	"github.com/sevenbit/rompatch/patch"
	"github.com/sevenbit/rompatch/test"
)

// a patch that exercises all four action modes. action words encode the
// mode in the low two bits and length-1 in the rest
func bpsAllModes() (source []byte, p []byte, target []byte) {
	source = []byte{0x10, 0x11, 0x12, 0x13, 0x20, 0x21, 0x22, 0x23}
	target = []byte{0x10, 0x11, 0x12, 0x13, 0xaa, 0xbb, 0x20, 0x21, 0xaa, 0xbb, 0x20, 0x21}

	body := []byte("BPS1")
	body = append(body, 0x88)       // source size 8
	body = append(body, 0x8c)       // target size 12
	body = append(body, 0x80)       // metadata size 0
	body = append(body, 0x8c)       // SourceRead, length 4: target[0:4] = source[0:4]
	body = append(body, 0x85)       // TargetRead, length 2
	body = append(body, 0xaa, 0xbb) // the literal bytes
	body = append(body, 0x86)       // SourceCopy, length 2
	body = append(body, 0x88)       // relative seek +4: target[6:8] = source[4:6]
	body = append(body, 0x8f)       // TargetCopy, length 4
	body = append(body, 0x88)       // relative seek +4: target[8:12] = target[4:8]

	return source, withFooter(body, source, target), target
}

func TestBpsApply(t *testing.T) {
	source, p, target := bpsAllModes()

	out, err := patch.Apply(source, p, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(out, target))
	test.ExpectSuccess(t, bytes.Equal(source, []byte{0x10, 0x11, 0x12, 0x13, 0x20, 0x21, 0x22, 0x23}))
}

// metadata is skipped without interpretation
func TestBpsMetadata(t *testing.T) {
	source := []byte{0x01, 0x02, 0x03, 0x04}
	target := []byte{0x01, 0x02, 0x03, 0x04}

	body := []byte("BPS1")
	body = append(body, 0x84)       // source size 4
	body = append(body, 0x84)       // target size 4
	body = append(body, 0x85)       // metadata size 5
	body = append(body, "hello"...) // metadata, ignored
	body = append(body, 0x8c)       // SourceRead, length 4

	out, err := patch.Apply(source, withFooter(body, source, target), nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(out, target))
}

// SourceCopy relative seeks are signed: the low bit of the decoded value is
// the sign, the rest the magnitude
func TestBpsNegativeSeek(t *testing.T) {
	source := []byte{0x01, 0x02, 0x03, 0x04}
	target := []byte{0x03, 0x04, 0x01, 0x02}

	body := []byte("BPS1")
	body = append(body, 0x84) // source size 4
	body = append(body, 0x84) // target size 4
	body = append(body, 0x80) // metadata size 0
	body = append(body, 0x86) // SourceCopy, length 2
	body = append(body, 0x84) // relative seek +2: target[0:2] = source[2:4]
	body = append(body, 0x86) // SourceCopy, length 2
	body = append(body, 0x89) // relative seek -4: target[2:4] = source[0:2]

	out, err := patch.Apply(source, withFooter(body, source, target), nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(out, target))
}

// a TargetCopy overlapping the bytes it is writing is how the format
// expresses a run. one literal byte repeated six times
func TestBpsTargetCopyRun(t *testing.T) {
	source := []byte{0x01}
	target := []byte{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}

	body := []byte("BPS1")
	body = append(body, 0x81) // source size 1
	body = append(body, 0x86) // target size 6
	body = append(body, 0x80) // metadata size 0
	body = append(body, 0x81) // TargetRead, length 1
	body = append(body, 0xaa) // the literal byte
	body = append(body, 0x93) // TargetCopy, length 5
	body = append(body, 0x80) // relative seek 0: read position stays at 0

	out, err := patch.Apply(source, withFooter(body, source, target), nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(out, target))
}

// a patch too short to hold a header and footer is rejected before any
// parsing
func TestBpsTooShort(t *testing.T) {
	source := []byte{0x01}

	p := []byte("BPS1")
	p = append(p, 0x81, 0x81, 0x80)

	out, err := patch.Apply(source, p, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, patch.InvalidPatch))
	if out != nil {
		t.Fatal("no output expected")
	}
}

func TestBpsWrongSource(t *testing.T) {
	source, p, _ := bpsAllModes()

	wrong := make([]byte, len(source))
	copy(wrong, source)
	wrong[3] ^= 0x80

	out, err := patch.Apply(wrong, p, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, patch.ChecksumFailed))
	if out != nil {
		t.Fatal("no output expected on checksum failure")
	}
}

func TestBpsCorruption(t *testing.T) {
	source, p, _ := bpsAllModes()

	for i := len("BPS1"); i < len(p)-12; i++ {
		corrupt := make([]byte, len(p))
		copy(corrupt, p)
		corrupt[i] ^= 0xff

		out, err := patch.Apply(source, corrupt, nil)
		test.ExpectFailure(t, err)
		test.ExpectSuccess(t, curated.IsAny(err))
		if out != nil {
			t.Fatalf("corruption at byte %d returned a buffer", i)
		}
	}

	// corrupting a TargetRead literal leaves the patch structurally valid,
	// so the failure must come from the checksum verification
	corrupt := make([]byte, len(p))
	copy(corrupt, p)
	corrupt[9] ^= 0x01 // the 0xaa literal byte

	_, err := patch.Apply(source, corrupt, nil)
	test.ExpectSuccess(t, curated.Is(err, patch.ChecksumFailed))
}

func TestBpsTruncation(t *testing.T) {
	source, p, _ := bpsAllModes()

	for i := 0; i < len(p); i++ {
		out, err := patch.Apply(source, p[:i], nil)
		test.ExpectFailure(t, err)
		test.ExpectSuccess(t, curated.IsAny(err))
		if out != nil {
			t.Fatalf("truncation at byte %d returned a buffer", i)
		}
	}
}

func TestBpsProgress(t *testing.T) {
	source, p, _ := bpsAllModes()

	fractions := []float64{}
	_, err := patch.Apply(source, p, func(f float64) error {
		fractions = append(fractions, f)
		return nil
	})
	test.DemandSuccess(t, err)

	if len(fractions) < 2 {
		t.Fatalf("expected at least two progress calls, got %d", len(fractions))
	}
	for i, f := range fractions {
		if f < 0 || f > 1 {
			t.Errorf("progress fraction %f out of range", f)
		}
		if i > 0 && f <= fractions[i-1] {
			t.Errorf("progress fraction %f did not increase on %f", f, fractions[i-1])
		}
	}
	test.ExpectEquality(t, fractions[len(fractions)-1], 1.0)
}
