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
	"fmt"
	"hash/crc32"

	"github.com/sevenbit/rompatch/curated"
)

// Error patterns returned by the patch package. The three conditions are
// distinct so that the caller can present a specific message: a checksum
// failure suggests the patch is for a different ROM, whereas a truncation
// suggests a damaged patch file. Test with curated.Has().
const (
	// the patch data does not begin with a recognised magic, or a size field
	// is inconsistent with the length of the patch
	InvalidPatch = "patching: invalid patch: %v"

	// a field or variable-length integer runs past the end of the patch
	// data, or into the footer
	TruncatedPatch = "patching: truncated patch: %v"

	// the CRC32 of the source or of the patched output does not match the
	// value in the patch footer (UPS and BPS only)
	ChecksumFailed = "patching: checksum failed: %v"
)

// Format distinguishes the supported patch file formats.
type Format int

// List of valid Format values.
const (
	FormatUnknown Format = iota
	FormatIPS
	FormatUPS
	FormatBPS
)

func (f Format) String() string {
	switch f {
	case FormatIPS:
		return "IPS"
	case FormatUPS:
		return "UPS"
	case FormatBPS:
		return "BPS"
	}
	return "unknown"
}

// magic bytes for each format. IPS is five bytes, the other two are four.
const (
	ipsMagic = "PATCH"
	upsMagic = "UPS1"
	bpsMagic = "BPS1"
)

// the UPS and BPS formats end with the same 12 byte footer: CRC32 of the
// source, CRC32 of the target and the patch's own CRC32, all little-endian.
// the patch's own CRC32 is not verified by this package.
const crcFooterLen = 12

// limit on the declared target size of a UPS or BPS patch. generous compared
// to any real ROM image but it keeps a corrupted size field from triggering
// an enormous allocation before the CRC32 check has a chance to reject the
// patch.
const maxTargetSize = 1 << 30

// ProgressFunc is called during patch application with a monotonically
// non-decreasing fraction in the range [0, 1]. It is called synchronously
// and only when the integer percentage changes. Returning a non-nil error
// aborts the application; the error is returned to the caller of Apply()
// unmodified.
type ProgressFunc func(fraction float64) error

// Peek inspects the magic bytes of the patch data and returns the format it
// announces. The second return value is false if the format is not
// recognised. Peek never reads beyond the magic bytes.
func Peek(data []byte) (Format, bool) {
	switch {
	case len(data) >= len(ipsMagic) && string(data[:len(ipsMagic)]) == ipsMagic:
		return FormatIPS, true
	case len(data) >= len(upsMagic) && string(data[:len(upsMagic)]) == upsMagic:
		return FormatUPS, true
	case len(data) >= len(bpsMagic) && string(data[:len(bpsMagic)]) == bpsMagic:
		return FormatBPS, true
	}
	return FormatUnknown, false
}

// Apply the patch to the source data, returning the patched result. The
// source is never modified. The format is selected by the magic bytes at the
// start of the patch data.
//
// The onProgress argument may be nil.
//
// On failure the returned data is always nil. There is no condition under
// which a partially patched result is returned.
func Apply(source []byte, data []byte, onProgress ProgressFunc) ([]byte, error) {
	f, ok := Peek(data)
	if !ok {
		return nil, curated.Errorf(InvalidPatch, "unrecognised patch format")
	}

	switch f {
	case FormatIPS:
		return applyIPS(source, data, onProgress)
	case FormatUPS:
		return applyUPS(source, data, onProgress)
	case FormatBPS:
		return applyBPS(source, data, onProgress)
	}

	return nil, curated.Errorf(InvalidPatch, "unrecognised patch format")
}

// progress throttles a ProgressFunc so that it only fires when the integer
// percentage changes.
type progress struct {
	fn      ProgressFunc
	span    int
	lastPct int
}

func newProgress(fn ProgressFunc, span int) progress {
	return progress{fn: fn, span: span, lastPct: -1}
}

func (p *progress) advance(pos int) error {
	if p.fn == nil || p.span <= 0 {
		return nil
	}
	if pos > p.span {
		pos = p.span
	}
	pct := pos * 100 / p.span
	if pct == p.lastPct {
		return nil
	}
	p.lastPct = pct
	return p.fn(float64(pos) / float64(p.span))
}

// verifyChecksums compares the source and output buffers against the CRC32
// values in the patch footer. Used by the UPS and BPS appliers after the
// whole body has been applied.
func verifyChecksums(data []byte, source []byte, out []byte) error {
	footer := data[len(data)-crcFooterLen:]
	sourceCRC := binary.LittleEndian.Uint32(footer[0:4])
	targetCRC := binary.LittleEndian.Uint32(footer[4:8])

	if crc := crc32.ChecksumIEEE(source); crc != sourceCRC {
		return curated.Errorf(ChecksumFailed,
			fmt.Sprintf("source CRC32 is %08x, patch expects %08x", crc, sourceCRC))
	}
	if crc := crc32.ChecksumIEEE(out); crc != targetCRC {
		return curated.Errorf(ChecksumFailed,
			fmt.Sprintf("patched CRC32 is %08x, patch expects %08x", crc, targetCRC))
	}

	return nil
}
