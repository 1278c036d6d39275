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

	"github.com/sevenbit/rompatch/curated"
)

// Summary of a patch file's header and footer fields. The body is not
// decoded; a valid Summary is no indication that the patch will apply
// cleanly.
type Summary struct {
	Format      Format
	PatchLength int

	// declared sizes. UPS and BPS only, the IPS format declares nothing
	SourceSize uint64
	TargetSize uint64

	// BPS only
	MetadataSize uint64

	// footer checksums. UPS and BPS only. PatchCRC is the patch file's
	// checksum of itself, recorded here but never verified by this package
	SourceCRC uint32
	TargetCRC uint32
	PatchCRC  uint32
}

// Summarise the header and footer fields of the patch data without applying
// it.
func Summarise(data []byte) (Summary, error) {
	f, ok := Peek(data)
	if !ok {
		return Summary{}, curated.Errorf(InvalidPatch, "unrecognised patch format")
	}

	sm := Summary{Format: f, PatchLength: len(data)}

	switch f {
	case FormatIPS:
		// nothing to summarise beyond the format itself
		return sm, nil

	case FormatUPS:
		if len(data) < len(upsMagic)+crcFooterLen {
			return Summary{}, curated.Errorf(InvalidPatch, "UPS patch is too short to contain a footer")
		}

		c := &cursor{data: data[:len(data)-crcFooterLen]}
		if _, err := c.read(len(upsMagic)); err != nil {
			return Summary{}, err
		}

		var err error
		if sm.SourceSize, err = c.readVUps(); err != nil {
			return Summary{}, err
		}
		if sm.TargetSize, err = c.readVUps(); err != nil {
			return Summary{}, err
		}

	case FormatBPS:
		if len(data) < bpsMinLength {
			return Summary{}, curated.Errorf(InvalidPatch,
				fmt.Sprintf("BPS patch is only %d bytes", len(data)))
		}

		c := &cursor{data: data[:len(data)-crcFooterLen]}
		if _, err := c.read(len(bpsMagic)); err != nil {
			return Summary{}, err
		}

		var err error
		if sm.SourceSize, err = c.readVBps(); err != nil {
			return Summary{}, err
		}
		if sm.TargetSize, err = c.readVBps(); err != nil {
			return Summary{}, err
		}
		if sm.MetadataSize, err = c.readVBps(); err != nil {
			return Summary{}, err
		}
	}

	footer := data[len(data)-crcFooterLen:]
	sm.SourceCRC = binary.LittleEndian.Uint32(footer[0:4])
	sm.TargetCRC = binary.LittleEndian.Uint32(footer[4:8])
	sm.PatchCRC = binary.LittleEndian.Uint32(footer[8:12])

	return sm, nil
}
