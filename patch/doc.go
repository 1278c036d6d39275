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

// Package patch applies binary ROM patches in the IPS, UPS and BPS formats.
//
// The Apply() function is the only entry point needed in the common case. It
// selects the format from the magic bytes at the start of the patch data and
// hands over to the applier for that format:
//
//	patched, err := patch.Apply(rom, data, nil)
//
// The source is never modified and every call allocates its own output, so
// concurrent calls are safe provided the input buffers are not being
// modified elsewhere. Both buffers are fully resident in memory, as is the
// output, which is the right trade-off for ROM images but not for anything
// much larger.
//
// IPS is the oldest of the three formats and carries no integrity
// information at all; a mismatched source produces garbage without
// complaint. The UPS and BPS formats both end with CRC32 checksums of the
// source and target, which are always verified. Failures are reported with
// one of three curated error patterns (InvalidPatch, TruncatedPatch,
// ChecksumFailed) so that a frontend can tell a damaged patch file from a
// patch meant for a different ROM.
package patch
