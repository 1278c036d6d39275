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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/sevenbit/rompatch/curated"
	"github.com/sevenbit/rompatch/logger"
	"github.com/sevenbit/rompatch/modalflag"
	"github.com/sevenbit/rompatch/patch"
	"github.com/sevenbit/rompatch/romloader"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("APPLY", "INFO")
	md.AdditionalHelp(
		`rompatch applies binary ROM patches in the IPS, UPS and BPS formats.

The APPLY mode patches a ROM file and writes the result to a new file. The
source ROM is never modified. The INFO mode prints the header and footer
fields of a patch file without applying it.`)

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "APPLY":
		err = apply(md)
	case "INFO":
		err = info(md)
	}

	if err != nil {
		color.Red("* error in %s mode: %s", md.String(), err)
		os.Exit(20)
	}
}

func apply(md *modalflag.Modes) error {
	md.NewMode()

	output := md.AddString("o", "", "output file. defaults to the ROM filename with a (patched) suffix")
	quiet := md.AddBool("quiet", false, "no progress or summary information")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("a patch file and a ROM file are required for %s mode", md)
	}

	patchLoad := romloader.NewLoader(md.GetArg(0))
	if err := patchLoad.Load(); err != nil {
		return err
	}

	romLoad := romloader.NewLoader(md.GetArg(1))
	if err := romLoad.Load(); err != nil {
		return err
	}

	var onProgress patch.ProgressFunc
	var bar *pb.ProgressBar

	if !*quiet {
		bar = pb.New(100)
		bar.ShowCounters = false
		bar.Start()
		onProgress = func(fraction float64) error {
			bar.Set(int(fraction * 100))
			return nil
		}
	}

	result, err := patch.Apply(romLoad.Data, patchLoad.Data, onProgress)

	if bar != nil {
		bar.Finish()
	}

	if err != nil {
		// add an actionable suggestion to the two failures a user can do
		// something about
		switch {
		case curated.Has(err, patch.ChecksumFailed):
			return fmt.Errorf("%v (is the patch intended for a different ROM?)", err)
		case curated.Has(err, patch.TruncatedPatch):
			return fmt.Errorf("%v (is the patch file damaged?)", err)
		}
		return err
	}

	outFile := *output
	if outFile == "" {
		outFile = patchedName(romLoad.Filename)
	}

	// the input files are never overwritten, whatever the -o flag says
	for _, f := range []string{patchLoad.Filename, romLoad.Filename} {
		if outFile == f {
			return fmt.Errorf("refusing to overwrite input file %s", outFile)
		}
	}

	if err := os.WriteFile(outFile, result, 0644); err != nil {
		return err
	}

	if !*quiet {
		color.Green("%s written (%s)", outFile, humanize.Bytes(uint64(len(result))))
	}

	return nil
}

// patchedName derives an output filename from the ROM filename. for example,
// "roms/Pitfall.bin" becomes "roms/Pitfall (patched).bin".
func patchedName(romFile string) string {
	ext := filepath.Ext(romFile)
	return fmt.Sprintf("%s (patched)%s", strings.TrimSuffix(romFile, ext), ext)
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a patch file is required for %s mode", md)
	}

	ld := romloader.NewLoader(md.GetArg(0))
	if err := ld.Load(); err != nil {
		return err
	}

	sm, err := patch.Summarise(ld.Data)
	if err != nil {
		return err
	}

	fmt.Printf("format: %s\n", sm.Format)
	fmt.Printf("patch length: %s\n", humanize.Bytes(uint64(sm.PatchLength)))
	fmt.Printf("SHA1: %s\n", ld.Hash)

	if sm.Format == patch.FormatIPS {
		// nothing else is recorded in an IPS file
		return nil
	}

	fmt.Printf("declared source size: %s\n", humanize.Bytes(sm.SourceSize))
	fmt.Printf("declared target size: %s\n", humanize.Bytes(sm.TargetSize))
	if sm.Format == patch.FormatBPS {
		fmt.Printf("metadata length: %s\n", humanize.Bytes(sm.MetadataSize))
	}
	fmt.Printf("source CRC32: %08x\n", sm.SourceCRC)
	fmt.Printf("target CRC32: %08x\n", sm.TargetCRC)
	fmt.Printf("patch CRC32: %08x (not verified)\n", sm.PatchCRC)

	return nil
}
