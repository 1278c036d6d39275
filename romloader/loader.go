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

package romloader

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/sevenbit/rompatch/curated"
	"github.com/sevenbit/rompatch/logger"
)

// Loader is used to specify and acquire the bytes of a file for the patch
// engine: either a ROM image or a patch file. The loader does not interpret
// the data beyond the containing archive; format detection belongs to the
// patch package.
type Loader struct {
	// filename (or URL) of the file to load
	Filename string

	// expected SHA1 hash of the loaded data. the empty string indicates that
	// the hash is unknown and need not be validated. after a load operation
	// the value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns a shortened version of the loader's filename, with path
// and extension removed.
func (ld Loader) ShortName() string {
	sn := path.Base(ld.Filename)
	return strings.TrimSuffix(sn, path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the data and store in the Data field. Loader filenames with a valid
// schema will use that method to load the data. Currently supported schemes
// are HTTP and local files.
//
// Zip files are decompressed transparently; the patch engine only ever sees
// a plain byte buffer.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}
		defer resp.Body.Close()

		ld.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}

	case "file":
		fallthrough

	case "":
		ld.Data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}

	default:
		return curated.Errorf("romloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	if strings.ToLower(path.Ext(ld.Filename)) == ".zip" {
		if err := ld.decompress(); err != nil {
			return err
		}
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))

	// check for hash consistency
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf("romloader: %v", "unexpected hash value")
	}

	ld.Hash = hash

	return nil
}

// decompress replaces the Data field with the contents of the largest
// regular file in the zip archive it currently holds. ROM distributions
// often place a single image alongside text files; the image is reliably the
// largest entry.
func (ld *Loader) decompress() error {
	zr, err := zip.NewReader(bytes.NewReader(ld.Data), int64(len(ld.Data)))
	if err != nil {
		return curated.Errorf("romloader: %v", err)
	}

	var selected *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if selected == nil || f.UncompressedSize64 > selected.UncompressedSize64 {
			selected = f
		}
	}

	if selected == nil {
		return curated.Errorf("romloader: %v", "zip archive contains no files")
	}

	r, err := selected.Open()
	if err != nil {
		return curated.Errorf("romloader: %v", err)
	}
	defer r.Close()

	ld.Data, err = io.ReadAll(r)
	if err != nil {
		return curated.Errorf("romloader: %v", err)
	}

	logger.Logf(logger.Allow, "romloader", "%s: using %s from zip archive", ld.Filename, selected.Name)

	return nil
}
