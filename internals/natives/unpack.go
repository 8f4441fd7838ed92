// Package natives extracts native libraries out of library jars
package natives

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/afero"
)

// ZipUnpacker extracts jar (zip) archives
type ZipUnpacker struct {
	// Fs is where the files are written to (defaults to the OS filesystem)
	Fs afero.Fs
}

var _ minecraft.Unpacker = (*ZipUnpacker)(nil)

// NewZipUnpacker returns an unpacker writing to the OS filesystem
func NewZipUnpacker() *ZipUnpacker {
	return &ZipUnpacker{Fs: afero.NewOsFs()}
}

// Unpack extracts every entry of archive into dest, except entries starting with one
// of the excludes (like `META-INF/`). Existing files are overwritten.
func (u *ZipUnpacker) Unpack(archive string, dest string, excludes []string) error {
	fs := u.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := fs.MkdirAll(dest, os.ModePerm); err != nil {
		return err
	}

	// archiver picks the format by extension and does not know about .jar.
	// Its zip headers come from klauspost/compress, not archive/zip.
	z := archiver.NewZip()
	return z.Walk(archive, func(f archiver.File) error {
		header, ok := f.Header.(zip.FileHeader)
		if !ok {
			return fmt.Errorf("unexpected header %T in %s", f.Header, archive)
		}
		name := header.Name
		if excluded(name, excludes) {
			return nil
		}

		target, err := within(dest, name)
		if err != nil {
			return err
		}

		if f.IsDir() {
			return fs.MkdirAll(target, os.ModePerm)
		}
		if err := fs.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
			return err
		}

		out, err := fs.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, f); err != nil {
			out.Close()
			return fmt.Errorf("extracting %s: %w", name, err)
		}
		return out.Close()
	})
}

func excluded(name string, excludes []string) bool {
	for _, prefix := range excludes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// within joins name to dest and refuses paths escaping dest
func within(dest string, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal file path in archive: %s", name)
	}
	return target, nil
}
