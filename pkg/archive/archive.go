package archive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/zip"
)

// Archiver compresses installed trees into single-file artifacts.
type Archiver struct {
	l hclog.Logger
}

// New creates an Archiver.
func New(l hclog.Logger) *Archiver {
	return &Archiver{
		l: l.Named("archive"),
	}
}

// Zip compresses dir into a zip file at dest and returns dest.  The
// base name of dir is preserved as the root entry of the archive, so
// unpacking it reproduces the original directory rather than a
// flattened tree.
func (a *Archiver) Zip(dir, dest string) (string, error) {
	out, err := os.Create(dest)
	if err != nil {
		a.l.Error("Error creating archive", "dest", dest, "error", err)
		return "", err
	}

	zw := zip.NewWriter(out)
	base := filepath.Base(dir)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := base
		if rel != "." {
			name = base + "/" + filepath.ToSlash(rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = name

		if d.IsDir() {
			hdr.Name += "/"
			_, err = zw.CreateHeader(hdr)
			return err
		}

		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		a.l.Error("Error archiving tree", "dir", dir, "error", err)
		_ = zw.Close()
		_ = out.Close()
		return "", err
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	a.l.Debug("Archived tree", "dir", dir, "dest", dest)
	return dest, nil
}
