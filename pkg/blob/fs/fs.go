package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/blob"
)

// fsStore keeps artifacts as plain files below a root directory.  It
// exists to keep the whole pipeline runnable without cloud
// credentials, and for tests.
type fsStore struct {
	root string

	l hclog.Logger
}

func init() {
	blob.RegisterCallback(newFactory)
}

func newFactory() {
	blob.RegisterFactory("fs", newFSStore)
}

func newFSStore(l hclog.Logger) (blob.Store, error) {
	x := new(fsStore)
	x.l = l.Named("fs")

	p := os.Getenv("PYBUILD_BLOB_PATH")
	if p == "" {
		l.Error("PYBUILD_BLOB_PATH must be set")
		return nil, errors.New("required variable unset")
	}
	if err := os.MkdirAll(p, 0755); err != nil {
		l.Error("Error creating store root", "path", p, "error", err)
		return nil, err
	}
	root, err := filepath.Abs(p)
	if err != nil {
		l.Error("Error resolving store root", "path", p, "error", err)
		return nil, err
	}
	x.root = root

	return x, nil
}

func (f *fsStore) Put(_ context.Context, key, path string) error {
	in, err := os.Open(path)
	if err != nil {
		f.l.Warn("Error opening artifact", "path", path, "err", err)
		return err
	}
	defer in.Close()

	fPath := filepath.Join(f.root, key)
	out, err := os.Create(fPath)
	if err != nil {
		f.l.Warn("Error creating/opening file", "path", fPath, "err", err)
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		f.l.Warn("Error copying data into file", "path", fPath, "err", err)
		// If something went wrong copying, the error closing out
		// is likely to be the same.
		_ = out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		f.l.Warn("Error closing out file", "path", fPath, "err", err)
		return err
	}
	f.l.Trace("Wrote artifact", "key", key, "path", fPath)
	return nil
}

func (f *fsStore) List(_ context.Context, prefix string) ([]blob.Object, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, err
	}

	var out []blob.Object
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, blob.Object{
			Key:          e.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return out, nil
}

func (f *fsStore) Close() error {
	return nil
}
