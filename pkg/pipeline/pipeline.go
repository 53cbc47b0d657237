package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/archive"
	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/manifest"
	"github.com/buildvault/pybuild/pkg/types"
)

// treeName is the base name of every installation tree.  It is
// preserved as the root entry of the archive, so unpacked artifacts
// land in a directory of this name.
const treeName = "python"

// New creates a Pipeline.  The installer, ledger, and store must all
// be provided via options before Build is called.
func New(l hclog.Logger, opts ...Option) *Pipeline {
	p := Pipeline{
		l:          l.Named("pipeline"),
		workDir:    filepath.Join(os.TempDir(), "pybuild"),
		archiveDir: os.TempDir(),
	}
	p.manifests = manifest.NewService(p.l)
	p.archiver = archive.New(p.l)

	for _, o := range opts {
		o(&p)
	}
	return &p
}

// Build runs the full pipeline for one request and returns its
// result.  The run is strictly linear: a failure at any stage aborts
// with no partial result.
func (p *Pipeline) Build(ctx context.Context, req types.BuildRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Trees and archives are keyed by package name so concurrent
	// runs for different packages never collide on disk.
	tree := filepath.Join(p.workDir, req.Package, treeName)
	if _, err := p.installer.Install(ctx, req.Package, tree); err != nil {
		return nil, err
	}

	if size, err := manifest.TreeSize(tree); err == nil {
		p.l.Info("Installed package", "package", req.Package, "dir", tree, "size", size)
	}

	m, err := p.manifests.Freeze(tree)
	if err != nil {
		return nil, err
	}
	if err := m.WriteFile(tree); err != nil {
		p.l.Error("Error writing manifest into tree", "dir", tree, "error", err)
		return nil, err
	}

	key := req.Package + ".zip"
	// The archive is produced unconditionally; the duplicate
	// check needs the fingerprint, which needs the walked tree,
	// so archiving first is simply the chosen ordering.
	archivePath, err := p.archiver.Zip(tree, filepath.Join(p.archiveDir, key))
	if err != nil {
		return nil, err
	}

	found, err := p.ledger.Exists(ctx, req.Package, m.Hash)
	if err != nil {
		// Treating a failed query as not-found could publish
		// a fingerprint that was already recorded.
		p.l.Error("Error querying ledger", "package", req.Package, "hash", m.Hash, "error", err)
		return nil, err
	}

	res := Result{
		BuildResult: types.BuildResult{
			ZipFile:          key,
			Package:          req.Package,
			Version:          req.Version,
			RequirementsHash: m.Hash,
			LicenseInfo:      req.LicenseInfo,
		},
	}

	if found {
		p.l.Info("Fingerprint previously built, skipping publish", "package", req.Package, "hash", m.Hash)
		return &res, nil
	}

	if err := p.store.Put(ctx, key, archivePath); err != nil {
		return nil, err
	}
	p.readback(ctx, req.Package)

	rec := types.LedgerRecord{
		Package:          req.Package,
		Version:          req.Version,
		Requirements:     m.Text,
		RequirementsHash: m.Hash,
		CreatedDate:      time.Now().Format(time.RFC3339),
	}
	if err := p.ledger.Record(ctx, rec); err != nil {
		// The object is durable but the fingerprint is now
		// unrecorded, which a future run cannot detect.
		p.l.Error("Ledger write failed after publish", "package", req.Package, "hash", m.Hash, "error", err)
		return nil, fmt.Errorf("%w: %v", ledger.ErrRecordFailed, err)
	}

	res.Published = true
	p.l.Info("Built package", "package", req.Package, "version", req.Version, "key", key, "hash", m.Hash)
	return &res, nil
}

// readback lists the uploaded object so its size and modification
// time appear in the logs.  The upload call is the source of truth;
// a failure here is only worth a warning.
func (p *Pipeline) readback(ctx context.Context, pkg string) {
	objs, err := p.store.List(ctx, pkg)
	if err != nil {
		p.l.Warn("Unable to read back uploaded artifact", "package", pkg, "error", err)
		return
	}
	if len(objs) == 0 {
		p.l.Warn("Uploaded artifact absent from listing", "package", pkg)
		return
	}
	p.l.Info("Uploaded artifact", "key", objs[0].Key, "size", objs[0].Size, "modified", objs[0].LastModified)
}
