package pipeline

import (
	"github.com/buildvault/pybuild/pkg/blob"
	"github.com/buildvault/pybuild/pkg/installer"
	"github.com/buildvault/pybuild/pkg/ledger"
)

// WithInstaller sets the installer that materializes package trees.
func WithInstaller(i installer.Installer) Option {
	return func(p *Pipeline) {
		p.installer = i
	}
}

// WithLedger sets the build ledger.
func WithLedger(l ledger.Ledger) Option {
	return func(p *Pipeline) {
		p.ledger = l
	}
}

// WithStore sets the blob store artifacts are published to.
func WithStore(s blob.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithWorkDir sets the root under which per-package installation
// trees are created.
func WithWorkDir(d string) Option {
	return func(p *Pipeline) {
		p.workDir = d
	}
}

// WithArchiveDir sets the directory archives are written to before
// publication.
func WithArchiveDir(d string) Option {
	return func(p *Pipeline) {
		p.archiveDir = d
	}
}
