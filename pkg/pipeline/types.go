package pipeline

import (
	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/archive"
	"github.com/buildvault/pybuild/pkg/blob"
	"github.com/buildvault/pybuild/pkg/installer"
	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/manifest"
	"github.com/buildvault/pybuild/pkg/types"
)

// Pipeline sequences one build: install, fingerprint, archive, check
// the ledger, and publish or skip.  All collaborators are injected so
// they can be swapped for test doubles.
type Pipeline struct {
	l hclog.Logger

	installer installer.Installer
	manifests *manifest.Service
	archiver  *archive.Archiver
	ledger    ledger.Ledger
	store     blob.Store

	workDir    string
	archiveDir string
}

// An Option configures a Pipeline during construction.
type Option func(*Pipeline)

// A Result describes one completed run.  Published reports whether
// this run uploaded the artifact or skipped as a duplicate; the
// embedded BuildResult is identical either way.
type Result struct {
	types.BuildResult

	Published bool `json:"-"`
}
