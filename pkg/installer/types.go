package installer

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// An Installer materializes a package and the full set of its
// resolved dependencies into a target directory.  Implementations
// own the cleanup of any prior contents of that directory.
type Installer interface {
	Install(ctx context.Context, pkg, dir string) (string, error)
}

// Pip drives the external pip binary to perform resolution and
// installation.
type Pip struct {
	l   hclog.Logger
	bin string
}
