package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// NewPip returns an Installer that shells out to pip.  The bin
// argument may be empty, in which case "pip" is resolved from the
// path.
func NewPip(l hclog.Logger, bin string) *Pip {
	if bin == "" {
		bin = "pip"
	}
	return &Pip{
		l:   l.Named("pip"),
		bin: bin,
	}
}

// Install removes any prior tree at dir and installs pkg and its
// transitive dependencies into it.  The cache is bypassed and any
// already-present version is upgraded so every run reflects a fresh
// resolution.  A missing prior tree is not an error.
func (p *Pip) Install(ctx context.Context, pkg, dir string) (string, error) {
	if err := os.RemoveAll(dir); err != nil {
		p.l.Error("Unable to remove prior tree", "dir", dir, "error", err)
		return "", err
	}
	p.l.Debug("Cleared prior installation", "dir", dir)

	cmd := exec.CommandContext(ctx, p.bin, "install", pkg,
		"-t", dir,
		"--quiet",
		"--upgrade",
		"--no-cache-dir",
	)
	output, err := cmd.CombinedOutput()
	p.l.Trace("Installer output", "output", string(output))
	if err != nil {
		p.l.Error("Error installing package", "pkg", pkg, "error", err)
		return "", fmt.Errorf("install of %s failed: %w", pkg, err)
	}
	p.l.Info("Installed package", "pkg", pkg, "dir", dir)
	return dir, nil
}
