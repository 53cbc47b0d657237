package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPip writes a fake pip that records its arguments and creates
// the target directory the way a real install would.
func stubPip(t *testing.T, script string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "pip")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return bin
}

func TestInstallFreshTree(t *testing.T) {
	bin := stubPip(t, "#!/bin/sh\nmkdir -p \"$4/requests-2.31.0.dist-info\"\necho \"$@\" > \"$4/args\"\n")

	dir := filepath.Join(t.TempDir(), "python")
	p := NewPip(hclog.NewNullLogger(), bin)

	got, err := p.Install(context.Background(), "requests", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, filepath.Join(dir, "requests-2.31.0.dist-info"))

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	assert.Contains(t, string(args), "--upgrade")
	assert.Contains(t, string(args), "--no-cache-dir")
}

func TestInstallremovesStaleTree(t *testing.T) {
	bin := stubPip(t, "#!/bin/sh\nmkdir -p \"$4\"\n")

	dir := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.MkdirAll(dir, 0755))
	stale := filepath.Join(dir, "leftover-1.0.dist-info")
	require.NoError(t, os.MkdirAll(stale, 0755))

	p := NewPip(hclog.NewNullLogger(), bin)
	_, err := p.Install(context.Background(), "requests", dir)
	require.NoError(t, err)
	assert.NoDirExists(t, stale, "a prior run's tree must not leak into a fresh install")
}

func TestInstallMissingPriorTreeIsFine(t *testing.T) {
	bin := stubPip(t, "#!/bin/sh\nmkdir -p \"$4\"\n")

	dir := filepath.Join(t.TempDir(), "does", "not", "exist", "yet")
	p := NewPip(hclog.NewNullLogger(), bin)
	_, err := p.Install(context.Background(), "requests", dir)
	assert.NoError(t, err)
}

func TestInstallFailure(t *testing.T) {
	bin := stubPip(t, "#!/bin/sh\necho 'no matching distribution' >&2\nexit 1\n")

	p := NewPip(hclog.NewNullLogger(), bin)
	_, err := p.Install(context.Background(), "definitely-not-real", filepath.Join(t.TempDir(), "python"))
	assert.Error(t, err)
}
