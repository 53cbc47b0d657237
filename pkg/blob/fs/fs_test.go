package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *fsStore {
	t.Helper()
	t.Setenv("PYBUILD_BLOB_PATH", filepath.Join(t.TempDir(), "store"))
	s, err := newFSStore(hclog.NewNullLogger())
	require.NoError(t, err)
	return s.(*fsStore)
}

func artifact(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "artifact.zip")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func TestRootResolvedAbsolute(t *testing.T) {
	t.Setenv("PYBUILD_BLOB_PATH", filepath.Join(t.TempDir(), "store"))
	s, err := newFSStore(hclog.NewNullLogger())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(s.(*fsStore).root))
}

func TestPutAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "requests.zip", artifact(t, "archive bytes")))

	objs, err := s.List(ctx, "requests")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "requests.zip", objs[0].Key)
	assert.Equal(t, int64(len("archive bytes")), objs[0].Size)
	assert.False(t, objs[0].LastModified.IsZero())
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "requests.zip", artifact(t, "first")))
	require.NoError(t, s.Put(ctx, "requests.zip", artifact(t, "second upload")))

	objs, err := s.List(ctx, "requests")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, int64(len("second upload")), objs[0].Size)
}

func TestListPrefixFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "requests.zip", artifact(t, "a")))
	require.NoError(t, s.Put(ctx, "urllib3.zip", artifact(t, "b")))

	objs, err := s.List(ctx, "urllib3")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "urllib3.zip", objs[0].Key)

	objs, err = s.List(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, objs)
}
