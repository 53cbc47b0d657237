package bc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildvault/pybuild/pkg/types"
)

func newTestLedger(t *testing.T) *bcLedger {
	t.Helper()
	t.Setenv("PYBUILD_BITCASK_PATH", filepath.Join(t.TempDir(), "ledger"))
	l, err := newBCLedger(hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l.(*bcLedger)
}

func TestExistsEmpty(t *testing.T) {
	l := newTestLedger(t)

	found, err := l.Exists(context.Background(), "requests", "abc123")
	require.NoError(t, err, "zero matches is not-found, not an error")
	assert.False(t, found)
}

func TestRecordThenExists(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	rec := types.LedgerRecord{
		Package:          "requests",
		Version:          "2.31.0",
		Requirements:     "requests==2.31.0\nurllib3==2.0.0",
		RequirementsHash: "abc123",
		CreatedDate:      "2021-01-01T00:00:00Z",
	}
	require.NoError(t, l.Record(ctx, rec))

	found, err := l.Exists(ctx, "requests", "abc123")
	require.NoError(t, err)
	assert.True(t, found)

	// Same package, different fingerprint is a distinct key.
	found, err = l.Exists(ctx, "requests", "def456")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDuplicateRecordTolerated(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	rec := types.LedgerRecord{
		Package:          "requests",
		RequirementsHash: "abc123",
	}
	require.NoError(t, l.Record(ctx, rec))
	require.NoError(t, l.Record(ctx, rec), "a racing duplicate insert must not fail")

	found, err := l.Exists(ctx, "requests", "abc123")
	require.NoError(t, err)
	assert.True(t, found)
}
