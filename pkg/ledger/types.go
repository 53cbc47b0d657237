package ledger

import (
	"context"
	"errors"

	"github.com/buildvault/pybuild/pkg/types"
)

// ErrRecordFailed marks a ledger write that failed after the artifact
// had already been published.  Callers use it to tell "published but
// unrecorded" apart from an ordinary failed run, since the system
// cannot detect or repair that state later.
var ErrRecordFailed = errors.New("ledger record failed after publish")

// A Ledger is the append-only record of every fingerprint ever
// built, keyed by the (package, requirements hash) composite.
type Ledger interface {
	// Exists reports whether at least one record matches the
	// composite key.  Zero matches is the normal not-found case
	// and returns (false, nil); only a store failure is an error.
	Exists(ctx context.Context, pkg, hash string) (bool, error)

	// Record appends one row.  A duplicate insert for an
	// existing key must be tolerated as a harmless overwrite of
	// identical data.
	Record(ctx context.Context, rec types.LedgerRecord) error

	Close() error
}
