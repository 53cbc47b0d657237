package bc

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"git.mills.io/prologic/bitcask"
	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/types"
)

// bcLedger is the type that must satisfy ledger.Ledger
type bcLedger struct {
	s *bitcask.Bitcask

	l hclog.Logger
}

func init() {
	ledger.RegisterCallback(newFactory)
}

func newFactory() {
	ledger.RegisterFactory("bitcask", newBCLedger)
}

func newBCLedger(l hclog.Logger) (ledger.Ledger, error) {
	x := new(bcLedger)
	x.l = l.Named("bitcask")

	p := os.Getenv("PYBUILD_BITCASK_PATH")
	if p == "" {
		l.Error("PYBUILD_BITCASK_PATH must be set")
		return nil, errors.New("required variable unset")
	}

	opts := []bitcask.Option{
		bitcask.WithMaxKeySize(1024),
		bitcask.WithMaxValueSize(1024 * 1000), // 1MiB, manifests are small
		bitcask.WithSync(true),
	}
	b, err := bitcask.Open(p, opts...)
	if err != nil {
		l.Error("Error initializing bitcask", "error", err)
		return nil, err
	}
	x.s = b

	return x, nil
}

// key builds the composite row key.  The separator byte cannot occur
// in a package name or a hex digest.
func key(pkg, hash string) []byte {
	return []byte(pkg + "\x00" + hash)
}

func (b *bcLedger) Exists(_ context.Context, pkg, hash string) (bool, error) {
	_, err := b.s.Get(key(pkg, hash))
	switch err {
	case nil:
		return true, nil
	case bitcask.ErrKeyNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (b *bcLedger) Record(_ context.Context, rec types.LedgerRecord) error {
	v, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// Put overwrites an existing key, so a racing duplicate
	// insert lands as a harmless rewrite of identical data.
	return b.s.Put(key(rec.Package, rec.RequirementsHash), v)
}

func (b *bcLedger) Close() error {
	return b.s.Close()
}
