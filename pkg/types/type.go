package types

import (
	"encoding/json"
	"errors"
	"strings"
)

// A BuildRequest names a single package build.  LicenseInfo is opaque
// to the entire pipeline and is echoed back on the result unmodified.
type BuildRequest struct {
	Package     string          `json:"package"`
	Version     string          `json:"version"`
	LicenseInfo json.RawMessage `json:"license_info"`
}

// UnmarshalJSON accepts the version field as either a JSON string or
// a bare number, holding it as a string either way.
func (b *BuildRequest) UnmarshalJSON(data []byte) error {
	type alias BuildRequest
	aux := struct {
		Version json.RawMessage `json:"version"`
		*alias
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Version) > 0 {
		var s string
		if err := json.Unmarshal(aux.Version, &s); err == nil {
			b.Version = s
		} else {
			b.Version = string(aux.Version)
		}
	}
	return nil
}

// Validate checks that the fields required to run a build are
// present.  The package name becomes a path component of the local
// tree and the upload key, so anything that could escape those roots
// is rejected here before it reaches the filesystem.
func (b *BuildRequest) Validate() error {
	if b.Package == "" {
		return errors.New("package must be set")
	}
	if strings.ContainsAny(b.Package, `/\`) || b.Package == "." || b.Package == ".." {
		return errors.New("package must be a bare name")
	}
	if b.Version == "" {
		return errors.New("version must be set")
	}
	return nil
}

// A BuildResult is the externally visible output of one pipeline
// run.  The shape is identical whether the artifact was published or
// the build was deduplicated against the ledger.
type BuildResult struct {
	ZipFile          string          `json:"zip_file"`
	Package          string          `json:"package"`
	Version          string          `json:"version"`
	RequirementsHash string          `json:"requirements_hash"`
	LicenseInfo      json.RawMessage `json:"license_info"`
}

// A LedgerRecord is one row of the append-only build ledger.  Rows
// are keyed by (Package, RequirementsHash) and are never mutated or
// deleted once written.
type LedgerRecord struct {
	Package          string `json:"package"`
	Version          string `json:"version"`
	Requirements     string `json:"requirements"`
	RequirementsHash string `json:"requirements_hash"`
	CreatedDate      string `json:"created_date"`
}
