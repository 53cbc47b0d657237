package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestVersionString(t *testing.T) {
	var req BuildRequest
	require.NoError(t, json.Unmarshal([]byte(`{"package": "requests", "version": "2.31.0"}`), &req))
	assert.Equal(t, "2.31.0", req.Version)
}

func TestBuildRequestVersionNumber(t *testing.T) {
	var req BuildRequest
	require.NoError(t, json.Unmarshal([]byte(`{"package": "requests", "version": 2.31}`), &req))
	assert.Equal(t, "2.31", req.Version)
}

func TestBuildRequestLicensePassthrough(t *testing.T) {
	var req BuildRequest
	require.NoError(t, json.Unmarshal([]byte(`{"package": "p", "version": "1", "license_info": {"spdx": "MIT"}}`), &req))
	assert.JSONEq(t, `{"spdx": "MIT"}`, string(req.LicenseInfo))
}

func TestBuildRequestValidate(t *testing.T) {
	assert.Error(t, (&BuildRequest{}).Validate())
	assert.Error(t, (&BuildRequest{Package: "requests"}).Validate())
	assert.Error(t, (&BuildRequest{Version: "1.0"}).Validate())
	assert.NoError(t, (&BuildRequest{Package: "requests", Version: "1.0"}).Validate())
}

func TestBuildRequestValidateRejectsPathNames(t *testing.T) {
	// The package name is used as a path component of the
	// installation tree and the upload key.
	for _, pkg := range []string{
		"../victim",
		"..",
		".",
		"a/b",
		`a\b`,
		"/etc",
	} {
		assert.Error(t, (&BuildRequest{Package: pkg, Version: "1.0"}).Validate(), "package %q must be rejected", pkg)
	}
}
