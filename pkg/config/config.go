package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// NewConfig returns a config object with default structures
// initialized.  The config can be loaded from other sources to
// override the defaults.
func NewConfig() *Config {
	return &Config{
		Bind:        ":8080",
		LogLevel:    "INFO",
		WorkDir:     filepath.Join(os.TempDir(), "pybuild"),
		ArchiveDir:  os.TempDir(),
		LedgerStore: "bitcask",
		BlobStore:   "fs",
		PipBin:      "pip",
	}
}

// LoadFromFile does as the name suggests, and loads the config from a
// file
func (c *Config) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(c)
}
