package config

// Config represents the complete application configuration that
// pybuild supports.
type Config struct {
	// Bind is the address:port pair the HTTP daemon listens on.
	Bind string

	// LogLevel is parsed by hclog and applies to the whole
	// process.
	LogLevel string

	// WorkDir is the root under which each package gets its own
	// installation tree.
	WorkDir string

	// ArchiveDir is where finished archives are written prior to
	// publication.
	ArchiveDir string

	// LedgerStore and BlobStore name registered backend
	// factories.
	LedgerStore string
	BlobStore   string

	// PipBin is the installer executable to invoke.
	PipBin string
}
