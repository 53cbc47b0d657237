package manifest

import (
	"github.com/hashicorp/go-hclog"
)

// A Manifest is the canonical listing of every resolved dependency in
// an installed tree.  Text is the sorted, newline-joined "name==version"
// listing and Hash is the hex sha256 of its UTF-8 bytes.  Two trees
// holding the same resolved set produce byte-identical manifests no
// matter what order the filesystem returned their entries in.
type Manifest struct {
	Entries []string
	Text    string
	Hash    string
}

// Service walks installed trees and recovers the resolved dependency
// set from the package metadata left behind by the installer.
type Service struct {
	l hclog.Logger
}
