package manifest

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	distInfoSuffix = ".dist-info"
	eggInfoSuffix  = "egg-info"
	pkgInfoName    = "PKG-INFO"

	// FileName is the name the manifest is persisted under inside
	// the installed tree.
	FileName = "requirements.txt"
)

// NewService creates a manifest Service.
func NewService(l hclog.Logger) *Service {
	return &Service{
		l: l.Named("manifest"),
	}
}

// Freeze recursively scans root for package metadata markers and
// returns the canonical manifest of everything it found.  Directories
// named *.dist-info contribute their name and version parsed from the
// directory name itself; PKG-INFO files inside *egg-info directories
// contribute theirs from the Name: and Version: header lines.  A
// PKG-INFO missing either header contributes nothing rather than
// failing the scan.
func (s *Service) Freeze(root string) (*Manifest, error) {
	seen := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch {
		case d.IsDir() && strings.HasSuffix(d.Name(), distInfoSuffix):
			if entry, ok := parseDistInfo(d.Name()); ok {
				seen[entry] = struct{}{}
			}
		case !d.IsDir() && d.Name() == pkgInfoName && strings.HasSuffix(filepath.Base(filepath.Dir(path)), eggInfoSuffix):
			entry, ok, err := parsePkgInfo(path)
			if err != nil {
				return err
			}
			if ok {
				seen[entry] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		s.l.Error("Error walking installed tree", "root", root, "error", err)
		return nil, err
	}

	entries := make([]string, 0, len(seen))
	for entry := range seen {
		entries = append(entries, entry)
	}
	sort.Strings(entries)

	text := strings.TrimSpace(strings.Join(entries, "\n"))
	sum := sha256.Sum256([]byte(text))

	m := Manifest{
		Entries: entries,
		Text:    text,
		Hash:    hex.EncodeToString(sum[:]),
	}
	s.l.Debug("Froze dependency manifest", "root", root, "entries", len(entries), "hash", m.Hash)
	return &m, nil
}

// WriteFile persists the manifest text as requirements.txt inside
// dir, so the archive carries its own dependency listing.
func (m *Manifest) WriteFile(dir string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(m.Text), 0644)
}

// TreeSize sums the sizes of all regular files below root.
func TreeSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// parseDistInfo recovers a manifest entry from a dist-info directory
// name of the form name-version.dist-info.
func parseDistInfo(name string) (string, bool) {
	parts := strings.Split(strings.TrimSuffix(name, distInfoSuffix), "-")
	if len(parts) < 2 {
		return "", false
	}
	return parts[0] + "==" + parts[1], true
}

// parsePkgInfo recovers a manifest entry from the Name: and Version:
// headers of a PKG-INFO file.  Both headers must be present for the
// file to contribute an entry.
func parsePkgInfo(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	var name, version string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Name:") {
			name = strings.TrimSpace(line[len("Name:"):])
		}
		if strings.HasPrefix(line, "Version:") {
			version = strings.TrimSpace(line[len("Version:"):])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, err
	}
	if name == "" || version == "" {
		return "", false, nil
	}
	return name + "==" + version, true, nil
}
