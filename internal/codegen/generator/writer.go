package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/lspgen/internal/codegen/meta"
	"github.com/Alia5/lspgen/internal/configpaths"
)

// WriteStats counts what Write did.
type WriteStats struct {
	Written   int
	Unchanged int
}

// DriftReason tells why an on-disk file does not match its unit.
type DriftReason int

const (
	DriftMissing DriftReason = iota
	DriftStale
)

func (r DriftReason) String() string {
	switch r {
	case DriftMissing:
		return "missing"
	case DriftStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Drift is a unit whose file is missing or differs.
type Drift struct {
	Path   string
	Reason DriftReason
}

func (g *Generator) unitPath(u meta.Unit) string {
	return filepath.Join(g.outputDir, filepath.FromSlash(u.Path))
}

// diskDigest hashes the file at path; ok is false when it does not exist.
func diskDigest(path string) (sum [blake2b.Size256]byte, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return sum, false, nil
	}
	if err != nil {
		return sum, false, err
	}
	return blake2b.Sum256(data), true, nil
}

// Write stores every unit, leaving files whose content already matches
// untouched so their timestamps survive.
func (g *Generator) Write(units []meta.Unit) (WriteStats, error) {
	var stats WriteStats
	for _, u := range units {
		dest := g.unitPath(u)
		g.raw.Log(u.Path, u.Content)

		sum, ok, err := diskDigest(dest)
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", dest, err)
		}
		if ok && sum == blake2b.Sum256(u.Content) {
			stats.Unchanged++
			g.logger.Debug("Unchanged", "file", dest)
			continue
		}

		if err := configpaths.EnsureDir(dest); err != nil {
			return stats, fmt.Errorf("create directory for %s: %w", dest, err)
		}
		if err := os.WriteFile(dest, u.Content, 0o644); err != nil {
			return stats, fmt.Errorf("write %s: %w", dest, err)
		}
		stats.Written++
		g.logger.Debug("Generated", "file", dest, "kind", u.Kind.String(), "bytes", len(u.Content))
	}
	return stats, nil
}

// Compare reports every unit whose file is missing or has other content.
func (g *Generator) Compare(units []meta.Unit) ([]Drift, error) {
	var drifts []Drift
	for _, u := range units {
		sum, ok, err := diskDigest(g.unitPath(u))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", u.Path, err)
		}
		switch {
		case !ok:
			drifts = append(drifts, Drift{Path: u.Path, Reason: DriftMissing})
		case sum != blake2b.Sum256(u.Content):
			drifts = append(drifts, Drift{Path: u.Path, Reason: DriftStale})
		}
	}
	return drifts, nil
}
