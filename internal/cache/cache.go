// Package cache bootstraps the application cache under the primary
// configuration directory.
//
// Every entry point takes already-refined inputs: a non-empty directory
// sequence and a key-unique attribute map. No function here re-checks
// emptiness or duplicates; the types are the proof those checks ran.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"parsekit/pkg/nonempty"
	"parsekit/pkg/uniquemap"
)

const (
	// ManifestName is the manifest file written into the cache root.
	ManifestName = "manifest.yaml"

	manifestVersion = 1

	// verifyConcurrency bounds parallel directory checks.
	verifyConcurrency = 8
)

// Manifest records how the cache was created.
type Manifest struct {
	Version    int               `yaml:"version"`
	CreatedAt  time.Time         `yaml:"created_at"`
	PrimaryDir string            `yaml:"primary_dir"`
	OtherDirs  []string          `yaml:"other_dirs,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// Initialize creates the cache directory under the head of dirs and
// writes the manifest. It returns the cache path.
func Initialize(ctx context.Context, logger *zap.Logger, dirs nonempty.NonEmpty[string], attrs uniquemap.Map[string, string]) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	primary := dirs.Head()
	cacheDir := filepath.Join(primary, "cache")

	logger.Info("Initializing cache",
		zap.String("primary_dir", primary),
		zap.Int("candidate_dirs", dirs.Len()),
		zap.Int("attributes", attrs.Len()))

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	m := Manifest{
		Version:    manifestVersion,
		CreatedAt:  time.Now().UTC(),
		PrimaryDir: primary,
		OtherDirs:  dirs.Tail(),
	}
	if attrs.Len() > 0 {
		m.Attributes = make(map[string]string, attrs.Len())
		for _, p := range attrs.Pairs() {
			m.Attributes[p.Key] = p.Value
		}
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	manifestPath := filepath.Join(cacheDir, ManifestName)
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Debug("Wrote cache manifest", zap.String("path", manifestPath))
	return cacheDir, nil
}

// ReadManifest loads the manifest from an initialized cache directory.
func ReadManifest(cacheDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(cacheDir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// DirStatus reports the usability of one configured directory.
type DirStatus struct {
	Path     string
	Exists   bool
	IsDir    bool
	Writable bool
	Err      error
}

// OK reports whether the directory can host a cache.
func (s DirStatus) OK() bool {
	return s.Err == nil && s.Exists && s.IsDir && s.Writable
}

// Verify checks every configured directory concurrently and returns one
// status per directory, in the original order.
func Verify(ctx context.Context, logger *zap.Logger, dirs nonempty.NonEmpty[string]) []DirStatus {
	paths := dirs.Slice()
	statuses := make([]DirStatus, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(verifyConcurrency)

	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				statuses[i] = DirStatus{Path: path, Err: err}
				return nil
			}
			statuses[i] = checkDir(path)
			return nil
		})
	}
	// Workers never return errors; they record them per directory.
	_ = eg.Wait()

	for _, s := range statuses {
		if !s.OK() {
			logger.Warn("Configuration directory unusable",
				zap.String("path", s.Path),
				zap.Bool("exists", s.Exists),
				zap.Bool("writable", s.Writable),
				zap.Error(s.Err))
		}
	}
	return statuses
}

func checkDir(path string) DirStatus {
	s := DirStatus{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s
		}
		s.Err = err
		return s
	}
	s.Exists = true
	s.IsDir = info.IsDir()
	if !s.IsDir {
		return s
	}

	// Probe writability directly; permission bits lie under ACLs and
	// containers.
	probe, err := os.CreateTemp(path, ".parsekit-probe-*")
	if err != nil {
		return s
	}
	probe.Close()
	os.Remove(probe.Name())
	s.Writable = true

	return s
}
