package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths holds the config file found for each layer. An empty string
// means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigNames are the file names a project config may use, in order
// of preference within one directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigNames = []string{
	".gomdview.yml",
	".gomdview.yaml",
	"gomdview.yml",
	"gomdview.yaml",
	".gomdview.json",
}

//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigNames = []string{"config.yaml", "config.yml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project config files for a
// render started in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigNames),
		User:    firstFile(userConfigDir(), layerConfigNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/gomdview"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "gomdview")
}

func userConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gomdview")
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file. The walk ends without a result
// at a repository root, at the home directory, or at the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if path := firstFile(dir, ProjectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
