package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files matching opts. It returns a sorted list of
// absolute file paths without duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	f, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if f.file(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := f.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

// CompileGlob compiles an ignore or include pattern. "*" stays within one
// path segment and "**" crosses segments.
func CompileGlob(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return g, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type filter struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
	follow     bool
}

func newFilter(workDir string, opts Options) (*filter, error) {
	f := &filter{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		follow:     opts.FollowSymlinks,
	}
	var errs []error
	for _, pattern := range opts.IncludeGlobs {
		g, err := CompileGlob(pattern)
		errs = append(errs, err)
		f.include = append(f.include, g)
	}
	for _, pattern := range opts.ExcludeGlobs {
		g, err := CompileGlob(pattern)
		errs = append(errs, err)
		f.exclude = append(f.exclude, g)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *filter) rel(path string) string {
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matches tests a relative path and its base name, so "*.md" style
// patterns apply at any depth.
func matches(globs []glob.Glob, rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (f *filter) excludedDir(path string) bool {
	rel := f.rel(path)
	return matches(f.exclude, rel) || matches(f.exclude, rel+"/")
}

func (f *filter) file(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(f.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	rel := f.rel(path)
	if matches(f.exclude, rel) {
		return false
	}
	return len(f.include) == 0 || matches(f.include, rel)
}

// walk collects matching files below root. Hidden entries are skipped and
// unreadable directories are ignored.
func (f *filter) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && f.excludedDir(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !f.follow {
					return nil
				}
				// WalkDir does not follow symlinks, so walk the target itself.
				sub, err := f.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if f.file(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
