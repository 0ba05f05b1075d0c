package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// excludeMatcher holds the compiled exclude patterns of a run.
type excludeMatcher struct {
	globs []glob.Glob
}

// newExcludeMatcher compiles patterns with "/" as the segment separator.
func newExcludeMatcher(patterns []string) (*excludeMatcher, error) {
	m := &excludeMatcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		variants := []string{pattern}
		// A leading "**/" also matches zero directories.
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
			}
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

// matchFile reports whether a file path relative to the working directory is
// excluded. Patterns are tried against the whole path and its base name.
func (m *excludeMatcher) matchFile(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchDir reports whether a directory is excluded. A trailing slash is also
// tried so "vendor/**" prunes the vendor directory itself.
func (m *excludeMatcher) matchDir(relPath string) bool {
	if m.matchFile(relPath) {
		return true
	}
	withSlash := filepath.ToSlash(relPath) + "/"
	for _, g := range m.globs {
		if g.Match(withSlash) {
			return true
		}
	}
	return false
}

// discoverer carries the per-run discovery state.
type discoverer struct {
	workDir    string
	extensions []string
	exclude    *excludeMatcher
	follow     bool
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// Explicitly named files are kept even when hidden, but must carry a
// Markdown extension and not be excluded.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := newExcludeMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
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
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
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

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively walks root and returns matching Markdown files.
// Hidden entries below root are skipped.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
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

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || d.exclude.matchDir(d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(path)
			if !ok {
				return nil
			}
			if target.IsDir() {
				if !d.follow || d.exclude.matchDir(d.rel(path)) {
					return nil
				}
				// Walk the target rather than the link; WalkDir does not descend into links.
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // Broken links are skipped.
				}
				subFiles, err := d.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if d.matchesFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func resolveSymlink(path string) (fs.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}

// matchesFile checks the extension and exclude patterns of a file.
func (d *discoverer) matchesFile(path string) bool {
	return hasMatchingExtension(path, d.extensions) && !d.exclude.matchFile(d.rel(path))
}

// hasMatchingExtension checks if the file has a matching extension.
// Extensions compare case-insensitively; one without a leading dot is
// matched as a plain suffix.
func hasMatchingExtension(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, e := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(e)) {
			return true
		}
	}
	return false
}
