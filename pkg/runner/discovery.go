package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/langdetect"
)

// sniffBytes is how much of an unlisted file is read for content detection.
const sniffBytes = 8 << 10

// Discover finds the properties files selected by opts and returns their
// absolute paths, sorted and without duplicates.
//
// Files named explicitly in opts.Paths are linted whatever their extension,
// unless an exclude pattern matches them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		seen:       make(map[string]struct{}),
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

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !exclude.matches(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)

	logging.FromContext(ctx).Debug("discovery complete",
		logging.FieldWorkingDir, workDir,
		logging.FieldFilesDiscovered, len(w.files))

	return w.files, nil
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

type walker struct {
	ctx        context.Context //nolint:containedctx // lives for one Discover call
	opts       Options
	workDir    string
	extensions []string
	include    globSet
	exclude    globSet
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory, slash separated.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		rel := w.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if w.skipDir(entry.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlink
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable target
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(entry.Name(), rel) {
					return nil
				}
				// WalkDir does not descend into symlinks, so walk the target.
				return w.walk(target)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if w.selects(path, rel) {
			w.add(path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

func (w *walker) skipDir(name, rel string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if !w.opts.IncludeVendored && langdetect.IsVendored(rel+"/") {
		return true
	}
	return w.exclude.matches(rel, true)
}

// selects applies the extension, glob and detection filters to a file
// found while walking.
func (w *walker) selects(path, rel string) bool {
	if w.exclude.matches(rel, false) {
		return false
	}
	if len(w.include) > 0 && !w.include.matches(rel, false) {
		return false
	}
	if hasMatchingExtension(path, w.extensions) {
		return true
	}
	if !w.opts.DetectContent {
		return false
	}

	head, err := readHead(path)
	if err != nil {
		return false
	}

	return langdetect.IsProperties(path, head)
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, sniffBytes))
}

// pattern is a compiled include or exclude glob. Patterns without a slash
// match the base name at any depth; others match the path relative to the
// working directory, with ** crossing directories.
type pattern struct {
	g        glob.Glob
	baseOnly bool
}

type globSet []pattern

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		if p == "" {
			continue
		}

		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		set = append(set, pattern{g: g, baseOnly: !strings.Contains(p, "/")})
	}

	return set, nil
}

// matches reports whether any pattern matches rel. For directories,
// "dir/**" also matches dir itself so the walk can prune it.
func (s globSet) matches(rel string, isDir bool) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}

	for _, p := range s {
		if p.baseOnly {
			if p.g.Match(base) {
				return true
			}
			continue
		}
		if p.g.Match(rel) || p.g.Match("/"+rel) {
			return true
		}
		if isDir && p.g.Match(rel+"/") {
			return true
		}
	}

	return false
}
