// Package pywheel contains maintenance helpers for the Python wheel
// tree. The LLVM build leaves the MLIR Python bindings as symlinks into
// the build tree; wheels cannot carry symlinks, so they are replaced
// with copies of their targets before packaging.
package pywheel

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var pythonExtensions = map[string]struct{}{
	".py":  {},
	".pyw": {},
	".pyi": {},
	".pyx": {},
}

// isPythonFile reports whether path has a Python source extension.
func isPythonFile(path string) bool {
	_, ok := pythonExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Summary reports what a Flatten pass did (or, under dry-run, would
// have done).
type Summary struct {
	Replaced int
	Errors   int
}

// Flattener replaces Python-file symlinks with copies of their
// targets.
type Flattener struct {
	logger *zap.Logger
	dryRun bool
}

// NewFlattener returns a Flattener. Under dryRun no filesystem changes
// are made; candidate replacements are only logged and counted.
func NewFlattener(logger *zap.Logger, dryRun bool) *Flattener {
	return &Flattener{logger: logger, dryRun: dryRun}
}

// Flatten walks root recursively and replaces every symlink whose
// resolved target is an existing Python file with a copy of that
// target. Symlinks to missing or non-Python targets are skipped with a
// logged reason and do not fail the pass.
func (f *Flattener) Flatten(root string) (Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Summary{}, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%s is not a directory", root)
	}

	var sum Summary
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		target, err := resolveTarget(path)
		if err != nil {
			f.logger.Warn("error reading symlink", zap.String("path", path), zap.Error(err))
			sum.Errors++
			return nil
		}
		if _, err := os.Stat(target); err != nil {
			f.logger.Warn("symlink target does not exist",
				zap.String("path", path), zap.String("target", target))
			sum.Errors++
			return nil
		}
		if !isPythonFile(target) {
			f.logger.Debug("skipping symlink, target is not a Python file",
				zap.String("path", path), zap.String("target", target))
			return nil
		}

		if f.dryRun {
			f.logger.Info("would replace symlink",
				zap.String("path", path), zap.String("target", target))
			sum.Replaced++
			return nil
		}

		if err := replaceWithCopy(path, target); err != nil {
			f.logger.Warn("error replacing symlink",
				zap.String("path", path), zap.Error(err))
			sum.Errors++
			return nil
		}
		f.logger.Info("replaced symlink",
			zap.String("path", path), zap.String("target", target))
		sum.Replaced++
		return nil
	})
	if err != nil {
		return sum, err
	}
	return sum, nil
}

// resolveTarget follows path's link target, resolving a relative
// target against the symlink's own directory.
func resolveTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// replaceWithCopy removes the symlink at path and copies target into
// its place, preserving the target's permission bits.
func replaceWithCopy(path, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}

	src, err := os.Open(target)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
