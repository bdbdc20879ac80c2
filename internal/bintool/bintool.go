// Package bintool wraps the external binaries the adapter depends on:
// mlir-translate for SPIR-V deserialization and vgf_dump for pulling
// SPIR-V modules out of VGF files.
package bintool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// BinDirEnv names an optional directory searched for the wrapped
// binaries before $PATH. The wheel sets it to its bundled bin/
// directory.
const BinDirEnv = "TOSA_META_BIN_DIR"

// lookPath resolves name, preferring BinDirEnv over $PATH.
func lookPath(name string) (string, error) {
	if dir := os.Getenv(BinDirEnv); dir != "" {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("cannot find %q binary: %w", name, err)
	}
	return path, nil
}

// run executes the command and returns stdout, including stderr in the
// error on failure.
func run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s",
			filepath.Base(bin), strings.Join(args, " "), err,
			strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// MLIRTranslate deserializes the SPIR-V binary at spirvPath into MLIR
// text using mlir-translate. Trailing line endings are trimmed.
func MLIRTranslate(ctx context.Context, spirvPath string) (string, error) {
	bin, err := lookPath("mlir-translate")
	if err != nil {
		return "", err
	}
	out, err := run(ctx, bin, "--deserialize-spirv", spirvPath)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// VGFDump extracts SPIR-V from the VGF file at vgfPath into a fresh
// temp file and returns that file's path. A non-negative spirvIndex
// selects one module via --dump-spirv. The caller removes the file.
func VGFDump(ctx context.Context, vgfPath string, spirvIndex int) (string, error) {
	bin, err := lookPath("vgf_dump")
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "vgf-*.spv")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	outPath := tmp.Name()
	tmp.Close()

	args := []string{"-i", vgfPath, "-o", outPath}
	if spirvIndex >= 0 {
		args = append(args, "--dump-spirv", strconv.Itoa(spirvIndex))
	}
	if _, err := run(ctx, bin, args...); err != nil {
		os.Remove(outPath)
		return "", err
	}
	return outPath, nil
}
