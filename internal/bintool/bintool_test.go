package bintool

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary drops an executable shell script named name into a temp
// bin directory and points BinDirEnv at it.
func fakeBinary(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fakes require a POSIX shell")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv(BinDirEnv, dir)
}

func TestLookPath(t *testing.T) {
	t.Run("prefers the configured bin directory", func(t *testing.T) {
		fakeBinary(t, "mlir-translate", "exit 0\n")
		path, err := lookPath("mlir-translate")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(os.Getenv(BinDirEnv), "mlir-translate"), path)
	})

	t.Run("missing binary is an error naming it", func(t *testing.T) {
		t.Setenv(BinDirEnv, t.TempDir())
		t.Setenv("PATH", t.TempDir())
		_, err := lookPath("vgf_dump")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vgf_dump")
	})
}

func TestMLIRTranslate(t *testing.T) {
	t.Run("returns stdout with trailing newline trimmed", func(t *testing.T) {
		fakeBinary(t, "mlir-translate", `echo "module {}"`+"\n")

		out, err := MLIRTranslate(context.Background(), "/tmp/in.spv")
		require.NoError(t, err)
		assert.Equal(t, "module {}", out)
	})

	t.Run("failure includes stderr", func(t *testing.T) {
		fakeBinary(t, "mlir-translate", "echo 'bad spirv module' >&2\nexit 1\n")

		_, err := MLIRTranslate(context.Background(), "/tmp/in.spv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad spirv module")
	})
}

func TestVGFDump(t *testing.T) {
	t.Run("writes the dump to a temp file", func(t *testing.T) {
		// $1=-i $2=<input> $3=-o $4=<output>
		fakeBinary(t, "vgf_dump", `echo spirv-bytes > "$4"`+"\n")

		path, err := VGFDump(context.Background(), "/tmp/model.vgf", -1)
		require.NoError(t, err)
		defer os.Remove(path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "spirv-bytes\n", string(data))
	})

	t.Run("passes the module index when given", func(t *testing.T) {
		fakeBinary(t, "vgf_dump", `echo "$@" > "$4"`+"\n")

		path, err := VGFDump(context.Background(), "/tmp/model.vgf", 2)
		require.NoError(t, err)
		defer os.Remove(path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "--dump-spirv 2")
	})

	t.Run("cleans up the temp file on failure", func(t *testing.T) {
		fakeBinary(t, "vgf_dump", "exit 3\n")

		_, err := VGFDump(context.Background(), "/tmp/model.vgf", -1)
		require.Error(t, err)
	})
}
