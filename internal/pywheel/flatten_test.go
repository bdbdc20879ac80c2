package pywheel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// buildTree lays out a small wheel-like tree:
//
//	pkg/real.py           regular Python file
//	pkg/link.py           symlink -> real.py
//	pkg/nested/deep.py    symlink -> ../real.py (relative, nested)
//	pkg/data.bin          regular non-Python file
//	pkg/tool              symlink -> data.bin (non-Python target)
//	pkg/dangling.py       symlink -> missing.py
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	pkg := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(filepath.Join(pkg, "nested"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(pkg, "real.py"), []byte("print('hi')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "data.bin"), []byte{0x01}, 0o644))

	require.NoError(t, os.Symlink("real.py", filepath.Join(pkg, "link.py")))
	require.NoError(t, os.Symlink(filepath.Join("..", "real.py"), filepath.Join(pkg, "nested", "deep.py")))
	require.NoError(t, os.Symlink("data.bin", filepath.Join(pkg, "tool")))
	require.NoError(t, os.Symlink("missing.py", filepath.Join(pkg, "dangling.py")))

	return root
}

func assertIsSymlink(t *testing.T, path string, want bool) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	assert.Equal(t, want, info.Mode()&os.ModeSymlink != 0, path)
}

func TestFlatten(t *testing.T) {
	root := buildTree(t)
	pkg := filepath.Join(root, "pkg")

	sum, err := NewFlattener(zap.NewNop(), false).Flatten(root)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Replaced)
	assert.Equal(t, 1, sum.Errors) // the dangling link

	// Python symlinks became regular files with the target's contents.
	assertIsSymlink(t, filepath.Join(pkg, "link.py"), false)
	assertIsSymlink(t, filepath.Join(pkg, "nested", "deep.py"), false)
	for _, p := range []string{filepath.Join(pkg, "link.py"), filepath.Join(pkg, "nested", "deep.py")} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "print('hi')\n", string(data))
	}

	// Non-Python and dangling links are untouched.
	assertIsSymlink(t, filepath.Join(pkg, "tool"), true)
	assertIsSymlink(t, filepath.Join(pkg, "dangling.py"), true)
}

func TestFlattenDryRun(t *testing.T) {
	root := buildTree(t)
	pkg := filepath.Join(root, "pkg")

	sum, err := NewFlattener(zap.NewNop(), true).Flatten(root)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Replaced)
	assertIsSymlink(t, filepath.Join(pkg, "link.py"), true)
	assertIsSymlink(t, filepath.Join(pkg, "nested", "deep.py"), true)
}

func TestFlattenBadRoot(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewFlattener(zap.NewNop(), false).Flatten(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.py")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := NewFlattener(zap.NewNop(), false).Flatten(path)
		assert.Error(t, err)
	})
}

func TestIsPythonFile(t *testing.T) {
	assert.True(t, isPythonFile("a/b/c.py"))
	assert.True(t, isPythonFile("c.PYI"))
	assert.True(t, isPythonFile("c.pyx"))
	assert.True(t, isPythonFile("c.pyw"))
	assert.False(t, isPythonFile("c.so"))
	assert.False(t, isPythonFile("py"))
}
