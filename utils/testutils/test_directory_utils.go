package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
	"github.com/stretchr/testify/require"
)

// CopyToTestDirectory copies files or directories from the provided filePath (relative to the working directory of the
// test, usually the package directory) to an ephemeral directory used for unit tests. Returns the absolute target path.
func CopyToTestDirectory(t *testing.T, filePath string) string {
	// Construct our file path relative to our working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)
	sourcePath := filepath.Join(cwd, filePath)

	// Verify the file path exists
	sourcePathInfo, err := os.Stat(sourcePath)
	require.NoError(t, err)

	// Obtain an isolated test directory path and copy our source to it
	targetPath := filepath.Join(t.TempDir(), "bindgenTest", sourcePathInfo.Name())
	require.NoError(t, copy.Copy(sourcePath, targetPath))

	// Get a normalized absolute path
	targetPath, err = filepath.Abs(targetPath)
	require.NoError(t, err)
	return targetPath
}

// ExecuteInDirectory executes the given method in a given test directory. It changes the current working directory
// to the directory specified, runs the provided method, then restores the working directory. This wraps tests so
// any file artifacts generated do not end up in the codebase directories.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	// Backup our old working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// Ensure we change into a directory even if we were given a file path
	testPathInfo, err := os.Stat(testPath)
	require.NoError(t, err)
	testDirectory := testPath
	if !testPathInfo.IsDir() {
		testDirectory = filepath.Dir(testPath)
	}

	err = os.Chdir(testDirectory)
	require.NoError(t, err)

	// Restore our working directory even if the method fails the test, or clean up will fail post testing
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()
	method()
}

// WriteTestFiles writes each entry of files (relative path to content) beneath root, creating directories as needed.
func WriteTestFiles(t *testing.T, root string, files map[string]string) {
	for relativePath, content := range files {
		fullPath := filepath.Join(root, relativePath)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
	}
}
