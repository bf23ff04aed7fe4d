package executil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSh_StderrCappedAtMaxLen(t *testing.T) {
	longStderr := strings.Repeat("A", maxStderrLen*2)
	cmd := fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr)

	err := RunSh(context.Background(), "", cmd, nil)
	require.Error(t, err)

	errMsg := err.Error()
	assert.LessOrEqual(t, len(errMsg), maxStderrLen+20)
	assert.Equal(t, strings.Repeat("A", maxStderrLen), errMsg[:maxStderrLen])
}

func TestRunSh_ExitCode(t *testing.T) {
	err := RunSh(context.Background(), "", "exit 3", nil)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRunSh_FeedsStdin(t *testing.T) {
	dir := t.TempDir()

	err := RunSh(context.Background(), dir, "cat > out.txt", strings.NewReader("Resources/Title"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Resources/Title", string(got))
}

func TestRunSh_EmptyCommand(t *testing.T) {
	err := RunSh(context.Background(), "", "   ", nil)
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	path, err := Lookup("sh -c true")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = Lookup("reswed-missing-binary-12345 --flag")
	require.Error(t, err)

	_, err = Lookup("")
	require.Error(t, err)
}
