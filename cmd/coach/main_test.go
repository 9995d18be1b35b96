package main

import (
	"alcyxob/training-coach/internal/repository/memory"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := fmt.Sprintf("data:\n  source: fixture\nsession:\n  backend: file\n  dir: %q\n", filepath.Join(dir, "session"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	return dir
}

func TestRun_ExitCodes(t *testing.T) {
	dir := writeConfig(t)
	exec := func(args ...string) (int, string, string) {
		var stdout, stderr bytes.Buffer
		code := run(append([]string{"--config", dir}, args...), strings.NewReader(""), &stdout, &stderr)
		return code, stdout.String(), stderr.String()
	}

	code, _, stderr := exec("whoami")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "-> /login")

	code, stdout, _ := exec("login", "--email", "maria@example.com", "--password", memory.DemoPassword)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Maria Oliveira")

	code, stdout, _ = exec("whoami")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "maria@example.com")

	code, _, stderr = exec("students")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "-> /student-dashboard")

	code, _, _ = exec("login", "--email", "maria@example.com", "--password", "wrong")
	assert.Equal(t, 1, code)

	code, _, _ = exec()
	assert.Equal(t, 2, code)
}
