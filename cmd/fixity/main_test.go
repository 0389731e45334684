package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloDigest = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

type result struct {
	stdout string
	stderr string
	code   int
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

// setup isolates the test from any user config and returns a file holding
// "hello".
func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "A")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	return path
}

func TestSaveAndVerifyMatch(t *testing.T) {
	path := setup(t)

	r := runCLI(t, "save", path)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, helloDigest)
	assert.Contains(t, r.stdout, path+".checksum")

	raw, err := os.ReadFile(path + ".checksum")
	require.NoError(t, err)
	assert.Equal(t, helloDigest+"\n", string(raw))

	r = runCLI(t, "verify", path)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "MATCH")
	assert.NotContains(t, r.stdout, "MISMATCH")
}

func TestVerifyMismatchPolicies(t *testing.T) {
	path := setup(t)
	require.Equal(t, exitOK, runCLI(t, "save", path).code)
	require.NoError(t, os.WriteFile(path, []byte("hellp"), 0o644))

	r := runCLI(t, "verify", path)
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stdout, "MISMATCH")
	assert.Contains(t, r.stdout, "saved    "+helloDigest)
	assert.Contains(t, r.stderr, "checksum mismatch")

	r = runCLI(t, "verify", "--mismatch", "fail", path)
	assert.Equal(t, exitMismatch, r.code)
	assert.Contains(t, r.stdout, "MISMATCH")
}

func TestVerifyMismatchPolicyFromConfig(t *testing.T) {
	path := setup(t)
	require.Equal(t, exitOK, runCLI(t, "save", path).code)
	require.NoError(t, os.WriteFile(path, []byte("hellp"), 0o644))

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[defaults]\nmismatch = \"fail\"\n"), 0o644))

	r := runCLI(t, "--config", cfgPath, "verify", path)
	assert.Equal(t, exitMismatch, r.code)

	// An explicit flag wins over the file.
	r = runCLI(t, "--config", cfgPath, "verify", "--mismatch", "warn", path)
	assert.Equal(t, exitOK, r.code)
}

func TestVerifyWithoutRecord(t *testing.T) {
	path := setup(t)

	r := runCLI(t, "verify", path)
	assert.Equal(t, exitFailure, r.code)
	assert.Contains(t, r.stderr, "checksum record "+path+".checksum does not exist")
	assert.NotContains(t, r.stdout, "MATCH")
}

func TestVerifyEmptyRecord(t *testing.T) {
	path := setup(t)
	require.NoError(t, os.WriteFile(path+".checksum", nil, 0o644))

	r := runCLI(t, "verify", path)
	assert.Equal(t, exitFailure, r.code)
	assert.Contains(t, r.stderr, "is empty")
}

func TestSaveMissingFile(t *testing.T) {
	setup(t)
	missing := filepath.Join(t.TempDir(), "nope")

	r := runCLI(t, "save", missing)
	assert.Equal(t, exitFailure, r.code)
	assert.Contains(t, r.stderr, "file "+missing+" does not exist")
	assert.NoFileExists(t, missing+".checksum")
}

func TestQuiet(t *testing.T) {
	path := setup(t)

	r := runCLI(t, "-q", "save", path)
	require.Equal(t, exitOK, r.code)
	assert.Empty(t, r.stdout)
	assert.FileExists(t, path+".checksum")
}

func TestLogFile(t *testing.T) {
	path := setup(t)
	logPath := filepath.Join(t.TempDir(), "fixity.log")

	r := runCLI(t, "--log", logPath, "save", "--no-atomic", "--chunk-size", "1", path)
	require.Equal(t, exitOK, r.code, r.stderr)

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"fixity.event"`)
	assert.Contains(t, string(raw), "sha256:"+helloDigest)
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "--version")
	assert.Equal(t, exitOK, r.code)
	assert.Equal(t, "fixity dev\n", r.stdout)
}

func TestUsageErrors(t *testing.T) {
	setup(t)
	assert.Equal(t, exitFailure, runCLI(t, "save").code)
	assert.Equal(t, exitFailure, runCLI(t, "verify", "a", "b").code)
	assert.Equal(t, exitFailure, runCLI(t, "verify", "--mismatch", "explode", "a").code)
}

func TestChunkSizeBounds(t *testing.T) {
	tests := []struct {
		name string
		size string
		code int
	}{
		{name: "one byte", size: "1", code: exitOK},
		{name: "max", size: "16777216", code: exitOK},
		{name: "zero", size: "0", code: exitFailure},
		{name: "negative", size: "-1", code: exitFailure},
		{name: "above max", size: "16777217", code: exitFailure},
		{name: "max int", size: "9223372036854775807", code: exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t)
			r := runCLI(t, "save", "--chunk-size", tt.size, path)
			require.Equal(t, tt.code, r.code, r.stderr)
			if tt.code == exitFailure {
				assert.Contains(t, r.stderr, "--chunk-size")
				assert.NoFileExists(t, path+".checksum")
				return
			}
			r = runCLI(t, "verify", "--chunk-size", tt.size, path)
			require.Equal(t, exitOK, r.code, r.stderr)
			assert.Contains(t, r.stdout, "MATCH")
		})
	}
}

func TestChunkSizeFromConfigAboveMax(t *testing.T) {
	path := setup(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[defaults]\nchunk_size = 16777217\n"), 0o644))

	r := runCLI(t, "--config", cfgPath, "save", path)
	assert.Equal(t, exitFailure, r.code)
	assert.Contains(t, r.stderr, "chunk_size")
	assert.NoFileExists(t, path+".checksum")
}

func TestGenDocs(t *testing.T) {
	dir := t.TempDir()
	r := runCLI(t, "gen-docs", "--dir", dir, "--format", "markdown")
	require.Equal(t, exitOK, r.code, r.stderr)

	assert.FileExists(t, filepath.Join(dir, "fixity.md"))
	assert.FileExists(t, filepath.Join(dir, "fixity_save.md"))
	assert.FileExists(t, filepath.Join(dir, "fixity_verify.md"))
}
