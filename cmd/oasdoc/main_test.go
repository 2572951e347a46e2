package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixturesDir = filepath.Join("..", "..", "pkg", "oasdoc", "testdata")

func writeConfig(t *testing.T, dir string, apis ...string) string {
	t.Helper()
	fixtures, err := filepath.Abs(fixturesDir)
	require.NoError(t, err)

	var sb strings.Builder
	sb.WriteString("input: " + filepath.Join(fixtures, "index.html") + "\n")
	sb.WriteString("output: out/index.html\n")
	sb.WriteString("apis:\n")
	for _, api := range apis {
		sb.WriteString("  - name: " + api + "\n")
		sb.WriteString("    path: " + filepath.Join(fixtures, api+".yml") + "\n")
	}
	path := filepath.Join(dir, "oasdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "issuer", "verifier", "holder", "exchanges")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", configPath}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(filepath.Join(dir, "out", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>POST /credentials/issue</td>")
	assert.Contains(t, stderr.String(), "rendered document written")
}

func TestRun_StandardOutput(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "issuer", "exchanges")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", configPath, "-output", "-", "-log-format", "json"},
		&stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "<td>GET /credentials/status</td>")
	assert.NoFileExists(t, filepath.Join(dir, "out", "index.html"))
	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		assert.True(t, json.Valid([]byte(line)), line)
	}
}

func TestRun_DiscoversConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "issuer")
	nested := filepath.Join(dir, "docs", "api")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-output", "-"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "<td>POST /credentials/issue</td>")
}

func TestRun_LoadFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "issuer", "invalid")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", configPath, "-output", "-"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: index.html\napis: []\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", path}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apis")
}

func TestRun_ConfigDoc(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config-doc"}, &stdout, &stderr)
	require.NoError(t, err)

	var doc struct {
		Name       string `json:"name"`
		Properties []struct {
			Path string `json:"path"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "Config", doc.Name)
	assert.NotEmpty(t, doc.Properties)
}

func TestParseFlags(t *testing.T) {
	t.Setenv("OASDOC_LOG_LEVEL", "debug")

	cfg, err := parseFlags([]string{"-input", "index.html", "-log-format", "json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, &cliConfig{
		Input:     "index.html",
		LogLevel:  "debug",
		LogFormat: "json",
	}, cfg)

	_, err = parseFlags([]string{"-unknown"}, &bytes.Buffer{})
	require.Error(t, err)
}
