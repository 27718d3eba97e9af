package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flaskResume = "Skills: Python, Flask, AWS. Experience: 5 years of backend development."
	flaskJob    = "We need a Python developer with Flask and AWS experience."
)

// isolateEnv clears every variable the config layer reads
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TAXONOMY_PATH", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "CACHE_TTL",
		"S3_BUCKET", "S3_ENDPOINT", "S3_REGION", "AMQP_URL", "QUEUE_NAME", "PORT", "LEMMATIZE",
	} {
		t.Setenv(key, "")
	}
}

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "batch", "serve", "worker", "history", "taxonomy"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestResolveConfig_FileOverridesEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SQLITE_PATH", "/from/env.db")
	t.Setenv("QUEUE_NAME", "env_queue")

	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"sqlite_path": "/from/file.db", "port": 9090}`)

	resetFlags(rootCmd)
	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, err := resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", cfg.SQLitePath)
	assert.Equal(t, "env_queue", cfg.QueueName)
	assert.Equal(t, 9090, cfg.Port)
}

func TestResolveConfig_Invalid(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"approximate_credit": 2}`)

	resetFlags(rootCmd)
	configPath = path
	t.Cleanup(func() { configPath = "" })

	_, err := resolveConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approximate_credit")
}

func TestEngineVariant_DependsOnOptions(t *testing.T) {
	isolateEnv(t)
	resetFlags(rootCmd)

	base, err := resolveConfig()
	require.NoError(t, err)
	lemma := base
	lemma.Lemmatize = true

	assert.Equal(t, engineVariant(base), engineVariant(base))
	assert.NotEqual(t, engineVariant(base), engineVariant(lemma))
}

func TestOpenStore_NoneConfigured(t *testing.T) {
	isolateEnv(t)
	resetFlags(rootCmd)
	cfg, err := resolveConfig()
	require.NoError(t, err)

	store, err := openStore(t.Context(), cfg)
	require.NoError(t, err)
	assert.Nil(t, store)

	_, err = requireStore(t.Context(), cfg)
	assert.Error(t, err)
}

func TestWriteJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, writeJSON(nil, path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got["a"])
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
