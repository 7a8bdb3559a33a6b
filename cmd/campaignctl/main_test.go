package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/storage/file"
	"github.com/chaoscampaign/tracker/internal/storage/memory"
	pgstorage "github.com/chaoscampaign/tracker/internal/storage/postgres"
	sqlitestorage "github.com/chaoscampaign/tracker/internal/storage/sqlite"
	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file pointing the file backend into dir.
func writeConfig(t *testing.T, dir string, extra map[string]any) {
	t.Helper()
	cfg := map[string]any{
		"logLevel": "error",
		"storage": map[string]any{
			"type": "file",
			"file": map[string]any{"dir": filepath.Join(dir, "data")},
		},
	}
	for k, v := range extra {
		cfg[k] = v
	}
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), b, 0644))
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCreateStorageBackend(t *testing.T) {
	tests := []struct {
		typ  string
		want any
	}{
		{"memory", &memory.Backend{}},
		{"file", &file.Backend{}},
		{"", &file.Backend{}},
		{"sqlite", &sqlitestorage.Backend{}},
		{"postgres", &pgstorage.Backend{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			b, err := createStorageBackend(config.StorageConfig{Type: tt.typ}, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}

	_, err := createStorageBackend(config.StorageConfig{Type: "websocket"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-config", t.TempDir(), "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "unit:add key=value...")
	assert.Contains(t, stderr, "storage:backup <path>")

	code, _, _ = runCLI(t, "-config", t.TempDir())
	assert.Equal(t, 2, code)
}

func TestRun_UnknownCommand(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, nil)

	code, _, stderr := runCLI(t, "-config", dir, "unit:explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "unit:explode"`)
}

func TestRun_PersistsAcrossInvocations(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, nil)

	code, stdout, stderr := runCLI(t, "-config", dir, "campaign:add",
		"name=Operation Bulldog", "contractType=Invasion", "scale=2", "commandType=independent")
	require.Equal(t, 0, code, stderr)

	var c core.Campaign
	require.NoError(t, json.Unmarshal([]byte(stdout), &c))
	assert.Equal(t, "Operation Bulldog", c.Name)
	assert.FileExists(t, filepath.Join(dir, "data", "campaigns.json"))

	code, stdout, stderr = runCLI(t, "-config", dir, "battle:add",
		"campaignId="+c.ID, "name=Landing", "type=assault", "result=victory")
	require.Equal(t, 0, code, stderr)
	var b core.Battle
	require.NoError(t, json.Unmarshal([]byte(stdout), &b))

	code, stdout, stderr = runCLI(t, "-config", dir, "campaign:get", c.ID)
	require.Equal(t, 0, code, stderr)
	var reloaded core.Campaign
	require.NoError(t, json.Unmarshal([]byte(stdout), &reloaded))
	assert.Equal(t, []string{b.ID}, reloaded.BattleIDs)
}

func TestRun_CommandError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, nil)

	code, stdout, stderr := runCLI(t, "-config", dir, "unit:add", "name=Broken", "pilotSkill=9")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid unit input")
}

func TestRun_LogsToFile(t *testing.T) {
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")
	writeConfig(t, dir, map[string]any{"logsDir": logsDir, "logLevel": "debug"})

	code, _, stderr := runCLI(t, "-config", dir, "unit:list")
	require.Equal(t, 0, code, stderr)

	entries, err := os.ReadDir(logsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "campaignctl.")
}

func TestRun_ExportsMetricsWhenOTelEnabled(t *testing.T) {
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")
	writeConfig(t, dir, map[string]any{
		"logsDir": logsDir,
		"otel":    map[string]any{"enabled": true, "batchTimeout": "1s"},
	})

	code, stdout, stderr := runCLI(t, "-config", dir, "unit:add",
		"name=Wolverine", "type=mech", "tonnage=55", "status=operational", "pilotSkill=4")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "store.mutations")

	entries, err := os.ReadDir(logsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	raw, err := os.ReadFile(filepath.Join(logsDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "store.mutations")
	assert.Contains(t, string(raw), "dispatcher.events.processed")
}

func TestRun_RejectsUnsafeSlotKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{
		"storage": map[string]any{
			"type": "file",
			"file": map[string]any{"dir": filepath.Join(dir, "data")},
			"keys": map[string]any{"units": "roster/units"},
		},
	})

	code, stdout, stderr := runCLI(t, "-config", dir, "unit:list")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid slot key")
}

func TestRun_MissingConfigUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	code, stdout, stderr := runCLI(t, "-config", dir, "force:list")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `[]`, stdout)
	assert.Contains(t, stderr, "using defaults")
}
