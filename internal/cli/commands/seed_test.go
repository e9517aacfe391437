package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/internal/cli/config"
	"github.com/conduit-lang/ontogen/internal/seed"
)

func TestSeed_Memory(t *testing.T) {
	chdir(t)

	out, err := run(t, "seed", "zoo.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Individuals:")
	assert.Contains(t, out, "memory store is discarded")
}

func TestSeed_SQLiteJSON(t *testing.T) {
	dir := chdir(t)
	dsn := filepath.Join(dir, "zoo.db")

	out, err := run(t, "seed", "zoo.yaml", "--driver", "sqlite3", "--dsn", dsn, "--json")
	require.NoError(t, err)

	var stats seed.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, seed.Stats{Individuals: 2, Types: 2, Objects: 1, Data: 1}, stats)

	_, err = os.Stat(dsn)
	assert.NoError(t, err)
}

func TestSeed_UnknownDriver(t *testing.T) {
	chdir(t)

	_, err := run(t, "seed", "zoo.yaml", "--driver", "mongo")
	require.Error(t, err)
}

func TestInit_WritesConfig(t *testing.T) {
	chdir(t)

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created ontogen.yml")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "init")
	require.Error(t, err, "init must not overwrite without --force")

	_, err = run(t, "init", "--force")
	require.NoError(t, err)
}

func TestWatch_Flags(t *testing.T) {
	cmd := NewWatchCommand()

	if cmd.Name() != "watch" {
		t.Errorf("expected name 'watch', got %s", cmd.Name())
	}
	delay := cmd.Flags().Lookup("delay")
	if delay == nil {
		t.Fatal("expected --delay flag to exist")
	}
	if delay.DefValue != "100ms" {
		t.Errorf("expected default delay 100ms, got %s", delay.DefValue)
	}
}

func TestRunWatch_GeneratesAndStops(t *testing.T) {
	dir := chdir(t)

	cmd := NewWatchCommand()
	var out safeBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	cfg := config.Default()
	cfg.Ontology = "zoo.yaml"
	cfg.Output = "gen"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, cmd, cfg, 20*time.Millisecond) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "gen", "model", "dog_gen.go"))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, out.String(), "Watching 1 file(s)")
}
