package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"partyplanner/internal/config"
	"partyplanner/internal/model"
	"partyplanner/internal/partyapi/partyapitest"
)

func TestListCommand(t *testing.T) {
	fake := partyapitest.NewServer(
		model.Party{ID: "1", Name: "Launch", Date: "2024-01-01T00:00:00.000Z"},
		model.Party{ID: "7", Name: "Retro", Date: "2024-02-10T18:00:00.000Z"},
	)
	defer fake.Close()

	t.Setenv(config.EnvAPIURL, fake.URL)
	t.Setenv(config.EnvCohort, "")

	dir := t.TempDir()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"list",
		"--config", filepath.Join(dir, "config.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
	})

	require.NoError(t, root.ExecuteContext(context.Background()))
	require.Equal(t, "1  2024-01-01  Launch\n7  2024-02-10  Retro\n", out.String())
}

func TestSnapshotRequiresOutput(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetArgs([]string{
		"snapshot",
		"--out", "",
		"--config", filepath.Join(dir, "config.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
	})

	err := root.ExecuteContext(context.Background())
	require.EqualError(t, err, "capture: OutputPath is required")
}

func TestBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvRefresh, "whenever")

	root := newRootCmd()
	root.SetArgs([]string{
		"list",
		"--config", filepath.Join(dir, "config.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
	})
	require.Error(t, root.ExecuteContext(context.Background()))
}
