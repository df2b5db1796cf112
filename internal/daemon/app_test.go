// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoFamilies = `[
  {"family": "Lora", "category": "serif", "subsets": ["latin"], "weights": [400, 700]},
  {"family": "Inter", "category": "sans-serif", "subsets": ["latin"], "isVariable": true,
   "axes": {"wght": {"min": "100", "max": "900", "default": "400", "step": "1"}}}
]`

const oneFamily = `[{"family": "Lora", "category": "serif", "subsets": ["latin"], "weights": [400, 700]}]`

func writeCatalog(t *testing.T, path, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
}

func newHolder(t *testing.T, dir string) *catalog.Holder {
	t.Helper()
	path := filepath.Join(dir, "catalog.json")
	writeCatalog(t, path, twoFamilies)
	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	return catalog.NewHolder(path, c)
}

func readManifest(path string) (manifest.Manifest, error) {
	var m manifest.Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}

func runApp(t *testing.T, app *App) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestApp_RunRequiresManager(t *testing.T) {
	app := NewApp(nil, newHolder(t, t.TempDir()), AppOptions{})
	assert.ErrorIs(t, app.Run(context.Background()), ErrMissingManager)

	mgr, err := NewManager(newFakeServer(), time.Second)
	require.NoError(t, err)
	app = NewApp(mgr, nil, AppOptions{})
	assert.ErrorIs(t, app.Run(context.Background()), ErrMissingCatalog)
}

func TestApp_ManifestFollowsReloads(t *testing.T) {
	dir := t.TempDir()
	holder := newHolder(t, dir)
	out := filepath.Join(dir, "manifest.json")

	mgr, err := NewManager(newFakeServer(), time.Second)
	require.NoError(t, err)
	app := NewApp(mgr, holder, AppOptions{ManifestPath: out, Builder: css2.NewBuilder("")})
	app.reloadSignal = nil
	app.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	cancel, done := runApp(t, app)

	require.Eventually(t, func() bool {
		m, err := readManifest(out)
		return err == nil && m.Count == 2
	}, 2*time.Second, 10*time.Millisecond)

	m, err := readManifest(out)
	require.NoError(t, err)
	assert.Equal(t, "Inter", m.Entries[0].Family)
	assert.Equal(t, "https://fonts.googleapis.com/css2?family=Inter:wght@100..900&display=swap", m.Entries[0].URL)

	writeCatalog(t, filepath.Join(dir, "catalog.json"), oneFamily)
	require.NoError(t, holder.Reload(context.Background()))

	require.Eventually(t, func() bool {
		m, err := readManifest(out)
		return err == nil && m.Count == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, waitRun(t, done))
}

func TestApp_WatchReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	holder := newHolder(t, dir)

	mgr, err := NewManager(newFakeServer(), time.Second)
	require.NoError(t, err)
	app := NewApp(mgr, holder, AppOptions{Watch: true})
	app.reloadSignal = nil

	cancel, done := runApp(t, app)

	// Give the watcher a moment to register the directory. A single write is
	// enough: repeated writes would keep resetting the reload debounce.
	time.Sleep(100 * time.Millisecond)
	writeCatalog(t, filepath.Join(dir, "catalog.json"), oneFamily)

	require.Eventually(t, func() bool { return holder.Get().Len() == 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, waitRun(t, done))
}

func TestApp_ServerFailureStopsRun(t *testing.T) {
	boom := errors.New("listen failed")
	srv := newFakeServer()
	srv.startErr = boom

	mgr, err := NewManager(srv, time.Second)
	require.NoError(t, err)
	app := NewApp(mgr, newHolder(t, t.TempDir()), AppOptions{Watch: true})

	_, done := runApp(t, app)
	assert.ErrorIs(t, waitRun(t, done), boom)
}
