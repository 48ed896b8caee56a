package datasource_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/manifold-dev/manifold/datasource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t *testing.T, dir string) *datasource.FileStore {
	t.Helper()

	store, err := datasource.NewFileStore(datasource.FileStoreParams{
		Config: datasource.Config{DataDir: dir},
		Log:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	t.Cleanup(store.Close)

	return store
}

func writeSeries(t *testing.T, dir, name, doc string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(doc), 0o644)
	require.NoError(t, err)
}

func TestFileStore_Channels(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "temperature", `{"t":[],"x":[]}`)
	writeSeries(t, dir, "pressure", `{"t":[],"x":[]}`)

	err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	require.NoError(t, err)

	store := newStore(t, dir)

	channels, err := store.Channels(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []datasource.Channel{
		{Name: "pressure", Type: "timeseries"},
		{Name: "temperature", Type: "timeseries"},
	}, channels)
}

func TestFileStore_Timeseries(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "temperature", `{"start":1000,"t":[0,10,20,30],"x":[1,2,null,4]}`)

	store := newStore(t, dir)

	data, err := store.Timeseries(context.Background(), []string{"temperature"}, datasource.QueryOpts{
		Length:   20,
		To:       1030,
		Resample: -1,
	})
	require.NoError(t, err)

	require.Contains(t, data, "temperature")
	series := data["temperature"]

	assert.Equal(t, 1000.0, series.Start)
	assert.Equal(t, 20.0, series.Length)
	assert.Equal(t, []float64{10, 20}, series.T)
	require.Len(t, series.X, 2)
	assert.Equal(t, 2.0, *series.X[0])
	assert.Nil(t, series.X[1])
}

func TestFileStore_Timeseries_SkipsBadChannels(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "good", `{"start":0,"t":[1],"x":[5]}`)
	writeSeries(t, dir, "broken", `{"start":"zero","t":[1]}`)

	store := newStore(t, dir)

	data, err := store.Timeseries(context.Background(), []string{"good", "broken", "missing"}, datasource.QueryOpts{
		Length:   100,
		To:       100,
		Resample: -1,
	})
	require.NoError(t, err)

	assert.Len(t, data, 1)
	assert.Contains(t, data, "good")
}

func TestFileStore_Timeseries_Resamples(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "rate", `{"start":0,"t":[1,2,3,11],"x":[1,2,3,10]}`)

	store := newStore(t, dir)

	data, err := store.Timeseries(context.Background(), []string{"rate"}, datasource.QueryOpts{
		Length:   20,
		To:       20,
		Resample: 10,
		Reducer:  "mean",
	})
	require.NoError(t, err)

	series := data["rate"]
	require.Equal(t, []float64{5, 15}, series.T)
	require.Len(t, series.X, 2)
	assert.Equal(t, 2.0, *series.X[0])
	assert.Equal(t, 10.0, *series.X[1])
}

func TestFileStore_Append(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)
	ctx := context.Background()

	value := 21.5
	require.NoError(t, store.Append(ctx, "temperature", 1000.5, &value))
	require.NoError(t, store.Append(ctx, "temperature", 1010, nil))

	raw, err := os.ReadFile(filepath.Join(dir, "temperature.json"))
	require.NoError(t, err)

	var doc struct {
		Start float64    `json:"start"`
		T     []float64  `json:"t"`
		X     []*float64 `json:"x"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, 1000.0, doc.Start)
	assert.Equal(t, []float64{0.5, 10}, doc.T)
	require.Len(t, doc.X, 2)
	assert.Equal(t, 21.5, *doc.X[0])
	assert.Nil(t, doc.X[1])
}

func TestFileStore_Append_RejectsUnsafeName(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)

	err := store.Append(context.Background(), "../evil", 0, nil)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "..", "evil.json"))
	assert.True(t, os.IsNotExist(statErr))
}
