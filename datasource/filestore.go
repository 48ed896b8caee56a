package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jackc/puddle/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// defaultMaxReaders bounds concurrent file reads when the config does
// not say otherwise.
const defaultMaxReaders = 4

// FileStoreParams defines the dependencies for a file store.
type FileStoreParams struct {
	fx.In

	// Config is the datasource configuration.
	Config Config

	// Log is the logger to use for the store.
	Log *zap.Logger
}

// FileStore is a Source backed by one JSON series document per
// channel in a data directory. Documents are validated against the
// embedded series schema on every read. Reads are bounded by a pool
// of reusable readers; writes are serialized and replace the document
// atomically.
type FileStore struct {
	dir  string
	pool *puddle.Pool[*fileReader]
	log  *zap.Logger

	// mu serializes writers; readers go through the pool
	mu sync.Mutex
}

var _ Source = (*FileStore)(nil)

// NewFileStore creates a file store over the configured data
// directory.
func NewFileStore(params FileStoreParams) (*FileStore, error) {
	schema := NewSeriesSchema()

	maxReaders := params.Config.MaxReaders
	if maxReaders <= 0 {
		maxReaders = defaultMaxReaders
	}

	constructor := func(context.Context) (*fileReader, error) {
		return &fileReader{dir: params.Config.DataDir, schema: schema}, nil
	}

	destructor := func(*fileReader) {}

	pool, err := puddle.NewPool(&puddle.Config[*fileReader]{
		Constructor: constructor,
		Destructor:  destructor,
		MaxSize:     int32(maxReaders),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating reader pool: %w", err)
	}

	return &FileStore{
		dir:  params.Config.DataDir,
		pool: pool,
		log:  params.Log.Named("filestore"),
	}, nil
}

// NewLifecycleFileStore creates a file store and attaches a lifecycle
// hook releasing it on shutdown.
func NewLifecycleFileStore(params FileStoreParams, lc fx.Lifecycle) (Source, error) {
	store, err := NewFileStore(params)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			store.Close()
			return nil
		},
	})

	return store, nil
}

// Channels lists one channel per series document in the data
// directory.
func (s *FileStore) Channels(context.Context) ([]Channel, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channels := make([]Channel, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		channels = append(channels, Channel{
			Name: strings.TrimSuffix(entry.Name(), ".json"),
			Type: "timeseries",
		})
	}

	return channels, nil
}

// Timeseries reads the named channels, narrows each to the query
// window and resamples when requested. Channels that do not exist or
// fail to read contribute nothing.
func (s *FileStore) Timeseries(ctx context.Context, channels []string, opts QueryOpts) (map[string]Series, error) {
	to := opts.To
	if to <= 0 {
		to += float64(time.Now().Unix())
	}

	width := opts.Resample
	if width == 0 {
		width = autoWidth(opts.Length)
	}

	out := make(map[string]Series, len(channels))
	for _, name := range channels {
		series, err := s.read(ctx, name)
		if errors.Is(err, ErrUnknownChannel) {
			continue
		}
		if err != nil {
			s.log.Warn("skipping channel",
				zap.String("channel", name),
				zap.Error(err),
			)
			continue
		}

		windowed := window(*series, to-opts.Length, to)
		if opts.Resample >= 0 {
			windowed = resample(windowed, to, width, opts.Reducer)
		}
		windowed.Length = opts.Length

		out[name] = windowed
	}

	return out, nil
}

// Append records one sample on a channel, creating the series
// document if it does not exist.
func (s *FileStore) Append(ctx context.Context, name string, t float64, value *float64) error {
	if !validName(name) {
		return fmt.Errorf("invalid channel name %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	series, err := s.read(ctx, name)
	if errors.Is(err, ErrUnknownChannel) {
		series = &Series{Start: math.Floor(t)}
	} else if err != nil {
		return err
	}

	series.T = append(series.T, t-series.Start)
	series.X = append(series.X, value)

	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to encode series: %w", err)
	}

	return s.write(name, data)
}

// Close releases the reader pool. The store must not be used
// afterwards.
func (s *FileStore) Close() {
	s.pool.Close()
}

func (s *FileStore) read(ctx context.Context, name string) (*Series, error) {
	if !validName(name) {
		return nil, ErrUnknownChannel
	}

	resource, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("error acquiring reader: %w", err)
	}
	defer resource.Release()

	return resource.Value().read(name)
}

func (s *FileStore) write(name string, data []byte) error {
	path := filepath.Join(s.dir, name+".json")

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write series: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace series: %w", err)
	}

	return nil
}

// window narrows a series to samples with from <= start+t < to.
func window(s Series, from, to float64) Series {
	// non-nil slices, so empty windows marshal as [] rather than null
	out := Series{Start: s.Start, Length: s.Length, T: []float64{}, X: []*float64{}}

	for k, dt := range s.T {
		if k >= len(s.X) {
			break
		}
		abs := s.Start + dt
		if abs < from || abs >= to {
			continue
		}
		out.T = append(out.T, dt)
		out.X = append(out.X, s.X[k])
	}

	return out
}

// validName rejects channel names that could escape the data
// directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// fileReader reads and validates series documents. Readers are pooled
// and reuse their decode buffer across reads.
type fileReader struct {
	dir    string
	schema *Schema
	buf    bytes.Buffer
}

func (r *fileReader) read(name string) (*Series, error) {
	f, err := os.Open(filepath.Join(r.dir, name+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrUnknownChannel
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open series: %w", err)
	}
	defer f.Close()

	r.buf.Reset()
	if _, err := r.buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to read series: %w", err)
	}

	raw := r.buf.Bytes()
	if err := r.schema.Validate(raw); err != nil {
		return nil, err
	}

	var series Series
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series: %w", err)
	}

	return &series, nil
}
