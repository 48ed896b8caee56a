package datasource

import (
	"context"
	"errors"
)

var (
	// ErrUnknownChannel is returned when a channel does not exist in
	// the store.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrInvalidSeries is returned when a stored series document does
	// not validate against the series schema.
	ErrInvalidSeries = errors.New("invalid series document")
)

// Channel describes one addressable data channel.
type Channel struct {
	// Name is the channel name, unique within a source.
	Name string `json:"name"`

	// Type is the data shape of the channel, e.g. "timeseries".
	Type string `json:"type"`
}

// Series is one channel's timeseries data. Sample timestamps are
// seconds relative to Start, values may be null.
type Series struct {
	// Start is the epoch of the series, in unix seconds.
	Start float64 `json:"start"`

	// Length is the queried window length in seconds.
	Length float64 `json:"length,omitempty"`

	// T holds sample times as offsets from Start, ascending.
	T []float64 `json:"t"`

	// X holds sample values, index-aligned with T. A nil entry is a
	// null sample.
	X []*float64 `json:"x"`
}

// QueryOpts narrows a timeseries query.
type QueryOpts struct {
	// Length is the window length in seconds.
	Length float64

	// To is the end of the window in unix seconds. Zero or negative
	// values are offsets from the current time.
	To float64

	// Resample is the bucket width in seconds. Negative disables
	// resampling, zero picks a width automatically from the window.
	Resample float64

	// Reducer folds the samples of one bucket into one value: one of
	// first, last, mean, sum, min, max.
	Reducer string
}

// Config configures a file-backed source.
type Config struct {
	// DataDir is the directory holding one series document per
	// channel.
	DataDir string `conf:"data_dir"`

	// MaxReaders bounds the number of concurrent file readers.
	MaxReaders int `conf:"max_readers"`
}

// DefaultConfig holds the default values for Config, keyed by the
// `conf` tag.
var DefaultConfig = map[string]any{
	"data_dir":    "data",
	"max_readers": 4,
}

// Source serves channel listings and timeseries data.
type Source interface {
	// Channels lists all channels known to the source.
	Channels(ctx context.Context) ([]Channel, error)

	// Timeseries queries the named channels over the window described
	// by opts. Unknown channels are skipped, not errors.
	Timeseries(ctx context.Context, channels []string, opts QueryOpts) (map[string]Series, error)

	// Append records one sample on a channel, creating the channel if
	// it does not exist. A nil value records a null sample.
	Append(ctx context.Context, channel string, t float64, value *float64) error
}
