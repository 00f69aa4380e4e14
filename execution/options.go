package execution

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-sif/sketchfn/internal/codec"
	"github.com/go-sif/sketchfn/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables read by LoadOptions, e.g. SKETCHFN_NUM_WORKERS
const EnvPrefix = "SKETCHFN_"

// DefaultCodec is used when Options do not name a codec
const DefaultCodec = codec.LZ4

// Options configure an execution of TransformFunctions or AggregateFunctions
type Options struct {
	NumWorkers      int         `koanf:"num_workers"`       // the number of workers to run concurrently (defaults to GOMAXPROCS)
	Codec           string      `koanf:"codec"`             // how worker state is packed for the coordinator: none, lz4 or zstd (defaults to lz4)
	IgnoreRowErrors bool        `koanf:"ignore_row_errors"` // iff true, log row transformation errors instead of failing the run
	LogLevel        string      `koanf:"log_level"`         // used to build a Logger when none is supplied
	Logger          *zap.Logger `koanf:"-"`                 // the Logger to use. Built from LogLevel if nil
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:      opts.NumWorkers,
		Codec:           opts.Codec,
		IgnoreRowErrors: opts.IgnoreRowErrors,
		LogLevel:        opts.LogLevel,
		Logger:          opts.Logger,
	}
}

// Validate checks that an Options is usable
func (o *Options) Validate() error {
	if o.NumWorkers <= 0 {
		return fmt.Errorf("num_workers must be > 0, got %d", o.NumWorkers)
	}
	if !codec.IsKnown(o.Codec) {
		return fmt.Errorf("invalid codec %q (must be none, lz4 or zstd)", o.Codec)
	}
	return nil
}

// LoadOptions parses Options from a YAML file (optional, skipped when path is empty)
// and SKETCHFN_ environment variables, then validates them.
func LoadOptions(path string) (*Options, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"num_workers":       runtime.GOMAXPROCS(0),
		"codec":             DefaultCodec,
		"ignore_row_errors": false,
		"log_level":         "info",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load options file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// ensureDefaultOptionsValues returns a validated copy of opts with defaults filled in.
// Zero values take the same defaults LoadOptions uses.
func ensureDefaultOptionsValues(opts *Options) (*Options, error) {
	if opts == nil {
		opts = &Options{}
	}
	res := CloneOptions(opts)
	if res.NumWorkers == 0 {
		res.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if len(res.Codec) == 0 {
		res.Codec = DefaultCodec
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if res.Logger == nil {
		logger, err := logging.NewLogger(logging.LogLevelFromString(res.LogLevel))
		if err != nil {
			return nil, err
		}
		res.Logger = logger
	}
	return res, nil
}
