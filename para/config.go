package para

import (
	"runtime"

	"github.com/parakit/parakit/errors"
	"github.com/parakit/parakit/logger"
	"github.com/parakit/parakit/observability"
	"github.com/parakit/parakit/util"
	"github.com/parakit/parakit/validation"
)

const (
	// DefaultOutputCapacity bounds the output channel between workers
	// and the consumer. A full channel blocks producers (backpressure).
	DefaultOutputCapacity = 50

	// DefaultRelayCapacity bounds the log relay inbox. Messages beyond
	// it are dropped rather than blocking a worker.
	DefaultRelayCapacity = 256

	// itemLabelLen bounds work-item labels in log lines and errors.
	itemLabelLen = 50
)

// Config holds the tuning knobs for a Map run.
type Config struct {
	// Workers is the number of concurrent workers. Zero selects the
	// host's available parallelism. The effective count is always
	// clamped to [1, len(items)].
	Workers int `yaml:"workers" mapstructure:"workers"`

	// OutputCapacity is the number of values buffered between workers
	// and the consumer before producers block.
	OutputCapacity int `yaml:"output_capacity" mapstructure:"output_capacity" validate:"gte=1"`

	// RelayCapacity is the number of log messages buffered by the relay
	// before further messages are dropped.
	RelayCapacity int `yaml:"relay_capacity" mapstructure:"relay_capacity" validate:"gte=1"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.OutputCapacity == 0 {
		c.OutputCapacity = DefaultOutputCapacity
	}
	if c.RelayCapacity == 0 {
		c.RelayCapacity = DefaultRelayCapacity
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(*c); err != nil {
		return err
	}
	return nil
}

// options bundles configuration with runtime collaborators.
type options struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
	tracing bool
}

// Option customizes a Map run.
type Option func(*options)

// WithConfig replaces the entire engine configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithWorkers sets the requested worker count. Zero selects the host's
// available parallelism; the effective count never exceeds the number
// of items and never drops below one.
func WithWorkers(n int) Option {
	return func(o *options) { o.cfg.Workers = n }
}

// WithOutputCapacity sets the output channel capacity. Larger values
// smooth bursty producers at the cost of memory.
func WithOutputCapacity(n int) Option {
	return func(o *options) { o.cfg.OutputCapacity = n }
}

// WithRelayCapacity sets the log relay inbox capacity.
func WithRelayCapacity(n int) Option {
	return func(o *options) { o.cfg.RelayCapacity = n }
}

// WithLogger injects the logger used by the orchestrator, workers, and
// log relay. Defaults to the global logger tagged with the engine
// component.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics enables metric recording on the given instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracing enables span creation per run and per item.
func WithTracing() Option {
	return func(o *options) { o.tracing = true }
}

// newOptions resolves options against defaults and validates the result.
func newOptions(opts []Option) (options, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.cfg.ApplyDefaults()
	if err := o.cfg.Validate(); err != nil {
		return o, errors.InvalidConfig(err.Error()).WithCause(err)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger().WithComponent("para")
	}
	return o, nil
}

// resolveWorkerCount computes the effective worker count for a run:
// the requested count, or the host's available parallelism when zero,
// clamped so it never exceeds the item count and never drops below one.
func resolveWorkerCount(requested, items int) int {
	if requested == 0 {
		requested = runtime.GOMAXPROCS(0)
	}
	return util.Clamp(requested, 1, items)
}
