package hfsm

import (
	"math/rand"

	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRegionName is the reserved name given to a region lazily created
// when a vertex is constructed directly under a State, per spec Data
// Model §3: "A default region is lazily created when a vertex is
// constructed with a State parent; its reserved name is configurable."
const DefaultRegionName = ".region"

// Config carries the engine-level settings the design notes call out as
// better collected into one object than scattered as ambient globals:
// namespace separator, default region name, the completion-on-internal
// flag, the pluggable random source, logger and tracer.
type Config struct {
	// NamespaceSeparator joins ancestor names into a qualified name.
	NamespaceSeparator string
	// DefaultRegionName overrides the reserved implicit-region name.
	DefaultRegionName string
	// InternalTransitionsTriggerCompletion makes an Internal transition
	// re-evaluate completion transitions from its source after running,
	// per spec §4.2 Pass B.
	InternalTransitionsTriggerCompletion bool
	// AutoCompile lets the evaluator compile on first use when the model
	// is dirty, instead of requiring an explicit Compile call.
	AutoCompile bool
	// Random selects an index in [0, n) for Choice resolution.
	Random embedded.Random
	// Logger receives structural and runtime diagnostics.
	Logger embedded.Logger
	// TracerProvider backs compile/evaluate span instrumentation; a nil
	// provider falls back to telemetry.NoopProvider().
	TracerProvider trace.TracerProvider

	tracer *telemetry.Tracer
}

// ConfigOption mutates a Config during NewStateMachine.
type ConfigOption func(*Config)

// WithNamespaceSeparator overrides the default "." qualified-name joiner.
func WithNamespaceSeparator(sep string) ConfigOption {
	return func(c *Config) { c.NamespaceSeparator = sep }
}

// WithDefaultRegionName overrides the reserved implicit-region name.
func WithDefaultRegionName(name string) ConfigOption {
	return func(c *Config) { c.DefaultRegionName = name }
}

// WithInternalTransitionsTriggerCompletion enables re-evaluating
// completion transitions after an Internal transition fires.
func WithInternalTransitionsTriggerCompletion(v bool) ConfigOption {
	return func(c *Config) { c.InternalTransitionsTriggerCompletion = v }
}

// WithAutoCompile toggles whether Evaluate silently compiles a dirty model
// instead of requiring an explicit Compile call first. Initialise always
// compiles a dirty model, whatever this setting.
func WithAutoCompile(v bool) ConfigOption {
	return func(c *Config) { c.AutoCompile = v }
}

// WithRandom overrides the uniform selector used to resolve Choice
// pseudo-states with multiple enabled branches.
func WithRandom(r embedded.Random) ConfigOption {
	return func(c *Config) { c.Random = r }
}

// WithLogger overrides the default slog-backed Logger.
func WithLogger(l embedded.Logger) ConfigOption {
	return func(c *Config) { c.Logger = l }
}

// WithTracerProvider overrides the default no-op OpenTelemetry provider.
func WithTracerProvider(p trace.TracerProvider) ConfigOption {
	return func(c *Config) { c.TracerProvider = p }
}

func defaultConfig() Config {
	return Config{
		NamespaceSeparator:                    ".",
		DefaultRegionName:                     DefaultRegionName,
		InternalTransitionsTriggerCompletion:  false,
		AutoCompile:                           true,
		Random:                                defaultRandom,
		Logger:                                defaultLogger,
	}
}

func defaultRandom(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return uint32(rand.Intn(int(n)))
}

func (c *Config) tracerOrDefault() *telemetry.Tracer {
	if c.tracer == nil {
		c.tracer = telemetry.New(c.TracerProvider)
	}
	return c.tracer
}
