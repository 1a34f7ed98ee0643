package paper

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/agiangrant/paper/internal/logger"
	"github.com/agiangrant/paper/retained"
	"github.com/agiangrant/paper/style"
	"github.com/agiangrant/paper/theme"
)

// Version is the paper release.
const Version = "0.1.0"

// Engine owns everything one UI needs to resolve styles frame after frame.
type Engine struct {
	config    Config
	log       *logger.Logger
	templates *style.TemplateSet
	theme     *theme.Theme
	ctx       *retained.Context
}

// EngineOption customizes NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logWriter     io.Writer
	meterProvider metric.MeterProvider
}

// WithLogWriter sends log output to w instead of stderr.
func WithLogWriter(w io.Writer) EngineOption {
	return func(o *engineOptions) { o.logWriter = w }
}

// WithMeterProvider records metrics with mp instead of the global provider.
// It is ignored when metrics are disabled in the config.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(o *engineOptions) { o.meterProvider = mp }
}

// NewEngine creates an engine with the given configuration
func NewEngine(config Config, opts ...EngineOption) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	log, err := logger.New(logger.Options{
		Level:         config.Log.Level,
		HumanReadable: config.Log.Human,
		Writer:        o.logWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	mp := o.meterProvider
	if !config.Metrics.Enabled {
		mp = noop.NewMeterProvider()
	}

	e := &Engine{
		config:    config,
		log:       log,
		templates: style.NewTemplateSet(),
	}
	if config.Theme.File != "" {
		if err := e.LoadTheme(config.Theme.File); err != nil {
			return nil, err
		}
	}

	e.ctx, err = retained.NewContext(e.templates,
		retained.WithPoolConfig(style.PoolConfig{MaxRetained: config.Pool.MaxRetained}),
		retained.WithLogger(log),
		retained.WithMeterProvider(mp),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	log.Info("engine ready", "version", Version, "templates", e.templates.Len())
	return e, nil
}

// LoadTheme installs the theme at path. Templates with the same name as an
// existing one replace it; elements pick them up on the next frame.
func (e *Engine) LoadTheme(path string) error {
	th, err := theme.LoadFile(path, e.templates, e.log)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	e.theme = th
	return nil
}

func (e *Engine) Config() Config                { return e.config }
func (e *Engine) Logger() *logger.Logger        { return e.log }
func (e *Engine) Templates() *style.TemplateSet { return e.templates }
func (e *Engine) Context() *retained.Context    { return e.ctx }

// Theme returns the last theme loaded, or nil.
func (e *Engine) Theme() *theme.Theme { return e.theme }

// Frame runs one frame: declare is called between BeginFrame and EndFrame
// to declare the element tree, then styles are resolved and advanced by dt
// seconds.
func (e *Engine) Frame(dt float64, declare func(*retained.Context)) (retained.FrameStats, error) {
	e.ctx.BeginFrame()
	if declare != nil {
		declare(e.ctx)
	}
	return e.ctx.EndFrame(dt)
}
