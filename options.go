package rook

import "go.uber.org/zap"

// An Option configures the injector being built by New. Modules are options
// themselves, so registrations and settings mix freely:
//
//	inj, err := rook.New(namesModule, rook.WithLogger(logger))
type Option interface {
	applyOption(*injectorConfig)
}

type injectorConfig struct {
	modules []*Module
	logger  *zap.Logger
}

func (m *Module) applyOption(cfg *injectorConfig) {
	cfg.modules = append(cfg.modules, m)
}

// WithLogger sets the logger used for debug-level diagnostics during
// scanning, graph construction, and resolution. The default is a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return loggerOption{logger: logger}
}

type loggerOption struct {
	logger *zap.Logger
}

func (o loggerOption) applyOption(cfg *injectorConfig) {
	if o.logger != nil {
		cfg.logger = o.logger
	}
}

// A CreateOption adjusts a single Create or Inject call.
type CreateOption interface {
	applyCreateOption(*createOptions)
}

type createOptions struct {
	overrides map[string]any
}

// Override supplies an explicit value for a parameter name, taking
// precedence over providers and defaults. Overrides apply to the target's
// own constructor and injection methods, not to nested provider resolution.
func Override(name string, value any) CreateOption {
	return overrideOption{name: name, value: value}
}

type overrideOption struct {
	name  string
	value any
}

func (o overrideOption) applyCreateOption(opts *createOptions) {
	if opts.overrides == nil {
		opts.overrides = make(map[string]any)
	}
	opts.overrides[o.name] = o.value
}
