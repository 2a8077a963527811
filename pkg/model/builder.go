package model

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/internal/model"
)

// Builder turns ordered attribute declarations into schemas.
type Builder interface {
	DataModel(name string, meta Meta, attrs ...Attr) (*Schema, error)
	ContainerModel(name string, model *Schema, meta Meta, attrs ...Attr) (*Schema, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	logger  *zap.Logger
}

// WithLabeler overrides how captions are derived from model names.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Labeler: cfg.labeler,
		Logger:  cfg.logger,
	})
}

// DefaultLabeler is the caption derivation used when none is configured.
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}
