package model

import "go.uber.org/zap"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Labeler derives a caption from the model name when Meta.Caption is
	// empty.
	Labeler func(string) string
	Logger  *zap.Logger
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		Logger:  zap.NewNop(),
	}
}
