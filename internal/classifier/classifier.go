// Package classifier maps complaint text to a category label.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrModelUnavailable is returned by every call when the model failed to load.
var ErrModelUnavailable = errors.New("classification model unavailable")

// Classifier assigns a category to complaint text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Func adapts a plain function to Classifier.
type Func func(text string) string

// Classify implements Classifier.
func (f Func) Classify(_ context.Context, text string) (string, error) {
	return f(text), nil
}

// Adapter wraps a model loaded once at startup.
type Adapter struct {
	model   *Model
	loadErr error
}

// New loads the artifact at path. A load failure is logged and kept; the
// adapter then rejects every request with ErrModelUnavailable.
func New(path string, logger *zap.Logger) *Adapter {
	model, err := Load(path)
	if err != nil {
		if logger != nil {
			logger.Error("classifier model unavailable", zap.String("path", path), zap.Error(err))
		}
		return &Adapter{loadErr: err}
	}
	if logger != nil {
		logger.Info("classifier model loaded", zap.String("path", path), zap.Strings("labels", model.Labels()))
	}
	return &Adapter{model: model}
}

// NewFromModel wraps an already loaded model.
func NewFromModel(model *Model) *Adapter {
	return &Adapter{model: model}
}

// Available reports whether predictions can be served.
func (a *Adapter) Available() bool {
	return a.model != nil
}

// Labels lists the known classes, nil when unavailable.
func (a *Adapter) Labels() []string {
	if a.model == nil {
		return nil
	}
	return a.model.Labels()
}

// Classify implements Classifier.
func (a *Adapter) Classify(ctx context.Context, text string) (string, error) {
	if a.model == nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, a.loadErr)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.model.Predict(text), nil
}
