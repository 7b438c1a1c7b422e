// Package figures holds the compiled-in datasets and the charts drawn
// from them.
package figures

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vdobler/figure"
)

// Builder constructs a chart ready to be saved.
type Builder func(log *zap.Logger) (*figure.Chart, error)

// All maps the figure names to their builders.
var All = map[string]Builder{
	"forest": Forest,
	"auc":    AUC,
	"plaque": Plaque,
}

// Names returns the figure names in lexical order.
func Names() []string {
	names := figure.NewStringSet()
	for name := range All {
		names.Add(name)
	}
	return names.Elements()
}

// Build constructs the named figure.
func Build(name string, log *zap.Logger) (*figure.Chart, error) {
	build, ok := All[name]
	if !ok {
		return nil, fmt.Errorf("unknown figure %q (have %v)", name, Names())
	}
	chart, err := build(log)
	if err != nil {
		return nil, fmt.Errorf("figure %s: %w", name, err)
	}
	return chart, nil
}
