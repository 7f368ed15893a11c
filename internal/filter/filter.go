// Package filter narrows a Swagger descriptor document to what a single
// request asks for.
//
// A pass runs a fixed pipeline: path selection, operation tag filtering,
// definition pruning, tag pruning and finally the access filter, which drops
// hidden parameters and synthesizes write variants of update models. Each
// pass works on a shallow copy of the document, so a loaded document can be
// filtered by many requests at once.
package filter

import (
	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Request is what a caller asks the filter for. Empty fields disable the
// corresponding stage.
type Request struct {
	// Path is an exact path or a path prefix.
	Path string
	// Tags is a comma-delimited tag list.
	Tags string
}

// Result is the outcome of a filtering pass.
type Result struct {
	Document *descriptor.Document
	// Empty is set when no path survived the narrowing stages.
	Empty bool
	// Synthesized lists the write variants created during the pass.
	Synthesized []string
	// RemovedParameters counts parameters dropped by the access filter.
	RemovedParameters int
}

// Engine runs filtering passes. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	opts Options
	log  *zap.Logger
}

// New creates an engine. A nil logger falls back to the global logger.
func New(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = logger.Named("filter")
	}
	return &Engine{opts: opts, log: log}
}

// NewEngine creates an engine from the application configuration.
func NewEngine(cfg *config.Config, log *zap.Logger) (*Engine, error) {
	opts, err := OptionsFromConfig(&cfg.Filter)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log = log.Named("filter")
	}
	return New(opts, log), nil
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// Filter derives the document req asks for. doc and idx are only read. When
// idx is nil the listings are derived from doc.
func (e *Engine) Filter(req Request, doc *descriptor.Document, idx *listing.Index) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if idx == nil {
		idx = listing.Derive(doc)
	}

	p := &pass{Engine: e, doc: doc.ShallowCopy()}
	tags := ParseTags(req.Tags)

	if req.Path != "" {
		p.doc.Paths = e.SelectPaths(p.doc.Paths, req.Path)
		if p.doc.Paths.Len() > 1 && len(tags) > 0 {
			p.doc.Paths = e.FilterOperationsByTags(p.doc.Paths, tags)
		}
		e.PruneDefinitions(p.doc, idx)
		p.sortedDefinitions = true
		e.PruneTags(p.doc, doc.Tags)
	} else if len(tags) > 0 {
		p.doc.Paths = e.FilterOperationsByTags(p.doc.Paths, tags)
	}

	if err := p.filterAccess(); err != nil {
		return nil, err
	}

	e.log.Debug("Filtered descriptor",
		zap.String("path", req.Path),
		zap.String("tags", req.Tags),
		zap.Int("paths", p.doc.Paths.Len()),
		zap.Int("definitions", p.doc.Definitions.Len()),
		zap.Strings("synthesized", p.synthesized))

	return &Result{
		Document:          p.doc,
		Empty:             p.doc.Paths.Len() == 0,
		Synthesized:       p.synthesized,
		RemovedParameters: p.removed,
	}, nil
}

// Module provides the filter engine
var Module = fx.Module("filter",
	fx.Provide(NewEngine),
)
