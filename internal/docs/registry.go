// Package docs keeps the loaded descriptor documents of every documentation
// group. Snapshots are immutable once published; Reload swaps them as a whole.
package docs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrUnknownGroup is returned when a request names a group that is not loaded.
var ErrUnknownGroup = errors.New("unknown documentation group")

// SwaggerVersion is reported for every resource.
const SwaggerVersion = "2.0"

// Snapshot is one loaded documentation group. Document and Index are shared
// between requests and must not be modified.
type Snapshot struct {
	Name     string
	Document *descriptor.Document
	Index    *listing.Index
	Location string
	Source   string
	LoadedAt time.Time
}

// Resource describes a group the way documentation UIs discover them.
type Resource struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	URL            string `json:"url"`
	SwaggerVersion string `json:"swaggerVersion"`
}

// Registry holds the snapshots of all configured groups.
type Registry struct {
	parser   parser.Parser
	groups   []config.GroupConfig
	docsPath string

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	order     []string
}

// NewRegistry creates an empty registry for the configured groups. Call
// Reload to load them.
func NewRegistry(p parser.Parser, cfg *config.Config) *Registry {
	return &Registry{
		parser:    p,
		groups:    cfg.DocumentGroups(),
		docsPath:  cfg.Server.DocsPath,
		snapshots: make(map[string]*Snapshot),
	}
}

// NewStaticRegistry creates a registry serving fixed snapshots.
func NewStaticRegistry(docsPath string, snapshots ...*Snapshot) *Registry {
	r := &Registry{docsPath: docsPath, snapshots: make(map[string]*Snapshot)}
	for _, s := range snapshots {
		if s.Location == "" {
			s.Location = Location(docsPath, s.Name)
		}
		if s.Index == nil {
			s.Index = listing.Derive(s.Document)
		}
		r.snapshots[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	return r
}

// Location returns the docs endpoint location of group.
func Location(docsPath, group string) string {
	if group == "" || group == config.DefaultGroup {
		return docsPath
	}
	return docsPath + "?group=" + url.QueryEscape(group)
}

// Reload loads every configured group and replaces the published snapshots.
// Nothing is replaced when a group fails to load.
func (r *Registry) Reload(ctx context.Context) error {
	if r.parser == nil {
		return nil
	}

	snapshots := make(map[string]*Snapshot, len(r.groups))
	order := make([]string, 0, len(r.groups))
	for _, group := range r.groups {
		snapshot, err := r.load(ctx, group)
		if err != nil {
			return fmt.Errorf("group %q: %w", group.Name, err)
		}
		snapshots[group.Name] = snapshot
		order = append(order, group.Name)
	}

	r.mu.Lock()
	r.snapshots = snapshots
	r.order = order
	r.mu.Unlock()

	logger.Info("Documentation groups loaded", zap.Strings("groups", order))
	return nil
}

func (r *Registry) load(ctx context.Context, group config.GroupConfig) (*Snapshot, error) {
	doc, err := r.parser.Load(ctx, group.Source(), group.AdjustmentsFile)
	if err != nil {
		return nil, err
	}

	var idx *listing.Index
	if group.ListingsFile != "" {
		if idx, err = r.parser.LoadListings(ctx, group.ListingsFile); err != nil {
			return nil, err
		}
	} else {
		idx = listing.Derive(doc)
		logger.Debug("Derived listings from document",
			zap.String("group", group.Name),
			zap.Int("listings", idx.Len()))
	}

	return &Snapshot{
		Name:     group.Name,
		Document: doc,
		Index:    idx,
		Location: Location(r.docsPath, group.Name),
		Source:   group.Source(),
		LoadedAt: time.Now(),
	}, nil
}

// Get returns the snapshot of the named group. An empty name selects the
// default group.
func (r *Registry) Get(name string) (*Snapshot, error) {
	if name == "" {
		name = config.DefaultGroup
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	return snapshot, nil
}

// Names returns the loaded group names in configuration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Resources lists the loaded groups.
func (r *Registry) Resources() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resources := make([]Resource, 0, len(r.order))
	for _, name := range r.order {
		s := r.snapshots[name]
		resources = append(resources, Resource{
			Name:           s.Name,
			Location:       s.Location,
			URL:            s.Location,
			SwaggerVersion: SwaggerVersion,
		})
	}
	return resources
}

// Module provides the documentation registry and loads it on start
var Module = fx.Module("docs",
	fx.Provide(NewRegistry),
	fx.Invoke(func(lc fx.Lifecycle, r *Registry) {
		lc.Append(fx.StartHook(r.Reload))
	}),
)
