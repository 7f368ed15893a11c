package filter

import (
	"errors"

	"github.com/brizzai/apidoc-filter/internal/config"
	"github.com/brizzai/apidoc-filter/internal/listing"
)

var (
	// ErrInvalidReference is returned when a body parameter references a
	// model that is missing from the document's definitions.
	ErrInvalidReference = errors.New("invalid model reference")
	// ErrNilDocument is returned when Filter is called without a document.
	ErrNilDocument = errors.New("descriptor document is nil")
)

// Options holds the markers and thresholds the engine works with.
type Options struct {
	// RequestHiddenMarker hides a parameter whose access string contains it.
	RequestHiddenMarker string
	// UpdateMarkers are extension keys that flag create/update operations.
	UpdateMarkers []string
	// UpdateSuffix is appended to a model name to name its write variant.
	UpdateSuffix string
	// ReadOnlyThreshold is the number of read-only properties from which a
	// write variant is worth synthesizing.
	ReadOnlyThreshold int
	// ListingMatch selects how listing entries contribute definitions.
	ListingMatch listing.MatchMode
}

// DefaultOptions returns the conventional marker set.
func DefaultOptions() Options {
	return Options{
		RequestHiddenMarker: "RequestHidden",
		UpdateMarkers:       []string{"x-update", "update"},
		UpdateSuffix:        "Update",
		ReadOnlyThreshold:   3,
		ListingMatch:        listing.MatchFirst,
	}
}

// OptionsFromConfig maps the filter config section onto Options. Unset values
// keep their defaults.
func OptionsFromConfig(cfg *config.FilterConfig) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	if cfg.RequestHiddenMarker != "" {
		opts.RequestHiddenMarker = cfg.RequestHiddenMarker
	}
	if len(cfg.UpdateMarkers) > 0 {
		opts.UpdateMarkers = cfg.UpdateMarkers
	}
	if cfg.UpdateSuffix != "" {
		opts.UpdateSuffix = cfg.UpdateSuffix
	}
	if cfg.ReadOnlyThreshold > 0 {
		opts.ReadOnlyThreshold = cfg.ReadOnlyThreshold
	}
	mode, err := listing.ParseMatchMode(cfg.ListingMatch)
	if err != nil {
		return opts, err
	}
	opts.ListingMatch = mode
	return opts, nil
}
