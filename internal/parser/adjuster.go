package parser

import (
	"os"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Adjuster provides route selection and description overrides based on YAML configuration
type Adjuster struct {
	adjustments *models.Adjustments
}

// NewAdjuster creates a new Adjuster instance
func NewAdjuster() *Adjuster {
	return &Adjuster{
		adjustments: &models.Adjustments{
			Descriptions: []models.RouteDescription{},
			Routes:       []models.RouteSelection{},
		},
	}
}

// Load loads adjustments from a YAML file
func (a *Adjuster) Load(filePath string) error {
	if filePath == "" {
		return nil
	}

	logger.Info("Loading adjustments from file", zap.String("file", filePath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		logger.Warn("Adjustments file not found", zap.String("file", filePath))
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var adjustments models.Adjustments
	if err := yaml.Unmarshal(data, &adjustments); err != nil {
		return err
	}

	a.adjustments = &adjustments
	return nil
}

// IsSelected reports whether the route/method survives the route selection.
// Everything is selected when no routes are configured.
func (a *Adjuster) IsSelected(route, method string) bool {
	if a.adjustments == nil || len(a.adjustments.Routes) == 0 {
		return true
	}

	for _, selection := range a.adjustments.Routes {
		if selection.Path == route {
			for _, m := range selection.Methods {
				if strings.EqualFold(m, method) {
					return true
				}
			}
			return false
		}
	}

	return false
}

// GetDescription returns the updated description for a route/method if it exists
func (a *Adjuster) GetDescription(route, method, originalDesc string) string {
	if a.adjustments == nil || len(a.adjustments.Descriptions) == 0 {
		return originalDesc
	}

	for _, desc := range a.adjustments.Descriptions {
		if desc.Path == route {
			for _, update := range desc.Updates {
				if strings.EqualFold(update.Method, method) {
					return update.NewDescription
				}
			}
			break
		}
	}

	return originalDesc
}

// Apply drops unselected operations from doc and rewrites descriptions in
// place. Paths left without operations are removed. It returns the number of
// dropped operations.
func (a *Adjuster) Apply(doc *descriptor.Document) int {
	dropped := 0
	for _, path := range doc.Paths.Keys() {
		item := doc.Paths.Value(path)
		for _, method := range descriptor.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			if !a.IsSelected(path, method) {
				item.SetOperation(method, nil)
				dropped++
				continue
			}
			op.Description = a.GetDescription(path, method, op.Description)
		}
		if item.IsEmpty() {
			doc.Paths.Delete(path)
		}
	}
	if dropped > 0 {
		logger.Info("Applied route selection",
			zap.Int("dropped_operations", dropped),
			zap.Int("paths", doc.Paths.Len()))
	}
	return dropped
}
