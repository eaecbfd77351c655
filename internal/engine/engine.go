// Package engine resolves a device name into a classified device.
//
// It coordinates the GLPI client with the domain classifier: search the
// inventory, classify the raw record, then attach the device's network ports
// so the topology queries have something to work on.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"glpiexplorer/internal/domain"
	"glpiexplorer/internal/logging"
)

// Finder is the part of the GLPI client the engine depends on
type Finder interface {
	SearchByName(ctx context.Context, name string) (domain.RawAssetRecord, error)
	ListPorts(ctx context.Context, assetType domain.AssetType, id int) ([]domain.Port, error)
}

// Engine looks devices up and classifies them
type Engine struct {
	finder Finder
	logger *slog.Logger
}

// New creates an engine over finder. A nil logger discards output.
func New(finder Finder, logger *slog.Logger) *Engine {
	return &Engine{
		finder: finder,
		logger: logging.OrDiscard(logger),
	}
}

// FindDevice searches for name, classifies the match and attaches its ports.
// Lookup errors from the finder are returned unchanged in the error chain.
func (e *Engine) FindDevice(ctx context.Context, name string) (domain.Device, error) {
	rec, err := e.finder.SearchByName(ctx, name)
	if err != nil {
		return domain.Device{}, err
	}

	device, err := domain.Classify(rec)
	if err != nil {
		return domain.Device{}, fmt.Errorf("classify %q: %w", name, err)
	}

	e.logger.Info("device classified",
		"variant", device.Variant,
		"id", device.ID,
		"name", device.Name,
		"itemtype", device.AssetType,
	)

	// Cables have no NetworkPort endpoint
	if device.Variant == domain.VariantCable {
		return device, nil
	}

	ports, err := e.finder.ListPorts(ctx, device.AssetType, device.ID)
	if err != nil {
		return domain.Device{}, err
	}
	e.logger.Debug("ports attached", "id", device.ID, "count", len(ports))

	return device.WithPorts(ports), nil
}

// Lookup finds a device and builds its report in one step
func (e *Engine) Lookup(ctx context.Context, name string) (Report, error) {
	device, err := e.FindDevice(ctx, name)
	if err != nil {
		return Report{}, err
	}
	report := NewReport(device)
	if len(report.Ambiguous) > 0 {
		e.logger.Warn("several OUT ports share a number, first one used",
			"device", device.Name,
			"numbers", report.Ambiguous,
		)
	}
	return report, nil
}
