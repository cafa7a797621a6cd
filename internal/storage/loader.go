package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/geohomepro/property-insight/internal/domain"
	"github.com/geohomepro/property-insight/internal/neighborhood"
	"github.com/geohomepro/property-insight/internal/schemas"
)

// Loader reads catalog and profile files, validating each element against the
// embedded JSON Schemas. One malformed element is skipped and reported; it
// never sinks the rest of the file.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "storage")}
}

// LoadCatalog reads a JSON array of property records.
func (l *Loader) LoadCatalog(path string) ([]domain.PropertyRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	out := make([]domain.PropertyRecord, 0, len(raw))
	for i, msg := range raw {
		var generic any
		if err := json.Unmarshal(msg, &generic); err != nil {
			l.logger.Warn("skipping unreadable catalog entry", "index", i, "reason", err)
			continue
		}
		if err := schemas.Property.Validate(generic); err != nil {
			l.logger.Warn("skipping invalid catalog entry", "index", i, "reason", err)
			continue
		}
		var p domain.PropertyRecord
		if err := json.Unmarshal(msg, &p); err != nil {
			l.logger.Warn("skipping unreadable catalog entry", "index", i, "reason", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadProfiles reads a JSON array of neighborhood profiles into a table keyed
// by district name.
func (l *Loader) LoadProfiles(path string) (neighborhood.ProfileTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal profiles: %w", err)
	}

	table := make(neighborhood.ProfileTable, len(raw))
	for i, msg := range raw {
		var generic any
		if err := json.Unmarshal(msg, &generic); err != nil {
			l.logger.Warn("skipping unreadable profile", "index", i, "reason", err)
			continue
		}
		if err := schemas.Neighborhood.Validate(generic); err != nil {
			l.logger.Warn("skipping invalid profile", "index", i, "reason", err)
			continue
		}
		var p domain.NeighborhoodProfile
		if err := json.Unmarshal(msg, &p); err != nil {
			l.logger.Warn("skipping unreadable profile", "index", i, "reason", err)
			continue
		}
		table[p.District] = p
	}
	return table, nil
}
