package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Service loads and saves the settings document. Construct it once and pass
// it to every component that reads preferences.
type Service struct {
	store  Store
	logger *log.Logger
}

// NewService creates a settings service over store.
func NewService(store Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Load returns the stored settings, or the defaults when nothing valid is
// stored. It never fails; storage errors are logged.
func (s *Service) Load(ctx context.Context) Settings {
	raw, ok, err := s.store.Get(ctx, Key)
	if err != nil {
		s.logf("[settings] load failed, using defaults: %v", err)
		return Defaults()
	}
	if !ok || raw == "" {
		return Defaults()
	}
	return Normalize([]byte(raw))
}

// Save normalizes settings, writes the whole object and returns what was written.
func (s *Service) Save(ctx context.Context, settings Settings) (Settings, error) {
	normalized := NormalizeSettings(settings)

	data, err := json.Marshal(normalized)
	if err != nil {
		return normalized, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Set(ctx, Key, string(data)); err != nil {
		return normalized, fmt.Errorf("failed to save settings: %w", err)
	}
	return normalized, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
