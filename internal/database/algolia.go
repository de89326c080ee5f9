package database

import (
	"errors"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/nthumods/mods-backend/internal/config"
	"github.com/rs/zerolog"
)

// ErrSearchNotConfigured is returned when Algolia credentials are missing.
var ErrSearchNotConfigured = errors.New("algolia credentials are not configured")

// NewAlgoliaIndex opens the course search index with the search-only key.
func NewAlgoliaIndex(cfg *config.Config, log zerolog.Logger) (*search.Index, error) {
	if cfg.AlgoliaAppID == "" || cfg.AlgoliaSearchKey == "" {
		return nil, ErrSearchNotConfigured
	}

	client := search.NewClient(cfg.AlgoliaAppID, cfg.AlgoliaSearchKey)
	index := client.InitIndex(cfg.AlgoliaIndex)

	log.Info().
		Str("app_id", cfg.AlgoliaAppID).
		Str("index", cfg.AlgoliaIndex).
		Msg("Algolia index ready")

	return index, nil
}
