package main

import (
	"fmt"

	"github.com/nthumods/mods-backend/internal/database"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/spf13/cobra"
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Manage the cached refine option lists",
}

var facetsWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Reload every facet from the catalog into Redis now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer rdb.Close()

		facetService := service.NewFacetService(
			repository.NewFacetRepository(pool),
			repository.NewFacetCacheRepository(rdb, cfg.FacetCacheTTL),
			log,
		)
		if err := facetService.Warm(ctx); err != nil {
			return fmt.Errorf("warm facets: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Facet cache warmed")
		return nil
	},
}

var facetsRefreshCmd = &cobra.Command{
	Use:   "refresh [facet]...",
	Short: "Queue facets for the server's refresh worker (all when none given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer rdb.Close()

		// The source is never read when only queueing.
		facetService := service.NewFacetService(nil, repository.NewFacetCacheRepository(rdb, cfg.FacetCacheTTL), log)
		queued, err := facetService.EnqueueRefresh(ctx, args...)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Queued %d facet(s): %v\n", len(queued), queued)
		return nil
	},
}

func init() {
	facetsCmd.AddCommand(facetsWarmCmd, facetsRefreshCmd)
	rootCmd.AddCommand(facetsCmd)
}
