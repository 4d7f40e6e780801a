package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/engine"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/favorites"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote/postgres"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/seed"
)

// openFavorites 打开并载入收藏存储
func openFavorites(cfg *config.Config) (*favorites.Store, func(), error) {
	backend, cleanup, err := favorites.NewBackend(cfg.Favorites.Backend, cfg.Favorites.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening favorites: %w", err)
	}
	store := favorites.NewStore(backend)
	if err := store.Load(); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

// --- scan ---

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [sector]",
		Short: "Run one scan and print the board",
		Long: `Run one scan through remote store, generative AI and the built-in seed,
then print up to five pain points.

Examples:
  scout scan
  scout scan Legal
  scout scan "Real Estate" --fav 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sector := ""
			if len(args) == 1 {
				sector = args[0]
			}
			favIdx, err := cmd.Flags().GetIntSlice("fav")
			if err != nil {
				return fmt.Errorf("reading --fav: %w", err)
			}

			store, closeStore, err := openFavorites(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			eng, cleanup, err := engine.NewEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := eng.Scan(cmd.Context(), engine.ScanOptions{
				Sector: sector,
				StateCallback: func(s engine.State, _ model.Source) {
					if s == engine.StateScanning {
						printStep("Scanning %s", sectorLabel(sector))
					}
				},
			})
			if err != nil {
				return err
			}

			for _, n := range favIdx {
				if n < 1 || n > len(out.Points) {
					printWarning("--fav %d out of range (1-%d)", n, len(out.Points))
					continue
				}
				p := out.Points[n-1]
				fav, err := store.Toggle(p)
				if err != nil {
					return fmt.Errorf("saving favorites: %w", err)
				}
				if fav {
					printSuccess("Saved %q", p.Title)
				} else {
					printSuccess("Removed %q", p.Title)
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Source: %s\n", out.Source)
			printPoints(w, out.Points, store.Contains)
			return nil
		},
	}
	cmd.Flags().IntSlice("fav", nil, "toggle favorite for the given result positions (1-based)")
	return cmd
}

func sectorLabel(sector string) string {
	if s := strings.TrimSpace(sector); s != "" && !strings.EqualFold(s, "All") {
		return s
	}
	return "all sectors"
}

// --- favorites ---

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage saved pain points",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved pain points",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, cleanup, err := openFavorites(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			points := store.List()
			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved pain points.")
				return nil
			}
			printPoints(cmd.OutOrStdout(), points, nil)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved pain point by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, cleanup, err := openFavorites(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			p, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("no saved pain point with id %s", args[0])
			}
			if _, err := store.Toggle(p); err != nil {
				return fmt.Errorf("saving favorites: %w", err)
			}
			printSuccess("Removed %q", p.Title)
			return nil
		},
	}

	cmd.AddCommand(list, remove)
	return cmd
}

// --- seed ---

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the pain_points table and load the built-in records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			points, err := seed.All()
			if err != nil {
				return err
			}

			store, err := postgres.NewStorage(cfg.Remote.DB)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer store.Close()

			if err := store.InitSchema(cmd.Context()); err != nil {
				return err
			}
			if err := store.Insert(cmd.Context(), points); err != nil {
				return err
			}
			printSuccess("Inserted %d pain points", len(points))
			return nil
		},
	}
}
