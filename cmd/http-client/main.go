// Command http-client prints the merged dropdown data of a running API.
//
//	http-client brands --api http://localhost:5000
//	http-client perfumes
//	http-client all --timeout 30s
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"harumnesia/internal/utils"
	"harumnesia/internal/version"
	"harumnesia/pkg/catalog"
	"harumnesia/pkg/logger"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type dropdown struct {
	Brands   []string         `json:"brands,omitempty"`
	Perfumes []catalog.Option `json:"perfumes,omitempty"`
}

type fetcher struct {
	brands   bool
	perfumes bool
}

func (f fetcher) fetch(ctx context.Context, c *catalog.Client) (dropdown, error) {
	var out dropdown
	var err error
	if f.brands {
		if out.Brands, err = c.DropdownBrands(ctx); err != nil {
			return out, err
		}
	}
	if f.perfumes {
		if out.Perfumes, err = c.DropdownPerfumes(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

func newRootCmd(log *slog.Logger, stdout io.Writer) *cobra.Command {
	var apiURL string
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "http-client",
		Short:         "Query a Harumnesia API for dropdown data",
		Version:       fmt.Sprintf("%s (commit %s)", version.Version, version.Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", utils.FirstNonEmpty(os.Getenv("API_URL"), "http://localhost:5000"), "Harumnesia API base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "overall timeout")

	sub := func(use, short string, f fetcher) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				log.Info("Catalog client",
					slog.String("version", version.Version),
					slog.String("target", apiURL),
					slog.String("what", use),
				)

				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()

				out, err := f.fetch(ctx, catalog.New(apiURL, 0))
				if err != nil {
					return fmt.Errorf("fetch dropdown data: %w", err)
				}
				log.Info("Fetched dropdown data",
					slog.Int("brands", len(out.Brands)),
					slog.Int("perfumes", len(out.Perfumes)),
				)

				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			},
		}
	}
	root.AddCommand(
		sub("brands", "Merged local and international brand names", fetcher{brands: true}),
		sub("perfumes", "Merged perfume options", fetcher{perfumes: true}),
		sub("all", "Brands and perfumes", fetcher{brands: true, perfumes: true}),
	)
	return root
}

func main() {
	_ = godotenv.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(log, os.Stdout).ExecuteContext(ctx); err != nil {
		log.Error("Catalog client failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
