// Command seeder loads JSON exports into the catalog collections.
//
//	seeder --local data/localdb.json --inter data/interdb.json --brands data/brands.json --drop --derive-brands
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"harumnesia/internal/config"
	"harumnesia/internal/database"
	"harumnesia/internal/model"
	"harumnesia/internal/repository"
	"harumnesia/internal/service"
	"harumnesia/internal/version"
	"harumnesia/pkg/logger"

	"github.com/spf13/cobra"
)

type options struct {
	localFile    string
	interFile    string
	brandsFile   string
	drop         bool
	deriveBrands bool
	timeout      time.Duration
}

var errNothingToSeed = errors.New("nothing to seed: pass --local, --inter, --brands or --derive-brands")

func (o options) validate() error {
	if o.localFile == "" && o.interFile == "" && o.brandsFile == "" && !o.deriveBrands {
		return errNothingToSeed
	}
	if o.timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", o.timeout)
	}
	return nil
}

// DeriveBrands turns distinct perfume brand names into brand documents.
func DeriveBrands(names []string) []model.Brand {
	names = service.SortBrands(names)
	brands := make([]model.Brand, 0, len(names))
	for _, n := range names {
		brands = append(brands, model.Brand{Name: n})
	}
	return brands
}

// newRootCmd builds the command; seedFn does the work once flags are valid.
func newRootCmd(seedFn func(context.Context, options) error) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "Load JSON exports into the Harumnesia collections",
		Long:          "Reads JSON arrays (mongoexport extended JSON is accepted) and inserts them into localdb, interdb and brands.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return seedFn(ctx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.localFile, "local", "", "JSON array for the localdb collection")
	f.StringVar(&opts.interFile, "inter", "", "JSON array for the interdb collection")
	f.StringVar(&opts.brandsFile, "brands", "", "JSON array for the brands collection")
	f.BoolVar(&opts.drop, "drop", false, "delete existing documents before inserting")
	f.BoolVar(&opts.deriveBrands, "derive-brands", false, "create a brand for every distinct perfume brand")
	f.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the run")
	return cmd
}

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))

	cmd := newRootCmd(func(ctx context.Context, opts options) error {
		cfg := config.Instance()
		db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer db.Disconnect(context.Background())
		return run(ctx, log, db, opts)
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, db *database.Mongo, opts options) error {
	perfumes := repository.NewPerfumeRepository(db.Database)
	inter := repository.NewInterPerfumeRepository(db.Database)
	brands := repository.NewBrandRepository(db.Database)

	if err := brands.EnsureIndexes(ctx); err != nil {
		return err
	}

	if opts.localFile != "" {
		if err := seed(ctx, log, repository.LocalCollection, opts.localFile, opts.drop, perfumes.DeleteAll, perfumes.InsertMany); err != nil {
			return err
		}
	}
	if opts.interFile != "" {
		if err := seed(ctx, log, repository.InterCollection, opts.interFile, opts.drop, inter.DeleteAll, inter.InsertMany); err != nil {
			return err
		}
	}

	if opts.drop && (opts.brandsFile != "" || opts.deriveBrands) {
		n, err := brands.DeleteAll(ctx)
		if err != nil {
			return err
		}
		log.Info("Dropped documents", slog.String("collection", repository.BrandCollection), slog.Int64("count", n))
	}

	if opts.brandsFile != "" {
		docs, err := readFile(opts.brandsFile)
		if err != nil {
			return err
		}
		list, err := toBrands(docs)
		if err != nil {
			return err
		}
		n, err := brands.InsertMany(ctx, list)
		if err != nil {
			return err
		}
		log.Info("Inserted documents", slog.String("collection", repository.BrandCollection), slog.Int("count", n))
	}

	if opts.deriveBrands {
		names, err := perfumes.DistinctBrands(ctx)
		if err != nil {
			return err
		}
		n, err := brands.InsertMany(ctx, DeriveBrands(names))
		if err != nil {
			return err
		}
		log.Info("Derived brands from perfumes", slog.Int("inserted", n), slog.Int("distinct", len(names)))
	}
	log.Info("Seeding finished")
	return nil
}

func seed(
	ctx context.Context,
	log *slog.Logger,
	collection, path string,
	drop bool,
	deleteAll func(context.Context) (int64, error),
	insertMany func(context.Context, []interface{}) (int, error),
) error {
	docs, err := readFile(path)
	if err != nil {
		return err
	}
	if drop {
		n, err := deleteAll(ctx)
		if err != nil {
			return err
		}
		log.Info("Dropped documents", slog.String("collection", collection), slog.Int64("count", n))
	}
	n, err := insertMany(ctx, docs)
	if err != nil {
		return err
	}
	log.Info("Inserted documents", slog.String("collection", collection), slog.Int("count", n), slog.String("file", path))
	return nil
}
