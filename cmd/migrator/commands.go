package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/heist-trivia/internal/config"
	"github.com/gokatarajesh/heist-trivia/internal/db/postgres"
	"github.com/gokatarajesh/heist-trivia/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
	"github.com/gokatarajesh/heist-trivia/internal/question"
)

func newRootCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:           "migrator",
		Short:         "Manage the trivia database schema and question bank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "db/migrations", "directory containing migration files")

	cmd.AddCommand(
		newGooseCmd("up", "Apply all pending migrations", &dir, goose.UpContext),
		newGooseCmd("down", "Roll back the latest migration", &dir, goose.DownContext),
		newGooseCmd("status", "Print migration status", &dir, goose.StatusContext),
		newSeedCmd(),
	)
	return cmd
}

func newGooseCmd(use, short string, dir *string, run func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			migrationDir, err := filepath.Abs(*dir)
			if err != nil {
				return fmt.Errorf("resolve migration directory: %w", err)
			}
			if _, err := os.Stat(migrationDir); err != nil {
				return fmt.Errorf("migration directory %s: %w", migrationDir, err)
			}

			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			if err := run(cmd.Context(), db, migrationDir); err != nil {
				return fmt.Errorf("goose %s: %w", use, err)
			}
			log.Info().Str("command", use).Str("migration_dir", migrationDir).Msg("migration command finished")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import YAML question banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			banks, err := loadBanks(files)
			if err != nil {
				return err
			}

			pgCfg, err := config.LoadPostgres()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, pgCfg.DSN(), postgres.PoolConfig{MaxConns: 2})
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			repo := repository.NewQuestionRepository(sqlcgen.New(pool), postgres.NewTransactor(pool))
			svc := question.NewService(repo, log.Logger, question.ServiceOptions{})
			for i, bank := range banks {
				stored, err := svc.Import(ctx, bank)
				if err != nil {
					return fmt.Errorf("import %s: %w", files[i], err)
				}
				log.Info().
					Str("file", files[i]).
					Int("count", len(stored)).
					Int("skipped", len(bank)-len(stored)).
					Msg("question bank imported")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&files, "file", []string{"db/seeds/questions.yaml"}, "YAML question bank(s) to import")
	return cmd
}

// loadBanks parses every file concurrently and reports the first failure.
func loadBanks(files []string) ([][]question.Question, error) {
	banks := make([][]question.Question, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			qs, err := question.LoadSeedFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			banks[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return banks, nil
}

func openDB(ctx context.Context) (*sql.DB, error) {
	pgCfg, err := config.LoadPostgres()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", pgCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Str("host", pgCfg.Host).Int("port", pgCfg.Port).Str("database", pgCfg.Database).Msg("connected to database")
	return db, nil
}
