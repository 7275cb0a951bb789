// Command seed loads reference and demo data into the configured stores.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/anonto42/pet-adopt/backend/pkg/config"
	"github.com/anonto42/pet-adopt/backend/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is the connected state shared by the subcommands
type env struct {
	cfg    *config.Config
	db     *config.DB
	repos  services.Repositories
	logger *zap.Logger
}

var rootCmd = &cobra.Command{
	Use:           "seed [command]",
	Short:         "Seed the pet feed stores with species, demo content and dev tokens",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(speciesCmd, demoCmd, tokenCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// connect opens the stores named by the environment. The in-memory document store
// is accepted but its data does not outlive the command.
func connect(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		return nil, err
	}
	if cfg.DocumentStore == config.DocumentStoreMemory {
		zl.Warn("DOCUMENT_STORE=memory: seeded documents are discarded when the command exits")
	}
	db, err := config.InitDB(ctx, cfg, zl.Named("db"))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, repos: db.Repositories(), logger: zl}, nil
}

func (e *env) close() {
	e.db.CloseDB()
	_ = e.logger.Sync()
}

// withEnv adapts a command body that needs the connected stores
func withEnv(run func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		e, err := connect(ctx)
		if err != nil {
			return err
		}
		defer e.close()
		return run(ctx, e, cmd, args)
	}
}
