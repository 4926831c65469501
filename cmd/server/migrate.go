package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osa911/formintake/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the store schema",
	Long: `Create the tables (PostgreSQL) or indexes (MongoDB) used for submissions.
Firestore and the in-memory store need no migration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ShutdownTimeout*3)
		defer cancel()

		repo, err := repository.Open(ctx, cfg.StoreURL(), repository.Options{
			FirebaseCredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer repo.Close(context.Background())

		if err := repository.Migrate(ctx, repo); err != nil {
			return err
		}

		logger.Info("Migration completed")
		return nil
	},
}
