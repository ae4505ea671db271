package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/database/seeders"
	"github.com/shashiranjanraj/catalog/internal/server"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

// catalog db:indexes
var indexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the MongoDB collections and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		ctx := cmd.Context()
		client, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background()) //nolint:errcheck

		db := database.Database(client)
		if err := repositories.EnsureCollections(ctx, db); err != nil {
			return err
		}
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Indexes ready on %s\n", config.MongoDatabase())
		return nil
	},
}

// catalog db:seed
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := server.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), app.Services, app.Repos, cmd.OutOrStdout())
	},
}

var adminInput services.RegisterInput

// catalog user:admin --email … --password …
var adminCmd = &cobra.Command{
	Use:   "user:admin",
	Short: "Create an admin account, or grant the admin role to an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := server.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		u, err := seeders.CreateAdmin(cmd.Context(), app.Services, app.Repos, adminInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is an admin (id %s)\n", u.Email, u.ID.Hex())
		return nil
	},
}

func init() {
	adminCmd.Flags().StringVar(&adminInput.Email, "email", "", "account email")
	adminCmd.Flags().StringVar(&adminInput.Password, "password", "", "password for a new account")
	adminCmd.Flags().StringVar(&adminInput.FirstName, "first-name", "Admin", "first name for a new account")
	adminCmd.Flags().StringVar(&adminInput.LastName, "last-name", "User", "last name for a new account")
	_ = adminCmd.MarkFlagRequired("email")
}
