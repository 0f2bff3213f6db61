// Command seeduser creates a login for a fresh database.
//
//	go run ./cmd/seeduser --username admin --password secret
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/infra"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/spf13/cobra"
)

var (
	dbURL      string
	username   string
	password   string
	bcryptCost int
)

var rootCmd = &cobra.Command{
	Use:   "seeduser",
	Short: "Create an inventory user",
	Long: `Creates a user directly in the database, migrating the schema first.
An existing username is reported and left untouched.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db", os.Getenv("DATABASE_URL"), "Database connection URL (defaults to $DATABASE_URL)")
	rootCmd.Flags().StringVarP(&username, "username", "u", "admin", "Username to create")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "Password for the new user")
	rootCmd.Flags().IntVar(&bcryptCost, "cost", 12, "bcrypt cost")
	_ = rootCmd.MarkFlagRequired("password")
}

func run(cmd *cobra.Command, _ []string) error {
	if dbURL == "" {
		return errors.New("--db or DATABASE_URL is required")
	}

	db, err := infra.NewDatabase(dbURL, false)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	// The token issuer is only needed for Login.
	svc := service.NewAuthService(repository.NewUserRepository(db), nil, bcryptCost)
	err = svc.Register(ctx, dto.CredentialsRequest{Username: username, Password: password})
	switch {
	case errors.Is(err, service.ErrConflict):
		fmt.Fprintf(cmd.OutOrStdout(), "user %q already exists\n", username)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "user %q created\n", username)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
