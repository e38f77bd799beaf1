package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/database"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Opener returns the database the commands work on.
type Opener func(cfg *config.Config) (*gorm.DB, error)

// OpenDatabase connects with the configured driver and migrates the schema.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// NewRootCmd assembles the leadctl command tree.
func NewRootCmd(cfg *config.Config, open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Buyer lead administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		MigrateCmd(cfg, open),
		UserCmd(cfg, open),
		BuyersCmd(cfg, open),
		TokenCmd(cfg),
	)
	return root
}

func MigrateCmd(cfg *config.Config, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}

func UserCmd(cfg *config.Config, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts for password mode",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			password, _ := cmd.Flags().GetString("password")

			db, err := open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			auth := services.NewAuthService(db, cfg, services.NewTokenService(cfg))
			user, err := auth.CreateUser(email, name, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	create.Flags().String("email", "", "login email")
	create.Flags().String("name", "", "display name")
	create.Flags().String("password", "", "login password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func BuyersCmd(cfg *config.Config, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buyers",
		Short: "Bulk import and export of buyer leads",
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import buyers from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")
			path, _ := cmd.Flags().GetString("file")

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			db, err := open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			result, err := newCSVService(db, cfg).Import(owner, f)
			if err != nil {
				return err
			}
			printImport(cmd.OutOrStdout(), result)
			return nil
		},
	}
	importCmd.Flags().String("owner", "", "identity id that will own the rows")
	importCmd.Flags().String("file", "", "CSV file to import")
	_ = importCmd.MarkFlagRequired("owner")
	_ = importCmd.MarkFlagRequired("file")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export an owner's buyers as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")
			out, _ := cmd.Flags().GetString("out")

			db, err := open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return newCSVService(db, cfg).Export(owner, dto.BuyerFilter{}, w)
		},
	}
	exportCmd.Flags().String("owner", "", "identity id whose rows are exported")
	exportCmd.Flags().String("out", "", "output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("owner")

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}

func TokenCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Session token utilities",
	}

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a session token for an identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var id identity.Identity
			id.ID, _ = cmd.Flags().GetString("id")
			id.Email, _ = cmd.Flags().GetString("email")
			id.Name, _ = cmd.Flags().GetString("name")

			token, err := services.NewTokenService(cfg).Issue(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().String("id", "", "identity id")
	issue.Flags().String("email", "", "identity email")
	issue.Flags().String("name", "", "identity display name")
	_ = issue.MarkFlagRequired("id")

	cmd.AddCommand(issue)
	return cmd
}

func newCSVService(db *gorm.DB, cfg *config.Config) *services.CSVService {
	return services.NewCSVService(db, services.NewBuyerService(db, cfg), cfg)
}

func printImport(w io.Writer, result *dto.ImportResult) {
	fmt.Fprintf(w, "Imported %d rows\n", result.Imported)
	for _, rowErr := range result.Errors {
		for _, issue := range rowErr.Details {
			fmt.Fprintf(w, "  row %d: %s: %s\n", rowErr.Row, issue.Path, issue.Message)
		}
	}
}
