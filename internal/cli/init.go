package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/labres/internal/config"
	"github.com/example/labres/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var dbPath string
	var policy string
	var logLevel string
	var seed bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize LABRES in the current directory",
		Long: `Write .labres/config.json and create the database with the required schema.

Examples:
  labres init
  labres init --policy approved_and_pending --seed
  labres init --db ./labres.db --log-level info`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg, err := config.LoadConfig(cwd)
			switch {
			case err == nil && !force:
				return fmt.Errorf("config already exists at %s (use --force to overwrite)",
					filepath.Join(cwd, ".labres", "config.json"))
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return err
			}

			cfg = config.Default()
			cfg.DBPath = dbPath
			if policy != "" {
				cfg.ConflictPolicy = policy
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if _, err := cfg.Policy(); err != nil {
				return err
			}

			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}
			fmt.Fprintln(out, "✓ Config written to .labres/config.json")

			path := cfg.DBPath
			if path == "" {
				path, err = db.DefaultPath()
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "Initializing database at %s\n", path)
			database, err := db.Open(path)
			if err != nil {
				return err
			}
			defer database.Close()
			fmt.Fprintln(out, "✓ Database initialized successfully")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Fprintln(out, "✓ Development fixtures loaded")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  labres lab create --code CHEM-1 --name \"Chemistry Lab\"")
			fmt.Fprintln(out, "  labres reservation list")

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default ~/.labres/labres.db)")
	cmd.Flags().StringVar(&policy, "policy", "", "Conflict policy: approved_only or approved_and_pending")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warning, error)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Load development fixtures")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
