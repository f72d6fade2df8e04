package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"employee_directory/internal/platform/config"
	"employee_directory/internal/platform/db"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *db.Migrator) error {
				if err := m.Up(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okFmt("schema is up to date"))
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *db.Migrator) error {
				rolled, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				if !rolled {
					fmt.Fprintln(cmd.OutOrStdout(), warnFmt("no migrations to roll back"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), okFmt("rolled back one migration"))
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *db.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, s := range statuses {
					if s.Applied {
						fmt.Fprintf(out, "%05d  %-40s %s %s\n", s.Version, s.Path, okFmt("applied"), dimFmt(s.AppliedAt.Format("2006-01-02 15:04:05")))
					} else {
						fmt.Fprintf(out, "%05d  %-40s %s\n", s.Version, s.Path, warnFmt("pending"))
					}
				}
				return nil
			})
		},
	})

	return migrateCmd
}

// withMigrator opens the configured database, runs fn and closes the connection.
func withMigrator(configPath string, fn func(*db.Migrator) error) error {
	dbCfg, err := config.LoadDatabase(configPath)
	if err != nil {
		return err
	}
	conn := dbCfg.Config
	conn.RunMigrations = false

	gdb, err := db.Open(conn, dbCfg.ConnectTimeout)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := db.NewMigrator(conn.Driver, sqlDB)
	if err != nil {
		return err
	}
	return fn(m)
}
