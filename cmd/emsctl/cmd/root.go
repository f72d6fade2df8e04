// Package cmd implements the emsctl commands.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okFmt   = color.New(color.FgGreen).SprintFunc()
	warnFmt = color.New(color.FgYellow).SprintFunc()
	dimFmt  = color.New(color.Faint).SprintFunc()
)

// NewRootCmd builds the emsctl command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "emsctl",
		Short:        "Employee directory operator tool",
		Long:         "Operator commands for the employee directory: schema migrations and password hashing.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")

	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newHashPasswordCmd())
	return root
}
