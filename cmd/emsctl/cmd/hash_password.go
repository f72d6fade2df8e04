package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	authusecase "employee_directory/internal/feature/auth/usecase"
)

func newHashPasswordCmd() *cobra.Command {
	var (
		cost      int
		fromStdin bool
	)

	c := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a {bcrypt} value for the members.pwd column",
		Long: `Hash a password with bcrypt and print it with the {bcrypt} prefix.
The value can be stored directly in members.pwd. Use --stdin to keep the
password out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case fromStdin:
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				raw = strings.TrimRight(line, "\r\n")
			case len(args) == 1:
				raw = args[0]
			default:
				return errors.New("password argument or --stdin is required")
			}
			if raw == "" {
				return errors.New("password must not be empty")
			}

			encoded, err := authusecase.EncodeBcrypt(raw, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
	c.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	c.Flags().BoolVar(&fromStdin, "stdin", false, "read the password from standard input")
	return c
}
