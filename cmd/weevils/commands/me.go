package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewMeCommand creates the me command.
func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "me",
		Aliases: []string{"whoami"},
		Short:   "Show the current user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}

			accounts := make([]string, 0, len(user.Accounts))
			for _, account := range user.Accounts {
				accounts = append(accounts, account.Name+"@"+account.Host.Slug)
			}

			return renderOutput(cmd, user, propertyTable(
				"ID", user.ID.String(),
				"Display Name", orNA(user.DisplayName),
				"Accounts", orNA(strings.Join(accounts, ", ")),
			))
		},
	}
}
