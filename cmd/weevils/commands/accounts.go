package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage git host accounts",
		Long:    "List, inspect and add the user and organization accounts known on git hosts",
	}

	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsGetCommand())
	cmd.AddCommand(newAccountsCreateCommand())

	return cmd
}

func newAccountsListCommand() *cobra.Command {
	var (
		opts weevils.AccountListOptions
		host string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			opts.HostID, err = resolveHostID(cmd.Context(), client, host)
			if err != nil {
				return err
			}

			accounts, err := client.Accounts().List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return renderOutput(cmd, accounts, accountsTable(accounts))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "only list accounts on this host (id or slug)")
	addPageFlags(cmd, &opts.Page)

	return cmd
}

func newAccountsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := weevils.ParseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			account, err := client.Accounts().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return renderOutput(cmd, account, propertyTable(
				"ID", account.ID.String(),
				"Name", account.Name,
				"Host", account.Host.Name,
			))
		},
	}
}

func newAccountsCreateCommand() *cobra.Command {
	var (
		host string
		name string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an account on a host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			hostID, err := resolveHostID(cmd.Context(), client, host)
			if err != nil {
				return err
			}

			account, err := client.Accounts().Create(cmd.Context(), &weevils.AccountCreateRequest{
				HostID: hostID,
				Name:   name,
			})
			if err != nil {
				return err
			}

			return renderOutput(cmd, account, accountsTable([]weevils.Account{*account}))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host the account lives on (id or slug)")
	cmd.Flags().StringVar(&name, "name", "", "account name on the host")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func accountsTable(accounts []weevils.Account) *tableData {
	table := &tableData{header: []string{"ID", "Name", "Host"}}
	for _, account := range accounts {
		table.add(account.ID.String(), account.Name, account.Host.Name)
	}

	return table
}
