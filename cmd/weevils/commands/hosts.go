package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewHostsCommand creates the hosts command group.
func NewHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hosts",
		Aliases: []string{"host"},
		Short:   "Manage git hosts",
		Long:    "List, inspect and register the git hosts weevils run against",
	}

	cmd.AddCommand(newHostsListCommand())
	cmd.AddCommand(newHostsGetCommand())
	cmd.AddCommand(newHostsCreateCommand())
	cmd.AddCommand(newHostsGithubCommand())

	return cmd
}

func newHostsListCommand() *cobra.Command {
	var page weevils.Page

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List git hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			hosts, err := client.Hosts().List(cmd.Context(), page)
			if err != nil {
				return err
			}

			return renderOutput(cmd, hosts, hostsTable(hosts))
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}

func newHostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID_OR_SLUG",
		Short: "Get a git host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			host, err := client.Hosts().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(cmd, host, hostTable(*host))
		},
	}
}

func newHostsCreateCommand() *cobra.Command {
	var request weevils.HostCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a git host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			host, err := client.Hosts().Create(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return renderOutput(cmd, host, hostTable(*host))
		},
	}

	cmd.Flags().StringVar(&request.Name, "name", "", "host name")
	cmd.Flags().StringVar(&request.APIURL, "api-url", "", "API URL of the host")
	cmd.Flags().StringVar(&request.CloneURL, "clone-url", "", "base clone URL of the host")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newHostsGithubCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "github",
		Short: "Show the GitHub host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			github, err := client.Github(cmd.Context())
			if err != nil {
				return err
			}

			host := github.Record()

			return renderOutput(cmd, host, hostTable(host))
		},
	}
}

func hostsTable(hosts []weevils.GitHost) *tableData {
	table := &tableData{header: []string{"ID", "Name", "Slug", "Private"}}
	for _, host := range hosts {
		table.add(host.ID.String(), host.Name, host.Slug, yesNo(host.Private))
	}

	return table
}

func hostTable(host weevils.GitHost) *tableData {
	return propertyTable(
		"ID", host.ID.String(),
		"Name", host.Name,
		"Slug", host.Slug,
		"Private", yesNo(host.Private),
	)
}
