package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewReposCommand creates the repos command group.
func NewReposCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"repo", "repositories"},
		Short:   "Manage repositories",
		Long:    "List, inspect and track the repositories weevils run against",
	}

	cmd.AddCommand(newReposListCommand())
	cmd.AddCommand(newReposGetCommand())
	cmd.AddCommand(newReposFindCommand())
	cmd.AddCommand(newReposCreateCommand())
	cmd.AddCommand(newReposJobsCommand())

	return cmd
}

func newReposListCommand() *cobra.Command {
	var (
		opts  weevils.RepositoryListOptions
		host  string
		owner string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories",
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

			opts.OwnerID, err = optionalID(owner)
			if err != nil {
				return err
			}

			repos, err := client.Repos().List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return renderOutput(cmd, repos, reposTable(repos))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "only list repositories on this host (id or slug)")
	cmd.Flags().StringVar(&owner, "owner", "", "only list repositories of this owner account id")
	addPageFlags(cmd, &opts.Page)

	return cmd
}

func newReposGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a repository",
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

			repo, err := client.Repos().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return renderOutput(cmd, repo, repoTable(*repo))
		},
	}
}

func newReposFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find HOST OWNER/NAME",
		Short: "Find a repository on a host by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerName, name, ok := strings.Cut(args[1], "/")
			if !ok || ownerName == "" || name == "" {
				return fmt.Errorf("%w: '%s'", ErrInvalidRepoName, args[1])
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			host, err := client.Hosts().Instance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			repo, err := host.Repos().GetByName(cmd.Context(), ownerName, name)
			if err != nil {
				return err
			}

			return renderOutput(cmd, repo, repoTable(*repo))
		},
	}
}

func newReposCreateCommand() *cobra.Command {
	var (
		host    string
		request weevils.RepositoryCreateRequest
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Track a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			request.HostID, err = resolveHostID(cmd.Context(), client, host)
			if err != nil {
				return err
			}

			repo, err := client.Repos().Create(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return renderOutput(cmd, repo, repoTable(*repo))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host the repository lives on (id or slug)")
	cmd.Flags().StringVar(&request.OwnerName, "owner", "", "owner account name")
	cmd.Flags().StringVar(&request.Name, "name", "", "repository name")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newReposJobsCommand() *cobra.Command {
	var page weevils.Page

	cmd := &cobra.Command{
		Use:   "jobs ID",
		Short: "List the jobs run against a repository",
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

			repo, err := client.Repos().Instance(cmd.Context(), id)
			if err != nil {
				return err
			}

			jobs, err := repo.Jobs().List(cmd.Context(), page)
			if err != nil {
				return err
			}

			return renderOutput(cmd, jobs, jobsTable(jobs))
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}

func reposTable(repos []weevils.Repository) *tableData {
	table := &tableData{header: []string{"ID", "Full Name", "Host", "Private"}}
	for _, repo := range repos {
		table.add(repo.ID.String(), repo.FullName(), repo.Host.Name, yesNo(repo.Private))
	}

	return table
}

func repoTable(repo weevils.Repository) *tableData {
	return propertyTable(
		"ID", repo.ID.String(),
		"Full Name", repo.FullName(),
		"Owner", repo.Owner.Name,
		"Host", repo.Host.Name,
		"Private", yesNo(repo.Private),
		"URL", orNA(repo.URLOnHost),
	)
}
