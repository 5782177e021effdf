package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage jobs",
		Long:    "List, inspect and start jobs, single runs of a weevil against a repository",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsCreateCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		opts   weevils.JobListOptions
		weevil string
		repo   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			opts.WeevilID, err = optionalID(weevil)
			if err != nil {
				return err
			}

			opts.RepositoryID, err = optionalID(repo)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			jobs, err := client.Jobs().List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return renderOutput(cmd, jobs, jobsTable(jobs))
		},
	}

	cmd.Flags().StringVar(&weevil, "weevil", "", "only list jobs of this weevil id")
	cmd.Flags().StringVar(&repo, "repo", "", "only list jobs run against this repository id")
	addPageFlags(cmd, &opts.Page)

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a job",
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

			job, err := client.Jobs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return renderOutput(cmd, job, jobTable(*job))
		},
	}
}

func newJobsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create WEEVIL_ID REPOSITORY_ID",
		Short: "Start a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weevilID, err := weevils.ParseID(args[0])
			if err != nil {
				return err
			}

			repoID, err := weevils.ParseID(args[1])
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			job, err := client.Jobs().Create(cmd.Context(), weevilID, repoID)
			if err != nil {
				return err
			}

			return renderOutput(cmd, job, jobTable(*job))
		},
	}
}

func jobsTable(jobs []weevils.Job) *tableData {
	table := &tableData{header: []string{"ID", "Number", "Status", "Repository", "Artifacts"}}
	for _, job := range jobs {
		table.add(
			job.ID.String(),
			itoa(job.Number),
			formatStatus(job.Status),
			repoName(job.Repository),
			itoa(len(job.Artifacts)),
		)
	}

	return table
}

func jobTable(job weevils.Job) *tableData {
	return propertyTable(
		"ID", job.ID.String(),
		"Number", itoa(job.Number),
		"Status", formatStatus(job.Status),
		"Failure Reason", orNA(job.FailureReason),
		"Repository", repoName(job.Repository),
		"Repository ID", idString(job.Repository.ID),
		"Artifacts", itoa(len(job.Artifacts)),
		"Output", orNA(job.Output),
	)
}

func repoName(repo weevils.Repository) string {
	if repo.Name == "" {
		return NotAvailable
	}

	return repo.FullName()
}
