package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewArtifactsCommand creates the artifacts command group.
func NewArtifactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "artifacts",
		Aliases: []string{"artifact"},
		Short:   "Inspect job artifacts",
		Long:    "List and inspect the files produced by jobs",
	}

	cmd.AddCommand(newArtifactsListCommand())
	cmd.AddCommand(newArtifactsGetCommand())

	return cmd
}

func newArtifactsListCommand() *cobra.Command {
	var (
		opts weevils.ArtifactListOptions
		job  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error

			opts.JobID, err = optionalID(job)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			artifacts, err := client.Artifacts().List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			table := &tableData{header: []string{"ID", "Path", "Mimetype", "Download URL"}}
			for _, artifact := range artifacts {
				table.add(artifact.ID.String(), artifact.Path, orNA(artifact.Mimetype), orNA(artifact.DownloadURL))
			}

			return renderOutput(cmd, artifacts, table)
		},
	}

	cmd.Flags().StringVar(&job, "job", "", "only list artifacts of this job id")
	addPageFlags(cmd, &opts.Page)

	return cmd
}

func newArtifactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get an artifact",
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

			artifact, err := client.Artifacts().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return renderOutput(cmd, artifact, propertyTable(
				"ID", artifact.ID.String(),
				"Path", artifact.Path,
				"Mimetype", orNA(artifact.Mimetype),
				"Download URL", orNA(artifact.DownloadURL),
			))
		},
	}
}
