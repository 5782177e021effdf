package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewBaseImagesCommand creates the base-images command group.
func NewBaseImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "base-images",
		Aliases: []string{"bases"},
		Short:   "Inspect base images",
		Long:    "List and inspect the container images weevils are built on",
	}

	cmd.AddCommand(newBaseImagesListCommand())
	cmd.AddCommand(newBaseImagesGetCommand())

	return cmd
}

func newBaseImagesListCommand() *cobra.Command {
	var page weevils.Page

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List base images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			images, err := client.BaseImages().List(cmd.Context(), page)
			if err != nil {
				return err
			}

			table := &tableData{header: []string{"ID", "Name", "Slug"}}
			for _, image := range images {
				table.add(image.ID.String(), image.Name, image.Slug)
			}

			return renderOutput(cmd, images, table)
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}

func newBaseImagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID_OR_SLUG",
		Short: "Get a base image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			image, err := client.BaseImages().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(cmd, image, propertyTable(
				"ID", image.ID.String(),
				"Name", image.Name,
				"Slug", image.Slug,
			))
		},
	}
}
