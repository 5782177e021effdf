package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewWeevilsCommand creates the weevils command group.
func NewWeevilsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weevils",
		Aliases: []string{"weevil"},
		Short:   "Manage weevils",
		Long:    "Create, update, delete and run weevils, the build scripts executed against repositories",
	}

	cmd.AddCommand(newWeevilsListCommand())
	cmd.AddCommand(newWeevilsGetCommand())
	cmd.AddCommand(newWeevilsCreateCommand())
	cmd.AddCommand(newWeevilsUpdateCommand())
	cmd.AddCommand(newWeevilsDeleteCommand())
	cmd.AddCommand(newWeevilsRunCommand())
	cmd.AddCommand(newWeevilsJobsCommand())

	return cmd
}

func newWeevilsListCommand() *cobra.Command {
	var page weevils.Page

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weevils",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			list, err := client.Weevils().List(cmd.Context(), page)
			if err != nil {
				return err
			}

			table := &tableData{header: []string{"ID", "Name", "Slug", "Build Status"}}
			for _, weevil := range list {
				table.add(weevil.ID.String(), weevil.Name, weevil.Slug, formatStatus(weevil.BuildStatus))
			}

			return renderOutput(cmd, list, table)
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}

func newWeevilsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID_OR_SLUG",
		Short: "Get a weevil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			weevil, err := client.Weevils().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(cmd, weevil, weevilTable(*weevil))
		},
	}
}

func newWeevilsCreateCommand() *cobra.Command {
	var (
		name       string
		base       string
		slug       string
		script     string
		scriptFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a weevil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readScript(cmd, script, scriptFile)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			// Base images given by slug are looked up first.
			image, err := client.BaseImages().Get(cmd.Context(), base)
			if err != nil {
				return fmt.Errorf("failed to resolve base image '%s': %w", base, err)
			}

			weevil, err := client.Weevils().Create(cmd.Context(), &weevils.WeevilCreateRequest{
				Base:   image,
				Name:   name,
				Script: body,
				Slug:   slug,
			})
			if err != nil {
				return err
			}

			return renderOutput(cmd, weevil, weevilTable(*weevil))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "weevil name")
	cmd.Flags().StringVar(&base, "base", "", "base image (id or slug)")
	cmd.Flags().StringVar(&slug, "slug", "", "slug to use instead of the one derived from the name")
	cmd.Flags().StringVar(&script, "script", "", "build script")
	cmd.Flags().StringVar(&scriptFile, "script-file", "", "file to read the build script from (- for stdin)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

func newWeevilsUpdateCommand() *cobra.Command {
	var (
		script     string
		scriptFile string
	)

	cmd := &cobra.Command{
		Use:   "update ID_OR_SLUG",
		Short: "Replace the script of a weevil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readScript(cmd, script, scriptFile)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			instance, err := client.Weevils().Instance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			weevil, err := instance.Update(cmd.Context(), body)
			if err != nil {
				return err
			}

			return renderOutput(cmd, weevil, weevilTable(*weevil))
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "build script")
	cmd.Flags().StringVar(&scriptFile, "script-file", "", "file to read the build script from (- for stdin)")

	return cmd
}

func newWeevilsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID_OR_SLUG",
		Short: "Delete a weevil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			weevil, err := client.Weevils().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			deleted, err := client.Weevils().Delete(cmd.Context(), weevil.ID)
			if err != nil {
				return err
			}

			if deleted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted weevil '%s'\n", weevil.Name)
			}

			return nil
		},
	}
}

func newWeevilsRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run ID_OR_SLUG REPOSITORY_ID",
		Short: "Run a weevil against a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoID, err := weevils.ParseID(args[1])
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			instance, err := client.Weevils().Instance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			job, err := instance.Run(cmd.Context(), repoID)
			if err != nil {
				return err
			}

			return renderOutput(cmd, job, jobTable(*job))
		},
	}
}

func newWeevilsJobsCommand() *cobra.Command {
	var page weevils.Page

	cmd := &cobra.Command{
		Use:   "jobs ID_OR_SLUG",
		Short: "List the jobs of a weevil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			instance, err := client.Weevils().Instance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			jobs, err := instance.Jobs().List(cmd.Context(), page)
			if err != nil {
				return err
			}

			return renderOutput(cmd, jobs, jobsTable(jobs))
		},
	}

	addPageFlags(cmd, &page)

	return cmd
}

func weevilTable(weevil weevils.Weevil) *tableData {
	return propertyTable(
		"ID", weevil.ID.String(),
		"Name", weevil.Name,
		"Slug", weevil.Slug,
		"Build Status", formatStatus(weevil.BuildStatus),
		"Script", orNA(weevil.Script),
	)
}
