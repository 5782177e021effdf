package commands

import "github.com/spf13/cobra"

// AddCommands registers every Weevils command on root.
func AddCommands(root *cobra.Command, version, commit, date string) {
	root.AddCommand(NewVersionCommand(version, commit, date))
	root.AddCommand(NewConfigCommand())
	root.AddCommand(NewLoginCommand())
	root.AddCommand(NewLogoutCommand())
	root.AddCommand(NewMeCommand())
	root.AddCommand(NewHostsCommand())
	root.AddCommand(NewAccountsCommand())
	root.AddCommand(NewHostAppsCommand())
	root.AddCommand(NewReposCommand())
	root.AddCommand(NewBaseImagesCommand())
	root.AddCommand(NewWeevilsCommand())
	root.AddCommand(NewJobsCommand())
	root.AddCommand(NewArtifactsCommand())
}
