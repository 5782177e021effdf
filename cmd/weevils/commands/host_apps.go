package commands

import (
	"github.com/spf13/cobra"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// NewHostAppsCommand creates the host-apps command group.
func NewHostAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "host-apps",
		Aliases: []string{"apps"},
		Short:   "Manage git host apps",
		Long:    "List, inspect and register the OAuth apps used to sign in through git hosts",
	}

	cmd.AddCommand(newHostAppsListCommand())
	cmd.AddCommand(newHostAppsGetCommand())
	cmd.AddCommand(newHostAppsCreateCommand())

	return cmd
}

func newHostAppsListCommand() *cobra.Command {
	var (
		opts weevils.HostAppListOptions
		host string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List host apps",
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

			apps, err := client.HostApps().List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return renderOutput(cmd, apps, hostAppsTable(apps))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "only list apps of this host (id or slug)")
	addPageFlags(cmd, &opts.Page)

	return cmd
}

func newHostAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a host app",
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

			app, err := client.HostApps().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return renderOutput(cmd, app, propertyTable(
				"ID", app.ID.String(),
				"Name", app.Name,
				"Host", app.Host.Name,
				"Authorization URL", orNA(app.AuthorizationURL),
			))
		},
	}
}

func newHostAppsCreateCommand() *cobra.Command {
	var (
		host    string
		request weevils.HostAppCreateRequest
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an app on a host",
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

			app, err := client.HostApps().Create(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return renderOutput(cmd, app, hostAppsTable([]weevils.GitHostApp{*app}))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host the app is registered on (id or slug)")
	cmd.Flags().StringVar(&request.Name, "name", "", "app name")
	cmd.Flags().StringVar(&request.ClientID, "client-id", "", "OAuth client id")
	cmd.Flags().StringVar(&request.ClientSecret, "client-secret", "", "OAuth client secret")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func hostAppsTable(apps []weevils.GitHostApp) *tableData {
	table := &tableData{header: []string{"ID", "Name", "Host", "Authorization URL"}}
	for _, app := range apps {
		table.add(app.ID.String(), app.Name, app.Host.Name, orNA(app.AuthorizationURL))
	}

	return table
}
