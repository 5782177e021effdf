package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/weevils-io/weevils-go/internal/constants"
	"github.com/weevils-io/weevils-go/pkg/weevils"
	"github.com/weevils-io/weevils-go/pkg/weevilsclient"
)

// Configuration keys shared by flags, environment variables and the config file.
const (
	KeyAPIURL    = "api_url"
	KeyAPIToken  = "api_token"
	KeyUserToken = "user_token"
	KeyOutput    = "output"

	keyVerbose = "verbose"
	keyDebug   = "debug"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Yes          = "yes"
	No           = "no"
	Masked       = "***"

	// stdinPath reads a script from standard input.
	stdinPath = "-"
)

// Common static errors used throughout the commands package.
var (
	ErrNoAPIToken          = errors.New("no API token configured; pass --token, set WEEVILS_API_TOKEN or run 'weevils config set api_token TOKEN'")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrInvalidOutputFormat = errors.New("output format must be one of table, json, yaml")
	ErrEmptyToken          = errors.New("token must not be empty")
	ErrScriptRequired      = errors.New("a script is required; pass --script or --script-file")
	ErrScriptConflict      = errors.New("--script and --script-file are mutually exclusive")
	ErrInvalidRepoName     = errors.New("repository must be given as OWNER/NAME")
	ErrNoConfigPath        = errors.New("failed to locate config file")
)

var titleCaser = cases.Title(language.English)

// createClient builds a client from the merged flag, environment and file
// configuration.
func createClient(cmd *cobra.Command) (weevils.Client, error) {
	token := viper.GetString(KeyAPIToken)
	if token == "" {
		return nil, ErrNoAPIToken
	}

	config := &weevils.Config{
		APIToken:  token,
		APIURL:    viper.GetString(KeyAPIURL),
		UserToken: viper.GetString(KeyUserToken),
		Timeout:   constants.DefaultHTTPTimeout,
		Debug:     viper.GetBool(keyDebug),
	}

	if config.Debug || viper.GetBool(keyVerbose) {
		config.Logger = NewLogger(cmd.ErrOrStderr(), config.Debug)
	}

	client, err := weevilsclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// tableData is the table rendering of a command result.
type tableData struct {
	header []string
	rows   [][]string
}

func (t *tableData) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// propertyTable renders a single record as Property/Value pairs.
func propertyTable(pairs ...string) *tableData {
	table := &tableData{header: []string{"Property", "Value"}}
	for i := 0; i+1 < len(pairs); i += 2 {
		table.add(pairs[i], pairs[i+1])
	}

	return table
}

// renderOutput writes data in the selected output format. The table
// rendering is used for the default format.
func renderOutput(cmd *cobra.Command, data interface{}, table *tableData) error {
	out := cmd.OutOrStdout()

	switch viper.GetString(KeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() {
			_ = encoder.Close()
		}()

		return encoder.Encode(data)
	default:
		return renderTable(out, table)
	}
}

func renderTable(out io.Writer, data *tableData) error {
	table := tablewriter.NewWriter(out)
	table.Header(cells(data.header)...)

	for _, row := range data.rows {
		_ = table.Append(cells(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func orNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return NotAvailable
	}

	return id.String()
}

// addPageFlags registers --offset and --limit on a list command.
func addPageFlags(cmd *cobra.Command, page *weevils.Page) {
	cmd.Flags().IntVar(&page.Offset, "offset", constants.DefaultOffset, "number of records to skip")
	cmd.Flags().IntVar(&page.Limit, "limit", constants.DefaultLimit, "maximum number of records to return")
}

// resolveHostID turns a host id or slug into the host id.
func resolveHostID(ctx context.Context, client weevils.Client, key string) (uuid.UUID, error) {
	if key == "" {
		return uuid.Nil, nil
	}

	if weevils.IsUUID(key) {
		return weevils.ParseID(key)
	}

	host, err := client.Hosts().Get(ctx, key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve host '%s': %w", key, err)
	}

	return host.ID, nil
}

// optionalID parses an id flag that may be left empty.
func optionalID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}

	return weevils.ParseID(value)
}

// readScript returns the script given inline or read from a file. A file
// path of "-" reads standard input.
func readScript(cmd *cobra.Command, script, path string) (string, error) {
	switch {
	case script != "" && path != "":
		return "", ErrScriptConflict
	case script != "":
		return script, nil
	case path == stdinPath:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}

		return string(data), nil
	case path != "":
		// #nosec G304 -- the path is chosen by the user running the CLI
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read script file: %w", err)
		}

		return string(data), nil
	default:
		return "", ErrScriptRequired
	}
}

func formatStatus(status string) string {
	if status == "" {
		return NotAvailable
	}

	return titleCaser.String(status)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
