package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/weevils-io/weevils-go/cmd/weevils/commands"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

var (
	githubID = uuid.MustParse("6f1c1f3e-0b7e-4bde-9a3b-6d1d5f0f1a01")
	ownerID  = uuid.MustParse("0f5a4f7e-2f61-4a0a-8c7c-1b9b3b0a2b02")
	repoID   = uuid.MustParse("3b8e0c0a-6f8e-44c1-b1a5-0c4e5d8e7c03")
	baseID   = uuid.MustParse("a6a7d3e2-3d0f-4e77-9a55-77e1c4d9a804")
	weevilID = uuid.MustParse("9d2f4b0e-7c51-4c55-8a0e-3e0d2c2e1f05")
	jobID    = uuid.MustParse("c1e7b2a4-1b5a-4b7b-9f0e-5c7a2e3d4f06")
)

func githubHost() weevils.GitHost {
	return weevils.GitHost{ID: githubID, Name: "GitHub", Slug: "github"}
}

func testRepository() weevils.Repository {
	return weevils.Repository{
		ID:    repoID,
		Name:  "django-flows",
		Owner: weevils.Account{ID: ownerID, Name: "carlio", Host: githubHost()},
		Host:  githubHost(),
	}
}

func testWeevil() weevils.Weevil {
	return weevils.Weevil{ID: weevilID, Name: "Lint", Slug: "lint", Script: "make lint", BuildStatus: "ready"}
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// newTestRoot builds a root command talking to server with JSON output and a
// config file in a temporary directory. server may be nil.
func newTestRoot(t *testing.T, server *httptest.Server) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigFile(filepath.Join(t.TempDir(), "config.yml"))
	viper.Set(commands.KeyAPIToken, "api-token")
	viper.Set(commands.KeyOutput, "json")

	if server != nil {
		viper.Set(commands.KeyAPIURL, server.URL)
	}

	root := &cobra.Command{Use: "weevils", SilenceUsage: true, SilenceErrors: true}
	commands.AddCommands(root, "1.2.3", "abc123", "2026-01-01")

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})

	return root, out
}

// writeJSON writes v as the response body with the given status.
func writeJSON(t *testing.T, writer http.ResponseWriter, status int, v interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if v != nil {
		assert.NoError(t, json.NewEncoder(writer).Encode(v))
	}
}
