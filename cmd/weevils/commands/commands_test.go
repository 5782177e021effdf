package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/weevils-io/weevils-go/cmd/weevils/commands"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

func TestAddCommands(t *testing.T) {
	root, _ := newTestRoot(t, nil)

	groups := map[string][]string{
		"hosts":       {"list", "get", "create", "github"},
		"accounts":    {"list", "get", "create"},
		"host-apps":   {"list", "get", "create"},
		"repos":       {"list", "get", "find", "create", "jobs"},
		"base-images": {"list", "get"},
		"weevils":     {"list", "get", "create", "update", "delete", "run", "jobs"},
		"jobs":        {"list", "get", "create"},
		"artifacts":   {"list", "get"},
		"config":      {"show", "set", "unset"},
	}

	for group, subcommands := range groups {
		cmd := findSubcommand(root, group)
		require.NotNil(t, cmd, group)

		for _, name := range subcommands {
			assert.NotNil(t, findSubcommand(cmd, name), "%s %s", group, name)
		}
	}

	for _, name := range []string{"version", "login", "logout", "me"} {
		assert.NotNil(t, findSubcommand(root, name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		root, out := newTestRoot(t, nil)
		root.SetArgs([]string{"version"})

		require.NoError(t, root.Execute())

		var info map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &info))
		assert.Equal(t, "1.2.3", info["version"])
		assert.Equal(t, "abc123", info["commit"])
		assert.Equal(t, weevils.Version, info["client_version"])
	})

	t.Run("table", func(t *testing.T) {
		root, out := newTestRoot(t, nil)
		viper.Set(commands.KeyOutput, "table")
		root.SetArgs([]string{"version"})

		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "1.2.3")
		assert.Contains(t, out.String(), "abc123")
	})
}

func TestNoAPIToken(t *testing.T) {
	root, _ := newTestRoot(t, nil)
	viper.Set(commands.KeyAPIToken, "")
	root.SetArgs([]string{"hosts", "list"})

	require.ErrorIs(t, root.Execute(), commands.ErrNoAPIToken)
}

func TestHostsList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hosts/", r.URL.Path)
		assert.Equal(t, "Token api-token", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("offset"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, []weevils.GitHost{githubHost()})
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"hosts", "list", "--offset", "5"})

	require.NoError(t, root.Execute())

	var hosts []weevils.GitHost
	require.NoError(t, json.Unmarshal(out.Bytes(), &hosts))
	assert.Equal(t, []weevils.GitHost{githubHost()}, hosts)
}

func TestHostsGetYAML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hosts/github/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, githubHost())
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	viper.Set(commands.KeyOutput, "yaml")
	root.SetArgs([]string{"hosts", "get", "github"})

	require.NoError(t, root.Execute())

	var host map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &host))
	assert.Equal(t, githubID.String(), host["id"])
	assert.Equal(t, "github", host["slug"])
}

func TestHostsGetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}))
	defer server.Close()

	root, _ := newTestRoot(t, server)
	root.SetArgs([]string{"hosts", "get", "gitlab"})

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, weevils.IsNotFound(err))
}

func TestWeevilsCreate(t *testing.T) {
	var created atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/base/":
			assert.Equal(t, "python-3-12", r.URL.Query().Get("slug"))
			writeJSON(t, w, http.StatusOK, []weevils.BaseImage{{ID: baseID, Name: "Python 3.12", Slug: "python-3-12"}})
		case r.Method == http.MethodPost && r.URL.Path == "/weevils/":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Lint", body["name"])
			assert.Equal(t, baseID.String(), body["base_id"])
			assert.Equal(t, "make lint\n", body["script"])

			created.Store(true)
			writeJSON(t, w, http.StatusCreated, testWeevil())
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	scriptFile := filepath.Join(t.TempDir(), "lint.sh")
	require.NoError(t, os.WriteFile(scriptFile, []byte("make lint\n"), 0o600))

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"weevils", "create", "--name", "Lint", "--base", "python-3-12", "--script-file", scriptFile})

	require.NoError(t, root.Execute())
	assert.True(t, created.Load())

	var weevil weevils.Weevil
	require.NoError(t, json.Unmarshal(out.Bytes(), &weevil))
	assert.Equal(t, weevilID, weevil.ID)
}

func TestWeevilsCreateScriptFromStdin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			assert.Equal(t, "/base/"+baseID.String()+"/", r.URL.Path)
			writeJSON(t, w, http.StatusOK, weevils.BaseImage{ID: baseID})

			return
		}

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "echo hi", body["script"])
		assert.Equal(t, "say-hi", body["slug"])
		writeJSON(t, w, http.StatusCreated, testWeevil())
	}))
	defer server.Close()

	root, _ := newTestRoot(t, server)
	root.SetIn(strings.NewReader("echo hi"))
	root.SetArgs([]string{"weevils", "create", "--name", "Hi", "--base", baseID.String(), "--slug", "say-hi", "--script-file", "-"})

	require.NoError(t, root.Execute())
}

func TestWeevilsCreateScriptErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	t.Run("both inline and file", func(t *testing.T) {
		root, _ := newTestRoot(t, server)
		root.SetArgs([]string{"weevils", "create", "--name", "Lint", "--base", "x", "--script", "a", "--script-file", "b"})

		require.ErrorIs(t, root.Execute(), commands.ErrScriptConflict)
	})

	t.Run("missing", func(t *testing.T) {
		root, _ := newTestRoot(t, server)
		root.SetArgs([]string{"weevils", "create", "--name", "Lint", "--base", "x"})

		require.ErrorIs(t, root.Execute(), commands.ErrScriptRequired)
	})

	assert.Zero(t, calls.Load())
}

func TestWeevilsDelete(t *testing.T) {
	var deleted atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/weevils/", r.URL.Path)
			assert.Equal(t, "lint", r.URL.Query().Get("slug"))
			writeJSON(t, w, http.StatusOK, map[string]interface{}{"results": []weevils.Weevil{testWeevil()}})
		case http.MethodDelete:
			assert.Equal(t, "/weevils/"+weevilID.String()+"/", r.URL.Path)
			deleted.Store(true)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"weevils", "delete", "lint"})

	require.NoError(t, root.Execute())
	assert.True(t, deleted.Load())
	assert.Equal(t, "Deleted weevil 'Lint'\n", out.String())
}

func TestWeevilsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, testWeevil())
		case http.MethodPost:
			assert.Equal(t, "/jobs/", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, weevilID.String(), body["weevil_id"])
			assert.Equal(t, repoID.String(), body["repository_id"])

			writeJSON(t, w, http.StatusCreated, weevils.Job{ID: jobID, Number: 7, Status: "queued", Repository: testRepository()})
		}
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"weevils", "run", weevilID.String(), repoID.String()})

	require.NoError(t, root.Execute())

	var job weevils.Job
	require.NoError(t, json.Unmarshal(out.Bytes(), &job))
	assert.Equal(t, 7, job.Number)
}

func TestJobsListFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/", r.URL.Path)
		assert.Equal(t, weevilID.String(), r.URL.Query().Get("weevil_id"))
		assert.Empty(t, r.URL.Query().Get("repository_id"))

		writeJSON(t, w, http.StatusOK, []weevils.Job{})
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	viper.Set(commands.KeyOutput, "table")
	root.SetArgs([]string{"jobs", "list", "--weevil", weevilID.String()})

	require.NoError(t, root.Execute())
	assert.NotEmpty(t, out.String())
}

func TestJobsListInvalidID(t *testing.T) {
	root, _ := newTestRoot(t, nil)
	root.SetArgs([]string{"jobs", "list", "--repo", "not-an-id"})

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, weevils.IsUsage(err))
}

func TestReposFindInvalidName(t *testing.T) {
	root, _ := newTestRoot(t, nil)
	root.SetArgs([]string{"repos", "find", "github", "django-flows"})

	require.ErrorIs(t, root.Execute(), commands.ErrInvalidRepoName)
}

func TestReposFind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hosts/github/":
			writeJSON(t, w, http.StatusOK, githubHost())
		case "/hosts/" + githubID.String() + "/repos/carlio/django-flows/":
			writeJSON(t, w, http.StatusOK, testRepository())
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"repos", "find", "github", "carlio/django-flows"})

	require.NoError(t, root.Execute())

	var repo weevils.Repository
	require.NoError(t, json.Unmarshal(out.Bytes(), &repo))
	assert.Equal(t, "carlio/django-flows", repo.FullName())
}

func TestAccountsListResolvesHostSlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hosts/github/":
			writeJSON(t, w, http.StatusOK, githubHost())
		case "/accounts/":
			assert.Equal(t, githubID.String(), r.URL.Query().Get("host_id"))
			writeJSON(t, w, http.StatusOK, []weevils.Account{testRepository().Owner})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	root.SetArgs([]string{"accounts", "list", "--host", "github"})

	require.NoError(t, root.Execute())

	var accounts []weevils.Account
	require.NoError(t, json.Unmarshal(out.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, ownerID, accounts[0].ID)
}

func TestConfigCommands(t *testing.T) {
	root, out := newTestRoot(t, nil)
	configFile := viper.ConfigFileUsed()

	root.SetArgs([]string{"config", "set", "api_token", "secret"})
	require.NoError(t, root.Execute())

	root.SetArgs([]string{"config", "set", "output", "yaml"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved commands.Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "secret", saved.APIToken)
	assert.Equal(t, "yaml", saved.Output)

	out.Reset()
	root.SetArgs([]string{"config", "show"})
	require.NoError(t, root.Execute())

	var shown commands.Config
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, commands.Masked, shown.APIToken)

	root.SetArgs([]string{"config", "unset", "api_token"})
	require.NoError(t, root.Execute())

	data, err = os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	root.SetArgs([]string{"config", "set", "colour", "blue"})
	require.ErrorIs(t, root.Execute(), commands.ErrUnknownConfigKey)

	root.SetArgs([]string{"config", "set", "output", "xml"})
	require.ErrorIs(t, root.Execute(), commands.ErrInvalidOutputFormat)
}

func TestLoginLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/me/", r.URL.Path)

		if r.Header.Get("Authorization") != "Bearer user-token" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})

			return
		}

		writeJSON(t, w, http.StatusOK, weevils.User{ID: ownerID, DisplayName: "Carl"})
	}))
	defer server.Close()

	root, out := newTestRoot(t, server)
	configFile := viper.ConfigFileUsed()

	root.SetArgs([]string{"login", "wrong-token"})
	err := root.Execute()
	require.Error(t, err)
	assert.True(t, weevils.IsUnauthorized(err))
	assert.NoFileExists(t, configFile)

	root.SetIn(bytes.NewBufferString("user-token\n"))
	root.SetArgs([]string{"login"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Logged in as Carl\n", out.String())

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "user_token: user-token")

	root.SetArgs([]string{"logout"})
	require.NoError(t, root.Execute())

	data, err = os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "user-token")
}

func TestLoginEmptyToken(t *testing.T) {
	root, _ := newTestRoot(t, nil)
	root.SetArgs([]string{"login", "  "})

	require.ErrorIs(t, root.Execute(), commands.ErrEmptyToken)
}

func TestLogger(t *testing.T) {
	t.Run("info", func(t *testing.T) {
		var buf bytes.Buffer

		logger := commands.NewLogger(&buf, false)
		logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})
		assert.Empty(t, buf.String())

		logger.Warn("slow response", map[string]interface{}{"status_code": 503})
		assert.Contains(t, buf.String(), "slow response")
		assert.Contains(t, buf.String(), "status_code=503")
	})

	t.Run("debug", func(t *testing.T) {
		var buf bytes.Buffer

		logger := commands.NewLogger(&buf, true)
		logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})
		assert.Contains(t, buf.String(), "HTTP Request")
		assert.Contains(t, buf.String(), "method=GET")
	})
}
