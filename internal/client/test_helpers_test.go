package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

const testAPIToken = "api-token"

// Fixed ids shared by the fixtures below.
var (
	githubID   = uuid.MustParse("6f1c1f3e-0b7e-4bde-9a3b-6d1d5f0f1a01")
	ownerID    = uuid.MustParse("0f5a4f7e-2f61-4a0a-8c7c-1b9b3b0a2b02")
	repoID     = uuid.MustParse("3b8e0c0a-6f8e-44c1-b1a5-0c4e5d8e7c03")
	baseID     = uuid.MustParse("a6a7d3e2-3d0f-4e77-9a55-77e1c4d9a804")
	weevilID   = uuid.MustParse("9d2f4b0e-7c51-4c55-8a0e-3e0d2c2e1f05")
	jobID      = uuid.MustParse("c1e7b2a4-1b5a-4b7b-9f0e-5c7a2e3d4f06")
	artifactID = uuid.MustParse("e2f3a4b5-c6d7-4e8f-9a0b-1c2d3e4f5a07")
)

func githubHost() weevils.GitHost {
	return weevils.GitHost{ID: githubID, Name: "GitHub", Slug: "github"}
}

func ownerAccount() weevils.Account {
	return weevils.Account{ID: ownerID, Name: "carlio", Host: githubHost()}
}

func testRepository() weevils.Repository {
	return weevils.Repository{
		ID:        repoID,
		Name:      "django-flows",
		URLOnHost: "https://github.com/carlio/django-flows",
		Owner:     ownerAccount(),
		Host:      githubHost(),
	}
}

func testBaseImage() weevils.BaseImage {
	return weevils.BaseImage{ID: baseID, Name: "Python 3.12", Slug: "python-3-12"}
}

func testWeevil() weevils.Weevil {
	return weevils.Weevil{ID: weevilID, Name: "Lint", Slug: "lint", Script: "make lint", BuildStatus: "ready"}
}

func testJob() weevils.Job {
	return weevils.Job{
		ID:     jobID,
		Number: 1,
		Status: "finished",
		Artifacts: []weevils.Artifact{
			{ID: artifactID, Path: "report.txt", Mimetype: "text/plain"},
		},
		Repository: testRepository(),
	}
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

// NewTestClient creates a client talking to server with the test API token.
func NewTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := New(&weevils.Config{
		APIToken:   testAPIToken,
		APIURL:     server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	return client
}

// countingTransport counts the requests that reach the network.
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)

	return c.next.RoundTrip(req)
}

// NewCountingClient creates a client whose requests are counted.
func NewCountingClient(t *testing.T, server *httptest.Server) (*Client, *countingTransport) {
	t.Helper()

	transport := &countingTransport{next: server.Client().Transport}

	client, err := New(&weevils.Config{
		APIToken:   testAPIToken,
		APIURL:     server.URL,
		HTTPClient: &http.Client{Transport: transport},
	})
	require.NoError(t, err)

	return client, transport
}

// recordedRequest is what a test server saw.
type recordedRequest struct {
	Method        string
	Path          string
	Query         map[string]string
	Authorization string
	Body          map[string]interface{}
}

// recorder keeps every request a test server handles.
type recorder struct {
	mutex    sync.Mutex
	requests []recordedRequest
}

func (r *recorder) record(t *testing.T, req *http.Request) recordedRequest {
	t.Helper()

	rec := recordedRequest{
		Method:        req.Method,
		Path:          req.URL.Path,
		Query:         map[string]string{},
		Authorization: req.Header.Get("Authorization"),
	}

	for key := range req.URL.Query() {
		rec.Query[key] = req.URL.Query().Get(key)
	}

	if req.Body != nil && req.ContentLength != 0 {
		_ = json.NewDecoder(req.Body).Decode(&rec.Body)
	}

	r.mutex.Lock()
	r.requests = append(r.requests, rec)
	r.mutex.Unlock()

	return rec
}

func (r *recorder) all() []recordedRequest {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]recordedRequest(nil), r.requests...)
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name          string
	Key           string
	ExpectedPath  string
	ExpectedQuery map[string]string
	StatusCode    int
	Response      interface{}
	WantErr       error
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				got := rec.record(t, request)
				if testCase.ExpectedPath != "" {
					assert.Equal(t, testCase.ExpectedPath, got.Path)
				}

				for key, value := range testCase.ExpectedQuery {
					assert.Equal(t, value, got.Query[key], key)
				}

				assert.Equal(t, http.MethodGet, got.Method)
				writeJSON(t, writer, testCase.StatusCode, testCase.Response)
			}))
			defer server.Close()

			client := NewTestClient(t, server)

			result, err := getFunc(client)(testCase.Key)
			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)
				require.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
		})
	}
}
