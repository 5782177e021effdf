//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURL     string
	APIToken   string
	UserToken  string
	BaseImage  string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:     os.Getenv("WEEVILS_API_URL"),
		APIToken:   os.Getenv("WEEVILS_API_TOKEN"),
		UserToken:  os.Getenv("WEEVILS_USER_TOKEN"),
		BaseImage:  os.Getenv("WEEVILS_TEST_BASE_IMAGE"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("WEEVILS_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the weevils binary
func getBinaryPath() string {
	if path := os.Getenv("WEEVILS_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../weevils",
		"./weevils",
		"../weevils",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "weevils" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIToken == "" {
		t.Skip("WEEVILS_API_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("weevils binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the weevils binary against the configured API
type CommandRunner struct {
	config    *TestConfig
	t         *testing.T
	configDir string
}

// NewCommandRunner creates a new command runner with its own config file
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:    config,
		t:         t,
		configDir: t.TempDir(),
	}
}

// Run executes a weevils command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a weevils command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configDir + "/config.yml"}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "WEEVILS_USER_TOKEN=")

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupWeevil attempts to delete a test weevil
func (runner *CommandRunner) CleanupWeevil(slug string) {
	stdout, stderr, err := runner.Run("weevils", "delete", slug)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for weevil %s: %s\nStderr: %s", slug, stdout, stderr)
	}
}

// DecodeJSONOutput decodes command output into v, failing the test on error
func DecodeJSONOutput(t *testing.T, output string, v interface{}) {
	t.Helper()

	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var v interface{}
	if err := yaml.Unmarshal([]byte(output), &v); err != nil {
		t.Errorf("Output is not valid YAML: %v\n%s", err, output)
	}
}
