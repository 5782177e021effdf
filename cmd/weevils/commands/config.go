package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/weevils-io/weevils-go/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	APIURL    string `json:"api_url,omitempty"    yaml:"api_url,omitempty"`
	APIToken  string `json:"api_token,omitempty"  yaml:"api_token,omitempty"`
	UserToken string `json:"user_token,omitempty" yaml:"user_token,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the Weevils CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with tokens masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIToken = mask(config.APIToken)
			config.UserToken = mask(config.UserToken)

			table := propertyTable(
				"API URL", orNA(config.APIURL),
				"API Token", orNA(config.APIToken),
				"User Token", orNA(config.UserToken),
				"Output", orNA(config.Output),
			)

			return renderOutput(cmd, config, table)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of api_url, api_token, user_token or output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove one of api_url, api_token, user_token or output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigValue(config, args[0], ""); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyAPIURL:
		config.APIURL = value
	case KeyAPIToken:
		config.APIToken = value
	case KeyUserToken:
		config.UserToken = value
	case KeyOutput:
		switch value {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
	}

	return nil
}

func mask(value string) string {
	if value == "" {
		return ""
	}

	return Masked
}

// loadConfig reads the persisted configuration. Only values from the config
// file are included so flags and environment variables are never saved.
func loadConfig() *Config {
	config := &Config{}

	path := configFilePath()
	if path == "" {
		return config
	}

	// #nosec G304 -- the path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func saveConfig(config *Config) error {
	configFile := configFilePath()
	if configFile == "" {
		return ErrNoConfigPath
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType)
}
