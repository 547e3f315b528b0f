package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

// Config represents the persisted CLI configuration. The password is never
// written to disk.
type Config struct {
	Host     string `json:"host,omitempty"     yaml:"host,omitempty"`
	AuthURL  string `json:"auth_url,omitempty" yaml:"auth_url,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Output   string `json:"output,omitempty"   yaml:"output,omitempty"`
	Timeout  string `json:"timeout,omitempty"  yaml:"timeout,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the ENT CLI configuration stored in $HOME/.ent/config.yml",
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
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return render(cmd.OutOrStdout(), viper.GetString("output"), config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Host", formatConfigValue(config.Host))
				_ = table.Append("Auth URL", formatConfigValue(config.AuthURL))
				_ = table.Append("Username", formatConfigValue(config.Username))
				_ = table.Append("Output", formatConfigValue(config.Output))
				_ = table.Append("Timeout", formatConfigValue(config.Timeout))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: host, auth_url, username, output, timeout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := loadPersistedConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config, err := loadPersistedConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

// loadConfig returns the effective configuration: flags, ENT_ variables and
// the config file merged by viper.
func loadConfig() *Config {
	config := &Config{
		Host:     viper.GetString("host"),
		AuthURL:  viper.GetString("auth_url"),
		Username: viper.GetString("username"),
		Output:   viper.GetString("output"),
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		config.Timeout = timeout.String()
	}

	return config
}

// setConfigValue validates and applies one key. An empty value clears it.
func setConfigValue(config *Config, key, value string) error {
	switch strings.ReplaceAll(strings.ToLower(key), "-", "_") {
	case "host":
		config.Host = value
	case "auth_url":
		config.AuthURL = value
	case "username":
		config.Username = value
	case "output":
		if value != "" {
			err := validateOutputFormat(value)
			if err != nil {
				return err
			}
		}

		config.Output = value
	case "timeout":
		if value != "" {
			_, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", value, err)
			}
		}

		config.Timeout = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".ent", "config.yml"), nil
}

// loadPersistedConfig returns the config file content only, so that flag
// defaults are never written back.
func loadPersistedConfig() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config, err := readConfigFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}

	return config, err
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	return writeConfigFile(configFile, config)
}

func writeConfigFile(configFile string, config *Config) error {
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

func readConfigFile(configFile string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
