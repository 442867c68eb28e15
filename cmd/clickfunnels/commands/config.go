package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/cfclient"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	APIToken  string        `json:"api_token,omitempty"  yaml:"api_token,omitempty"`
	Domain    string        `json:"domain,omitempty"     yaml:"domain,omitempty"`
	TeamID    string        `json:"team_id,omitempty"    yaml:"team_id,omitempty"`
	Workspace string        `json:"workspace,omitempty"  yaml:"workspace,omitempty"`
	Output    string        `json:"output"               yaml:"output"`
	NoColor   bool          `json:"no_color"             yaml:"no_color"`
	RetryMax  int           `json:"retry_max,omitempty"  yaml:"retry_max,omitempty"`
	RateLimit int           `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
	Cache     CacheSettings `json:"cache"                yaml:"cache"`
}

// CacheSettings configures the dropdown options cache.
type CacheSettings struct {
	Type string        `json:"type,omitempty" yaml:"type,omitempty"`
	TTL  time.Duration `json:"ttl,omitempty"  yaml:"ttl,omitempty"`
	NATS NATSSettings  `json:"nats"           yaml:"nats"`
}

// NATSSettings configures the NATS KV cache backend.
type NATSSettings struct {
	URL    string `json:"url,omitempty"    yaml:"url,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// configKey describes one settable configuration key.
type configKey struct {
	set   func(config *Config, value string) error
	unset func(config *Config)
}

var configKeys = map[string]configKey{
	"api_token": {
		set: func(config *Config, value string) error {
			token := auth.NormalizeToken(value)
			if token == "" {
				return constants.ErrEmptyToken
			}

			config.APIToken = token

			return nil
		},
		unset: func(config *Config) { config.APIToken = "" },
	},
	"domain": {
		set: func(config *Config, value string) error {
			domain, err := cfclient.NormalizeDomain(value)
			if err != nil {
				return err
			}

			config.Domain = domain

			return nil
		},
		unset: func(config *Config) { config.Domain = "" },
	},
	"team_id": {
		set: func(config *Config, value string) error {
			teamID, err := clickfunnels.ValidateNumericID(strings.TrimSpace(value), "team ID")
			if err != nil {
				return err
			}

			config.TeamID = teamID

			return nil
		},
		unset: func(config *Config) { config.TeamID = "" },
	},
	"workspace": {
		set: func(config *Config, value string) error {
			selector, err := clickfunnels.DecodeWorkspaceSelector(value)
			if err != nil {
				return err
			}

			config.Workspace = selector.Encode()

			return nil
		},
		unset: func(config *Config) { config.Workspace = "" },
	},
	"output": {
		set: func(config *Config, value string) error {
			switch value {
			case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
				config.Output = value

				return nil
			default:
				return fmt.Errorf("%w: %s", constants.ErrInvalidOutputType, value)
			}
		},
		unset: func(config *Config) { config.Output = constants.FormatTable },
	},
	"no_color": {
		set: func(config *Config, value string) error {
			config.NoColor = parseBoolValue(value)

			return nil
		},
		unset: func(config *Config) { config.NoColor = false },
	},
	"retry_max": {
		set: func(config *Config, value string) error {
			return setInt(&config.RetryMax, "retry_max", value)
		},
		unset: func(config *Config) { config.RetryMax = 0 },
	},
	"rate_limit": {
		set: func(config *Config, value string) error {
			return setInt(&config.RateLimit, "rate_limit", value)
		},
		unset: func(config *Config) { config.RateLimit = 0 },
	},
	"cache.type": {
		set: func(config *Config, value string) error {
			cacheType, err := clickfunnels.ParseCacheType(value)
			if err != nil {
				return err
			}

			config.Cache.Type = string(cacheType)

			return nil
		},
		unset: func(config *Config) { config.Cache.Type = "" },
	},
	"cache.ttl": {
		set: func(config *Config, value string) error {
			ttl, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid cache.ttl %q: %w", value, err)
			}

			config.Cache.TTL = ttl

			return nil
		},
		unset: func(config *Config) { config.Cache.TTL = 0 },
	},
	"cache.nats.url": {
		set: func(config *Config, value string) error {
			config.Cache.NATS.URL = value

			return nil
		},
		unset: func(config *Config) { config.Cache.NATS.URL = "" },
	},
	"cache.nats.bucket": {
		set: func(config *Config, value string) error {
			config.Cache.NATS.Bucket = value

			return nil
		},
		unset: func(config *Config) { config.Cache.NATS.Bucket = "" },
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage ClickFunnels CLI configuration including credentials, team, workspace and cache settings",
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
		Long:  "Display the current CLI configuration with the API token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIToken = maskToken(config.APIToken)

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(ConfigKeys(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := configKeys[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, args[0])
			}

			config := loadConfig()

			err := key.set(config, args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			value := args[1]
			if args[0] == "api_token" {
				value = maskToken(config.APIToken)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := configKeys[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, args[0])
			}

			config := loadConfig()
			key.unset(config)

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

// ConfigKeys returns the settable configuration keys in sorted order.
func ConfigKeys() []string {
	return []string{
		"api_token", "cache.nats.bucket", "cache.nats.url", "cache.ttl", "cache.type",
		"domain", "no_color", "output", "rate_limit", "retry_max", "team_id", "workspace",
	}
}

func loadConfig() *Config {
	return &Config{
		APIToken:  viper.GetString("api_token"),
		Domain:    viper.GetString("domain"),
		TeamID:    viper.GetString("team_id"),
		Workspace: viper.GetString("workspace"),
		Output:    viper.GetString("output"),
		NoColor:   viper.GetBool("no_color"),
		RetryMax:  viper.GetInt("retry_max"),
		RateLimit: viper.GetInt("rate_limit"),
		Cache: CacheSettings{
			Type: viper.GetString("cache.type"),
			TTL:  viper.GetDuration("cache.ttl"),
			NATS: NATSSettings{
				URL:    viper.GetString("cache.nats.url"),
				Bucket: viper.GetString("cache.nats.bucket"),
			},
		},
	}
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

	configDir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, constants.ConfigFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
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

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API Token", formatConfigValue(config.APIToken)})
	_ = table.Append([]string{"Domain", formatConfigValue(config.Domain)})
	_ = table.Append([]string{"Team ID", formatConfigValue(config.TeamID)})
	_ = table.Append([]string{"Workspace", formatConfigValue(config.Workspace)})
	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"No Color", strconv.FormatBool(config.NoColor)})
	_ = table.Append([]string{"Retry Max", strconv.Itoa(config.RetryMax)})
	_ = table.Append([]string{"Rate Limit", strconv.Itoa(config.RateLimit)})
	_ = table.Append([]string{"Cache Type", formatConfigValue(config.Cache.Type)})
	_ = table.Append([]string{"Cache TTL", formatConfigValue(formatDuration(config.Cache.TTL))})
	_ = table.Append([]string{"NATS URL", formatConfigValue(config.Cache.NATS.URL)})
	_ = table.Append([]string{"NATS Bucket", formatConfigValue(config.Cache.NATS.Bucket)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatDuration(value time.Duration) string {
	if value == 0 {
		return ""
	}

	return value.String()
}

func parseBoolValue(value string) bool {
	return value == constants.BooleanTrue || value == "1"
}

func setInt(target *int, key, value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return fmt.Errorf("invalid %s %q: expected a non-negative integer", key, value)
	}

	*target = parsed

	return nil
}

// maskToken keeps the first few characters of a token visible.
func maskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) <= constants.TokenVisiblePrefix {
		return constants.MaskedSecret
	}

	return token[:constants.TokenVisiblePrefix] + constants.MaskedSecret
}
