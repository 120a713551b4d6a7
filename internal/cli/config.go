package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage Nexa configuration",
	Long: `Manage Nexa configuration stored in <data-dir>/config.yaml.

Configuration keys:
  storage.backend                  - Storage backend (file, memory, redis)
  storage.redis.addr               - Redis address
  storage.redis.db                 - Redis database number
  storage.redis.prefix             - Key prefix in redis
  logging.level                    - Log level (debug, info, warn, error)
  logging.format                   - Log format (json, text)
  assist.api_key                   - API key for description generation
  assist.model                     - Model used for description generation
  assist.timeout                   - Generation timeout (e.g. 30s)
  reports.maintenance_window_days  - Default horizon of the maintenance report
  journal.enabled                  - Write the hash-chained audit journal

Available commands:
  show              - Show current configuration
  set <key> <value> - Set a configuration value
  get <key>         - Get a configuration value`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfgPath, cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if jsonOutput {
			return outputJSON(cfg)
		}

		fmt.Println("# Nexa Configuration")
		fmt.Printf("# Location: %s\n\n", cfgPath)
		for _, key := range config.Keys {
			value, _ := cfg.Get(key)
			switch {
			case value == "":
				value = "(not set)"
			case key == "assist.api_key" || key == "storage.redis.password":
				value = "********"
			}
			fmt.Printf("%s: %s\n", key, value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in <data-dir>/config.yaml.

Examples:
  nexa config set storage.backend redis
  nexa config set storage.redis.addr localhost:6379
  nexa config set reports.maintenance_window_days 30
  nexa config set journal.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfgPath, cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("set config: %w", err)
		}
		if err := config.SaveFile(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value from <data-dir>/config.yaml.

Examples:
  nexa config get storage.backend
  nexa config get assist.model`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		key := args[0]
		value, err := cfg.Get(key)
		if err != nil {
			return fmt.Errorf("get config: %w", err)
		}

		if value == "" {
			fmt.Printf("%s (not set)\n", key)
		} else {
			fmt.Println(strings.TrimRight(value, "\n"))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
