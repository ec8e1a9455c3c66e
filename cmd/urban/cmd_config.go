package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"urban/internal/config"
)

var (
	configKey   string
	configValue string
	configRaw   bool
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local configuration (API keys etc.)",
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a configuration value",
	RunE:  runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a configuration value (masked unless --raw)",
	RunE:  runConfigGet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored configuration keys with masked values",
	RunE:  runConfigList,
}

func init() {
	configSetCmd.Flags().StringVar(&configKey, "key", "", "Configuration key (e.g. gemini-api-key)")
	configSetCmd.Flags().StringVar(&configValue, "value", "", "Configuration value")
	configSetCmd.MarkFlagRequired("key")
	configSetCmd.MarkFlagRequired("value")

	configGetCmd.Flags().StringVar(&configKey, "key", "", "Configuration key")
	configGetCmd.Flags().BoolVar(&configRaw, "raw", false, "Print the raw value without masking")
	configGetCmd.MarkFlagRequired("key")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
}

// openStore returns the store at the default path. Split out so command
// tests can point it elsewhere.
var openStore = func() *config.Store {
	return config.NewStore(config.DefaultPath())
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(configKey)
	if key == "" {
		return fmt.Errorf("configuration key is empty")
	}
	if strings.TrimSpace(configValue) == "" {
		return fmt.Errorf("configuration value is empty")
	}

	store := openStore()
	if err := store.Set(key, configValue); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.Debug("configuration saved", zap.String("key", key), zap.String("path", store.Path()))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", key)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store := openStore()
	value, ok := store.Get(configKey)
	if !ok {
		return fmt.Errorf("no such key: %s", configKey)
	}

	if configRaw {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), config.Mask(value))
	}
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	store := openStore()
	all := store.All()
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No config set yet.")
		return nil
	}

	keys := make([]string, 0, len(all))
	width := 0
	for k := range all {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  =  %s\n", width, k, config.Mask(all[k]))
	}
	return nil
}
