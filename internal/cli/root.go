// internal/cli/root.go
package rv6tool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaist-cp/rv6-tools/internal/appconfig"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "rv6tool",
	Short: "rv6tool — benchmark and unsafe-code audit harness for the rv6 kernel",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults); a file that exists but fails
		//    schema validation is a hard error before any side effect.
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) Materialize the fully merged configuration (flags > config >
		//    defaults) into a stable snapshot for the command packages.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		return nil
	},
}

// Execute runs the root command with signal-driven cancellation so an
// interrupted benchmark still cleans up its scratch state.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("dir", "", "kernel checkout to operate in (default: current directory)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	viper.SetDefault("iter", appconfig.DefaultIter)
	viper.SetDefault("execcount", appconfig.DefaultExecCount)
	viper.SetDefault("case", "")
	viper.SetDefault("timemode", appconfig.DefaultTimeMode)
	viper.SetDefault("verbose", false)
	viper.SetDefault("option", appconfig.DefaultOption)
	viper.SetDefault("output", appconfig.DefaultOutput)
	viper.SetDefault("pattern", appconfig.DefaultPattern)
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// No file: fine, we'll use defaults/flags.
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	if file := viper.ConfigFileUsed(); file != "" {
		if err := appconfig.ValidateFile(file); err != nil {
			return err
		}
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled reflects the merged viper state.
func DebugEnabled() bool { return viper.GetBool("debug") }
