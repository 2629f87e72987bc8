// internal/cli/bench.go
package rv6tool

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaist-cp/rv6-tools/internal/appconfig"
	"github.com/kaist-cp/rv6-tools/internal/bench"
	"github.com/kaist-cp/rv6-tools/internal/logging"
)

// benchCmd represents the bench command.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark repeated kernel builds and boots under QEMU",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("config is nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := logging.Init(cfg.LogFile); err != nil {
			return err
		}
		defer logging.Close()

		log.Printf("bench: %d iterations, %d executions each, %s mode", cfg.Iter, cfg.ExecCount, cfg.TimeMode)
		return bench.RunBench(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntP("iter", "i", appconfig.DefaultIter, "number of benchmark iterations")
	benchCmd.Flags().IntP("execcount", "e", appconfig.DefaultExecCount, "executions per iteration for each testcase")
	benchCmd.Flags().String("case", "", "testcase filter passed to the build")
	benchCmd.Flags().StringP("timemode", "t", appconfig.DefaultTimeMode, "time measurement scale: cpu-clock | wall-clock")
	benchCmd.Flags().BoolP("verbose", "v", false, "write detailed information to the result")
	benchCmd.Flags().String("option", appconfig.DefaultOption, "extra make options, space separated")
	benchCmd.Flags().StringP("output", "o", appconfig.DefaultOutput, "benchmark result path")

	_ = viper.BindPFlag("iter", benchCmd.Flags().Lookup("iter"))
	_ = viper.BindPFlag("execcount", benchCmd.Flags().Lookup("execcount"))
	_ = viper.BindPFlag("case", benchCmd.Flags().Lookup("case"))
	_ = viper.BindPFlag("timemode", benchCmd.Flags().Lookup("timemode"))
	_ = viper.BindPFlag("verbose", benchCmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("option", benchCmd.Flags().Lookup("option"))
	_ = viper.BindPFlag("output", benchCmd.Flags().Lookup("output"))
}
