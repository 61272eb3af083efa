package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	casetree "casetree/pkg"
)

// Version is set at build time
var Version = "0.3.0"

var (
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "casetree",
	Short:   "Materialize case-folder trees from CSV manifests",
	Long:    "casetree builds a case-folder directory tree from CSV manifests, copies staged source folders into it, and writes per-stage error CSVs for every rejected record.",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.ini", "Path to the INI configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Run log level (error, warning, info); overrides the config file")
	rootCmd.SilenceUsage = true
}

func run() error {
	cfg, err := casetree.LoadConfig(configFlag)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	log, err := casetree.NewLogger(cfg.LogFile, casetree.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer log.Close()

	wd, _ := os.Getwd()
	log.Infof("Program started. Working directory: %s", wd)

	runner := casetree.NewRunner(cfg, log)
	if err := runner.Run(); err != nil {
		log.Errorf("Fatal error: %v", err)
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "casetree: %v\n", err)
		os.Exit(1)
	}
}
