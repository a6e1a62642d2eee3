// Command stickctl inspects and plays thumbstick layouts.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/thumbstick"
	"github.com/phanxgames/thumbstick/internal/config"
	"github.com/phanxgames/thumbstick/internal/logger"
)

// app holds state shared by all subcommands, filled in by the root
// command's PersistentPreRunE.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:               "stickctl",
		Short:             "virtual thumbstick toolbox",
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "stick layout file (yaml); empty uses the built-in layout")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console, text, json")

	rootCmd.AddCommand(
		newProbeCmd(a),
		newSweepCmd(a),
		newTUICmd(a),
		newPlayCmd(a),
		newInitCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if !logger.ValidFormat(cfg.Log.Format) {
		return fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	thumbstick.SetLogger(a.log)
	return nil
}

// stick looks up a stick by name, defaulting to the first one in the layout.
func (a *app) stick(name string) (config.StickSpec, error) {
	if name == "" {
		if len(a.cfg.Sticks) == 0 {
			return config.StickSpec{}, fmt.Errorf("layout has no sticks")
		}
		return a.cfg.Sticks[0], nil
	}
	s, ok := a.cfg.Stick(name)
	if !ok {
		return config.StickSpec{}, fmt.Errorf("no stick named %q", name)
	}
	return s, nil
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "write the built-in layout to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.Default()); err != nil {
				return err
			}
			a.log.Info("wrote layout", "path", args[0])
			return nil
		},
	}
}
