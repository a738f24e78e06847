// Package cli implements the paramorder offline host: a small command line
// tool that loads a plugin, negotiates a layout, processes audio files and
// manages parameter state without a DAW.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/justyntemme/paramorder/pkg/framework/debug"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
)

type app struct {
	plugin     plugin.Plugin
	v          *viper.Viper
	configFile string
	settings   Settings
	log        *zap.Logger
}

// RootCommand creates the root command hosting p
func RootCommand(p plugin.Plugin) *cobra.Command {
	a := &app{plugin: p, v: newViper(), log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "paramorder",
		Short:         "Offline host for the " + p.GetInfo().Name + " plugin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (e.g. paramorder.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Float64("sample-rate", 48000, "Sample rate used when no audio file sets one")
	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("sample_rate", rootCmd.PersistentFlags().Lookup("sample-rate"))

	rootCmd.AddCommand(
		infoCommand(a),
		paramsCommand(a),
		negotiateCommand(a),
		renderCommand(a),
		stateCommand(a),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.initialize()
	}

	return rootCmd
}

// initialize resolves settings and installs the framework logger
func (a *app) initialize() error {
	settings, err := loadSettings(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.settings = settings

	log, err := debug.New(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	debug.SetLogger(log)
	a.log = log.Named("host")
	return nil
}

// newInstance constructs a fresh plugin instance
func (a *app) newInstance(opts ...plugin.Option) (*plugin.Instance, error) {
	opts = append([]plugin.Option{plugin.WithLogger(a.log)}, opts...)
	return plugin.NewInstance(a.plugin, opts...)
}

// applySets applies key=value assignments in plain units
func applySets(inst *plugin.Instance, sets []string) error {
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, expected key=value", s)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if err := inst.SetParam(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return nil
}
