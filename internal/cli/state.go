package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/paramorder/pkg/framework/plugin"
	"github.com/justyntemme/paramorder/pkg/framework/state"
)

// isYAML picks the preset format from the file extension; anything else is
// binary CBOR state
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func saveStateFile(inst *plugin.Instance, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m := state.NewManager(inst.Info().ID, inst.Params())
	if isYAML(path) {
		err = m.SaveYAML(f)
	} else {
		err = m.Save(f)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func loadStateFile(inst *plugin.Instance, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m := state.NewManager(inst.Info().ID, inst.Params())
	if isYAML(path) {
		return m.LoadYAML(f)
	}
	return m.Load(f)
}

func stateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Save or inspect parameter state",
	}

	var sets []string
	save := &cobra.Command{
		Use:   "save FILE",
		Short: "Write parameter state (.yaml for a preset, CBOR otherwise)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.newInstance()
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			if err := applySets(inst, sets); err != nil {
				return err
			}
			if err := saveStateFile(inst, args[0]); err != nil {
				return fmt.Errorf("failed to save state: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d parameters to %s\n", inst.Params().Count(), args[0])
			return nil
		},
	}
	save.Flags().StringArrayVar(&sets, "set", nil, "Set a parameter before saving (key=value, repeatable)")

	var format string
	load := &cobra.Command{
		Use:   "load FILE",
		Short: "Load parameter state and list the resulting values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.newInstance()
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			if err := loadStateFile(inst, args[0]); err != nil {
				return fmt.Errorf("failed to load state: %w", err)
			}
			out, err := renderParams(inst.Params(), format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	load.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, yaml")

	cmd.AddCommand(save, load)
	return cmd
}
