package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/vst3"
)

type paramRow struct {
	Index   int     `yaml:"index"`
	Key     string  `yaml:"key"`
	Name    string  `yaml:"name"`
	Module  string  `yaml:"module,omitempty"`
	Unit    string  `yaml:"unit,omitempty"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
	Value   float64 `yaml:"value"`
	ID      uint32  `yaml:"id"`
}

func rows(reg *param.Registry) []paramRow {
	out := make([]paramRow, 0, reg.Count())
	for _, e := range reg.Entries() {
		p := e.Param
		out = append(out, paramRow{
			Index:   e.Index,
			Key:     p.Key,
			Name:    p.Name,
			Module:  e.Module(),
			Unit:    p.Unit,
			Min:     p.Range.Min,
			Max:     p.Range.Max,
			Default: p.Default,
			Value:   p.Value(),
			ID:      vst3.ParamID(p.Key),
		})
	}
	return out
}

func renderParams(reg *param.Registry, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(rows(reg))
		if err != nil {
			return "", fmt.Errorf("failed to encode parameters: %w", err)
		}
		return string(data), nil
	case "table", "":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "KEY", "NAME", "MODULE", "RANGE", "DEFAULT", "VALUE", "ID").
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return s.Bold(true)
				}
				return s
			})
		for _, r := range rows(reg) {
			p := reg.At(r.Index)
			t.Row(
				strconv.Itoa(r.Index),
				r.Key,
				r.Name,
				r.Module,
				fmt.Sprintf("%g..%g", r.Min, r.Max),
				p.FormatValue(r.Default),
				p.FormatValue(r.Value),
				strconv.FormatUint(uint64(r.ID), 10),
			)
		}
		return t.String() + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q, expected table or yaml", format)
	}
}

func paramsCommand(a *app) *cobra.Command {
	var format string
	var sets []string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "List parameters in host automation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.newInstance()
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			if err := applySets(inst, sets); err != nil {
				return err
			}
			out, err := renderParams(inst.Params(), format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, yaml")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a parameter before listing (key=value, repeatable)")
	return cmd
}
