package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justyntemme/paramorder/pkg/framework/process"
)

func negotiateCommand(a *app) *cobra.Command {
	var inputs, outputs int32

	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Propose a channel layout and run one silent block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.newInstance()
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			cfg := inst.Info().DefaultBusConfig()
			if cmd.Flags().Changed("inputs") {
				cfg.Inputs = inputs
			}
			if cmd.Flags().Changed("outputs") {
				cfg.Outputs = outputs
			}

			w := cmd.OutOrStdout()
			if err := inst.Configure(cfg); err != nil {
				fmt.Fprintf(w, "rejected %s\n", cfg)
				return err
			}
			fmt.Fprintf(w, "accepted %s\n", cfg)

			blockSize := int32(a.settings.BlockSize)
			if err := inst.Activate(a.settings.SampleRate, blockSize); err != nil {
				return err
			}

			buf := process.NewBuffer(int(cfg.Outputs), int(blockSize))
			status := inst.Process(buf, nil, nil)
			a.log.Debug("probe block processed",
				zap.Stringer("layout", cfg),
				zap.Stringer("status", status))
			fmt.Fprintf(w, "process status %s\n", status)
			if status == process.StatusError {
				return fmt.Errorf("plugin failed to process %s", cfg)
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&inputs, "inputs", 2, "Main input channels")
	cmd.Flags().Int32Var(&outputs, "outputs", 2, "Main output channels")
	return cmd
}
