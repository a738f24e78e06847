package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/framework/debug"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
	"github.com/justyntemme/paramorder/pkg/framework/process"
)

func renderCommand(a *app) *cobra.Command {
	var sets []string
	var preset string

	cmd := &cobra.Command{
		Use:   "render IN OUT.wav",
		Short: "Process a WAV or FLAC file through the plugin into a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readClip(args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			metrics, err := debug.NewMetrics(reg, a.plugin.GetInfo().ID)
			if err != nil {
				return err
			}

			inst, err := a.newInstance(plugin.WithMetrics(metrics))
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			if preset != "" {
				if err := loadStateFile(inst, preset); err != nil {
					return err
				}
			}
			if err := applySets(inst, sets); err != nil {
				return err
			}

			out, err := a.render(inst, in)
			if err != nil {
				return err
			}
			if err := writeWAV(args[1], out); err != nil {
				return err
			}

			a.logCycles(reg)
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d frames, %d channels at %d Hz\n",
				out.frames(), len(out.Channels), out.SampleRate)
			return nil
		},
	}

	cmd.Flags().Int("block-size", 512, "Samples per processing block")
	_ = a.v.BindPFlag("block_size", cmd.Flags().Lookup("block-size"))
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a parameter before rendering (key=value, repeatable)")
	cmd.Flags().StringVar(&preset, "preset", "", "Load parameter state from a file first")
	return cmd
}

// render negotiates the clip's layout and feeds it through the instance one
// block at a time, in place
func (a *app) render(inst *plugin.Instance, in *clip) (*clip, error) {
	channels := int32(len(in.Channels))
	cfg, err := bus.Negotiate(bus.NegotiatorFunc(inst.AcceptsBusConfig), bus.Config{Inputs: channels, Outputs: channels})
	if err != nil {
		return nil, err
	}
	if err := inst.Configure(cfg); err != nil {
		return nil, err
	}

	blockSize := a.settings.BlockSize
	if err := inst.Activate(float64(in.SampleRate), int32(blockSize)); err != nil {
		return nil, err
	}
	inst.Context().Transport.Playing = true

	out := &clip{
		SampleRate: in.SampleRate,
		BitDepth:   in.BitDepth,
		Channels:   make([][]float32, len(in.Channels)),
	}
	for ch := range out.Channels {
		out.Channels[ch] = make([]float32, in.frames())
	}

	buf := process.NewBuffer(len(in.Channels), blockSize)
	for start := 0; start < in.frames(); start += blockSize {
		n := min(blockSize, in.frames()-start)
		buf.SetLength(n)
		for ch, samples := range buf.Channels {
			copy(samples, in.Channels[ch][start:start+n])
		}

		if status := inst.Process(buf, nil, nil); status == process.StatusError {
			return nil, fmt.Errorf("processing failed at frame %d", start)
		}

		for ch, samples := range buf.Channels {
			copy(out.Channels[ch][start:start+n], samples)
		}
	}

	for ch, samples := range out.Channels {
		debug.LogBufferStats(samples, fmt.Sprintf("output[%d]", ch))
	}
	return out, nil
}

func (a *app) logCycles(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		a.log.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("metric", mf.GetName())}
			for _, l := range m.GetLabel() {
				fields = append(fields, zap.String(l.GetName(), l.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				fields = append(fields, zap.Float64("value", m.GetGauge().GetValue()))
			}
			a.log.Info("render metrics", fields...)
		}
	}
}
