package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/justyntemme/paramorder/pkg/clap"
	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/vst3"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Width(22)

func infoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print plugin metadata and host identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.newInstance()
			if err != nil {
				return err
			}
			defer inst.Deactivate()

			info := inst.Info()
			desc := clap.Descriptor(info)
			class := vst3.Class(info)
			w := cmd.OutOrStdout()

			field(w, "Name", info.Name)
			field(w, "Version", info.Version)
			field(w, "Vendor", info.Vendor)
			field(w, "URL", info.URL)
			field(w, "Email", info.Email)
			field(w, "Description", info.Description)
			field(w, "Default layout", info.DefaultBusConfig().String())
			field(w, "MIDI", fmt.Sprintf("in %s, out %s", info.MIDIInput, info.MIDIOutput))
			field(w, "Sample accurate", fmt.Sprintf("%t", info.SampleAccurateAutomation))
			field(w, "Parameters", fmt.Sprintf("%d", inst.Params().Count()))
			field(w, "CLAP ID", desc.ID)
			field(w, "CLAP features", strings.Join(desc.Features, ", "))
			field(w, "VST3 class ID", fmt.Sprintf("%X", class.CID))
			field(w, "VST3 categories", class.SubCategories)
			for _, b := range inst.Buses().Buses(bus.MediaTypeAudio) {
				field(w, "Bus", fmt.Sprintf("%s (%d ch)", b.Name, b.ChannelCount))
			}
			return nil
		},
	}
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), value)
}
