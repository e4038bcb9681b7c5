package cmd

import (
	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <layout.yaml>",
	Short: "List the regions of a layout",
	Long:  "Validate a layout file and print its regions as a flat list with ancestor paths, roles and accepted MIME types.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().String("within", "", "Only regions overlapping x,y,w,h (logical units)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	l, err := model.LoadLayout(args[0])
	if err != nil {
		return err
	}
	regions := model.FlattenRegions(l.Regions)
	if within, _ := cmd.Flags().GetString("within"); within != "" {
		bbox, err := model.ParseBBox(within)
		if err != nil {
			return err
		}
		regions = model.FilterWithin(regions, bbox)
	}
	if regions == nil {
		regions = []model.FlatRegion{}
	}
	return output.Print(output.LayoutResult{
		Window:  l.Window,
		Density: l.Density,
		Regions: regions,
	})
}
