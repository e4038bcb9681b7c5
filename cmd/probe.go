package cmd

import (
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>...",
	Short: "Resolve files into name, MIME type and size",
	Long:  "Detect the MIME type of each file from its content, the way drop targets see it.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	r := transfer.NewResolver()
	res := output.ProbeResult{Files: []transfer.FileDesc{}}
	for _, path := range args {
		desc, err := r.Describe(transfer.NewFileLocator(path))
		if err != nil {
			return err
		}
		res.Files = append(res.Files, desc)
	}
	return output.Print(res)
}
