package cmd

import (
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file|-]",
	Short: "Decode a transfer payload into locator records",
	Long:  "Read a payload from a file or stdin and print the locators a drop would deliver. Malformed payloads decode to no records.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("flavor", transfer.LocatorListFlavor, "Payload flavor: "+transfer.LocatorListFlavor+" or "+transfer.FileListFlavor)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	flavor, _ := cmd.Flags().GetString("flavor")
	codec := transfer.NewCodec(transfer.NewResolver(), nil)
	bundle := transfer.NewBundle().Put(flavor, data)
	return output.Print(output.RecordsResult{
		OK:      true,
		Action:  "decode",
		Flavor:  flavor,
		Records: codec.Inspect(codec.Decode(bundle)),
	})
}
