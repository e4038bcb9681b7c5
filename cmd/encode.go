package cmd

import (
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <file>...",
	Short: "Encode files as a drag transfer payload",
	Long:  "Resolve each file's MIME type and print the locator list payload a drag would carry, or a text/uri-list with --uri-list.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("uri-list", false, "Emit a text/uri-list payload instead")
}

func runEncode(cmd *cobra.Command, args []string) error {
	codec := transfer.NewCodec(transfer.NewResolver(), nil)
	locs := make([]transfer.Locator, 0, len(args))
	for _, path := range args {
		locs = append(locs, transfer.NewFileLocator(path))
	}
	records, err := codec.Records(locs)
	if err != nil {
		return err
	}

	res := output.RecordsResult{OK: true, Action: "encode", Records: records}
	if uriList, _ := cmd.Flags().GetBool("uri-list"); uriList {
		res.Flavor = transfer.FileListFlavor
		res.Data = string(transfer.EncodeURIList(args))
		return output.Print(res)
	}
	bundle, err := transfer.EncodeRecords(records)
	if err != nil {
		return err
	}
	data, err := bundle.Data(transfer.LocatorListFlavor)
	if err != nil {
		return err
	}
	res.Flavor = transfer.LocatorListFlavor
	res.Data = string(data)
	return output.Print(res)
}
