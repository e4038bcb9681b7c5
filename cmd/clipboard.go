package cmd

import (
	"github.com/google/uuid"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/platform"
	"github.com/mj1618/desktop-dnd/internal/platform/clipboard"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/spf13/cobra"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Carry drag transfers over the system clipboard",
	Long:  "Copy files to the clipboard as a drag payload, or decode the payload currently on it.",
}

var clipboardCopyCmd = &cobra.Command{
	Use:   "copy <file>...",
	Short: "Put files on the clipboard as a locator list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClipboardCopy,
}

var clipboardPasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Decode the locators currently on the clipboard",
	RunE:  runClipboardPaste,
}

func init() {
	rootCmd.AddCommand(clipboardCmd)
	clipboardCmd.AddCommand(clipboardCopyCmd)
	clipboardCmd.AddCommand(clipboardPasteCmd)
}

func runClipboardCopy(cmd *cobra.Command, args []string) error {
	host, err := clipboard.NewHost()
	if err != nil {
		return err
	}
	codec := transfer.NewCodec(transfer.NewResolver(), nil)
	locs := make([]transfer.Locator, 0, len(args))
	for _, path := range args {
		locs = append(locs, transfer.NewFileLocator(path))
	}
	records, err := codec.Records(locs)
	if err != nil {
		return err
	}
	bundle, err := transfer.EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := host.StartDrag(platform.DragRequest{
		Gesture:  uuid.NewString(),
		Transfer: bundle,
		Records:  records,
	}); err != nil {
		return err
	}
	return output.Print(output.RecordsResult{
		OK:      true,
		Action:  "clipboard-copy",
		Flavor:  transfer.LocatorListFlavor,
		Records: records,
	})
}

func runClipboardPaste(cmd *cobra.Command, args []string) error {
	host, err := clipboard.NewHost()
	if err != nil {
		return err
	}
	codec := transfer.NewCodec(transfer.NewResolver(), nil)
	res := output.RecordsResult{OK: true, Action: "clipboard-paste", Records: []transfer.Record{}}
	if t := host.Pending(); t != nil {
		if flavors := t.Flavors(); len(flavors) > 0 {
			res.Flavor = flavors[0]
		}
		res.Records = codec.Inspect(codec.Decode(t))
	}
	return output.Print(res)
}
