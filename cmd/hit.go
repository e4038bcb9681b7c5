package cmd

import (
	"fmt"
	"log/slog"

	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/platform/script"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"github.com/spf13/cobra"
)

var hitCmd = &cobra.Command{
	Use:   "hit <layout.yaml>",
	Short: "Show which regions lie under a point",
	Long:  "Print the chain of regions under a logical point, outermost first, and the records a drag started there would carry.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHit,
}

func init() {
	rootCmd.AddCommand(hitCmd)
	hitCmd.Flags().String("at", "", "Logical point x,y (required)")
}

func runHit(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return fmt.Errorf("specify --at x,y")
	}
	p, err := model.ParsePoint(at)
	if err != nil {
		return err
	}
	l, err := model.LoadLayout(args[0])
	if err != nil {
		return err
	}
	log := slog.Default()
	b := script.Builder{IgnoreSinks: true, Log: log}
	tree, err := b.Build(l)
	if err != nil {
		return err
	}
	res, err := tree.Hit(p, transfer.NewCodec(transfer.NewResolver(), log))
	if err != nil {
		return err
	}
	return output.Print(res)
}
