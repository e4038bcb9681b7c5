package cmd

import (
	"errors"

	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/platform/script"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a recorded drag-and-drop session",
	Long: `Build the layout of a session script and feed its native events to the
platform bridge in order. Prints each step and the notifications every drop
region received.

Example script:
  layout:
    density: 2
    regions:
      - name: gallery
        bounds: [0, 0, 100, 100]
        source: {files: [/tmp/cat.png], preview: image}
      - name: pose
        bounds: [120, 0, 80, 50]
        target: {accept: ["image/*"], maxFiles: 1}
  events:
    - {type: drag, x: 20, y: 20}
    - {type: enter, x: 20, y: 20}
    - {type: over, x: 260, y: 20}
    - {type: drop, x: 260, y: 20}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float32("density", 0, "Display density when the layout sets none (default from config)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	s, err := script.Parse(data)
	if err != nil {
		return err
	}
	runner, sinks, err := newRunner()
	if err != nil {
		return err
	}
	if d, _ := cmd.Flags().GetFloat32("density"); d > 0 {
		runner.Density = d
	}

	res, err := runner.Run(cmd.Context(), s)
	if err != nil {
		return err
	}
	return errors.Join(output.Print(res), sinks.wait())
}
