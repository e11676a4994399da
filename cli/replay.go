package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/gesturekit/binding"
	"github.com/dshills/gesturekit/gesture"
	"github.com/dshills/gesturekit/trace"
)

var (
	replaySpeed    float64
	replayBindings string
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace.json>",
	Short: "Replay a recorded pointer trace through the recognizer",
	Long: `Loads a trace recorded with 'pad --record', plays it into a fresh
recognizer, and prints each classified gesture. With --bindings the
bound action name is printed alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := trace.Load(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var binds *binding.Map
		if replayBindings != "" {
			binds, err = binding.LoadFile(replayBindings)
			if err != nil {
				return err
			}
		}

		collector := &gesture.Collector{Sink: func(e gesture.Event) {
			line := formatEvent(e)
			if binds != nil {
				if action, ok := binds.Resolve(e.Kind); ok {
					line += "  -> " + action
				}
			}
			fmt.Println(line)
		}}

		rec := gesture.New(collector)
		cfg.Apply(rec)

		player := trace.NewPlayer()
		player.SetSpeed(replaySpeed)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.WithField("samples", tr.Len()).Debug("replaying trace")
		if err := player.Play(ctx, tr, rec); err != nil {
			return err
		}

		stats := rec.Stats()
		fmt.Printf("%d samples, %d gestures\n", tr.Len(), stats.Total())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "playback speed multiplier (0 replays without delays)")
	replayCmd.Flags().StringVar(&replayBindings, "bindings", "", "YAML gesture binding file")
}

// formatEvent renders one classified gesture for the log pane and the
// replay output.
func formatEvent(e gesture.Event) string {
	switch e.Kind {
	case gesture.KindCancel:
		return "cancel"
	case gesture.KindScroll:
		return fmt.Sprintf("scroll d=(%.1f,%.1f) total=(%.1f,%.1f) at (%.1f,%.1f)",
			e.DX, e.DY, e.TotalX, e.TotalY, e.X, e.Y)
	case gesture.KindFling:
		return fmt.Sprintf("fling v=(%.0f,%.0f)", e.VelocityX, e.VelocityY)
	case gesture.KindScale:
		return fmt.Sprintf("scale %.3f at (%.1f,%.1f)", e.Factor, e.X, e.Y)
	case gesture.KindRotate:
		return fmt.Sprintf("rotate %.1fdeg at (%.1f,%.1f)", e.Angle, e.X, e.Y)
	default:
		return fmt.Sprintf("%s (%.1f,%.1f)", e.Kind, e.X, e.Y)
	}
}
