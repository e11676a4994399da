package cli

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/gesturekit/binding"
	"github.com/dshills/gesturekit/config"
	"github.com/dshills/gesturekit/driver/tcelldriver"
	"github.com/dshills/gesturekit/gesture"
	"github.com/dshills/gesturekit/pointer"
	"github.com/dshills/gesturekit/script"
	"github.com/dshills/gesturekit/trace"
)

const padLogRows = 10

var (
	padRecord   string
	padScript   string
	padBindings string
)

var padCmd = &cobra.Command{
	Use:   "pad",
	Short: "Interactive terminal gesture pad",
	Long: `Opens a full-screen pad that feeds terminal mouse input through the
recognizer and logs every classified gesture. Terminals report one
pointer, so taps, double taps, long presses, scrolls and flings are
reachable; pinch and rotation need a multi-contact source such as the
bridge.

Keys: l/d/s/r toggle long-press, double-tap, scale and rotation;
c clears the log; q or Esc quits.`,
	Args: cobra.NoArgs,
	RunE: runPad,
}

func init() {
	rootCmd.AddCommand(padCmd)
	padCmd.Flags().StringVar(&padRecord, "record", "", "write the raw pointer trace to this file on exit")
	padCmd.Flags().StringVar(&padScript, "script", "", "lua gesture hook file (overrides config)")
	padCmd.Flags().StringVar(&padBindings, "bindings", "", "YAML gesture binding file (overrides config)")
}

// padState is the mutable pad UI model. The recognizer delivers from the
// event loop and from detector timer goroutines, so it is mutex guarded.
type padState struct {
	mu    sync.Mutex
	lines []string
	trail []struct{ x, y int }
	max   int
}

func (p *padState) logf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
	if over := len(p.lines) - padLogRows; over > 0 {
		p.lines = p.lines[over:]
	}
}

func (p *padState) mark(x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.max <= 0 {
		return
	}
	p.trail = append(p.trail, struct{ x, y int }{x, y})
	if over := len(p.trail) - p.max; over > 0 {
		p.trail = p.trail[over:]
	}
}

func (p *padState) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = nil
	p.trail = nil
}

func (p *padState) snapshot() ([]string, []struct{ x, y int }) {
	p.mu.Lock()
	defer p.mu.Unlock()
	lines := append([]string(nil), p.lines...)
	trail := append([]struct{ x, y int }(nil), p.trail...)
	return lines, trail
}

func runPad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scriptPath := padScript
	if scriptPath == "" {
		scriptPath = cfg.Pad.Script
	}
	bindingsPath := padBindings
	if bindingsPath == "" {
		bindingsPath = cfg.Pad.Bindings
	}

	state := &padState{max: cfg.Pad.TrailLength}

	var binds *binding.Map
	if bindingsPath != "" {
		binds, err = binding.LoadFile(bindingsPath)
		if err != nil {
			return err
		}
	}

	var engine *script.Engine
	if scriptPath != "" {
		engine = script.NewEngine()
		defer engine.Close()
		if err := engine.LoadFile(scriptPath); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	collector := &gesture.Collector{Sink: func(e gesture.Event) {
		line := formatEvent(e)
		if binds != nil {
			if action, ok := binds.Resolve(e.Kind); ok {
				line += "  -> " + action
			}
		}
		state.logf("%s", line)
		if engine != nil {
			if err := engine.Dispatch(e); err != nil {
				state.logf("script: %v", err)
			}
		}
		// Wake the poll loop so timer-driven gestures render promptly.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}}

	rec := gesture.New(collector)
	cfg.Apply(rec)

	recorder := trace.NewRecorder()
	if padRecord != "" {
		if err := recorder.Start("pad"); err != nil {
			return err
		}
	}

	translator := tcelldriver.New(func(ev pointer.Event) {
		if recorder.IsRecording() {
			recorder.Record(ev)
		}
		p := ev.Primary()
		state.mark(int(p.X), int(p.Y))
		rec.OnPointerEvent(ev)
	})

	if configPath != "" {
		w, werr := config.Watch(configPath, func(next config.Config) {
			next.Apply(rec)
			state.logf("config reloaded")
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
		if werr != nil {
			state.logf("config watch unavailable: %v", werr)
		} else {
			defer w.Close()
		}
	}

	for {
		drawPad(screen, rec, state)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				translator.Cancel()
				return savePadTrace(recorder)
			case ev.Rune() == 'l':
				rec.SetLongPressEnabled(!rec.IsLongPressEnabled())
			case ev.Rune() == 'd':
				rec.SetDoubleTapEnabled(!rec.IsDoubleTapEnabled())
			case ev.Rune() == 's':
				rec.SetScaleEnabled(!rec.IsScaleEnabled())
			case ev.Rune() == 'r':
				rec.SetRotateEnabled(!rec.IsRotateEnabled())
			case ev.Rune() == 'c':
				state.clear()
			}
		case *tcell.EventMouse:
			translator.Handle(ev)
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func savePadTrace(recorder *trace.Recorder) error {
	if !recorder.IsRecording() {
		return nil
	}
	tr := recorder.Stop()
	if err := trace.Save(tr, padRecord); err != nil {
		return err
	}
	log.WithField("samples", tr.Len()).Info("trace written")
	fmt.Printf("trace written to %s (%d samples)\n", padRecord, tr.Len())
	return nil
}

func drawPad(screen tcell.Screen, rec *gesture.Recognizer, state *padState) {
	screen.Clear()
	width, height := screen.Size()

	statusStyle := tcell.StyleDefault.Reverse(true)
	dimStyle := tcell.StyleDefault.Dim(true)

	stats := rec.Stats()
	status := fmt.Sprintf(" gesturectl pad | long-press:%s double-tap:%s scale:%s rotate:%s | gestures:%d ",
		onOff(rec.IsLongPressEnabled()), onOff(rec.IsDoubleTapEnabled()),
		onOff(rec.IsScaleEnabled()), onOff(rec.IsRotateEnabled()), stats.Total())
	drawText(screen, 0, 0, width, statusStyle, status)
	drawText(screen, 0, 1, width, dimStyle, " l/d/s/r toggle  c clear  q quit")

	lines, trail := state.snapshot()

	padBottom := height - padLogRows - 1
	for i, pt := range trail {
		if pt.y < 2 || pt.y >= padBottom || pt.x < 0 || pt.x >= width {
			continue
		}
		ch := '.'
		if i == len(trail)-1 {
			ch = '*'
		}
		screen.SetContent(pt.x, pt.y, ch, nil, tcell.StyleDefault)
	}

	if padBottom >= 2 && padBottom < height {
		for x := 0; x < width; x++ {
			screen.SetContent(x, padBottom, '-', nil, dimStyle)
		}
	}
	for i, line := range lines {
		y := padBottom + 1 + i
		if y >= height {
			break
		}
		drawText(screen, 1, y, width-1, tcell.StyleDefault, line)
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
