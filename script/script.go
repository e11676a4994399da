package script

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gesturekit/gesture"
)

// ErrEngineClosed is returned when operating on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// Engine runs Lua gesture hooks. Scripts define global functions named
// after gesture kinds (on_down, on_single_tap, on_scale, ...) and Dispatch
// calls whichever one matches the event. Hooks a script does not define are
// skipped.
//
// gopher-lua states are not goroutine-safe; the engine serializes access
// with a mutex so hooks always run one at a time.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// NewEngine creates an engine with a sandboxed Lua state.
func NewEngine() *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Base plus the value-manipulation libraries. io, os, debug and
	// package stay closed: gesture hooks have no business touching the
	// file system or the process.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return &Engine{L: L}
}

// HookName returns the Lua global a gesture kind dispatches to, for
// example "on_single_tap" for KindSingleTap.
func HookName(k gesture.Kind) string {
	return "on_" + strings.ReplaceAll(k.String(), "-", "_")
}

// LoadFile runs a Lua file, installing whatever hooks it defines.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.protect(func() error { return e.L.DoFile(path) }); err != nil {
		return fmt.Errorf("loading script %s: %w", path, err)
	}
	return nil
}

// LoadString runs Lua source code, installing whatever hooks it defines.
func (e *Engine) LoadString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.protect(func() error { return e.L.DoString(code) }); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return nil
}

// Dispatch calls the hook matching the event's kind, passing the fields
// relevant to that kind. A missing hook is not an error.
func (e *Engine) Dispatch(ev gesture.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	name := HookName(ev.Kind)
	fn := e.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	err := e.protect(func() error {
		return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, hookArgs(ev)...)
	})
	if err != nil {
		return fmt.Errorf("calling %s: %w", name, err)
	}
	return nil
}

// HasHook reports whether the loaded scripts define a hook for the kind.
func (e *Engine) HasHook(k gesture.Kind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	return e.L.GetGlobal(HookName(k)).Type() == lua.LTFunction
}

// Register exposes a Go function to scripts as a global.
func (e *Engine) Register(name string, fn lua.LGFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.L.SetGlobal(name, e.L.NewFunction(fn))
}

// Close releases the Lua state. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// protect runs fn, converting Lua panics into errors.
func (e *Engine) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// hookArgs selects the arguments for each hook:
//
//	on_down(x, y)          on_up(x, y)           on_cancel()
//	on_single_tap(x, y)    on_double_tap(x, y)   on_long_press(x, y)
//	on_scroll(dx, dy, total_x, total_y, x, y)
//	on_fling(vx, vy)
//	on_scale(factor, x, y)
//	on_rotate(angle, x, y)
func hookArgs(ev gesture.Event) []lua.LValue {
	num := func(f float32) lua.LValue { return lua.LNumber(f) }

	switch ev.Kind {
	case gesture.KindCancel:
		return nil
	case gesture.KindScroll:
		return []lua.LValue{num(ev.DX), num(ev.DY), num(ev.TotalX), num(ev.TotalY), num(ev.X), num(ev.Y)}
	case gesture.KindFling:
		return []lua.LValue{num(ev.VelocityX), num(ev.VelocityY)}
	case gesture.KindScale:
		return []lua.LValue{num(ev.Factor), num(ev.X), num(ev.Y)}
	case gesture.KindRotate:
		return []lua.LValue{num(ev.Angle), num(ev.X), num(ev.Y)}
	default:
		return []lua.LValue{num(ev.X), num(ev.Y)}
	}
}
