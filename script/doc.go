// Package script runs Lua hooks in response to classified gestures.
//
// Scripts are plain Lua files that define globals named after gesture
// kinds:
//
//	taps = 0
//
//	function on_single_tap(x, y)
//	    taps = taps + 1
//	    print("tap at", x, y)
//	end
//
//	function on_scale(factor, x, y)
//	    print("pinch", factor)
//	end
//
// An Engine loads one or more scripts and Dispatch routes each
// gesture.Event to the matching hook. The Lua state is sandboxed: io, os,
// debug and package are not available.
package script
