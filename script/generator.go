package script

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/tasengine"
)

const (
	ErrLoadScript = "script: load %s: %v"
	ErrCallFrame  = "script: tas_frame: %v"
	ErrReturnType = "script: tas_frame: unexpected return value at position %d"
)

const entryPoint = "tas_frame"

// Generator evaluates a Lua script's tas_frame(frame, port) function and
// returns its result as a ManualState. Nothing in config or tasengine
// creates or calls a Generator; its output reaches the Manual Input Layer
// (C4) only if a caller passes it to Engine.SetManual.
//
// Frame and Close serialise on an internal mutex, so a Generator may be
// shared between goroutines even though *lua.LState itself is not
// goroutine-safe.
type Generator struct {
	mu sync.Mutex
	l  *lua.LState
}

// NewGenerator loads and runs path, which must define a global tas_frame
// function, and returns a Generator ready for repeated calls to Frame.
func NewGenerator(path string) (*Generator, error) {
	l := lua.NewState()
	if err := l.DoFile(path); err != nil {
		l.Close()
		return nil, curated.Errorf(ErrLoadScript, path, err)
	}
	if fn, ok := l.GetGlobal(entryPoint).(*lua.LFunction); !ok || fn == nil {
		l.Close()
		return nil, curated.Errorf(ErrLoadScript, path, "no global "+entryPoint+" function")
	}
	return &Generator{l: l}, nil
}

// Close releases the underlying Lua state.
func (g *Generator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.l.Close()
}

// Frame calls tas_frame(frame, port) and returns the resulting
// ManualState, clamped exactly as the editor GUI's input would be.
func (g *Generator) Frame(frame uint64, port int) (tasengine.ManualState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn := g.l.GetGlobal(entryPoint)
	if err := g.l.CallByParam(lua.P{
		Fn:      fn,
		NRet:    7,
		Protect: true,
	}, lua.LNumber(frame), lua.LNumber(port)); err != nil {
		return tasengine.ManualState{}, curated.Errorf(ErrCallFrame, err)
	}
	defer g.l.Pop(7)

	vals := make([]lua.LValue, 7)
	for i := range vals {
		vals[i] = g.l.Get(-7 + i)
	}

	floats := make([]float32, 6)
	for i := 0; i < 6; i++ {
		n, ok := vals[i].(lua.LNumber)
		if !ok {
			return tasengine.ManualState{}, curated.Errorf(ErrReturnType, i+1)
		}
		floats[i] = float32(n)
	}

	mask, err := parseButtonsReturn(vals[6])
	if err != nil {
		return tasengine.ManualState{}, err
	}

	state := tasengine.ManualState{
		LX: floats[0], LY: floats[1], RX: floats[2], RY: floats[3],
		ZL: floats[4], ZR: floats[5],
		Buttons: mask,
	}
	state.Clamp()
	return state, nil
}

func parseButtonsReturn(v lua.LValue) (buttons.Mask, error) {
	switch t := v.(type) {
	case lua.LNumber:
		return buttons.Mask(uint32(t)), nil
	case lua.LString:
		if m, ok := buttons.ParseList(string(t)); ok {
			return m, nil
		}
		return 0, curated.Errorf(ErrReturnType, 7)
	default:
		return 0, curated.Errorf(ErrReturnType, 7)
	}
}
