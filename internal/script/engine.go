// Package script hosts the sandboxed Lua interpreter that evaluates the
// configuration file.
package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/Paintersrp/astromark/internal/logging"
)

// DefaultTimeout bounds a single evaluation or callback.
const DefaultTimeout = 2 * time.Second

// Func is a Go function exposed to scripts. Arguments and results are plain
// Go values as produced by ToGo.
type Func func(args []any) (any, error)

// Function is a script function captured from an evaluated value.
type Function struct {
	fn *lua.LFunction
}

// Engine is a single Lua state. It is safe for use from multiple goroutines
// but evaluations are serialized.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	dir     string
	timeout time.Duration
	sealed  bool
}

type Options struct {
	// ModuleDir is where require() looks for modules.
	ModuleDir string
	Timeout   time.Duration
}

var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// disabled globals that would let a script evaluate arbitrary code or read
// files outside the module path
var disabledGlobals = []string{"load", "loadstring", "loadfile", "dofile"}

func New(opts Options) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range disabledGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal(lua.LoadLibName).(*lua.LTable); ok {
		path := ""
		if opts.ModuleDir != "" {
			path = filepath.Join(opts.ModuleDir, "?.lua")
		}
		L.SetField(pkg, "path", lua.LString(path))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	e := &Engine{L: L, dir: opts.ModuleDir, timeout: timeout}
	e.Register("log", func(args []any) (any, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, fmt.Sprint(a))
		}
		logging.Infof("script: %s", strings.Join(parts, " "))
		return nil, nil
	})
	e.RegisterKeybinds()
	e.RegisterColors()
	return e
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.L.Close()
}

// Register exposes fn as a global function. Errors returned by fn are raised
// as script errors.
func (e *Engine) Register(name string, fn Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.L.SetGlobal(name, e.L.NewFunction(wrap(fn)))
}

// SetGlobal exposes a Go value to scripts.
func (e *Engine) SetGlobal(name string, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.L.SetGlobal(name, FromGo(e.L, v))
}

// Seal makes reads of undefined globals an error. Call it after every global
// has been registered.
func (e *Engine) Seal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sealed {
		return
	}
	mt := e.L.NewTable()
	e.L.SetField(mt, "__index", e.L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("undefined variable %q", L.CheckAny(2).String())
		return 0
	}))
	e.L.SetMetatable(e.L.G.Global, mt)
	e.sealed = true
}

// Eval runs src and returns its first return value converted with ToGo.
func (e *Engine) Eval(ctx context.Context, src, name string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, err := e.L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	top := e.L.GetTop()
	e.L.Push(fn)
	if err := e.L.PCall(0, 1, nil); err != nil {
		e.L.SetTop(top)
		return nil, fmt.Errorf("failed to evaluate %s: %w", name, err)
	}
	ret := e.L.Get(-1)
	e.L.SetTop(top)
	return ToGo(ret), nil
}

// EvalFile reads and evaluates the script at path.
func (e *Engine) EvalFile(ctx context.Context, path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Eval(ctx, string(data), filepath.Base(path))
}

// Global returns a global defined by the script itself, bypassing Seal.
func (e *Engine) Global(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ToGo(e.L.G.Global.RawGetString(name))
}

// Call invokes a captured script function with the given arguments.
func (e *Engine) Call(ctx context.Context, f *Function, args ...any) error {
	if f == nil || f.fn == nil {
		return fmt.Errorf("no function to call")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	largs := make([]lua.LValue, 0, len(args))
	for _, a := range args {
		largs = append(largs, FromGo(e.L, a))
	}
	return e.L.CallByParam(lua.P{Fn: f.fn, NRet: 0, Protect: true}, largs...)
}

func wrap(fn Func) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		args := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			args = append(args, ToGo(L.Get(i)))
		}

		ret, err := fn(args)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		if ret == nil {
			return 0
		}
		L.Push(FromGo(L, ret))
		return 1
	}
}
