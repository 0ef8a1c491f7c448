package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scripted impact effects.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is fine (no scripted effects).
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// CallImpact invokes the named global hook as hook(template, x, y, damage).
// A missing hook is a no-op; a script error is returned so the caller can
// log it — one bad script must not kill the simulation.
func (e *Engine) CallImpact(hook, template string, x, y float64, damage int) error {
	fn := e.vm.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	return e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(template), lua.LNumber(x), lua.LNumber(y), lua.LNumber(damage))
}

// HasHook reports whether a global Lua function with the given name exists.
func (e *Engine) HasHook(hook string) bool {
	return e.vm.GetGlobal(hook).Type() == lua.LTFunction
}

func (e *Engine) Close() {
	e.vm.Close()
}
