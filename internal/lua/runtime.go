package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/huecatalog/internal/bridge"
	"github.com/dokzlo13/huecatalog/internal/lua/modules"
)

// ErrRuntimeClosed is returned when the Lua runtime is closed
var ErrRuntimeClosed = fmt.Errorf("lua runtime closed")

// Runtime owns one Lua VM. Script runs are serialized.
type Runtime struct {
	L         *lua.LState
	inventory *bridge.Inventory
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
}

// NewRuntime creates a new Lua runtime with the log, catalog and inventory
// modules preloaded. A zero timeout disables the per-run deadline.
func NewRuntime(inv *bridge.Inventory, timeout time.Duration) *Runtime {
	r := &Runtime{
		L:         lua.NewState(),
		inventory: inv,
		timeout:   timeout,
	}

	r.registerModules()

	return r
}

// registerModules registers all Lua modules
func (r *Runtime) registerModules() {
	r.L.PreloadModule("log", modules.NewLogModule().Loader)
	r.L.PreloadModule("catalog", modules.NewCatalogModule().Loader)
	r.L.PreloadModule("inventory", modules.NewInventoryModule(r.inventory).Loader)
}

// Close closes the Lua state. Safe to call more than once.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// LoadScript loads and executes a Lua script file
func (r *Runtime) LoadScript(ctx context.Context, path string) error {
	log.Info().Str("path", path).Msg("Loading Lua script")

	err := r.run(ctx, func() error { return r.L.DoFile(path) })
	if err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}

	log.Info().Msg("Lua script finished")
	return nil
}

// DoString executes a Lua chunk
func (r *Runtime) DoString(ctx context.Context, source string) error {
	return r.run(ctx, func() error { return r.L.DoString(source) })
}

func (r *Runtime) run(ctx context.Context, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// Set context on LState so long running scripts are interrupted
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	return fn()
}
