package script

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/listkit/internal/list"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 2 * time.Second

// Hook names looked up in the script's globals.
const (
	HookOnAction   = "on_action"
	HookOnSelected = "on_selected"
)

const (
	globalItems      = "items"
	separatorLiteral = "---"
)

// Script is a loaded Lua program. A gopher-lua state is single-threaded;
// the mutex serializes callers.
type Script struct {
	mu      sync.Mutex
	L       *lua.LState
	logger  *slog.Logger
	timeout time.Duration
	closed  bool
}

// Option configures a Script.
type Option func(*Script)

// WithLogger sets the logger behind listkit.log.
func WithLogger(l *slog.Logger) Option {
	return func(s *Script) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds each script call.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates an empty sandboxed state.
func New(opts ...Option) *Script {
	s := &Script{
		logger:  slog.New(slog.DiscardHandler),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("listkit", s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"log": s.luaLog,
	}))
	return s
}

// LoadFile creates a script and runs path.
func LoadFile(path string, opts ...Option) (*Script, error) {
	s := New(opts...)
	if err := s.do(func() error { return s.L.DoFile(path) }); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// LoadString creates a script and runs code.
func LoadString(code string, opts ...Option) (*Script, error) {
	s := New(opts...)
	if err := s.do(func() error { return s.L.DoString(code) }); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return s, nil
}

// Items returns the specs the script's items global describes. A script
// without items yields none.
func (s *Script) Items() ([]list.ItemSpec, error) {
	var specs []list.ItemSpec
	err := s.do(func() error {
		v := s.L.GetGlobal(globalItems)
		if fn, ok := v.(*lua.LFunction); ok {
			if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
				return err
			}
			v = s.L.Get(-1)
			s.L.Pop(1)
		}
		var err error
		specs, err = toSpecs(v)
		return err
	})
	return specs, err
}

// HasHook reports whether the script defines the global function name.
func (s *Script) HasHook(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	_, ok := s.L.GetGlobal(name).(*lua.LFunction)
	return ok
}

// OnAction calls on_action(index, text). It reports whether the script
// asked the host to finish.
func (s *Script) OnAction(ctx context.Context, i int, text string) (bool, error) {
	var done bool
	err := s.call(ctx, HookOnAction, 1, func(ret []lua.LValue) {
		done = len(ret) > 0 && lua.LVAsBool(ret[0])
	}, lua.LNumber(i), lua.LString(text))
	return done, err
}

// OnSelected calls on_selected(indices, added, removed).
func (s *Script) OnSelected(ctx context.Context, indices, added, removed []int) error {
	return s.call(ctx, HookOnSelected, 0, nil,
		s.intTable(indices), s.intTable(added), s.intTable(removed))
}

// Close releases the Lua state.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}

func (s *Script) call(ctx context.Context, hook string, nret int, result func([]lua.LValue), args ...lua.LValue) error {
	return s.do(func() error {
		fn, ok := s.L.GetGlobal(hook).(*lua.LFunction)
		if !ok {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()

		top := s.L.GetTop()
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...); err != nil {
			return fmt.Errorf("%s: %w", hook, err)
		}
		n := s.L.GetTop() - top
		ret := make([]lua.LValue, n)
		for i := range n {
			ret[i] = s.L.Get(top + i + 1)
		}
		s.L.Pop(n)
		if result != nil {
			result(ret)
		}
		return nil
	})
}

// do runs fn under the lock with panic recovery.
func (s *Script) do(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScriptClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

func (s *Script) intTable(vals []int) *lua.LTable {
	t := s.L.CreateTable(len(vals), 0)
	for _, v := range vals {
		t.Append(lua.LNumber(v))
	}
	return t
}

func (s *Script) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	s.logger.Info(msg, "source", "script")
	return 0
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func toSpecs(v lua.LValue) ([]list.ItemSpec, error) {
	if v == lua.LNil {
		return nil, nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: items is a %s", ErrInvalidItems, v.Type())
	}

	var specs []list.ItemSpec
	for i := 1; i <= tbl.Len(); i++ {
		spec, err := toSpec(tbl.RawGetInt(i))
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func toSpec(v lua.LValue) (list.ItemSpec, error) {
	switch t := v.(type) {
	case lua.LString:
		if string(t) == separatorLiteral {
			return list.ItemSpec{Separator: true}, nil
		}
		return list.ItemSpec{Text: string(t)}, nil
	case *lua.LTable:
		spec := list.ItemSpec{
			Text:      lua.LVAsString(t.RawGetString("text")),
			Value:     lua.LVAsString(t.RawGetString("value")),
			Disabled:  lua.LVAsBool(t.RawGetString("disabled")),
			Selected:  lua.LVAsBool(t.RawGetString("selected")),
			Separator: lua.LVAsBool(t.RawGetString("separator")),
		}
		if spec.Text == "" && !spec.Separator {
			return spec, fmt.Errorf("%w: item without text", ErrInvalidItems)
		}
		return spec, nil
	default:
		return list.ItemSpec{}, fmt.Errorf("%w: %s", ErrInvalidItems, v.Type())
	}
}
