package service

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type addCommand struct{ A, B int }

type greetCommand struct{ Name string }

type failCommand struct{ Panic bool }

type unknownCommand struct{}

var errBoom = errors.New("boom")

type MockHooks struct {
	mock.Mock
}

func (m *MockHooks) BeforeExecuteCommand(ctx context.Context, id string, cmd domain.Command) {
	m.Called(ctx, id, cmd)
}

func (m *MockHooks) OnCommandExecuted(ctx context.Context, id string, cmd domain.Command, result *domain.Result) {
	m.Called(ctx, id, cmd, result)
}

func (m *MockHooks) OnCommandException(ctx context.Context, id string, cmd domain.Command, err error) {
	m.Called(ctx, id, cmd, err)
}

func (m *MockHooks) AfterHandleFinally(ctx context.Context) {
	m.Called(ctx)
}

// recordingHooks keeps the order of notifications.
type recordingHooks struct {
	mutex    sync.Mutex
	events   []string
	finally  int
	lastErr  error
	dispatch []string
}

func (r *recordingHooks) record(event string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingHooks) BeforeExecuteCommand(ctx context.Context, id string, _ domain.Command) {
	r.record("before:" + id)
	r.mutex.Lock()
	r.dispatch = append(r.dispatch, domain.DispatchID(ctx))
	r.mutex.Unlock()
}

func (r *recordingHooks) OnCommandExecuted(_ context.Context, id string, _ domain.Command, _ *domain.Result) {
	r.record("executed:" + id)
}

func (r *recordingHooks) OnCommandException(_ context.Context, id string, _ domain.Command, err error) {
	r.record("exception:" + id)
	r.mutex.Lock()
	r.lastErr = err
	r.mutex.Unlock()
}

func (r *recordingHooks) AfterHandleFinally(_ context.Context) {
	r.record("finally")
	r.mutex.Lock()
	r.finally++
	r.mutex.Unlock()
}

func newTestBus(t *testing.T, hooks *recordingHooks) *Bus {
	t.Helper()

	add := command.NewHandler("add", func(_ context.Context, cmd addCommand, result *domain.Result) error {
		result.Put(cmd.A + cmd.B)
		return nil
	}, domain.Constructor{
		Params: []domain.Kind{domain.KindInt, domain.KindInt},
		Build: func(args domain.Args) domain.Command {
			return addCommand{A: args.Int(0), B: args.Int(1)}
		},
	})

	greet := command.NewHandler("greet", func(_ context.Context, cmd greetCommand, result *domain.Result) error {
		result.Put("hello " + cmd.Name)
		return nil
	}, domain.Constructor{
		Params: []domain.Kind{domain.KindString},
		Build: func(args domain.Args) domain.Command {
			return greetCommand{Name: args.Str(0)}
		},
	})

	fail := command.NewHandler("fail", func(_ context.Context, cmd failCommand, _ *domain.Result) error {
		if cmd.Panic {
			panic("kaboom")
		}
		return errBoom
	}, domain.Constructor{
		Params: []domain.Kind{domain.KindBool},
		Build: func(args domain.Args) domain.Command {
			return failCommand{Panic: args.Bool(0)}
		},
	})

	registry, err := command.NewRegistry(add, greet, fail)
	require.NoError(t, err)

	if hooks == nil {
		return NewBus(registry, nil, Flags{})
	}

	return NewBus(registry, hooks, Flags{})
}

func TestHandleRoutesByType(t *testing.T) {
	bus := newTestBus(t, nil)

	result, err := bus.Handle(t.Context(), addCommand{A: 3, B: 4})
	require.NoError(t, err)
	sum, err := domain.ValueOf[int](result)
	require.NoError(t, err)
	assert.Equal(t, 7, sum)

	result, err = bus.Handle(t.Context(), greetCommand{Name: "bob"})
	require.NoError(t, err)
	greeting, err := domain.ValueOf[string](result)
	require.NoError(t, err)
	assert.Equal(t, "hello bob", greeting)
}

func TestHandleUnknownCommand(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	tests := []struct {
		name string
		cmd  domain.Command
	}{
		{name: "unregistered type", cmd: unknownCommand{}},
		{name: "pointer to registered type", cmd: &addCommand{}},
		{name: "nil command", cmd: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := bus.Handle(t.Context(), tc.cmd)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.False(t, result.IsPresent())
		})
	}

	assert.Empty(t, hooks.events)
}

func TestHandleHookProtocol(t *testing.T) {
	hooks := new(MockHooks)
	bus := newTestBus(t, nil)
	bus.hooks = hooks

	cmd := addCommand{A: 1, B: 2}
	hooks.On("BeforeExecuteCommand", mock.Anything, "add", cmd).Once()
	hooks.On("OnCommandExecuted", mock.Anything, "add", cmd, mock.AnythingOfType("*domain.Result")).Once()
	hooks.On("AfterHandleFinally", mock.Anything).Once()

	_, err := bus.Handle(t.Context(), cmd)
	require.NoError(t, err)

	hooks.AssertExpectations(t)
	hooks.AssertNotCalled(t, "OnCommandException", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleHandlerError(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	result, err := bus.Handle(t.Context(), failCommand{})
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, result)

	assert.Equal(t, []string{"before:fail", "exception:fail", "finally"}, hooks.events)
	assert.ErrorIs(t, hooks.lastErr, errBoom)
}

func TestHandleHandlerPanic(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = bus.Handle(t.Context(), failCommand{Panic: true})
	})

	assert.Equal(t, []string{"before:fail", "exception:fail", "finally"}, hooks.events)

	var panicErr *PanicError
	require.ErrorAs(t, hooks.lastErr, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
}

func TestAfterHandleFinallyRunsOnce(t *testing.T) {
	tests := []struct {
		name string
		run  func(bus *Bus)
	}{
		{
			name: "success",
			run: func(bus *Bus) {
				_, _ = bus.Handle(context.Background(), addCommand{})
			},
		},
		{
			name: "handler error",
			run: func(bus *Bus) {
				_, _ = bus.Handle(context.Background(), failCommand{})
			},
		},
		{
			name: "handler panic",
			run: func(bus *Bus) {
				defer func() { _ = recover() }()
				_, _ = bus.Handle(context.Background(), failCommand{Panic: true})
			},
		},
		{
			name: "cli handler error",
			run: func(bus *Bus) {
				_, _ = bus.Start(context.Background(), []string{"-command=fail", "-arg=false"})
			},
		},
		{
			name: "cli handler panic",
			run: func(bus *Bus) {
				_, _ = bus.Start(context.Background(), []string{"-command=fail", "-arg=true"})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &recordingHooks{}
			bus := newTestBus(t, hooks)

			tc.run(bus)

			assert.Equal(t, 1, hooks.finally)
		})
	}
}

func TestDispatchIDPerAttempt(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	_, err := bus.Handle(t.Context(), addCommand{})
	require.NoError(t, err)
	_, err = bus.Handle(t.Context(), addCommand{})
	require.NoError(t, err)

	require.Len(t, hooks.dispatch, 2)
	assert.NotEmpty(t, hooks.dispatch[0])
	assert.NotEqual(t, hooks.dispatch[0], hooks.dispatch[1])
}

func TestDispatch(t *testing.T) {
	bus := newTestBus(t, nil)

	sum, err := Dispatch[int](t.Context(), bus, addCommand{A: 2, B: 5})
	require.NoError(t, err)
	assert.Equal(t, 7, sum)

	_, err = Dispatch[int](t.Context(), bus, unknownCommand{})
	require.ErrorIs(t, err, domain.ErrNoResult)

	_, err = Dispatch[int](t.Context(), bus, failCommand{})
	require.ErrorIs(t, err, errBoom)
}

func TestHandleConcurrent(t *testing.T) {
	bus := newTestBus(t, nil)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sum, err := Dispatch[int](context.Background(), bus, addCommand{A: i, B: i})
			assert.NoError(t, err)
			assert.Equal(t, 2*i, sum)
		}()
	}
	wg.Wait()
}

func TestStartWebMode(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	assert.Equal(t, ModeIdle, bus.Mode())

	result, err := bus.Start(t.Context(), []string{"-arg=3", "serve"})
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.False(t, bus.IsCliMode())
	assert.Equal(t, ModeWeb, bus.Mode())
	assert.Empty(t, hooks.events)
}

func TestStartCLIMode(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    any
		wantNil bool
	}{
		{
			name: "add",
			args: []string{"-command=add", "-arg=3", "-arg=4"},
			want: 7,
		},
		{
			name: "args before selector ignored",
			args: []string{"-arg=100", "-command=add", "-arg=3", "-arg=4"},
			want: 7,
		},
		{
			name: "string constructor",
			args: []string{"-command=greet", "-arg=hello"},
			want: "hello hello",
		},
		{
			name:    "incompatible arguments",
			args:    []string{"-command=add", "-arg=3", "-arg=4", "-arg=5"},
			wantNil: true,
		},
		{
			name:    "malformed integer",
			args:    []string{"-command=add", "-arg=3", "-arg=x"},
			wantNil: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &recordingHooks{}
			bus := newTestBus(t, hooks)

			result, err := bus.Start(t.Context(), tc.args)
			require.NoError(t, err)
			assert.True(t, bus.IsCliMode())

			if tc.wantNil {
				assert.Nil(t, result)
				assert.Empty(t, hooks.events)
				return
			}

			got, err := result.Get()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 1, hooks.finally)
		})
	}
}

func TestStartCLIHandlerErrorSwallowed(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	result, err := bus.Start(t.Context(), []string{"-command=fail", "-arg=false"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsPresent())

	assert.Equal(t, []string{"before:fail", "exception:fail", "finally"}, hooks.events)
	assert.ErrorIs(t, hooks.lastErr, errBoom)
}

func TestStartCLIHandlerPanicSwallowed(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	assert.NotPanics(t, func() {
		_, err := bus.Start(t.Context(), []string{"-command=fail", "-arg=TRUE"})
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{"before:fail", "exception:fail", "finally"}, hooks.events)
}

func TestStartUnknownCommand(t *testing.T) {
	hooks := &recordingHooks{}
	bus := newTestBus(t, hooks)

	result, err := bus.Start(t.Context(), []string{"-command=nope", "-arg=1"})
	require.ErrorIs(t, err, domain.ErrCommandNotFound)
	assert.Nil(t, result)
	assert.True(t, bus.IsCliMode())
	assert.Empty(t, hooks.events)
}

func TestStartTwice(t *testing.T) {
	bus := newTestBus(t, nil)

	_, err := bus.Start(t.Context(), nil)
	require.NoError(t, err)

	_, err = bus.Start(t.Context(), []string{"-command=add", "-arg=1", "-arg=2"})
	require.ErrorIs(t, err, domain.ErrAlreadyStarted)
	assert.Equal(t, ModeWeb, bus.Mode())
}

func TestHandleAfterCLIStart(t *testing.T) {
	bus := newTestBus(t, nil)

	_, err := bus.Start(t.Context(), []string{"-command=add", "-arg=1", "-arg=2"})
	require.NoError(t, err)

	sum, err := Dispatch[int](t.Context(), bus, addCommand{A: 5, B: 5})
	require.NoError(t, err)
	assert.Equal(t, 10, sum)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", ModeIdle.String())
	assert.Equal(t, "web", ModeWeb.String())
	assert.Equal(t, "cli", ModeCLI.String())
}

func TestStartReportsRequestedCommandID(t *testing.T) {
	ctor := domain.Constructor{
		Params: []domain.Kind{domain.KindInt, domain.KindInt},
		Build: func(args domain.Args) domain.Command {
			return addCommand{A: args.Int(0), B: args.Int(1)}
		},
	}
	handle := func(_ context.Context, cmd addCommand, result *domain.Result) error {
		result.Put(cmd.A * cmd.B)
		return nil
	}

	registry, err := command.NewRegistry(
		command.NewHandler("first", handle, ctor),
		command.NewHandler("second", handle, ctor),
	)
	require.NoError(t, err)

	hooks := &recordingHooks{}
	bus := NewBus(registry, hooks, Flags{})

	result, err := bus.Start(t.Context(), []string{"-command=first", "-arg=2", "-arg=3"})
	require.NoError(t, err)

	product, err := domain.ValueOf[int](result)
	require.NoError(t, err)
	assert.Equal(t, 6, product)
	assert.Equal(t, []string{"before:first", "executed:first", "finally"}, hooks.events)

	hooks.events = nil
	_, err = bus.Handle(t.Context(), addCommand{A: 1, B: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"before:second", "executed:second", "finally"}, hooks.events)
}
