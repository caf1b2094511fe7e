package resolver

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
	"github.com/jdziat/simple-event-subscribers/pkg/registry"
)

// ---------------------------------------------------------------------------
// Helper types used across multiple tests
// ---------------------------------------------------------------------------

type UserCreated struct{ ID string }

type UserDeleted struct{ ID string }

type OrderPlaced struct{ Total int }

type Unregistered struct{}

type Auditable interface {
	AuditTrail() string
}

type singleHandler struct{}

func (singleHandler) Handle(UserCreated) {}

type pointerParamHandler struct{}

func (pointerParamHandler) Handle(*UserCreated) error { return nil }

type pointerReceiverHandler struct{}

func (*pointerReceiverHandler) Handle(UserCreated) {}

type unionHandler struct{}

func (unionHandler) Handle(core.OneOf2[UserCreated, UserDeleted]) {}

type duplicateUnionHandler struct{}

func (duplicateUnionHandler) Handle(core.OneOf3[UserCreated, *UserCreated, OrderPlaced]) {}

type interfaceHandler struct{}

func (interfaceHandler) Handle(Auditable) {}

type mixedUnionHandler struct{}

func (mixedUnionHandler) Handle(core.OneOf2[Auditable, OrderPlaced]) {}

type noInvokerHandler struct{}

func (noInvokerHandler) Process(UserCreated) {}

type unexportedInvokerHandler struct{}

func (unexportedInvokerHandler) handle(UserCreated) {}

type zeroArgHandler struct{}

func (zeroArgHandler) Handle() {}

type twoArgHandler struct{}

func (twoArgHandler) Handle(UserCreated, UserDeleted) {}

type variadicHandler struct{}

func (variadicHandler) Handle(...UserCreated) {}

type untypedHandler struct{}

func (untypedHandler) Handle(any) {}

type sliceHandler struct{}

func (sliceHandler) Handle([]UserCreated) {}

type anonymousStructHandler struct{}

func (anonymousStructHandler) Handle(struct{ ID string }) {}

type doublePointerHandler struct{}

func (doublePointerHandler) Handle(**UserCreated) {}

type nestedUnionHandler struct{}

func (nestedUnionHandler) Handle(core.OneOf2[core.OneOf2[UserCreated, UserDeleted], OrderPlaced]) {}

type anyMemberUnionHandler struct{}

func (anyMemberUnionHandler) Handle(core.OneOf2[UserCreated, any]) {}

type unknownHandler struct{}

func (unknownHandler) Handle(Unregistered) {}

type unknownUnionMemberHandler struct{}

func (unknownUnionMemberHandler) Handle(core.OneOf2[UserCreated, Unregistered]) {}

type onEventHandler struct{}

func (onEventHandler) OnEvent(OrderPlaced) {}

type handlerIface interface {
	Handle(UserDeleted) error
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, registry.Register[UserCreated](r))
	require.NoError(t, registry.Register[UserDeleted](r))
	require.NoError(t, registry.Register[OrderPlaced](r))
	require.NoError(t, registry.Register[Auditable](r))
	return r
}

func nameOf[T any]() string {
	return registry.TypeName(reflect.TypeOf((*T)(nil)).Elem())
}

// ---------------------------------------------------------------------------
// Resolve – successful resolution
// ---------------------------------------------------------------------------

func TestResolve_SingleNamedType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(singleHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[UserCreated](): "Handle"}, subs)
}

func TestResolve_PointerParameter(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(pointerParamHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[UserCreated](): "Handle"}, subs)
}

func TestResolve_PointerReceiverFromValueAndPointer(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))
	want := map[string]string{nameOf[UserCreated](): "Handle"}

	subs, err := r.Resolve(pointerReceiverHandler{})
	require.NoError(t, err)
	assert.Equal(t, want, subs)

	subs, err = r.Resolve(&pointerReceiverHandler{})
	require.NoError(t, err)
	assert.Equal(t, want, subs)
}

func TestResolve_UnionType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(unionHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		nameOf[UserCreated](): "Handle",
		nameOf[UserDeleted](): "Handle",
	}, subs)
}

func TestResolve_UnionDuplicatesCollapse(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	sig, err := r.Inspect(reflect.TypeOf(duplicateUnionHandler{}))
	require.NoError(t, err)
	require.Len(t, sig.Events, 2)
	assert.Equal(t, nameOf[UserCreated](), sig.Events[0].Name)
	assert.Equal(t, nameOf[OrderPlaced](), sig.Events[1].Name)
	assert.Len(t, sig.Subscriptions(), 2)
}

func TestResolve_InterfaceParameter(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(interfaceHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[Auditable](): "Handle"}, subs)
}

func TestResolve_UnionOfInterfaceAndStruct(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(mixedUnionHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		nameOf[Auditable]():   "Handle",
		nameOf[OrderPlaced](): "Handle",
	}, subs)
}

func TestResolve_AliasIsUsedAsKey(t *testing.T) {
	reg := registry.New()
	require.NoError(t, registry.RegisterAs[UserCreated](reg, "user.created"))
	r := New(WithRegistry(reg))

	subs, err := r.Resolve(singleHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user.created": "Handle"}, subs)
}

func TestResolve_CustomInvoker(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)), WithInvoker("OnEvent"))
	assert.Equal(t, "OnEvent", r.Invoker())

	subs, err := r.Resolve(onEventHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[OrderPlaced](): "OnEvent"}, subs)
}

func TestResolve_AcceptsReflectType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(reflect.TypeOf(unionHandler{}))
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestResolveType_InterfaceHandlerType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.ResolveType(reflect.TypeOf((*handlerIface)(nil)).Elem())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[UserDeleted](): "Handle"}, subs)
}

func TestResolve_Idempotent(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	first, err := r.Resolve(unionHandler{})
	require.NoError(t, err)
	second, err := r.Resolve(unionHandler{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_ConcurrentCalls(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))
	want, err := r.Resolve(mixedUnionHandler{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]map[string]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Resolve(mixedUnionHandler{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

// ---------------------------------------------------------------------------
// Resolve – validation failures
// ---------------------------------------------------------------------------

func TestResolve_RejectsNil(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	_, err := r.Resolve(nil)
	assert.ErrorIs(t, err, core.ErrNilHandler)

	_, err = r.ResolveType(nil)
	assert.ErrorIs(t, err, core.ErrNilHandler)
}

func TestResolve_MethodNotFound(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	for _, h := range []any{noInvokerHandler{}, unexportedInvokerHandler{}, 42} {
		subs, err := r.Resolve(h)
		require.ErrorIs(t, err, core.ErrMethodNotFound)
		assert.Nil(t, subs)
		assert.Contains(t, err.Error(), `"Handle"`)
	}
}

func TestResolve_InvalidArity(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	for _, h := range []any{zeroArgHandler{}, twoArgHandler{}, variadicHandler{}} {
		_, err := r.Resolve(h)
		assert.ErrorIs(t, err, core.ErrInvalidArity, "%T", h)
	}
}

func TestResolve_MissingParameterType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	_, err := r.Resolve(untypedHandler{})
	require.ErrorIs(t, err, core.ErrMissingParameterType)

	var rerr *core.ResolveError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "parameter #1", rerr.Param)
	assert.Contains(t, err.Error(), "parameter #1")
}

func TestResolve_UnresolvableType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	handlers := []any{
		sliceHandler{},
		anonymousStructHandler{},
		doublePointerHandler{},
		nestedUnionHandler{},
		anyMemberUnionHandler{},
	}
	for _, h := range handlers {
		_, err := r.Resolve(h)
		assert.ErrorIs(t, err, core.ErrUnresolvableType, "%T", h)
	}
}

func TestResolve_UnknownEventType(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	_, err := r.Resolve(unknownHandler{})
	require.ErrorIs(t, err, core.ErrUnknownEventType)

	var rerr *core.ResolveError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, nameOf[Unregistered](), rerr.Type)
	assert.Contains(t, err.Error(), nameOf[Unregistered]())
}

func TestResolve_UnknownUnionMemberFailsWholeCall(t *testing.T) {
	r := New(WithRegistry(newTestRegistry(t)))

	subs, err := r.Resolve(unknownUnionMemberHandler{})
	require.ErrorIs(t, err, core.ErrUnknownEventType)
	assert.Nil(t, subs)
	assert.Contains(t, err.Error(), "Unregistered")
}

func TestResolve_InterfaceNotRegistered(t *testing.T) {
	reg := registry.New()
	require.NoError(t, registry.Register[OrderPlaced](reg))
	r := New(WithRegistry(reg))

	_, err := r.Resolve(interfaceHandler{})
	assert.ErrorIs(t, err, core.ErrUnknownEventType)
}

// ---------------------------------------------------------------------------
// Package-level helper and logging
// ---------------------------------------------------------------------------

func TestResolveSubscriptions_UsesDefaultRegistry(t *testing.T) {
	registry.Default.Reset()
	t.Cleanup(registry.Default.Reset)
	require.NoError(t, registry.Register[OrderPlaced](registry.Default))

	_, err := ResolveSubscriptions(singleHandler{})
	assert.ErrorIs(t, err, core.ErrUnknownEventType)

	require.NoError(t, registry.Register[UserCreated](registry.Default))
	subs, err := ResolveSubscriptions(singleHandler{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{nameOf[UserCreated](): DefaultInvoker}, subs)
}

func TestResolve_LogsAtDebug(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	r := New(WithRegistry(newTestRegistry(t)), WithLogger(zap.New(obsCore)))

	_, err := r.Resolve(unionHandler{})
	require.NoError(t, err)
	_, err = r.Resolve(unknownHandler{})
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("resolved subscriptions").Len())
	entry := logs.FilterMessage("resolved subscriptions").All()[0]
	assert.Equal(t, "Handle", entry.ContextMap()["method"])

	assert.Equal(t, 1, logs.FilterMessage("subscription resolution failed").Len())
}

func TestNewOptions_Defaults(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, DefaultInvoker, o.Invoker)
	assert.Same(t, registry.Default, o.Registry)
	assert.NotNil(t, o.Logger)

	WithInvoker("").Apply(o)
	WithRegistry(nil).Apply(o)
	WithLogger(nil).Apply(o)
	assert.Equal(t, DefaultInvoker, o.Invoker)
	assert.Same(t, registry.Default, o.Registry)
}
