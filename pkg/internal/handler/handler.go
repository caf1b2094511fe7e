// Package handler provides reflection-based invoker execution for the subscribers package.
package handler

import (
	"fmt"
	"reflect"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Handler is a subscriber's invoker method bound to its receiver.
type Handler struct {
	Fn           reflect.Value
	ParamType    reflect.Type
	ReturnsError bool
}

// NewHandler binds the method named method on subscriber.
// The method must have signature: func(E) or func(E) error.
// A non-pointer subscriber whose method has a pointer receiver is copied
// into a new addressable value.
func NewHandler(subscriber any, method string) (*Handler, error) {
	if subscriber == nil {
		return nil, core.ErrNilHandler
	}

	recv := reflect.ValueOf(subscriber)
	if recv.Kind() == reflect.Pointer && recv.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", core.ErrNilHandler, recv.Type())
	}

	fn := recv.MethodByName(method)
	if !fn.IsValid() && recv.Kind() != reflect.Pointer {
		ptr := reflect.New(recv.Type())
		ptr.Elem().Set(recv)
		fn = ptr.MethodByName(method)
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: %q on %s", core.ErrMethodNotFound, method, recv.Type())
	}

	fnType := fn.Type()
	if fnType.NumIn() != 1 || fnType.IsVariadic() {
		return nil, fmt.Errorf("%w: %q on %s", core.ErrInvalidArity, method, recv.Type())
	}

	h := &Handler{Fn: fn, ParamType: fnType.In(0)}

	// Validate return type - allow nothing or error
	switch fnType.NumOut() {
	case 0:
	case 1:
		if !fnType.Out(0).Implements(errorType) {
			return nil, fmt.Errorf("%w: %q on %s", core.ErrInvalidReturn, method, recv.Type())
		}
		h.ReturnsError = true
	default:
		return nil, fmt.Errorf("%w: %q on %s", core.ErrInvalidReturn, method, recv.Type())
	}

	return h, nil
}

// Execute calls the invoker with event, adapting it to the parameter type.
// A panic in the invoker is returned as an error.
func (h *Handler) Execute(event any) (err error) {
	if !h.Fn.IsValid() {
		return fmt.Errorf("handler function is nil or invalid")
	}

	arg, err := h.argument(event)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	results := h.Fn.Call([]reflect.Value{arg})
	if h.ReturnsError && !results[0].IsNil() {
		return results[0].Interface().(error)
	}
	return nil
}

// argument converts event into a value assignable to the parameter type:
// directly, by dereferencing or taking the address, or by wrapping it in a
// union.
func (h *Handler) argument(event any) (reflect.Value, error) {
	if event == nil {
		return reflect.Value{}, fmt.Errorf("subscribers: nil event")
	}

	if core.IsUnion(h.ParamType) {
		return core.NewUnionValue(h.ParamType, event)
	}

	v := reflect.ValueOf(event)
	if v.Type().AssignableTo(h.ParamType) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Type().AssignableTo(h.ParamType) {
		return v.Elem(), nil
	}
	if h.ParamType.Kind() == reflect.Pointer && v.Type().AssignableTo(h.ParamType.Elem()) {
		ptr := reflect.New(h.ParamType.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("subscribers: cannot pass %s to handler expecting %s", v.Type(), h.ParamType)
}
