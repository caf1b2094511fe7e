package core

import (
	"fmt"
	"reflect"
)

// Union is implemented by parameter types that stand for one of several
// event types. A handler declaring a union parameter is subscribed to every
// member.
type Union interface {
	// Members returns the member event types in declaration order.
	Members() []reflect.Type
	// Value returns the event carried by the union, or nil for the zero value.
	Value() any
}

// unionSetter is implemented by pointers to the OneOf types.
type unionSetter interface {
	setValue(v any)
}

var unionType = reflect.TypeOf((*Union)(nil)).Elem()

// IsUnion reports whether t is a union parameter type.
func IsUnion(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && t.Implements(unionType)
}

// UnionMembers returns the member types of the union type t.
func UnionMembers(t reflect.Type) []reflect.Type {
	if !IsUnion(t) {
		return nil
	}
	return reflect.Zero(t).Interface().(Union).Members()
}

// NewUnionValue returns a value of union type t carrying v. v must be
// assignable to one of the members of t, either directly, through its
// pointer, or by dereferencing it.
func NewUnionValue(t reflect.Type, v any) (reflect.Value, error) {
	if !IsUnion(t) {
		return reflect.Value{}, fmt.Errorf("subscribers: %s is not a union type", t)
	}
	if v == nil {
		return reflect.Value{}, fmt.Errorf("subscribers: nil value for union %s", t)
	}

	carried, ok := memberValue(UnionMembers(t), reflect.ValueOf(v))
	if !ok {
		return reflect.Value{}, fmt.Errorf("subscribers: %T is not a member of %s", v, t)
	}

	ptr := reflect.New(t)
	setter, ok := ptr.Interface().(unionSetter)
	if !ok {
		return reflect.Value{}, fmt.Errorf("subscribers: %s cannot carry values", t)
	}
	setter.setValue(carried.Interface())
	return ptr.Elem(), nil
}

// memberValue adapts v to the first member it can be passed as.
func memberValue(members []reflect.Type, v reflect.Value) (reflect.Value, bool) {
	for _, m := range members {
		if v.Type().AssignableTo(m) {
			return v, true
		}
	}
	for _, m := range members {
		if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Type().AssignableTo(m) {
			return v.Elem(), true
		}
		if m.Kind() == reflect.Pointer && v.Type().AssignableTo(m.Elem()) {
			ptr := reflect.New(m.Elem())
			ptr.Elem().Set(v)
			return ptr, true
		}
	}
	return reflect.Value{}, false
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func as[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

// OneOf2 declares a handler parameter accepting either T1 or T2.
type OneOf2[T1, T2 any] struct {
	value any
}

func (OneOf2[T1, T2]) Members() []reflect.Type {
	return []reflect.Type{typeOf[T1](), typeOf[T2]()}
}

func (u OneOf2[T1, T2]) Value() any { return u.value }

func (u *OneOf2[T1, T2]) setValue(v any) { u.value = v }

// First returns the carried event if it is a T1.
func (u OneOf2[T1, T2]) First() (T1, bool) { return as[T1](u.value) }

// Second returns the carried event if it is a T2.
func (u OneOf2[T1, T2]) Second() (T2, bool) { return as[T2](u.value) }

// OneOf3 declares a handler parameter accepting T1, T2 or T3.
type OneOf3[T1, T2, T3 any] struct {
	value any
}

func (OneOf3[T1, T2, T3]) Members() []reflect.Type {
	return []reflect.Type{typeOf[T1](), typeOf[T2](), typeOf[T3]()}
}

func (u OneOf3[T1, T2, T3]) Value() any { return u.value }

func (u *OneOf3[T1, T2, T3]) setValue(v any) { u.value = v }

func (u OneOf3[T1, T2, T3]) First() (T1, bool) { return as[T1](u.value) }

func (u OneOf3[T1, T2, T3]) Second() (T2, bool) { return as[T2](u.value) }

func (u OneOf3[T1, T2, T3]) Third() (T3, bool) { return as[T3](u.value) }

// OneOf4 declares a handler parameter accepting T1, T2, T3 or T4.
type OneOf4[T1, T2, T3, T4 any] struct {
	value any
}

func (OneOf4[T1, T2, T3, T4]) Members() []reflect.Type {
	return []reflect.Type{typeOf[T1](), typeOf[T2](), typeOf[T3](), typeOf[T4]()}
}

func (u OneOf4[T1, T2, T3, T4]) Value() any { return u.value }

func (u *OneOf4[T1, T2, T3, T4]) setValue(v any) { u.value = v }

func (u OneOf4[T1, T2, T3, T4]) First() (T1, bool) { return as[T1](u.value) }

func (u OneOf4[T1, T2, T3, T4]) Second() (T2, bool) { return as[T2](u.value) }

func (u OneOf4[T1, T2, T3, T4]) Third() (T3, bool) { return as[T3](u.value) }

func (u OneOf4[T1, T2, T3, T4]) Fourth() (T4, bool) { return as[T4](u.value) }
