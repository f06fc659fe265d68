// Package dispatch resolves short variant codes (vendor model numbers,
// capability type names) to constructors, with a mandatory Unknown fallback.
//
// Registries are meant to be built once at package initialization and only
// read afterwards, so lookups need no locking.
package dispatch

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Unknown is the sentinel code every key set must contain.
const Unknown = "Unknown"

var (
	ErrMissingDefault     = errors.New("registry has no " + Unknown + " entry")
	ErrDuplicateKey       = errors.New("duplicate registry key")
	ErrEmptyKey           = errors.New("empty registry key")
	ErrMissingConstructor = errors.New("registry key has no constructor")
	ErrUnknownKey         = errors.New("constructor registered for undeclared key")
)

// KeySet is the canonical, immutable list of codes supported by a domain.
// Several registries may share one KeySet so that they always agree on
// which codes exist.
type KeySet struct {
	keys  map[string]struct{}
	codes []string
}

// NewKeySet builds a key set from the given codes. Unknown must be among them.
func NewKeySet(codes ...string) (*KeySet, error) {
	ks := &KeySet{
		keys:  make(map[string]struct{}, len(codes)),
		codes: make([]string, 0, len(codes)),
	}
	for _, code := range codes {
		if code == "" {
			return nil, ErrEmptyKey
		}
		if _, exists := ks.keys[code]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, code)
		}
		ks.keys[code] = struct{}{}
		ks.codes = append(ks.codes, code)
	}
	if _, ok := ks.keys[Unknown]; !ok {
		return nil, ErrMissingDefault
	}
	sort.Strings(ks.codes)
	return ks, nil
}

// MustKeySet is like NewKeySet but panics on error.
func MustKeySet(codes ...string) *KeySet {
	ks, err := NewKeySet(codes...)
	if err != nil {
		panic(fmt.Sprintf("dispatch: %v", err))
	}
	return ks
}

// Resolve returns code if it is a member of the set, Unknown otherwise.
// Matching is exact and case-sensitive.
func (k *KeySet) Resolve(code string) string {
	if _, ok := k.keys[code]; ok {
		return code
	}
	return Unknown
}

// Contains reports whether code is a member of the set.
func (k *KeySet) Contains(code string) bool {
	_, ok := k.keys[code]
	return ok
}

// Codes returns the sorted member codes, Unknown included.
func (k *KeySet) Codes() []string {
	out := make([]string, len(k.codes))
	copy(out, k.codes)
	return out
}

// Len returns the number of codes in the set.
func (k *KeySet) Len() int {
	return len(k.codes)
}

// Registry maps every code of a KeySet to a constructor of type C.
type Registry[C any] struct {
	keys    *KeySet
	entries map[string]C
}

// New validates entries against keys and returns an immutable registry.
// Every key needs a non-nil constructor and no constructor may be keyed by a
// code outside the set.
func New[C any](keys *KeySet, entries map[string]C) (*Registry[C], error) {
	if keys == nil {
		return nil, ErrMissingDefault
	}
	for code := range entries {
		if !keys.Contains(code) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, code)
		}
	}

	copied := make(map[string]C, keys.Len())
	for _, code := range keys.codes {
		ctor, ok := entries[code]
		if !ok || isNil(ctor) {
			return nil, fmt.Errorf("%w: %q", ErrMissingConstructor, code)
		}
		copied[code] = ctor
	}

	return &Registry[C]{keys: keys, entries: copied}, nil
}

// MustNew is like New but panics on error. Use it for package-level
// registries so a broken table stops the process before any lookup.
func MustNew[C any](keys *KeySet, entries map[string]C) *Registry[C] {
	r, err := New(keys, entries)
	if err != nil {
		panic(fmt.Sprintf("dispatch: %v", err))
	}
	return r
}

// Lookup resolves code and returns the resolved key with its constructor.
// It always hits: unrecognized codes yield the Unknown constructor.
func (r *Registry[C]) Lookup(code string) (string, C) {
	key := r.keys.Resolve(code)
	return key, r.entries[key]
}

// Resolve maps code onto the registry's key set.
func (r *Registry[C]) Resolve(code string) string {
	return r.keys.Resolve(code)
}

// Keys returns the key set the registry was validated against.
func (r *Registry[C]) Keys() *KeySet {
	return r.keys
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
