package utils

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// RegistryValidator is a function that validates a key-value pair before registration
type RegistryValidator[K cmp.Ordered, V any] func(key K, value V, existing map[K]V) error

// BaseRegistry is a thread-safe keyed registry with optional validation.
// Iteration always follows key order so that lookups built on it stay
// deterministic.
type BaseRegistry[K cmp.Ordered, V any] struct {
	mu              sync.RWMutex
	items           map[K]V
	validator       RegistryValidator[K, V]
	registryName    string
	keyDescriptor   string // e.g. "owner type"
	valueDescriptor string // e.g. "methods"
}

// NewBaseRegistry creates a new base registry with the specified configuration
func NewBaseRegistry[K cmp.Ordered, V any](registryName, keyDesc, valueDesc string) *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		items:           make(map[K]V),
		registryName:    registryName,
		keyDescriptor:   keyDesc,
		valueDescriptor: valueDesc,
	}
}

// SetValidator sets the validation function for this registry
func (r *BaseRegistry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds or replaces an item after validation
func (r *BaseRegistry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(key, value)
}

// Modify atomically replaces the item under key with the result of fn.
// fn receives the current value and whether it exists.
func (r *BaseRegistry[K, V]) Modify(key K, fn func(current V, exists bool) (V, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[key]
	updated, err := fn(current, exists)
	if err != nil {
		return fmt.Errorf("%s registry: %w", r.registryName, err)
	}
	return r.store(key, updated)
}

func (r *BaseRegistry[K, V]) store(key K, value V) error {
	if r.validator != nil {
		if err := r.validator(key, value, r.items); err != nil {
			return fmt.Errorf("%s registry: %w", r.registryName, err)
		}
	}
	r.items[key] = value
	return nil
}

// Get retrieves an item from the registry
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Has checks if a key exists in the registry
func (r *BaseRegistry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// List returns all keys in ascending order
func (r *BaseRegistry[K, V]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedKeys()
}

func (r *BaseRegistry[K, V]) sortedKeys() []K {
	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Size returns the number of items in the registry
func (r *BaseRegistry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// ForEach applies fn to each item in key order
func (r *BaseRegistry[K, V]) ForEach(fn func(K, V)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.sortedKeys() {
		fn(k, r.items[k])
	}
}

// String names the registry and its size, for diagnostics
func (r *BaseRegistry[K, V]) String() string {
	return fmt.Sprintf("%s (%d %s, keyed by %s)", r.registryName, r.Size(), r.valueDescriptor, r.keyDescriptor)
}

// NotEmptyKeyValidator validates that a string key is not empty
func NotEmptyKeyValidator[V any](keyDesc string) RegistryValidator[string, V] {
	return func(key string, value V, existing map[string]V) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", keyDesc)
		}
		return nil
	}
}

// NoDuplicateValidator validates that a key doesn't already exist
func NoDuplicateValidator[K cmp.Ordered, V any](keyDesc string) RegistryValidator[K, V] {
	return func(key K, value V, existing map[K]V) error {
		if _, exists := existing[key]; exists {
			return fmt.Errorf("%s '%v' is already registered", keyDesc, key)
		}
		return nil
	}
}
