package convert

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/dzonerzy/go-argbind/parse"
)

var registry = struct {
	sync.RWMutex
	constructors map[reflect.Type]reflectConverter
	enums        map[reflect.Type]reflectConverter
}{
	constructors: make(map[reflect.Type]reflectConverter),
	enums:        make(map[reflect.Type]reflectConverter),
}

// Register installs fn as the string constructor for T. Default uses it
// when no earlier strategy applies. Registering again replaces fn.
func Register[T any](fn func(string) (T, error)) {
	registry.Lock()
	defer registry.Unlock()
	registry.constructors[parse.TypeOf[T]()] = func(value string) (reflect.Value, error) {
		v, err := fn(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

// RegisterEnum installs the case-insensitive names of an enumeration type.
// Default resolves T (and *T) through these names ahead of any cast.
func RegisterEnum[T comparable](names map[string]T) {
	dict := Enum(names)
	registry.Lock()
	defer registry.Unlock()
	registry.enums[parse.TypeOf[T]()] = func(value string) (reflect.Value, error) {
		v, err := dict.Convert(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

func registeredEnum(t reflect.Type) (reflectConverter, bool) {
	registry.RLock()
	defer registry.RUnlock()
	rc, ok := registry.enums[t]
	return rc, ok
}

func registeredConstructor(t reflect.Type) (reflectConverter, bool) {
	registry.RLock()
	defer registry.RUnlock()
	rc, ok := registry.constructors[t]
	return rc, ok
}

// DictionaryConverter maps fixed keys to values.
type DictionaryConverter[T any] struct {
	values     map[string]T
	ignoreCase bool
}

// Dictionary returns a converter accepting exactly the keys of values.
func Dictionary[T any](values map[string]T) *DictionaryConverter[T] {
	copied := make(map[string]T, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &DictionaryConverter[T]{values: copied}
}

// Enum is a Dictionary that matches keys case-insensitively.
func Enum[T any](names map[string]T) *DictionaryConverter[T] {
	lowered := make(map[string]T, len(names))
	for k, v := range names {
		lowered[strings.ToLower(k)] = v
	}
	d := &DictionaryConverter[T]{values: lowered, ignoreCase: true}
	return d
}

// Convert looks value up in the dictionary.
func (d *DictionaryConverter[T]) Convert(value string) (T, error) {
	key := value
	if d.ignoreCase {
		key = strings.ToLower(value)
	}
	if v, ok := d.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%q is not a valid value, choices are: %s", value, strings.Join(d.Keys(), ", "))
}

// Keys returns the accepted keys in sorted order.
func (d *DictionaryConverter[T]) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
