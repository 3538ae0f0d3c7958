package measurement

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"measurement-generator/schema"
)

var ErrNilValue = errors.New("measurement: nil value")

type entry struct {
	once  sync.Once
	codec *Codec
	err   error
}

// registry maps reflect.Type to *entry. Failed resolutions are cached as well:
// a type that does not resolve never will.
var registry sync.Map

// For returns the codec of t, resolving and compiling it on first use.
// Pointer types are dereferenced once.
func For(t reflect.Type) (*Codec, error) {
	if t == nil {
		return nil, ErrNilValue
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	e, ok := registry.Load(t)
	if !ok {
		e, _ = registry.LoadOrStore(t, new(entry))
	}

	ent := e.(*entry)
	ent.once.Do(func() {
		rt, err := schema.Resolve(schema.FromReflect(t))
		if err != nil {
			ent.err = err
			return
		}

		ent.codec = Compile(t, rt)
	})

	return ent.codec, ent.err
}

// Of returns the codec of T.
func Of[T any]() (*Codec, error) {
	return For(reflect.TypeFor[T]())
}

// Register resolves T eagerly so a malformed type is reported at startup
// rather than on its first write.
func Register[T any]() error {
	_, err := Of[T]()
	return err
}

// MustRegister is Register for package-level initialization.
func MustRegister[T any]() {
	if err := Register[T](); err != nil {
		panic(fmt.Sprintf("measurement: %v", err))
	}
}
