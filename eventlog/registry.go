package eventlog

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

var kinds = struct {
	sync.RWMutex
	types map[string]reflect.Type
}{types: make(map[string]reflect.Type)}

// MustRegister declares an event kind so that stored events of that kind can
// be decoded. It panics if the kind is registered twice. Call it from the
// init function of the package declaring the event.
func MustRegister(e paylock.Event) {
	tp := reflect.TypeOf(e)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("event %T must be a pointer", e))
	}

	kinds.Lock()
	defer kinds.Unlock()

	kind := e.EventKind()
	if _, ok := kinds.types[kind]; ok {
		panic(fmt.Sprintf("event kind %q already registered", kind))
	}
	kinds.types[kind] = tp.Elem()
}

// Decode returns the event stored in given record.
func Decode(r *Record) (paylock.Event, error) {
	kinds.RLock()
	tp, ok := kinds.types[r.Kind]
	kinds.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown event kind %q", r.Kind)
	}
	e := reflect.New(tp).Interface().(paylock.Event)
	if err := e.Unmarshal(r.Payload); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.Kind)
	}
	return e, nil
}
