package hdl

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/irdc/gohdl/pkg/logic"
)

// ErrNotAPart is returned when a name does not denote a registered
// part type.
var ErrNotAPart = errors.New("not a part")

var (
	regMu    sync.Mutex
	registry = make(map[string]*Type)
)

func register(t *Type) error {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[t.name]; dup {
		return errors.Wrapf(logic.ErrBadValue, "part %s already registered", t.name)
	}
	registry[t.name] = t
	return nil
}

// Lookup returns the registered part type of the given name.
func Lookup(name string) (*Type, error) {
	regMu.Lock()
	defer regMu.Unlock()
	t, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotAPart, "%s", name)
	}
	return t, nil
}

// Names returns all registered part names, sorted.
func Names() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
