package system

import (
	"fmt"

	"github.com/phmalek/hoomd-blue/internal/md"
)

// Roster maps type names to stable ids in declaration order.
type Roster struct {
	kind  md.Kind
	names []string
	index map[string]md.TypeID
}

func NewRoster(kind md.Kind, names []string) (*Roster, error) {
	r := &Roster{
		kind:  kind,
		names: make([]string, 0, len(names)),
		index: make(map[string]md.TypeID, len(names)),
	}
	for _, name := range names {
		if name == "" {
			return nil, &md.ConfigurationError{Msg: fmt.Sprintf("empty %s type name", kind), Wrapped: md.ErrInvalidParam}
		}
		if _, dup := r.index[name]; dup {
			return nil, &md.ConfigurationError{Msg: fmt.Sprintf("duplicate %s type %q", kind, name), Wrapped: md.ErrInvalidParam}
		}
		r.index[name] = md.TypeID(len(r.names))
		r.names = append(r.names, name)
	}
	return r, nil
}

func (r *Roster) Resolve(name string) (md.TypeID, error) {
	id, ok := r.index[name]
	if !ok {
		return 0, &md.ConfigurationError{
			Key:     name,
			Msg:     fmt.Sprintf("no such %s type", r.kind),
			Wrapped: md.ErrUnknownType,
		}
	}
	return id, nil
}

func (r *Roster) Name(id md.TypeID) string {
	if id < 0 || int(id) >= len(r.names) {
		return fmt.Sprintf("?%d", int(id))
	}
	return r.names[id]
}

func (r *Roster) Len() int { return len(r.names) }

func (r *Roster) Names() []string {
	c := make([]string, len(r.names))
	copy(c, r.names)
	return c
}
