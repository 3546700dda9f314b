package coeff

import (
	"fmt"
	"math"
	"strings"

	"github.com/phmalek/hoomd-blue/internal/md"
)

// Problem describes one key that failed validation.
type Problem struct {
	Key     md.TypeKey
	Missing []string
	Invalid []string
}

// Check lists every key in keys whose entry is absent, lacks a required
// name, or holds a non-finite required value.
func Check(t *Table, keys []md.TypeKey, required []string) []Problem {
	var problems []Problem
	for _, key := range keys {
		entry, ok := t.entries[key]
		if !ok {
			problems = append(problems, Problem{Key: key, Missing: append([]string(nil), required...)})
			continue
		}

		p := Problem{Key: key, Missing: entry.Missing(required)}
		for _, name := range required {
			if v, ok := entry[name]; ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
				p.Invalid = append(p.Invalid, name)
			}
		}
		if len(p.Missing) > 0 || len(p.Invalid) > 0 {
			problems = append(problems, p)
		}
	}
	return problems
}

// Validate returns nil when every key carries a complete coefficient set.
// Otherwise it returns a *md.ConfigurationError for the first failing key.
// label renders keys for the message; a nil label prints type ids.
func Validate(force string, t *Table, keys []md.TypeKey, required []string, label func(md.TypeKey) string) error {
	problems := Check(t, keys, required)
	if len(problems) == 0 {
		return nil
	}

	p := problems[0]
	keyName := p.Key.String()
	if label != nil {
		keyName = label(p.Key)
	}

	if len(p.Missing) > 0 {
		return &md.ConfigurationError{
			Force:   force,
			Key:     keyName,
			Msg:     fmt.Sprintf("missing %s", strings.Join(p.Missing, ", ")),
			Wrapped: md.ErrMissingCoeff,
		}
	}
	return &md.ConfigurationError{
		Force:   force,
		Key:     keyName,
		Msg:     fmt.Sprintf("non-finite %s", strings.Join(p.Invalid, ", ")),
		Wrapped: md.ErrInvalidParam,
	}
}
