package potential

import (
	"fmt"

	"github.com/phmalek/hoomd-blue/internal/md"
)

// ShiftMode selects how a pair potential is treated at its cutoff.
type ShiftMode int

const (
	NoShift ShiftMode = iota
	Shift
	XPLOR
)

var shiftModes = map[string]ShiftMode{
	"no_shift": NoShift,
	"shift":    Shift,
	"xplor":    XPLOR,
}

func (m ShiftMode) String() string {
	switch m {
	case NoShift:
		return "no_shift"
	case Shift:
		return "shift"
	case XPLOR:
		return "xplor"
	default:
		return fmt.Sprintf("shift_mode(%d)", int(m))
	}
}

// ParseShiftMode accepts exactly no_shift, shift and xplor.
func ParseShiftMode(s string) (ShiftMode, error) {
	m, ok := shiftModes[s]
	if !ok {
		return NoShift, &md.ConfigurationError{
			Msg:     fmt.Sprintf("invalid shift mode %q (want no_shift, shift or xplor)", s),
			Wrapped: md.ErrInvalidParam,
		}
	}
	return m, nil
}
