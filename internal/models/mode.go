package models

import "fmt"

// Mode selects whether execution relocates or duplicates files. Parsing
// happens once at the configuration boundary so an invalid mode is a config
// error, not a silent default deep in the executor.
type Mode int

const (
	// ModeMove relocates each file to its target path.
	ModeMove Mode = iota
	// ModeCopy duplicates each file at its target path, leaving the source.
	ModeCopy
)

// ParseMode converts the configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "move":
		return ModeMove, nil
	case "copy":
		return ModeCopy, nil
	default:
		return ModeMove, fmt.Errorf("invalid mode %q: must be \"move\" or \"copy\"", s)
	}
}

// String returns the configuration spelling of the mode.
func (m Mode) String() string {
	if m == ModeCopy {
		return "copy"
	}
	return "move"
}

// Status returns the journal status recorded for a successful operation in
// this mode.
func (m Mode) Status() Status {
	if m == ModeCopy {
		return StatusCopied
	}
	return StatusMoved
}
