package groups

import "fmt"

const (
	ErrInvalidGroup          = "invalid_group"
	ErrRepeatedGroup         = "repeated_group"
	ErrInvalidCompoundGroup  = "invalid_compound_group"
	ErrRepeatedCompoundGroup = "repeated_compound_group"
	ErrTooFewPrimaries       = "too_few_primaries"
	ErrTooFewGroups          = "too_few_groups"
	ErrTooManyAtomicGroups   = "too_many_atomic_groups"
)

// DivisionError reports an invalid division description. Division is the 0-based index of the
// offending division, or -1 when the error is not tied to one
type DivisionError struct {
	Kind     string
	Class    string
	Division int
	Group    string
}

func (err DivisionError) Error() string {
	switch {
	case err.Group != "" && err.Division >= 0:
		return fmt.Sprintf("%v: class \"%v\", division %v, group \"%v\"", err.Kind, err.Class, err.Division, err.Group)
	case err.Division >= 0:
		return fmt.Sprintf("%v: class \"%v\", division %v", err.Kind, err.Class, err.Division)
	default:
		return fmt.Sprintf("%v: class \"%v\"", err.Kind, err.Class)
	}
}
