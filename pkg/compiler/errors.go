package compiler

import (
	"fmt"
	"strings"
)

const (
	ErrMissingClassroom = "missing_classroom"
	ErrNestedRoomGroup  = "nested_room_group"
	ErrUnknownRoomGroup = "unknown_room_group"
	ErrUnknownClass     = "unknown_class"
	ErrUnknownGroup     = "unknown_group"
	ErrInvalidInput     = "invalid_input"
)

// InputError reports input data the compiler cannot translate. Empty fields are not part of the error
type InputError struct {
	Kind    string
	Class   string
	Group   string
	Course  string
	Room    string
	Message string
}

func (err InputError) Error() string {
	var builder strings.Builder
	builder.WriteString(err.Kind)
	for _, field := range [][2]string{
		{"class", err.Class},
		{"group", err.Group},
		{"course", err.Course},
		{"room", err.Room},
	} {
		if field[1] != "" {
			fmt.Fprintf(&builder, ", %v \"%v\"", field[0], field[1])
		}
	}
	if err.Message != "" {
		fmt.Fprintf(&builder, ": %v", err.Message)
	}
	return builder.String()
}
