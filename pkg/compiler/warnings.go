package compiler

const (
	WarnRedundantNotAvailable = "redundant_not_available"
	WarnCourseWithoutGroups   = "course_without_groups"
	WarnEmptyCompoundGroup    = "empty_compound_group"
	WarnUnknownRoom           = "unknown_room"
	WarnEmptyRoomSet          = "empty_room_set"
	WarnUnassignableRoomGroup = "unassignable_room_group"
	WarnLunchUnavailable      = "lunch_unavailable"
)

// Warning is a policy problem the compiler worked around. Warnings never alter other records
type Warning struct {
	Kind    string `json:"kind"`
	Entity  string `json:"entity"`
	Message string `json:"message"`
}
