package constraints

import (
	"slices"

	"github.com/limaJavier/classtables/pkg/slots"
)

const (
	HardWeight = 100
	SoftWeight = 70
)

// Kind is the tag solver adapters dispatch on
type Kind string

const (
	NotAvailableTimesKind                Kind = "NotAvailableTimes"
	MaxDaysPerWeekKind                   Kind = "MaxDaysPerWeek"
	IntervalMaxDaysPerWeekKind           Kind = "IntervalMaxDaysPerWeek"
	MaxHoursDailyKind                    Kind = "MaxHoursDaily"
	MinHoursDailyKind                    Kind = "MinHoursDaily"
	MaxGapsPerDayKind                    Kind = "MaxGapsPerDay"
	MaxGapsPerWeekKind                   Kind = "MaxGapsPerWeek"
	EarlyMaxBeginningsAtSecondHourKind   Kind = "EarlyMaxBeginningsAtSecondHour"
	MinDaysBetweenActivitiesKind         Kind = "MinDaysBetweenActivities"
	ActivitiesPreferredStartingTimesKind Kind = "ActivitiesPreferredStartingTimes"
	ActivitiesEndStudentsDayKind         Kind = "ActivitiesEndStudentsDay"
	ActivityPreferredRoomKind            Kind = "ActivityPreferredRoom"
	ActivityPreferredRoomsKind           Kind = "ActivityPreferredRooms"
)

var (
	TimeKinds = []Kind{
		NotAvailableTimesKind,
		MaxDaysPerWeekKind,
		IntervalMaxDaysPerWeekKind,
		MaxHoursDailyKind,
		MinHoursDailyKind,
		MaxGapsPerDayKind,
		MaxGapsPerWeekKind,
		EarlyMaxBeginningsAtSecondHourKind,
		MinDaysBetweenActivitiesKind,
		ActivitiesPreferredStartingTimesKind,
		ActivitiesEndStudentsDayKind,
	}
	SpaceKinds = []Kind{
		ActivityPreferredRoomKind,
		ActivityPreferredRoomsKind,
	}
)

func (kind Kind) IsSpace() bool {
	return slices.Contains(SpaceKinds, kind)
}

type Constraint interface {
	Kind() Kind
}

// ActivityConstraint is implemented by constraints referring to activities by id
type ActivityConstraint interface {
	Constraint
	// Returns a copy whose activity ids have been mapped through remap
	RemapActivities(remap func(id int) int) Constraint
}

type EntityKind string

const (
	TeacherEntity EntityKind = "teacher"
	ClassEntity   EntityKind = "class"
)

type Entity struct {
	Kind EntityKind `json:"kind"`
	Id   string     `json:"id"`
}

type NotAvailableTimes struct {
	Entity Entity       `json:"entity"`
	Weight int          `json:"weight"`
	Slots  []slots.Slot `json:"slots"`
}

type MaxDaysPerWeek struct {
	Entity  Entity `json:"entity"`
	Weight  int    `json:"weight"`
	MaxDays int    `json:"max_days"`
}

// IntervalMaxDaysPerWeek limits the days with lessons inside [Start, End)
type IntervalMaxDaysPerWeek struct {
	Entity  Entity `json:"entity"`
	Weight  int    `json:"weight"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	MaxDays int    `json:"max_days"`
}

type MaxHoursDaily struct {
	Entity   Entity `json:"entity"`
	Weight   int    `json:"weight"`
	MaxHours int    `json:"max_hours"`
}

type MinHoursDaily struct {
	Entity         Entity `json:"entity"`
	Weight         int    `json:"weight"`
	MinHours       int    `json:"min_hours"`
	AllowEmptyDays bool   `json:"allow_empty_days"`
}

type MaxGapsPerDay struct {
	Entity  Entity `json:"entity"`
	Weight  int    `json:"weight"`
	MaxGaps int    `json:"max_gaps"`
}

type MaxGapsPerWeek struct {
	Entity  Entity `json:"entity"`
	Weight  int    `json:"weight"`
	MaxGaps int    `json:"max_gaps"`
}

type EarlyMaxBeginningsAtSecondHour struct {
	Entity        Entity `json:"entity"`
	Weight        int    `json:"weight"`
	MaxBeginnings int    `json:"max_beginnings"`
}

type MinDaysBetweenActivities struct {
	Weight               int   `json:"weight"`
	Activities           []int `json:"activities"`
	MinDays              int   `json:"min_days"`
	ConsecutiveIfSameDay bool  `json:"consecutive_if_same_day"`
}

type ActivitiesPreferredStartingTimes struct {
	Weight  int          `json:"weight"`
	Subject string       `json:"subject"`
	Slots   []slots.Slot `json:"slots"`
}

type ActivitiesEndStudentsDay struct {
	Weight  int    `json:"weight"`
	Subject string `json:"subject"`
}

type ActivityPreferredRoom struct {
	Weight            int    `json:"weight"`
	Activity          int    `json:"activity"`
	Room              string `json:"room"`
	PermanentlyLocked bool   `json:"permanently_locked"`
}

type ActivityPreferredRooms struct {
	Weight   int      `json:"weight"`
	Activity int      `json:"activity"`
	Rooms    []string `json:"rooms"`
}

func (NotAvailableTimes) Kind() Kind                { return NotAvailableTimesKind }
func (MaxDaysPerWeek) Kind() Kind                   { return MaxDaysPerWeekKind }
func (IntervalMaxDaysPerWeek) Kind() Kind           { return IntervalMaxDaysPerWeekKind }
func (MaxHoursDaily) Kind() Kind                    { return MaxHoursDailyKind }
func (MinHoursDaily) Kind() Kind                    { return MinHoursDailyKind }
func (MaxGapsPerDay) Kind() Kind                    { return MaxGapsPerDayKind }
func (MaxGapsPerWeek) Kind() Kind                   { return MaxGapsPerWeekKind }
func (EarlyMaxBeginningsAtSecondHour) Kind() Kind   { return EarlyMaxBeginningsAtSecondHourKind }
func (MinDaysBetweenActivities) Kind() Kind         { return MinDaysBetweenActivitiesKind }
func (ActivitiesPreferredStartingTimes) Kind() Kind { return ActivitiesPreferredStartingTimesKind }
func (ActivitiesEndStudentsDay) Kind() Kind         { return ActivitiesEndStudentsDayKind }
func (ActivityPreferredRoom) Kind() Kind            { return ActivityPreferredRoomKind }
func (ActivityPreferredRooms) Kind() Kind           { return ActivityPreferredRoomsKind }

func (constraint MinDaysBetweenActivities) RemapActivities(remap func(id int) int) Constraint {
	activities := make([]int, len(constraint.Activities))
	for i, id := range constraint.Activities {
		activities[i] = remap(id)
	}
	constraint.Activities = activities
	return constraint
}

func (constraint ActivityPreferredRoom) RemapActivities(remap func(id int) int) Constraint {
	constraint.Activity = remap(constraint.Activity)
	return constraint
}

func (constraint ActivityPreferredRooms) RemapActivities(remap func(id int) int) Constraint {
	constraint.Activity = remap(constraint.Activity)
	return constraint
}
