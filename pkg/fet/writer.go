package fet

import (
	"log"
	"slices"

	"github.com/limaJavier/classtables/pkg/compiler"
	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/slots"
	"github.com/samber/lo"
)

const (
	defaultCapacity = 30000
	separator       = "."
)

// ToFET renders a compiled bundle as a FET document over the week described by slotModel
func ToFET(bundle *compiler.Bundle, slotModel *slots.Model) *Document {
	writer := &writer{slotModel: slotModel}

	document := &Document{
		Version: Version,
		Days: DaysList{
			Number: slotModel.DayCount(),
			Days:   named(slotModel.Days()),
		},
		Hours: HoursList{
			Number: slotModel.PeriodCount(),
			Hours:  named(slotModel.Periods()),
		},
		Subjects:     named(sortedUniq(lo.Map(bundle.Activities, func(activity constraints.Activity, _ int) string { return activity.Subject }))),
		ActivityTags: named(activityTags(bundle.Activities)),
		Teachers:     named(teachers(bundle)),
		Students:     lo.Map(bundle.Students, func(year compiler.StudentsYear, _ int) Year { return toYear(year) }),
		Activities:   toActivities(bundle.Activities),
		Buildings:    []Named{},
		Rooms:        toRooms(bundle),
	}

	//** Time constraints
	document.TimeConstraints.Constraints = []any{BasicCompulsoryTime{Weighted: Weighted{constraints.HardWeight}, Trailer: active()}}
	for _, kind := range constraints.TimeKinds {
		for _, constraint := range bundle.Constraints(kind) {
			document.TimeConstraints.Constraints = append(document.TimeConstraints.Constraints, writer.timeConstraint(constraint))
		}
	}

	//** Space constraints
	document.SpaceConstraints.Constraints = []any{BasicCompulsorySpace{Weighted: Weighted{constraints.HardWeight}, Trailer: active()}}
	for _, kind := range constraints.SpaceKinds {
		for _, constraint := range bundle.Constraints(kind) {
			document.SpaceConstraints.Constraints = append(document.SpaceConstraints.Constraints, spaceConstraint(constraint))
		}
	}

	return document
}

type writer struct {
	slotModel *slots.Model
}

func (writer *writer) times(slotList []slots.Slot) []Time {
	return lo.Map(slotList, func(slot slots.Slot, _ int) Time {
		return Time{Day: writer.slotModel.Days()[slot.Day], Hour: writer.slotModel.Periods()[slot.Period]}
	})
}

// hour names the period starting an interval; the end of the day has no name
func (writer *writer) hour(period int) string {
	if period >= writer.slotModel.PeriodCount() {
		return ""
	}
	return writer.slotModel.Periods()[period]
}

func (writer *writer) timeConstraint(constraint constraints.Constraint) any {
	switch constraint := constraint.(type) {
	case constraints.NotAvailableTimes:
		times := writer.times(constraint.Slots)
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherNotAvailableTimes{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, Number: len(times), Times: times, Trailer: active()}
		}
		return StudentsSetNotAvailableTimes{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, Number: len(times), Times: times, Trailer: active()}

	case constraints.MaxDaysPerWeek:
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherMaxDaysPerWeek{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, MaxDays: constraint.MaxDays, Trailer: active()}
		}
		return StudentsSetMaxDaysPerWeek{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MaxDays: constraint.MaxDays, Trailer: active()}

	case constraints.IntervalMaxDaysPerWeek:
		start, end := writer.hour(constraint.Start), writer.hour(constraint.End)
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherIntervalMaxDaysPerWeek{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, Start: start, End: end, MaxDays: constraint.MaxDays, Trailer: active()}
		}
		return StudentsSetIntervalMaxDaysPerWeek{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, Start: start, End: end, MaxDays: constraint.MaxDays, Trailer: active()}

	case constraints.MaxHoursDaily:
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherMaxHoursDaily{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, MaxHours: constraint.MaxHours, Trailer: active()}
		}
		return StudentsSetMaxHoursDaily{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MaxHours: constraint.MaxHours, Trailer: active()}

	case constraints.MinHoursDaily:
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherMinHoursDaily{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, MinHours: constraint.MinHours, AllowEmptyDays: constraint.AllowEmptyDays, Trailer: active()}
		}
		return StudentsSetMinHoursDaily{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MinHours: constraint.MinHours, AllowEmptyDays: constraint.AllowEmptyDays, Trailer: active()}

	case constraints.MaxGapsPerDay:
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherMaxGapsPerDay{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, MaxGaps: constraint.MaxGaps, Trailer: active()}
		}
		return StudentsSetMaxGapsPerDay{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MaxGaps: constraint.MaxGaps, Trailer: active()}

	case constraints.MaxGapsPerWeek:
		if constraint.Entity.Kind == constraints.TeacherEntity {
			return TeacherMaxGapsPerWeek{Weighted: Weighted{constraint.Weight}, Teacher: constraint.Entity.Id, MaxGaps: constraint.MaxGaps, Trailer: active()}
		}
		return StudentsSetMaxGapsPerWeek{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MaxGaps: constraint.MaxGaps, Trailer: active()}

	case constraints.EarlyMaxBeginningsAtSecondHour:
		return StudentsSetEarlyMaxBeginningsAtSecondHour{Weighted: Weighted{constraint.Weight}, Students: constraint.Entity.Id, MaxBeginnings: constraint.MaxBeginnings, Trailer: active()}

	case constraints.MinDaysBetweenActivities:
		return MinDaysBetweenActivities{
			Weighted:             Weighted{constraint.Weight},
			ConsecutiveIfSameDay: constraint.ConsecutiveIfSameDay,
			Number:               len(constraint.Activities),
			Activities:           slices.Clone(constraint.Activities),
			MinDays:              constraint.MinDays,
			Trailer:              active(),
		}

	case constraints.ActivitiesPreferredStartingTimes:
		times := lo.Map(writer.times(constraint.Slots), func(time Time, _ int) StartingTime { return StartingTime(time) })
		return ActivitiesPreferredStartingTimes{Weighted: Weighted{constraint.Weight}, Subject: constraint.Subject, Number: len(times), Times: times, Trailer: active()}

	case constraints.ActivitiesEndStudentsDay:
		return ActivitiesEndStudentsDay{Weighted: Weighted{constraint.Weight}, Subject: constraint.Subject, Trailer: active()}
	}

	log.Panicf("unexpected time constraint %T", constraint)
	return nil
}

func spaceConstraint(constraint constraints.Constraint) any {
	switch constraint := constraint.(type) {
	case constraints.ActivityPreferredRoom:
		return ActivityPreferredRoom{Weighted: Weighted{constraint.Weight}, Activity: constraint.Activity, Room: constraint.Room, PermanentlyLocked: constraint.PermanentlyLocked, Trailer: active()}
	case constraints.ActivityPreferredRooms:
		return ActivityPreferredRooms{Weighted: Weighted{constraint.Weight}, Activity: constraint.Activity, Number: len(constraint.Rooms), Rooms: slices.Clone(constraint.Rooms), Trailer: active()}
	}

	log.Panicf("unexpected space constraint %T", constraint)
	return nil
}

func toActivities(activities []constraints.Activity) []Activity {
	// Lessons of one course share the id of the first one as group id
	lessons := lo.CountValuesBy(activities, func(activity constraints.Activity) string { return activity.Course })
	groupIds := make(map[string]int)

	return lo.Map(activities, func(activity constraints.Activity, _ int) Activity {
		groupId := 0
		if activity.Course != "" && lessons[activity.Course] > 1 {
			if _, ok := groupIds[activity.Course]; !ok {
				groupIds[activity.Course] = activity.Id
			}
			groupId = groupIds[activity.Course]
		}

		tags := []string{}
		if activity.Tag != constraints.Real {
			tags = append(tags, string(activity.Tag))
		}

		return Activity{
			Teachers:      slices.Clone(activity.Teachers),
			Subject:       activity.Subject,
			Tags:          tags,
			Students:      slices.Clone(activity.Students),
			Duration:      activity.Duration,
			TotalDuration: activity.TotalDuration,
			Id:            activity.Id,
			GroupId:       groupId,
			Active:        true,
		}
	})
}

func toYear(year compiler.StudentsYear) Year {
	return Year{
		Name:       year.Class,
		Categories: len(year.Categories),
		Separator:  separator,
		Category: lo.Map(year.Categories, func(divisions []string, _ int) Category {
			return Category{Number: len(divisions), Divisions: slices.Clone(divisions)}
		}),
		Groups: lo.Map(year.Groups, func(group compiler.StudentsGroup, _ int) Group {
			// A group made of a single atomic group of the same name is its own subgroup
			subgroups := lo.Filter(group.Subgroups, func(subgroup string, _ int) bool { return subgroup != group.Name })
			return Group{
				Name:      group.Name,
				Subgroups: lo.Map(subgroups, func(subgroup string, _ int) Subgroup { return Subgroup{Name: subgroup} }),
			}
		}),
	}
}

func toRooms(bundle *compiler.Bundle) []Room {
	virtual := lo.SliceToMap(bundle.VirtualRooms, func(room constraints.VirtualRoom) (string, bool) { return room.Id, true })

	realRooms := make([]string, 0)
	for _, constraint := range bundle.Constraints(constraints.ActivityPreferredRoomKind) {
		realRooms = append(realRooms, constraint.(constraints.ActivityPreferredRoom).Room)
	}
	for _, constraint := range bundle.Constraints(constraints.ActivityPreferredRoomsKind) {
		realRooms = append(realRooms, lo.Reject(constraint.(constraints.ActivityPreferredRooms).Rooms, func(room string, _ int) bool { return virtual[room] })...)
	}
	for _, room := range bundle.VirtualRooms {
		realRooms = append(realRooms, lo.Flatten(room.Sets)...)
	}

	rooms := lo.Map(sortedUniq(realRooms), func(room string, _ int) Room {
		return Room{Name: room, Capacity: defaultCapacity}
	})
	for _, room := range bundle.VirtualRooms {
		rooms = append(rooms, Room{
			Name:     room.Id,
			Capacity: defaultCapacity,
			Virtual:  true,
			NumSets:  len(room.Sets),
			Sets: lo.Map(room.Sets, func(set []string, _ int) RealRoomSet {
				return RealRoomSet{Number: len(set), Rooms: slices.Clone(set)}
			}),
		})
	}
	return rooms
}

func teachers(bundle *compiler.Bundle) []string {
	names := lo.FlatMap(bundle.Activities, func(activity constraints.Activity, _ int) []string { return activity.Teachers })
	for _, kind := range constraints.TimeKinds {
		for _, constraint := range bundle.Constraints(kind) {
			if entity, ok := entityOf(constraint); ok && entity.Kind == constraints.TeacherEntity {
				names = append(names, entity.Id)
			}
		}
	}
	return sortedUniq(names)
}

func entityOf(constraint constraints.Constraint) (constraints.Entity, bool) {
	switch constraint := constraint.(type) {
	case constraints.NotAvailableTimes:
		return constraint.Entity, true
	case constraints.MaxDaysPerWeek:
		return constraint.Entity, true
	case constraints.IntervalMaxDaysPerWeek:
		return constraint.Entity, true
	case constraints.MaxHoursDaily:
		return constraint.Entity, true
	case constraints.MinHoursDaily:
		return constraint.Entity, true
	case constraints.MaxGapsPerDay:
		return constraint.Entity, true
	case constraints.MaxGapsPerWeek:
		return constraint.Entity, true
	case constraints.EarlyMaxBeginningsAtSecondHour:
		return constraint.Entity, true
	}
	return constraints.Entity{}, false
}

func activityTags(activities []constraints.Activity) []string {
	tags := make([]string, 0)
	for _, activity := range activities {
		if activity.Tag != constraints.Real {
			tags = append(tags, string(activity.Tag))
		}
	}
	return sortedUniq(tags)
}

func named(names []string) []Named {
	return lo.Map(names, func(name string, _ int) Named { return Named{Name: name} })
}

func sortedUniq(values []string) []string {
	values = lo.Uniq(values)
	slices.Sort(values)
	return values
}

func active() Trailer {
	return Trailer{Active: true}
}
