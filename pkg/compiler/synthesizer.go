package compiler

import (
	"fmt"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
)

// synthesize materializes lunch breaks and free afternoons of a class as dummy activities, one set per
// atomic group, so that they coexist with the no-gaps rule for pupils. nextId hands out class-local ids
func (compiler *Compiler) synthesize(
	class model.Class,
	data *groups.DivisionData,
	absent absences,
	slotModel *slots.Model,
	nextId func() int,
) ([]constraints.Activity, []constraints.Constraint, []Warning) {
	activities := make([]constraints.Activity, 0)
	result := make([]constraints.Constraint, 0)
	warnings := make([]Warning, 0)

	if !slotModel.HasAfternoon() {
		return activities, result, warnings
	}

	afternoon, lunch := slotModel.AfternoonPeriods(), slotModel.LunchPeriods()
	afternoonDays := len(absent.freeDays(afternoon))
	maxAfternoons := afternoonDays
	if class.Policy.MaxAfternoons != nil {
		maxAfternoons = min(*class.Policy.MaxAfternoons, afternoonDays)
	}

	lunches, blockers := maxAfternoons, afternoonDays-maxAfternoons
	if len(lunch) == 0 {
		lunches = 0
	} else if lunchDays := len(absent.freeDays(lunch)); lunches > lunchDays {
		warnings = append(warnings, Warning{
			Kind:    WarnLunchUnavailable,
			Entity:  class.Id,
			Message: fmt.Sprintf("%v lunch breaks requested, lunch time is free on %v days", lunches, lunchDays),
		})
	}

	//** Dummy activities, all lunch breaks before all free afternoons
	dummies := make([][]int, len(data.AtomicGroups))
	for atomicGroup := range data.AtomicGroups {
		for range lunches {
			activity := compiler.dummyActivity(class, data, atomicGroup, constraints.LunchBreak, 1, nextId())
			activities = append(activities, activity)
			dummies[atomicGroup] = append(dummies[atomicGroup], activity.Id)
		}
	}
	for atomicGroup := range data.AtomicGroups {
		for range blockers {
			activity := compiler.dummyActivity(class, data, atomicGroup, constraints.FreeAfternoon, len(afternoon), nextId())
			activities = append(activities, activity)
			dummies[atomicGroup] = append(dummies[atomicGroup], activity.Id)
		}
	}

	//** Spread dummies over the week
	for _, ids := range dummies {
		if len(ids) > 1 {
			result = append(result, constraints.MinDaysBetweenActivities{
				Weight:               compiler.options.Weights.Default,
				Activities:           ids,
				MinDays:              1,
				ConsecutiveIfSameDay: true,
			})
		}
	}

	return activities, result, warnings
}

func (compiler *Compiler) dummyActivity(class model.Class, data *groups.DivisionData, atomicGroup int, tag constraints.ActivityTag, duration, id int) constraints.Activity {
	subject := compiler.options.Subjects.Lunch
	if tag == constraints.FreeAfternoon {
		subject = compiler.options.Subjects.FreeAfternoon
	}
	return constraints.Activity{
		Id:            id,
		Subject:       subject,
		Students:      []string{atomicGroupLabel(class.Id, data, atomicGroup)},
		Teachers:      []string{},
		Duration:      duration,
		TotalDuration: duration,
		Tag:           tag,
	}
}

// synthesisConstraints places the dummies produced by synthesize. They are emitted once for the whole
// class table, only for the dummy kinds present in activities
func (compiler *Compiler) synthesisConstraints(activities []constraints.Activity, slotModel *slots.Model) []constraints.Constraint {
	result := make([]constraints.Constraint, 0)
	hasLunch, hasAfternoon := false, false
	for _, activity := range activities {
		hasLunch = hasLunch || activity.Tag == constraints.LunchBreak
		hasAfternoon = hasAfternoon || activity.Tag == constraints.FreeAfternoon
	}

	if hasLunch {
		result = append(result, constraints.ActivitiesPreferredStartingTimes{
			Weight:  compiler.options.Weights.Default,
			Subject: compiler.options.Subjects.Lunch,
			Slots:   slotModel.Slots(slotModel.LunchPeriods()),
		})
	}
	if hasAfternoon {
		result = append(result, constraints.ActivitiesEndStudentsDay{
			Weight:  compiler.options.Weights.Default,
			Subject: compiler.options.Subjects.FreeAfternoon,
		})
	}
	if hasLunch {
		// Lunches drift to the end of the day when no afternoon follows
		result = append(result, constraints.ActivitiesEndStudentsDay{
			Weight:  compiler.options.Weights.LunchEndDay,
			Subject: compiler.options.Subjects.Lunch,
		})
	}

	return result
}

// atomicGroupLabel is the students reference of an atomic group: the class itself when it has no divisions
func atomicGroupLabel(class string, data *groups.DivisionData, atomicGroup int) string {
	if len(data.RawDivisions) == 0 {
		return class
	}
	return class + "." + data.AtomicLabel(atomicGroup)
}
