package compiler

import (
	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
)

// compileWorkload emits the daily and weekly load limits of an entity, skipping those that are not
// tighter than the trivial bound
func (compiler *Compiler) compileWorkload(entity constraints.Entity, policy model.Policy, slotModel *slots.Model) []constraints.Constraint {
	result := make([]constraints.Constraint, 0)
	weight := compiler.options.Weights.Default
	teacher := entity.Kind == constraints.TeacherEntity

	if policy.MaxLessonsPerDay != nil && *policy.MaxLessonsPerDay < slotModel.PeriodCount() {
		result = append(result, constraints.MaxHoursDaily{
			Entity:   entity,
			Weight:   policy.Weight("max_lessons_per_day", weight),
			MaxHours: *policy.MaxLessonsPerDay,
		})
	}

	// Pupils never have gaps, see MaxGapsPerWeek below
	if teacher && policy.MaxGapsPerDay != nil && *policy.MaxGapsPerDay < slotModel.PeriodCount() {
		result = append(result, constraints.MaxGapsPerDay{
			Entity:  entity,
			Weight:  policy.Weight("max_gaps_per_day", weight),
			MaxGaps: *policy.MaxGapsPerDay,
		})
	}

	if policy.MinLessonsPerDay != nil && *policy.MinLessonsPerDay > 1 {
		result = append(result, constraints.MinHoursDaily{
			Entity:         entity,
			Weight:         policy.Weight("min_lessons_per_day", weight),
			MinHours:       *policy.MinLessonsPerDay,
			AllowEmptyDays: teacher,
		})
	}

	if teacher {
		return result
	}

	maxBeginnings := slotModel.DayCount()
	if policy.ForceFirstHour {
		maxBeginnings = 0
	}
	result = append(result,
		constraints.EarlyMaxBeginningsAtSecondHour{
			Entity:        entity,
			Weight:        policy.Weight("force_first_hour", weight),
			MaxBeginnings: maxBeginnings,
		},
		constraints.MaxGapsPerWeek{
			Entity:  entity,
			Weight:  weight,
			MaxGaps: 0,
		},
	)

	return result
}
