package compiler

import (
	"fmt"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
	"github.com/samber/lo"
)

// absences[day][period] is true when the entity cannot be scheduled in that slot
type absences [][]bool

func newAbsences(entity constraints.Entity, policy model.Policy, slotModel *slots.Model) (absences, error) {
	result := make(absences, slotModel.DayCount())
	for day := range result {
		result[day] = make([]bool, slotModel.PeriodCount())
	}

	for day, periods := range policy.NotAvailable {
		if day < 0 || day >= slotModel.DayCount() {
			return nil, entityInputError(entity, fmt.Sprintf("not-available day %v is out of range", day))
		}
		for _, period := range periods {
			if period < 0 || period >= slotModel.PeriodCount() {
				return nil, entityInputError(entity, fmt.Sprintf("not-available period %v is out of range", period))
			}
			result[day][period] = true
		}
	}
	return result, nil
}

// blocks checks whether every given period of the day is absent
func (absences absences) blocks(day int, periods []int) bool {
	return lo.EveryBy(periods, func(period int) bool { return absences[day][period] })
}

// freeDays returns the days on which the given periods are not entirely absent
func (absences absences) freeDays(periods []int) []int {
	return lo.Filter(lo.Range(len(absences)), func(day int, _ int) bool {
		return !absences.blocks(day, periods)
	})
}

// slots enumerates the absent slots by ascending day, then ascending period
func (absences absences) slots() []slots.Slot {
	result := make([]slots.Slot, 0)
	for day, periods := range absences {
		for period, absent := range periods {
			if absent {
				result = append(result, slots.Slot{Day: day, Period: period})
			}
		}
	}
	return result
}

// entityAbsences merges the explicit absences of an entity with the afternoons a zero max_afternoons
// blocks. It also returns the days whose afternoon was already entirely absent
func entityAbsences(entity constraints.Entity, policy model.Policy, slotModel *slots.Model) (absences, []int, error) {
	absent, err := newAbsences(entity, policy, slotModel)
	if err != nil {
		return nil, nil, err
	}

	redundantDays := make([]int, 0)
	if policy.MaxAfternoons == nil || *policy.MaxAfternoons != 0 || !slotModel.HasAfternoon() {
		return absent, redundantDays, nil
	}

	afternoon := slotModel.AfternoonPeriods()
	for day := range absent {
		if absent.blocks(day, afternoon) {
			redundantDays = append(redundantDays, day)
		}
		for _, period := range afternoon {
			absent[day][period] = true
		}
	}
	return absent, redundantDays, nil
}

// compileAvailability emits the availability constraints of an entity from its merged absences and
// its day and afternoon limits
func (compiler *Compiler) compileAvailability(entity constraints.Entity, policy model.Policy, slotModel *slots.Model) ([]constraints.Constraint, []Warning, error) {
	result := make([]constraints.Constraint, 0)
	warnings := make([]Warning, 0)
	weight := compiler.options.Weights.Default

	//** Absences
	absent, redundantDays, err := entityAbsences(entity, policy, slotModel)
	if err != nil {
		return nil, nil, err
	}
	if entity.Kind == constraints.TeacherEntity {
		for _, day := range redundantDays {
			warnings = append(warnings, Warning{
				Kind:    WarnRedundantNotAvailable,
				Entity:  entity.Id,
				Message: fmt.Sprintf("afternoon of day %v is already unavailable", day),
			})
		}
	}

	//** Afternoons
	afternoon := slotModel.AfternoonPeriods()
	if policy.MaxAfternoons != nil && *policy.MaxAfternoons > 0 && slotModel.HasAfternoon() &&
		entity.Kind == constraints.TeacherEntity && *policy.MaxAfternoons < len(absent.freeDays(afternoon)) {
		// Classes get dummy activities instead, see synthesize
		result = append(result, constraints.IntervalMaxDaysPerWeek{
			Entity:  entity,
			Weight:  policy.Weight("max_afternoons", weight),
			Start:   slotModel.AfternoonStart(),
			End:     slotModel.PeriodCount(),
			MaxDays: *policy.MaxAfternoons,
		})
	}

	//** Days
	if policy.MaxDays != nil && *policy.MaxDays < slotModel.DayCount() {
		result = append(result, constraints.MaxDaysPerWeek{
			Entity:  entity,
			Weight:  policy.Weight("max_days", weight),
			MaxDays: *policy.MaxDays,
		})
	}

	//** Not available times
	if absentSlots := absent.slots(); len(absentSlots) > 0 {
		result = append(result, constraints.NotAvailableTimes{
			Entity: entity,
			Weight: policy.Weight("not_available", weight),
			Slots:  absentSlots,
		})
	}

	return result, warnings, nil
}

func entityInputError(entity constraints.Entity, message string) InputError {
	if entity.Kind == constraints.ClassEntity {
		return InputError{Kind: ErrInvalidInput, Class: entity.Id, Message: message}
	}
	return InputError{Kind: ErrInvalidInput, Message: fmt.Sprintf("teacher \"%v\": %v", entity.Id, message)}
}
