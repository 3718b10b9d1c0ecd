package slots

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// NoAfternoon marks a week whose days are not split into morning and afternoon
const NoAfternoon = -1

const ErrLunchConfig = "lunch_config_error"

type ConfigError struct {
	Kind    string
	Message string
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("%v: %v", err.Kind, err.Message)
}

type Slot struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

// Model is the rectangular week grid: days x periods
type Model struct {
	days           []string
	periods        []string
	lunch          []int
	afternoonStart int
}

// New builds the week grid. lunch holds the lunch-break period indices (possibly empty) and
// afternoonStart the first afternoon period or NoAfternoon
func New(days, periods []string, lunch []int, afternoonStart int) (*Model, error) {
	if len(days) == 0 || len(periods) == 0 {
		return nil, ConfigError{Kind: "invalid_slots", Message: "the week needs at least one day and one period"}
	}
	if afternoonStart != NoAfternoon && (afternoonStart < 0 || afternoonStart >= len(periods)) {
		return nil, ConfigError{Kind: "invalid_slots", Message: fmt.Sprintf("afternoon start %v is not a period index", afternoonStart)}
	}

	lunch = slices.Clone(lunch)
	slices.Sort(lunch)
	if len(lunch) > 0 {
		//** Validate lunch range
		if len(lunch) < 2 {
			return nil, ConfigError{Kind: ErrLunchConfig, Message: fmt.Sprintf("a lunch break needs at least two periods: %v", lunch)}
		}
		for i, period := range lunch {
			if period < 0 || period >= len(periods) {
				return nil, ConfigError{Kind: ErrLunchConfig, Message: fmt.Sprintf("lunch period %v is not a period index", period)}
			}
			if i > 0 && period != lunch[i-1]+1 {
				return nil, ConfigError{Kind: ErrLunchConfig, Message: fmt.Sprintf("lunch periods must be contiguous: %v", lunch)}
			}
		}
	}

	return &Model{
		days:           slices.Clone(days),
		periods:        slices.Clone(periods),
		lunch:          lunch,
		afternoonStart: afternoonStart,
	}, nil
}

func (model *Model) DayCount() int {
	return len(model.days)
}

func (model *Model) PeriodCount() int {
	return len(model.periods)
}

func (model *Model) Days() []string {
	return slices.Clone(model.days)
}

func (model *Model) Periods() []string {
	return slices.Clone(model.periods)
}

func (model *Model) HasAfternoon() bool {
	return model.afternoonStart != NoAfternoon
}

// AfternoonStart returns the first afternoon period, or NoAfternoon
func (model *Model) AfternoonStart() int {
	return model.afternoonStart
}

// AfternoonPeriods returns {p : p >= afternoon start}, empty when there is no afternoon
func (model *Model) AfternoonPeriods() []int {
	if !model.HasAfternoon() {
		return []int{}
	}
	return lo.RangeFrom(model.afternoonStart, len(model.periods)-model.afternoonStart)
}

func (model *Model) LunchPeriods() []int {
	return slices.Clone(model.lunch)
}

// Index returns the global position of a slot in the week: day * periods + period
func (model *Model) Index(day, period int) int {
	return day*len(model.periods) + period
}

// Attributes is the inverse of Index
func (model *Model) Attributes(index int) (day, period int) {
	return index / len(model.periods), index % len(model.periods)
}

// Slots returns every (day, period) combination of the given periods, ordered by Index
func (model *Model) Slots(periods []int) []Slot {
	periods = slices.Clone(periods)
	slices.Sort(periods)

	result := make([]Slot, 0, len(model.days)*len(periods))
	for day := range len(model.days) {
		for _, period := range periods {
			result = append(result, Slot{Day: day, Period: period})
		}
	}
	return result
}
