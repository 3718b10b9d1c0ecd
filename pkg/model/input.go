package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/classtables/pkg/slots"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ClassroomPlaceholder in a course's room list stands for the classroom of the course's class
const ClassroomPlaceholder = "$"

// Policy holds the availability and workload wishes of a teacher or a class. A nil limit means "no limit"
type Policy struct {
	NotAvailable     map[int][]int  `mapstructure:"not_available" validate:"dive,keys,gte=0,endkeys,dive,gte=0"`
	MaxDays          *int           `mapstructure:"max_days" validate:"omitempty,gte=0"`
	MaxAfternoons    *int           `mapstructure:"max_afternoons" validate:"omitempty,gte=0"`
	MaxLessonsPerDay *int           `mapstructure:"max_lessons_per_day" validate:"omitempty,gte=0"`
	MinLessonsPerDay *int           `mapstructure:"min_lessons_per_day" validate:"omitempty,gte=0"`
	MaxGapsPerDay    *int           `mapstructure:"max_gaps_per_day" validate:"omitempty,gte=0"`
	ForceFirstHour   bool           `mapstructure:"force_first_hour"` // Classes only
	Weights          map[string]int `mapstructure:"weights" validate:"dive,gte=0,lte=100"`
}

// Weight returns the weight configured for a policy field, or fallback
func (policy Policy) Weight(field string, fallback int) int {
	if weight, ok := policy.Weights[field]; ok {
		return weight
	}
	return fallback
}

type Class struct {
	Id          string     `validate:"required"`
	Classroom   string
	Divisions   [][]string
	GroupFilter []string `mapstructure:"group_filter"` // Named groups exported to the solver, all when empty
	Policy      Policy
}

type Teacher struct {
	Id     string `validate:"required"`
	Name   string
	Policy Policy
}

type Room struct {
	Id   string `validate:"required"`
	Name string
}

type GroupRef struct {
	Class string `validate:"required"`
	Group string // Empty or "*" for the whole class
}

type Course struct {
	Id        string     `validate:"required"`
	Subject   string     `validate:"required"`
	Groups    []GroupRef `validate:"dive"`
	Teachers  []string
	Rooms     []string // Alternatives for the course's room, ClassroomPlaceholder allowed
	RoomGroup string   `mapstructure:"room_group"`
	Lessons   []int    `validate:"required,min=1,dive,gt=0"` // Duration of each lesson
}

// Classes returns the distinct classes the course is taught to, sorted
func (course Course) Classes() []string {
	classes := lo.Uniq(lo.Map(course.Groups, func(group GroupRef, _ int) string { return group.Class }))
	slices.Sort(classes)
	return classes
}

type Input struct {
	Days           []string              `validate:"required,min=1"`
	Periods        []string              `validate:"required,min=1"`
	LunchBreak     []int                 `mapstructure:"lunch_break" validate:"dive,gte=0"`
	AfternoonStart *int                  `mapstructure:"afternoon_start" validate:"omitempty,gte=0"`
	Classes        []Class               `validate:"unique=Id,dive"`
	Teachers       []Teacher             `validate:"unique=Id,dive"`
	Rooms          []Room                `validate:"unique=Id,dive"`
	RoomGroups     map[string][][]string `mapstructure:"room_groups"` // Virtual room -> sets of alternative real rooms
	Courses        []Course              `validate:"unique=Id,dive"`
}

var validate = validator.New()

func (input Input) Validate() error {
	return validate.Struct(input)
}

// SlotModel builds the week grid described by the input
func (input Input) SlotModel() (*slots.Model, error) {
	afternoonStart := slots.NoAfternoon
	if input.AfternoonStart != nil {
		afternoonStart = *input.AfternoonStart
	}
	return slots.New(input.Days, input.Periods, input.LunchBreak, afternoonStart)
}

func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}
	return DecodeInput(inputJson)
}

// DecodeInput maps a generic JSON document onto the input records. Day keys of not-available tables
// arrive as strings and are converted weakly
func DecodeInput(inputJson map[string]any) (Input, error) {
	var input Input
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &input,
	})
	if err != nil {
		return Input{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return input, nil
}
