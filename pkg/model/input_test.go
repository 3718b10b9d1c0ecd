package model

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]any {
	return map[string]any{
		"days":            []any{"Mo", "Tu"},
		"periods":         []any{"1", "2", "3", "4"},
		"lunch_break":     []any{1.0, 2.0},
		"afternoon_start": 2.0,
		"classes": []any{
			map[string]any{
				"id":           "10G",
				"classroom":    "r10G",
				"divisions":    []any{[]any{"A", "B", "AB=A+B"}},
				"group_filter": []any{"A"},
				"policy": map[string]any{
					"not_available":    map[string]any{"1": []any{0.0, 3.0}},
					"max_afternoons":   1.0,
					"force_first_hour": true,
					"weights":          map[string]any{"max_afternoons": 70.0},
				},
			},
		},
		"teachers": []any{
			map[string]any{"id": "T1", "policy": map[string]any{"max_days": 1.0}},
		},
		"rooms":       []any{map[string]any{"id": "LAB"}},
		"room_groups": map[string]any{"SCIENCE": []any{[]any{"LAB"}}},
		"courses": []any{
			map[string]any{
				"id":         "c1",
				"subject":    "MA",
				"groups":     []any{map[string]any{"class": "10G", "group": "A"}},
				"teachers":   []any{"T1"},
				"rooms":      []any{ClassroomPlaceholder},
				"room_group": "SCIENCE",
				"lessons":    []any{2.0, 1.0},
			},
		},
	}
}

func TestDecodeInput(t *testing.T) {
	//** Act
	input, err := DecodeInput(validInput())

	//** Assert
	require.NoError(t, err)
	require.NoError(t, input.Validate())

	assert.Equal(t, []int{1, 2}, input.LunchBreak)
	assert.Equal(t, lo.ToPtr(2), input.AfternoonStart)

	class := input.Classes[0]
	assert.Equal(t, [][]string{{"A", "B", "AB=A+B"}}, class.Divisions)
	assert.Equal(t, []string{"A"}, class.GroupFilter)
	assert.Equal(t, map[int][]int{1: {0, 3}}, class.Policy.NotAvailable)
	assert.Equal(t, lo.ToPtr(1), class.Policy.MaxAfternoons)
	assert.Nil(t, class.Policy.MaxDays)
	assert.True(t, class.Policy.ForceFirstHour)
	assert.Equal(t, 70, class.Policy.Weight("max_afternoons", 100))
	assert.Equal(t, 100, class.Policy.Weight("max_days", 100))

	assert.Equal(t, lo.ToPtr(1), input.Teachers[0].Policy.MaxDays)
	assert.Equal(t, [][]string{{"LAB"}}, input.RoomGroups["SCIENCE"])

	course := input.Courses[0]
	assert.Equal(t, "SCIENCE", course.RoomGroup)
	assert.Equal(t, []int{2, 1}, course.Lessons)
	assert.Equal(t, []GroupRef{{Class: "10G", Group: "A"}}, course.Groups)

	slotModel, err := input.SlotModel()
	require.NoError(t, err)
	assert.Equal(t, 2, slotModel.DayCount())
	assert.Equal(t, []int{2, 3}, slotModel.AfternoonPeriods())
}

func TestDecodeInputErrors(t *testing.T) {
	raw := validInput()
	raw["afternoon_start"] = "noon"

	_, err := DecodeInput(raw)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	scenarios := []struct {
		name   string
		mutate func(input *Input)
	}{
		{"No days", func(input *Input) { input.Days = nil }},
		{"Repeated class", func(input *Input) { input.Classes = append(input.Classes, input.Classes[0]) }},
		{"Course without lessons", func(input *Input) { input.Courses[0].Lessons = []int{} }},
		{"Empty lesson", func(input *Input) { input.Courses[0].Lessons = []int{0} }},
		{"Negative limit", func(input *Input) { input.Teachers[0].Policy.MaxDays = lo.ToPtr(-1) }},
		{"Weight out of range", func(input *Input) { input.Classes[0].Policy.Weights["max_afternoons"] = 120 }},
		{"Negative day", func(input *Input) { input.Classes[0].Policy.NotAvailable[-1] = []int{0} }},
		{"Group reference without class", func(input *Input) { input.Courses[0].Groups[0].Class = "" }},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			//** Arrange
			input, err := DecodeInput(validInput())
			require.NoError(t, err)
			scenario.mutate(&input)

			//** Act
			err = input.Validate()

			//** Assert
			var validationErrors validator.ValidationErrors
			assert.True(t, errors.As(err, &validationErrors), "%v", err)
		})
	}
}

func TestCourseClasses(t *testing.T) {
	course := Course{Groups: []GroupRef{{Class: "11B"}, {Class: "10G", Group: "A"}, {Class: "11B", Group: "X"}}}

	assert.Equal(t, []string{"10G", "11B"}, course.Classes())
}

func TestInputFromJsonMissingFile(t *testing.T) {
	_, err := InputFromJson("testdata/missing.json")

	assert.Error(t, err)
}
