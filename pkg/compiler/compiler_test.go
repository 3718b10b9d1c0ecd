package compiler

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputFile = "testdata/input.json"

func loadInput(t *testing.T) model.Input {
	input, err := model.InputFromJson(inputFile)
	require.NoError(t, err)
	return input
}

func activityIds(constraint constraints.Constraint) []int {
	return constraint.(constraints.MinDaysBetweenActivities).Activities
}

func TestCompile(t *testing.T) {
	//** Arrange
	compiler := newTestCompiler()
	input := loadInput(t)

	//** Act
	bundle, err := compiler.Compile(input)

	//** Assert
	require.NoError(t, err)

	t.Run("Activities are numbered real, lunch, free afternoon", func(t *testing.T) {
		require.Len(t, bundle.Activities, 16)
		for i, activity := range bundle.Activities {
			assert.Equal(t, i+1, activity.Id)
		}
		tags := lo.Map(bundle.Activities, func(activity constraints.Activity, _ int) constraints.ActivityTag { return activity.Tag })
		assert.Equal(t, slices.Concat(
			slices.Repeat([]constraints.ActivityTag{constraints.Real}, 6),
			slices.Repeat([]constraints.ActivityTag{constraints.LunchBreak}, 2),
			slices.Repeat([]constraints.ActivityTag{constraints.FreeAfternoon}, 8),
		), tags)

		assert.Equal(t, []string{"MA10G", "MA10G", "EN10GA", "PE10", "MA10K", "MA10K"}, lo.Map(bundle.Activities[:6], func(activity constraints.Activity, _ int) string { return activity.Course }))
		assert.Equal(t, []string{"10G.A"}, bundle.Activities[2].Students)
		assert.Equal(t, []string{"10K", "10G"}, bundle.Activities[3].Students)
		assert.Equal(t, 3, bundle.Activities[0].TotalDuration)
		assert.Equal(t, []string{"10G.A"}, bundle.Activities[6].Students)
		assert.Equal(t, []string{"10G.B"}, bundle.Activities[7].Students)
	})

	t.Run("Spread constraints follow the global ids", func(t *testing.T) {
		spreads := bundle.Constraints(constraints.MinDaysBetweenActivitiesKind)
		assert.Equal(t, [][]int{
			{1, 2},
			{7, 9, 10, 11, 12},
			{8, 13, 14, 15, 16},
			{5, 6},
		}, lo.Map(spreads, func(constraint constraints.Constraint, _ int) []int { return activityIds(constraint) }))
	})

	t.Run("Entity constraints", func(t *testing.T) {
		notAvailable := bundle.Constraints(constraints.NotAvailableTimesKind)
		require.Len(t, notAvailable, 2)
		assert.Equal(t, "T1", notAvailable[0].(constraints.NotAvailableTimes).Entity.Id)
		assert.Len(t, notAvailable[0].(constraints.NotAvailableTimes).Slots, 2)
		assert.Equal(t, "10K", notAvailable[1].(constraints.NotAvailableTimes).Entity.Id)
		assert.Len(t, notAvailable[1].(constraints.NotAvailableTimes).Slots, 15)

		assert.Len(t, bundle.Constraints(constraints.MaxHoursDailyKind), 1)
		assert.Len(t, bundle.Constraints(constraints.MaxGapsPerWeekKind), 2)
		assert.Len(t, bundle.Constraints(constraints.EarlyMaxBeginningsAtSecondHourKind), 2)
		assert.Empty(t, bundle.Constraints(constraints.IntervalMaxDaysPerWeekKind))
	})

	t.Run("Synthesis constraints are emitted once", func(t *testing.T) {
		assert.Len(t, bundle.Constraints(constraints.ActivitiesPreferredStartingTimesKind), 1)
		assert.Len(t, bundle.Constraints(constraints.ActivitiesEndStudentsDayKind), 2)
	})

	t.Run("Rooms", func(t *testing.T) {
		locked := bundle.Constraints(constraints.ActivityPreferredRoomKind)
		assert.Equal(t, []string{"r10G", "r10G", "LAB", "r10K", "r10K"}, lo.Map(locked, func(constraint constraints.Constraint, _ int) string {
			return constraint.(constraints.ActivityPreferredRoom).Room
		}))
		assert.Equal(t, []int{1, 2, 3, 5, 6}, lo.Map(locked, func(constraint constraints.Constraint, _ int) int {
			return constraint.(constraints.ActivityPreferredRoom).Activity
		}))

		assert.Equal(t, []constraints.Constraint{
			constraints.ActivityPreferredRooms{Weight: 100, Activity: 4, Rooms: []string{"VR:PE10"}},
		}, bundle.Constraints(constraints.ActivityPreferredRoomsKind))
		assert.Equal(t, []constraints.VirtualRoom{{Id: "VR:PE10", Sets: [][]string{{"GYM1"}, {"GYM2"}}}}, bundle.VirtualRooms)
		assert.Empty(t, bundle.TimeConstraints[constraints.ActivityPreferredRoomKind])
	})

	t.Run("Students", func(t *testing.T) {
		require.Len(t, bundle.Students, 2)
		assert.Equal(t, StudentsYear{
			Class:      "10G",
			Categories: [][]string{{"A", "B"}},
			Groups: []StudentsGroup{
				{Name: "10G.A", Subgroups: []string{"10G.A"}},
				{Name: "10G.B", Subgroups: []string{"10G.B"}},
			},
			Subgroups: []string{"10G.A", "10G.B"},
		}, bundle.Students[0])
		assert.Equal(t, "10K", bundle.Students[1].Class)
		assert.Empty(t, bundle.Students[1].Groups)
	})

	t.Run("Warnings", func(t *testing.T) {
		assert.Equal(t, []Warning{{
			Kind:    WarnCourseWithoutGroups,
			Entity:  "CHOIR",
			Message: "course of subject \"MU\" has no pupils and is ignored",
		}}, bundle.Warnings)
	})
}

func TestCompileIsDeterministic(t *testing.T) {
	input := loadInput(t)

	first, err := newTestCompiler().Compile(input)
	require.NoError(t, err)
	cached := newTestCompiler()
	_, err = cached.Compile(input)
	require.NoError(t, err)
	second, err := cached.Compile(input)
	require.NoError(t, err)

	firstJson, err := json.Marshal(first)
	require.NoError(t, err)
	secondJson, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJson), string(secondJson))
}

func TestConcurrentCompiles(t *testing.T) {
	compiler := newTestCompiler()
	input := loadInput(t)
	expected, err := compiler.Compile(input)
	require.NoError(t, err)

	var waitGroup sync.WaitGroup
	results := make([]*Bundle, 8)
	for i := range results {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			results[i], _ = compiler.Compile(input)
		}()
	}
	waitGroup.Wait()

	for _, result := range results {
		assert.Equal(t, expected, result)
	}
}

func TestCourseWithoutGroupsIsIgnored(t *testing.T) {
	compiler := newTestCompiler()
	input := loadInput(t)
	withCourse, err := compiler.Compile(input)
	require.NoError(t, err)

	input.Courses = lo.Filter(input.Courses, func(course model.Course, _ int) bool { return len(course.Groups) > 0 })
	withoutCourse, err := compiler.Compile(input)
	require.NoError(t, err)

	assert.Equal(t, withCourse.Activities, withoutCourse.Activities)
	assert.Equal(t, withCourse.TimeConstraints, withoutCourse.TimeConstraints)
	assert.Equal(t, withCourse.SpaceConstraints, withoutCourse.SpaceConstraints)
	assert.Empty(t, withoutCourse.Warnings)
}

func TestCompileErrors(t *testing.T) {
	compiler := newTestCompiler()

	t.Run("Division errors abort the compile", func(t *testing.T) {
		input := loadInput(t)
		input.Classes[1].Divisions = [][]string{{"A", "A"}}

		bundle, err := compiler.Compile(input)

		assert.Nil(t, bundle)
		var divisionErr groups.DivisionError
		require.True(t, errors.As(err, &divisionErr))
		assert.Equal(t, groups.ErrRepeatedGroup, divisionErr.Kind)
		assert.Equal(t, "10G", divisionErr.Class)
		assert.Equal(t, "A", divisionErr.Group)
	})

	t.Run("Unknown group", func(t *testing.T) {
		input := loadInput(t)
		input.Courses[1].Groups = []model.GroupRef{{Class: "10G", Group: "C"}}

		_, err := compiler.Compile(input)

		var inputErr InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, ErrUnknownGroup, inputErr.Kind)
		assert.Equal(t, "EN10GA", inputErr.Course)
	})

	t.Run("Unknown class", func(t *testing.T) {
		input := loadInput(t)
		input.Courses[0].Groups = []model.GroupRef{{Class: "09A"}}

		_, err := compiler.Compile(input)

		var inputErr InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, ErrUnknownClass, inputErr.Kind)
	})

	t.Run("Invalid input", func(t *testing.T) {
		input := loadInput(t)
		input.Courses[0].Lessons = nil

		_, err := compiler.Compile(input)

		var inputErr InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, ErrInvalidInput, inputErr.Kind)
	})

	t.Run("Lunch configuration", func(t *testing.T) {
		input := loadInput(t)
		input.LunchBreak = []int{3}

		_, err := compiler.Compile(input)

		assert.ErrorContains(t, err, "lunch_config_error")
	})
}

func TestGroupFilterWarnings(t *testing.T) {
	//** Arrange
	compiler := newTestCompiler()
	input := loadInput(t)
	input.Classes[1].Divisions = [][]string{{"A", "B", "C", "AB=A+B"}}
	input.Classes[1].GroupFilter = []string{"C", "AB"}

	//** Act
	bundle, err := compiler.Compile(input)

	//** Assert
	require.NoError(t, err)
	year := bundle.Students[0]
	assert.Equal(t, []StudentsGroup{{Name: "10G.C", Subgroups: []string{"10G.C"}}}, year.Groups)
	assert.Equal(t, []string{"10G.A", "10G.B", "10G.C"}, year.Subgroups)
	assert.Contains(t, lo.Map(bundle.Warnings, func(warning Warning, _ int) string { return warning.Kind }), WarnEmptyCompoundGroup)
}

func BenchmarkCompile(b *testing.B) {
	input, err := model.InputFromJson(inputFile)
	require.NoError(b, err)
	compiler := newTestCompiler()

	for b.Loop() {
		if _, err := compiler.Compile(input); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCompileOutputsAreIndependent(t *testing.T) {
	//** Arrange
	input := loadInput(t)
	compiler := newTestCompiler()
	first, err := compiler.Compile(input)
	require.NoError(t, err)

	//** Act
	first.Students[0].Categories[0][0] = "Z"
	first.Activities[0].Students[0] = "Z"
	second, err := compiler.Compile(input)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, second.Students[0].Categories)
	assert.Equal(t, []string{"10G"}, second.Activities[0].Students)
	assert.Equal(t, []string{"10G"}, first.Activities[1].Students)

	data, err := compiler.CompileDivisions("10G", [][]string{{"A", "B"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, data.RawDivisions)
}
