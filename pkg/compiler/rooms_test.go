package compiler

import (
	"errors"
	"testing"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomsInput() model.Input {
	return model.Input{
		Classes: []model.Class{
			{Id: "10G", Classroom: "r10G"},
			{Id: "10K", Classroom: "r10K"},
			{Id: "11G"},
		},
		Rooms: []model.Room{{Id: "LAB"}, {Id: "GYM1"}, {Id: "GYM2"}, {Id: "HALL"}},
		RoomGroups: map[string][][]string{
			"SPORT":  {{"GYM1", "GYM2"}, {"HALL"}},
			"GYMS":   {{"GYM1", "GYM2"}},
			"NESTED": {{"SPORT", "LAB"}},
			"CLASH":  {{"GYM1"}, {"GYM1"}},
			"GHOST":  {{"NOWHERE"}},
		},
	}
}

func TestRoomConstraints(t *testing.T) {
	compiler := newTestCompiler()
	input := newRoomsInput()
	catalog := newTestCatalog(t, input, newTestSlotModel(t))
	tenG := []model.GroupRef{{Class: "10G"}}

	t.Run("Classroom placeholder among alternatives", func(t *testing.T) {
		course := model.Course{Id: "c1", Groups: tenG, Rooms: []string{model.ClassroomPlaceholder, "LAB"}}

		result, virtualRooms, warnings, err := compiler.compileRooms(course, catalog, []int{1, 2})

		require.NoError(t, err)
		assert.Empty(t, virtualRooms)
		assert.Empty(t, warnings)
		assert.Equal(t, []constraints.Constraint{
			constraints.ActivityPreferredRooms{Weight: 100, Activity: 1, Rooms: []string{"r10G", "LAB"}},
			constraints.ActivityPreferredRooms{Weight: 100, Activity: 2, Rooms: []string{"r10G", "LAB"}},
		}, result)
	})

	t.Run("Single room is locked", func(t *testing.T) {
		course := model.Course{Id: "c2", Groups: tenG, Rooms: []string{"LAB", "LAB"}}

		result, _, _, err := compiler.compileRooms(course, catalog, []int{3})

		require.NoError(t, err)
		assert.Equal(t, []constraints.Constraint{
			constraints.ActivityPreferredRoom{Weight: 100, Activity: 3, Room: "LAB", PermanentlyLocked: true},
		}, result)
	})

	t.Run("Room group with a single set", func(t *testing.T) {
		course := model.Course{Id: "c3", Groups: tenG, RoomGroup: "GYMS"}

		result, virtualRooms, _, err := compiler.compileRooms(course, catalog, []int{4})

		require.NoError(t, err)
		assert.Empty(t, virtualRooms)
		assert.Equal(t, []string{"GYM1", "GYM2"}, result[0].(constraints.ActivityPreferredRooms).Rooms)
	})

	t.Run("Several choice sets become a virtual room", func(t *testing.T) {
		course := model.Course{Id: "c4", Groups: tenG, Rooms: []string{"SPORT"}}

		result, virtualRooms, warnings, err := compiler.compileRooms(course, catalog, []int{5})

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, []constraints.VirtualRoom{{Id: "VR:c4", Sets: [][]string{{"GYM1", "GYM2"}, {"HALL"}}}}, virtualRooms)
		assert.Equal(t, []constraints.Constraint{
			constraints.ActivityPreferredRooms{Weight: 100, Activity: 5, Rooms: []string{"VR:c4"}},
		}, result)
	})

	t.Run("Own rooms and room group", func(t *testing.T) {
		course := model.Course{Id: "c5", Groups: tenG, Rooms: []string{"LAB"}, RoomGroup: "GYMS"}

		_, virtualRooms, _, err := compiler.compileRooms(course, catalog, []int{6})

		require.NoError(t, err)
		require.Len(t, virtualRooms, 1)
		assert.Equal(t, [][]string{{"LAB"}, {"GYM1", "GYM2"}}, virtualRooms[0].Sets)
	})

	t.Run("Unassignable virtual room", func(t *testing.T) {
		course := model.Course{Id: "c6", Groups: tenG, RoomGroup: "CLASH"}

		_, virtualRooms, warnings, err := compiler.compileRooms(course, catalog, []int{7})

		require.NoError(t, err)
		assert.Len(t, virtualRooms, 1)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnUnassignableRoomGroup, warnings[0].Kind)
	})

	t.Run("Unknown rooms are dropped", func(t *testing.T) {
		course := model.Course{Id: "c7", Groups: tenG, Rooms: []string{"NOWHERE"}, RoomGroup: "GHOST"}

		result, _, warnings, err := compiler.compileRooms(course, catalog, []int{8})

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.Equal(t, []string{WarnUnknownRoom, WarnEmptyRoomSet}, []string{warnings[0].Kind, warnings[1].Kind})
	})
}

func TestRoomErrors(t *testing.T) {
	compiler := newTestCompiler()
	catalog := newTestCatalog(t, newRoomsInput(), newTestSlotModel(t))

	scenarios := []struct {
		name   string
		course model.Course
		kind   string
	}{
		{
			"Placeholder in a course of several classes",
			model.Course{Id: "c1", Groups: []model.GroupRef{{Class: "10G"}, {Class: "10K"}}, Rooms: []string{model.ClassroomPlaceholder}},
			ErrMissingClassroom,
		},
		{
			"Placeholder for a class without classroom",
			model.Course{Id: "c2", Groups: []model.GroupRef{{Class: "11G"}}, Rooms: []string{model.ClassroomPlaceholder}},
			ErrMissingClassroom,
		},
		{
			"Room group inside a multi-room list",
			model.Course{Id: "c3", Groups: []model.GroupRef{{Class: "10G"}}, Rooms: []string{"LAB", "SPORT"}},
			ErrNestedRoomGroup,
		},
		{
			"Room group referencing a room group",
			model.Course{Id: "c4", Groups: []model.GroupRef{{Class: "10G"}}, RoomGroup: "NESTED"},
			ErrNestedRoomGroup,
		},
		{
			"Unknown room group",
			model.Course{Id: "c5", Groups: []model.GroupRef{{Class: "10G"}}, RoomGroup: "POOL"},
			ErrUnknownRoomGroup,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			_, _, _, err := compiler.compileRooms(scenario.course, catalog, []int{1})

			var inputErr InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, scenario.kind, inputErr.Kind)
			assert.Equal(t, scenario.course.Id, inputErr.Course)
		})
	}
}
