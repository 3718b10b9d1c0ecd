package compiler

import (
	"fmt"
	"slices"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

const virtualRoomPrefix = "VR:"

// compileRooms turns the room wishes of a course into per-activity room constraints. Each choice set
// stands for one room the course needs; several choice sets are bundled into a fresh virtual room
func (compiler *Compiler) compileRooms(course model.Course, catalog *Catalog, activities []int) ([]constraints.Constraint, []constraints.VirtualRoom, []Warning, error) {
	result := make([]constraints.Constraint, 0)
	virtualRooms := make([]constraints.VirtualRoom, 0)
	warnings := make([]Warning, 0)
	weight := compiler.options.Weights.Default

	//** Resolve the course's own room list
	roomGroup := course.RoomGroup
	resolved := make([]string, 0, len(course.Rooms))
	for _, room := range course.Rooms {
		if _, ok := catalog.roomGroups[room]; ok {
			// A room group may only stand alone in a room list
			if len(course.Rooms) > 1 || roomGroup != "" {
				return nil, nil, nil, InputError{Kind: ErrNestedRoomGroup, Course: course.Id, Room: room}
			}
			roomGroup = room
			continue
		}

		if room == model.ClassroomPlaceholder {
			classes := course.Classes()
			if len(classes) != 1 || catalog.classrooms[classes[0]] == "" {
				return nil, nil, nil, InputError{Kind: ErrMissingClassroom, Course: course.Id, Message: fmt.Sprintf("classes %v", classes)}
			}
			room = catalog.classrooms[classes[0]]
		}

		if !catalog.rooms[room] {
			warnings = append(warnings, Warning{Kind: WarnUnknownRoom, Entity: course.Id, Message: fmt.Sprintf("room \"%v\" is ignored", room)})
			continue
		}
		if !slices.Contains(resolved, room) {
			resolved = append(resolved, room)
		}
	}

	choices := make([][]string, 0)
	if len(resolved) > 0 {
		choices = append(choices, resolved)
	}

	//** Room group sets
	if roomGroup != "" {
		sets, ok := catalog.roomGroups[roomGroup]
		if !ok {
			return nil, nil, nil, InputError{Kind: ErrUnknownRoomGroup, Course: course.Id, Room: roomGroup}
		}
		for _, set := range sets {
			if nested, ok := lo.Find(set, func(room string) bool { _, ok := catalog.roomGroups[room]; return ok }); ok {
				return nil, nil, nil, InputError{Kind: ErrNestedRoomGroup, Course: course.Id, Room: nested}
			}
			available := lo.Filter(lo.Uniq(set), func(room string, _ int) bool { return catalog.rooms[room] })
			if len(available) == 0 {
				warnings = append(warnings, Warning{Kind: WarnEmptyRoomSet, Entity: course.Id, Message: fmt.Sprintf("room set %v of \"%v\" has no known room", set, roomGroup)})
				continue
			}
			choices = append(choices, available)
		}
	}

	//** Emit constraints
	switch {
	case len(choices) == 0:
	case len(choices) == 1 && len(choices[0]) == 1:
		for _, activity := range activities {
			result = append(result, constraints.ActivityPreferredRoom{
				Weight:            weight,
				Activity:          activity,
				Room:              choices[0][0],
				PermanentlyLocked: true,
			})
		}
	case len(choices) == 1:
		for _, activity := range activities {
			result = append(result, constraints.ActivityPreferredRooms{
				Weight:   weight,
				Activity: activity,
				Rooms:    slices.Clone(choices[0]),
			})
		}
	default:
		virtualRoom := constraints.VirtualRoom{Id: virtualRoomPrefix + course.Id, Sets: choices}
		virtualRooms = append(virtualRooms, virtualRoom)

		assignable, err := assignable(choices)
		if err != nil {
			return nil, nil, nil, err
		} else if !assignable {
			warnings = append(warnings, Warning{Kind: WarnUnassignableRoomGroup, Entity: course.Id, Message: fmt.Sprintf("no distinct room can be chosen from each of %v", choices)})
		}

		for _, activity := range activities {
			result = append(result, constraints.ActivityPreferredRooms{
				Weight:   weight,
				Activity: activity,
				Rooms:    []string{virtualRoom.Id},
			})
		}
	}

	return result, virtualRooms, warnings, nil
}

// assignable checks whether a distinct real room can be picked from every choice set, i.e. whether the
// largest matching between sets and rooms covers all sets
func assignable(choices [][]string) (bool, error) {
	rooms := lo.Uniq(lo.Flatten(choices))

	neighbors := func(setAny any, roomAny any) (bool, error) {
		return slices.Contains(choices[setAny.(int)], roomAny.(string)), nil
	}

	setsAny := lo.Map(choices, func(_ []string, i int) any { return i })
	roomsAny := lo.Map(rooms, func(room string, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(setsAny, roomsAny, neighbors)
	if err != nil {
		return false, err
	}
	return len(graph.LargestMatching()) == len(choices), nil
}
