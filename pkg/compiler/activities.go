package compiler

import (
	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/samber/lo"
)

// ClassActivities is the output of one class compile. Activity ids are local to the class, starting at 1,
// and are renumbered when the bundle is assembled
type ClassActivities struct {
	Class        string
	Activities   []constraints.Activity
	Constraints  []constraints.Constraint
	VirtualRooms []constraints.VirtualRoom
	Warnings     []Warning
}

// CompileClassActivities builds the real activities of the courses owned by a class, their room
// constraints, and the lunch-break and free-afternoon dummies of the class
func (compiler *Compiler) CompileClassActivities(class model.Class, catalog *Catalog, courses []model.Course) (ClassActivities, error) {
	output := ClassActivities{
		Class:        class.Id,
		Activities:   make([]constraints.Activity, 0),
		Constraints:  make([]constraints.Constraint, 0),
		VirtualRooms: make([]constraints.VirtualRoom, 0),
		Warnings:     make([]Warning, 0),
	}
	data, ok := catalog.Divisions(class.Id)
	if !ok {
		return ClassActivities{}, InputError{Kind: ErrUnknownClass, Class: class.Id}
	}

	lastId := 0
	nextId := func() int {
		lastId++
		return lastId
	}

	//** Real activities
	for _, course := range courses {
		students, err := resolveStudents(course, catalog)
		if err != nil {
			return ClassActivities{}, err
		}

		ids := make([]int, 0, len(course.Lessons))
		total := lo.Sum(course.Lessons)
		for _, duration := range course.Lessons {
			activity := constraints.Activity{
				Id:            nextId(),
				Subject:       course.Subject,
				Students:      append([]string{}, students...),
				Teachers:      append([]string{}, course.Teachers...),
				Duration:      duration,
				TotalDuration: total,
				Tag:           constraints.Real,
				Course:        course.Id,
			}
			output.Activities = append(output.Activities, activity)
			ids = append(ids, activity.Id)
		}

		if len(ids) > 1 {
			output.Constraints = append(output.Constraints, constraints.MinDaysBetweenActivities{
				Weight:               compiler.options.Weights.Default,
				Activities:           ids,
				MinDays:              1,
				ConsecutiveIfSameDay: true,
			})
		}

		roomConstraints, virtualRooms, warnings, err := compiler.compileRooms(course, catalog, ids)
		if err != nil {
			return ClassActivities{}, err
		}
		output.Constraints = append(output.Constraints, roomConstraints...)
		output.VirtualRooms = append(output.VirtualRooms, virtualRooms...)
		output.Warnings = append(output.Warnings, warnings...)
	}

	//** Lunch breaks and free afternoons
	entity := constraints.Entity{Kind: constraints.ClassEntity, Id: class.Id}
	absent, _, err := entityAbsences(entity, class.Policy, catalog.slotModel)
	if err != nil {
		return ClassActivities{}, err
	}

	dummies, spreads, warnings := compiler.synthesize(class, data, absent, catalog.slotModel, nextId)
	output.Activities = append(output.Activities, dummies...)
	output.Constraints = append(output.Constraints, spreads...)
	output.Warnings = append(output.Warnings, warnings...)

	return output, nil
}

// resolveStudents names the pupils of a course: a class id for a whole class, "class.group" for each
// simple group, compound groups being expanded into their components
func resolveStudents(course model.Course, catalog *Catalog) ([]string, error) {
	students := make([]string, 0, len(course.Groups))
	for _, ref := range course.Groups {
		data, ok := catalog.Divisions(ref.Class)
		if !ok {
			return nil, InputError{Kind: ErrUnknownClass, Class: ref.Class, Course: course.Id}
		}

		group := ref.Group
		if group == "" {
			group = groups.WholeClass
		}
		simpleGroups, ok := data.SimpleGroups(group)
		if !ok {
			return nil, InputError{Kind: ErrUnknownGroup, Class: ref.Class, Group: group, Course: course.Id}
		}

		if len(simpleGroups) == 0 {
			students = append(students, ref.Class)
			continue
		}
		for _, simpleGroup := range simpleGroups {
			students = append(students, ref.Class+"."+simpleGroup)
		}
	}
	return lo.Uniq(students), nil
}
