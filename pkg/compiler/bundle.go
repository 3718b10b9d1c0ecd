package compiler

import (
	"fmt"
	"log"
	"slices"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/samber/lo"
)

type StudentsGroup struct {
	Name      string   `json:"name"`
	Subgroups []string `json:"subgroups"`
}

// StudentsYear describes the pupils of a class the way the solver sees them: the class, its named
// groups and the atomic subgroups each group is made of
type StudentsYear struct {
	Class      string          `json:"class"`
	Categories [][]string      `json:"categories"`
	Groups     []StudentsGroup `json:"groups"`
	Subgroups  []string        `json:"subgroups"`
}

type Bundle struct {
	Activities       []constraints.Activity                         `json:"activities"`
	TimeConstraints  map[constraints.Kind][]constraints.Constraint `json:"time_constraints"`
	SpaceConstraints map[constraints.Kind][]constraints.Constraint `json:"space_constraints"`
	VirtualRooms     []constraints.VirtualRoom                      `json:"virtual_rooms"`
	Students         []StudentsYear                                 `json:"students"`
	Warnings         []Warning                                      `json:"warnings"`
}

func newBundle() *Bundle {
	return &Bundle{
		Activities:       make([]constraints.Activity, 0),
		TimeConstraints:  make(map[constraints.Kind][]constraints.Constraint),
		SpaceConstraints: make(map[constraints.Kind][]constraints.Constraint),
		VirtualRooms:     make([]constraints.VirtualRoom, 0),
		Students:         make([]StudentsYear, 0),
		Warnings:         make([]Warning, 0),
	}
}

func (bundle *Bundle) add(constraint constraints.Constraint) {
	kind := constraint.Kind()
	if kind.IsSpace() {
		bundle.SpaceConstraints[kind] = append(bundle.SpaceConstraints[kind], constraint)
	} else {
		bundle.TimeConstraints[kind] = append(bundle.TimeConstraints[kind], constraint)
	}
}

// Constraints returns the constraints of a kind in the order they were produced
func (bundle *Bundle) Constraints(kind constraints.Kind) []constraints.Constraint {
	if kind.IsSpace() {
		return bundle.SpaceConstraints[kind]
	}
	return bundle.TimeConstraints[kind]
}

// assemble numbers the activities of all classes contiguously, real activities first, then lunch
// breaks, then free afternoons, and rewrites the class-local ids held by constraints
func assemble(bundle *Bundle, entityConstraints []constraints.Constraint, classes []ClassActivities) {
	for _, constraint := range entityConstraints {
		bundle.add(constraint)
	}

	//** Global ids
	remaps := make([]map[int]int, len(classes))
	for i := range classes {
		remaps[i] = make(map[int]int)
	}
	for _, tag := range []constraints.ActivityTag{constraints.Real, constraints.LunchBreak, constraints.FreeAfternoon} {
		for i, class := range classes {
			for _, activity := range class.Activities {
				if activity.Tag != tag {
					continue
				}
				remaps[i][activity.Id] = len(bundle.Activities) + 1
				activity.Id = len(bundle.Activities) + 1
				bundle.Activities = append(bundle.Activities, activity)
			}
		}
	}

	//** Class constraints
	for i, class := range classes {
		remap := func(id int) int {
			global, ok := remaps[i][id]
			if !ok {
				log.Panicf("activity %v of class \"%v\" has no global id", id, class.Class)
			}
			return global
		}
		for _, constraint := range class.Constraints {
			if activityConstraint, ok := constraint.(constraints.ActivityConstraint); ok {
				constraint = activityConstraint.RemapActivities(remap)
			}
			bundle.add(constraint)
		}
		bundle.VirtualRooms = append(bundle.VirtualRooms, class.VirtualRooms...)
		bundle.Warnings = append(bundle.Warnings, class.Warnings...)
	}
}

func studentsYear(class model.Class, data *groups.DivisionData) (StudentsYear, []Warning) {
	year := StudentsYear{
		Class:      class.Id,
		Categories: lo.Map(data.RawDivisions, func(division []string, _ int) []string { return slices.Clone(division) }),
		Groups:     make([]StudentsGroup, 0),
		Subgroups:  make([]string, 0),
	}
	if len(data.RawDivisions) == 0 {
		return year, []Warning{}
	}

	year.Subgroups = lo.Map(data.AtomicGroups, func(_ []string, atomicGroup int) string {
		return atomicGroupLabel(class.Id, data, atomicGroup)
	})

	kept, dropped := data.FilterGroups(class.GroupFilter)
	for _, group := range kept {
		if group.Name == groups.WholeClass {
			continue
		}
		year.Groups = append(year.Groups, StudentsGroup{
			Name: class.Id + "." + group.Name,
			Subgroups: lo.Map(group.AtomicGroups, func(atomicGroup int, _ int) string {
				return atomicGroupLabel(class.Id, data, atomicGroup)
			}),
		})
	}

	warnings := lo.Map(dropped, func(name string, _ int) Warning {
		return Warning{
			Kind:    WarnEmptyCompoundGroup,
			Entity:  class.Id,
			Message: fmt.Sprintf("compound group \"%v\" has no component left after filtering and is dropped", name),
		}
	})
	return year, warnings
}
