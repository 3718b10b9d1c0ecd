package compiler

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
	"go.uber.org/zap"
)

// Compiler translates a school's classes, teachers and courses into solver-ready activities and
// constraints. It is safe for concurrent use
type Compiler struct {
	options Options
	logger  *zap.Logger
	cache   *groups.Cache
}

func NewCompiler(options Options, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		options: options,
		logger:  logger,
		cache:   groups.NewCache(),
	}
}

// CompileDivisions returns the memoized division data of a class
func (compiler *Compiler) CompileDivisions(class string, divisions [][]string) (*groups.DivisionData, error) {
	return compiler.cache.Get(class, divisions)
}

// ClearCache forgets every memoized division, to be called when the underlying data is reloaded
func (compiler *Compiler) ClearCache() {
	compiler.cache.Clear()
}

// CompileEntityConstraints emits the availability and workload constraints of a teacher or a class
func (compiler *Compiler) CompileEntityConstraints(kind constraints.EntityKind, id string, policy model.Policy, slotModel *slots.Model) ([]constraints.Constraint, []Warning, error) {
	entity := constraints.Entity{Kind: kind, Id: id}

	availability, warnings, err := compiler.compileAvailability(entity, policy, slotModel)
	if err != nil {
		return nil, nil, err
	}
	workload := compiler.compileWorkload(entity, policy, slotModel)

	return slices.Concat(availability, workload), warnings, nil
}

func (compiler *Compiler) Compile(input model.Input) (*Bundle, error) {
	//** Validate input
	if err := input.Validate(); err != nil {
		return nil, InputError{Kind: ErrInvalidInput, Message: err.Error()}
	}
	slotModel, err := input.SlotModel()
	if err != nil {
		return nil, err
	}

	bundle := newBundle()
	classes := slices.SortedFunc(slices.Values(input.Classes), func(a, b model.Class) int { return cmp.Compare(a.Id, b.Id) })
	teachers := slices.SortedFunc(slices.Values(input.Teachers), func(a, b model.Teacher) int { return cmp.Compare(a.Id, b.Id) })

	//** Divisions
	divisions := make(map[string]*groups.DivisionData, len(classes))
	for _, class := range classes {
		data, err := compiler.CompileDivisions(class.Id, class.Divisions)
		if err != nil {
			return nil, err
		}
		divisions[class.Id] = data
		compiler.logger.Debug("divisions compiled", zap.String("class", class.Id), zap.Int("atomic_groups", len(data.AtomicGroups)))
	}
	catalog := NewCatalog(input, slotModel, divisions)

	//** Teacher and class policies
	entityConstraints := make([]constraints.Constraint, 0)
	for _, teacher := range teachers {
		result, warnings, err := compiler.CompileEntityConstraints(constraints.TeacherEntity, teacher.Id, teacher.Policy, slotModel)
		if err != nil {
			return nil, err
		}
		entityConstraints = append(entityConstraints, result...)
		bundle.Warnings = append(bundle.Warnings, warnings...)
	}
	for _, class := range classes {
		result, warnings, err := compiler.CompileEntityConstraints(constraints.ClassEntity, class.Id, class.Policy, slotModel)
		if err != nil {
			return nil, err
		}
		entityConstraints = append(entityConstraints, result...)
		bundle.Warnings = append(bundle.Warnings, warnings...)
	}

	//** Course ownership
	owned := make(map[string][]model.Course)
	for _, course := range input.Courses {
		courseClasses := course.Classes()
		if len(courseClasses) == 0 {
			bundle.Warnings = append(bundle.Warnings, Warning{
				Kind:    WarnCourseWithoutGroups,
				Entity:  course.Id,
				Message: fmt.Sprintf("course of subject \"%v\" has no pupils and is ignored", course.Subject),
			})
			continue
		}
		// A course spanning several classes is emitted once, by its first class
		owner := courseClasses[0]
		if _, ok := divisions[owner]; !ok {
			return nil, InputError{Kind: ErrUnknownClass, Class: owner, Course: course.Id}
		}
		owned[owner] = append(owned[owner], course)
	}

	//** Class activities
	classActivities := make([]ClassActivities, 0, len(classes))
	for _, class := range classes {
		output, err := compiler.CompileClassActivities(class, catalog, owned[class.Id])
		if err != nil {
			return nil, err
		}
		classActivities = append(classActivities, output)
	}

	assemble(bundle, entityConstraints, classActivities)
	for _, constraint := range compiler.synthesisConstraints(bundle.Activities, slotModel) {
		bundle.add(constraint)
	}

	//** Students
	for _, class := range classes {
		year, warnings := studentsYear(class, divisions[class.Id])
		bundle.Students = append(bundle.Students, year)
		bundle.Warnings = append(bundle.Warnings, warnings...)
	}

	for _, warning := range bundle.Warnings {
		compiler.logger.Warn(warning.Message, zap.String("kind", warning.Kind), zap.String("entity", warning.Entity))
	}
	compiler.logger.Info("bundle compiled",
		zap.Int("activities", len(bundle.Activities)),
		zap.Int("virtual_rooms", len(bundle.VirtualRooms)),
		zap.Int("warnings", len(bundle.Warnings)),
	)

	return bundle, nil
}
