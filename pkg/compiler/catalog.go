package compiler

import (
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
)

// Catalog is the read-only view of the input shared by the per-class compile steps
type Catalog struct {
	slotModel  *slots.Model
	divisions  map[string]*groups.DivisionData
	classrooms map[string]string
	rooms      map[string]bool
	roomGroups map[string][][]string
}

func NewCatalog(input model.Input, slotModel *slots.Model, divisions map[string]*groups.DivisionData) *Catalog {
	catalog := &Catalog{
		slotModel:  slotModel,
		divisions:  divisions,
		classrooms: make(map[string]string),
		rooms:      make(map[string]bool),
		roomGroups: input.RoomGroups,
	}
	if catalog.roomGroups == nil {
		catalog.roomGroups = make(map[string][][]string)
	}

	for _, room := range input.Rooms {
		catalog.rooms[room.Id] = true
	}
	for _, class := range input.Classes {
		catalog.classrooms[class.Id] = class.Classroom
		if class.Classroom != "" {
			catalog.rooms[class.Classroom] = true
		}
	}
	return catalog
}

func (catalog *Catalog) SlotModel() *slots.Model {
	return catalog.slotModel
}

func (catalog *Catalog) Divisions(class string) (*groups.DivisionData, bool) {
	data, ok := catalog.divisions[class]
	return data, ok
}
