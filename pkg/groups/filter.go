package groups

import (
	"slices"

	"github.com/samber/lo"
)

type FilteredGroup struct {
	Name         string
	AtomicGroups []int
}

// FilterGroups restricts the named groups of a class to those listed in keep (all of them when keep
// is empty). A compound group keeps only its listed components; when none survive the compound is
// dropped and its name returned in dropped. The whole class is never filtered out
func (data *DivisionData) FilterGroups(keep []string) (kept []FilteredGroup, dropped []string) {
	kept = make([]FilteredGroup, 0, len(data.GroupInfo))
	dropped = make([]string, 0)
	filtered := len(keep) > 0

	for _, name := range data.Names() {
		info := data.GroupInfo[name]
		if name == WholeClass || !filtered {
			kept = append(kept, FilteredGroup{Name: name, AtomicGroups: slices.Clone(info.Set)})
			continue
		}
		if !slices.Contains(keep, name) {
			continue
		}
		if len(info.Components) == 0 {
			kept = append(kept, FilteredGroup{Name: name, AtomicGroups: slices.Clone(info.Set)})
			continue
		}

		components := lo.Intersect(info.Components, keep)
		if len(components) == 0 {
			dropped = append(dropped, name)
			continue
		}
		var bitmap Bitmap
		for _, component := range components {
			bitmap |= data.GroupInfo[component].Bitmap
		}
		kept = append(kept, FilteredGroup{
			Name:         name,
			AtomicGroups: lo.Filter(info.Set, func(atomicGroup int, _ int) bool { return bitmap.Contains(atomicGroup) }),
		})
	}

	return kept, dropped
}
