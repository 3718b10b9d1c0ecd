package groups

import (
	"cmp"
	"log"
	"math/bits"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	// WholeClass is the reserved name of the group containing every pupil of a class
	WholeClass = "*"
	// MaxAtomicGroups is the number of atomic groups a Bitmap can index
	MaxAtomicGroups = 64
)

// Bitmap has bit i set when atomic group i belongs to the group
type Bitmap uint64

func (bitmap Bitmap) Count() int {
	return bits.OnesCount64(uint64(bitmap))
}

func (bitmap Bitmap) Contains(atomicGroup int) bool {
	return bitmap&(1<<atomicGroup) != 0
}

// GroupIndex locates a named group: Division 0 is the whole-class pseudo-division, real divisions start at 1
type GroupIndex struct {
	Division int
	Position int
}

type GroupInfo struct {
	Index      GroupIndex
	Components []string // Primaries of a compound group, empty for simple groups
	Bitmap     Bitmap
	Set        []int // Atomic group indices in ascending order
}

type DivisionData struct {
	Class         string
	RawDivisions  [][]string // Simple groups of each division
	AtomicGroups  [][]string // Cartesian product of RawDivisions, one simple group per division
	GroupInfo     map[string]GroupInfo
	BitmapToGroup map[Bitmap]string
}

// CompileDivisions computes the atomic groups of a class and the membership of every named group.
// Each division is a list of group descriptors: a simple group "A" or a compound group "G=A+B" whose
// primaries are simple groups listed earlier in the same division
func CompileDivisions(class string, divisions [][]string) (*DivisionData, error) {
	data := &DivisionData{
		Class:         class,
		RawDivisions:  make([][]string, 0, len(divisions)),
		GroupInfo:     make(map[string]GroupInfo),
		BitmapToGroup: make(map[Bitmap]string),
	}

	//** Parse divisions
	seen := make(map[string]bool)
	for division, descriptors := range divisions {
		simpleGroups := make([]string, 0, len(descriptors))
		compoundGroups := make(map[string][]string) // Sorted primaries -> compound name
		compoundKeys := make(map[string]string)

		for position, descriptor := range descriptors {
			name, primariesStr, compound := strings.Cut(descriptor, "=")

			// Verify the name is valid and unique class-wide
			if !validName(name) {
				return nil, DivisionError{Kind: ErrInvalidGroup, Class: class, Division: division, Group: name}
			} else if seen[name] {
				return nil, DivisionError{Kind: ErrRepeatedGroup, Class: class, Division: division, Group: name}
			}
			seen[name] = true

			index := GroupIndex{Division: division + 1, Position: position}
			if !compound {
				simpleGroups = append(simpleGroups, name)
				data.GroupInfo[name] = GroupInfo{Index: index, Components: []string{}, Set: []int{}}
				continue
			}

			primaries := strings.Split(primariesStr, "+")
			for i, primary := range primaries {
				// A primary must be a simple group already seen in this division
				if !slices.Contains(simpleGroups, primary) {
					return nil, DivisionError{Kind: ErrInvalidCompoundGroup, Class: class, Division: division, Group: name}
				}
				if slices.Contains(primaries[:i], primary) {
					return nil, DivisionError{Kind: ErrRepeatedCompoundGroup, Class: class, Division: division, Group: name}
				}
			}
			if len(primaries) < 2 {
				return nil, DivisionError{Kind: ErrTooFewPrimaries, Class: class, Division: division, Group: name}
			}

			// Two compounds over the same primaries would share their membership
			sorted := slices.Clone(primaries)
			slices.Sort(sorted)
			key := strings.Join(sorted, "+")
			if _, ok := compoundKeys[key]; ok {
				return nil, DivisionError{Kind: ErrRepeatedCompoundGroup, Class: class, Division: division, Group: name}
			}
			compoundKeys[key] = name
			compoundGroups[name] = primaries
			data.GroupInfo[name] = GroupInfo{Index: index, Components: primaries, Set: []int{}}
		}

		if len(simpleGroups) < 2 {
			return nil, DivisionError{Kind: ErrTooFewGroups, Class: class, Division: division}
		}
		// A compound covering the whole division would duplicate the whole class
		for name, primaries := range compoundGroups {
			if len(primaries) == len(simpleGroups) {
				return nil, DivisionError{Kind: ErrInvalidCompoundGroup, Class: class, Division: division, Group: name}
			}
		}

		data.RawDivisions = append(data.RawDivisions, simpleGroups)
	}

	//** Build atomic groups
	atomicCount := 1
	for division, simpleGroups := range data.RawDivisions {
		if atomicCount *= len(simpleGroups); atomicCount > MaxAtomicGroups {
			return nil, DivisionError{Kind: ErrTooManyAtomicGroups, Class: class, Division: division}
		}
	}
	data.AtomicGroups = cartesianProduct(data.RawDivisions)
	if len(data.RawDivisions) == 0 {
		data.AtomicGroups = [][]string{{WholeClass}}
	}

	//** Simple groups' membership
	for atomicGroup, tuple := range data.AtomicGroups {
		if len(data.RawDivisions) == 0 {
			break
		}
		for _, simpleGroup := range tuple {
			info := data.GroupInfo[simpleGroup]
			info.Bitmap |= 1 << atomicGroup
			info.Set = append(info.Set, atomicGroup)
			data.GroupInfo[simpleGroup] = info
		}
	}

	//** Compound groups' membership
	for name, info := range data.GroupInfo {
		if len(info.Components) == 0 {
			continue
		}
		for _, component := range info.Components {
			info.Bitmap |= data.GroupInfo[component].Bitmap
			info.Set = append(info.Set, data.GroupInfo[component].Set...)
		}
		info.Set = lo.Uniq(info.Set)
		slices.Sort(info.Set)
		data.GroupInfo[name] = info
	}

	//** Whole class
	data.GroupInfo[WholeClass] = GroupInfo{
		Index:      GroupIndex{},
		Components: []string{},
		Bitmap:     Bitmap(1)<<len(data.AtomicGroups) - 1,
		Set:        lo.Range(len(data.AtomicGroups)),
	}

	//** Invert membership
	for name, info := range data.GroupInfo {
		if other, ok := data.BitmapToGroup[info.Bitmap]; ok {
			log.Panicf("groups \"%v\" and \"%v\" of class \"%v\" share the bitmap %b", name, other, class, info.Bitmap)
		}
		data.BitmapToGroup[info.Bitmap] = name
	}

	return data, nil
}

// Names returns the named groups ordered by their GroupIndex, the whole class first
func (data *DivisionData) Names() []string {
	names := lo.Keys(data.GroupInfo)
	slices.SortFunc(names, func(a, b string) int {
		indexA, indexB := data.GroupInfo[a].Index, data.GroupInfo[b].Index
		return cmp.Or(cmp.Compare(indexA.Division, indexB.Division), cmp.Compare(indexA.Position, indexB.Position))
	})
	return names
}

// AtomicLabel names an atomic group by joining its simple groups with "."
func (data *DivisionData) AtomicLabel(atomicGroup int) string {
	return strings.Join(data.AtomicGroups[atomicGroup], ".")
}

// SimpleGroups expands a named group into the simple groups it stands for. The whole class expands to nothing
func (data *DivisionData) SimpleGroups(group string) ([]string, bool) {
	info, ok := data.GroupInfo[group]
	if !ok {
		return nil, false
	} else if group == WholeClass {
		return []string{}, true
	} else if len(info.Components) > 0 {
		return slices.Clone(info.Components), true
	}
	return []string{group}, true
}

// GroupOf returns the named group with exactly the given membership
func (data *DivisionData) GroupOf(bitmap Bitmap) (string, bool) {
	name, ok := data.BitmapToGroup[bitmap]
	return name, ok
}

func cartesianProduct(divisions [][]string) [][]string {
	product := [][]string{{}}
	for _, simpleGroups := range divisions {
		next := make([][]string, 0, len(product)*len(simpleGroups))
		for _, prefix := range product {
			for _, group := range simpleGroups {
				next = append(next, append(slices.Clone(prefix), group))
			}
		}
		product = next
	}
	return product
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, char := range name {
		if !(char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' || char >= '0' && char <= '9') {
			return false
		}
	}
	return true
}
