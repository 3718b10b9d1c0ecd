package groups

import (
	"slices"
	"sync"
)

type cacheEntry struct {
	divisions [][]string
	data      *DivisionData
}

// Cache memoizes DivisionData per class. An entry is recomputed when the class' division
// description changes; Clear drops everything after a reload of the underlying data
type Cache struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (cache *Cache) Get(class string, divisions [][]string) (*DivisionData, error) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if entry, ok := cache.entries[class]; ok && slices.EqualFunc(entry.divisions, divisions, slices.Equal[[]string]) {
		return entry.data, nil
	}

	data, err := CompileDivisions(class, divisions)
	if err != nil {
		delete(cache.entries, class)
		return nil, err
	}

	stored := make([][]string, len(divisions))
	for i, division := range divisions {
		stored[i] = slices.Clone(division)
	}
	cache.entries[class] = cacheEntry{divisions: stored, data: data}
	return data, nil
}

func (cache *Cache) Clear() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	cache.entries = make(map[string]cacheEntry)
}

func (cache *Cache) Len() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	return len(cache.entries)
}
