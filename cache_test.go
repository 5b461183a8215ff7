package jsonserde

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/tryfix/log"
)

func TestResolutionCache_FirstWriterWins(t *testing.T) {
	cache := NewResolutionCache()
	candidate := testSchema(t, testSchemaNoRequired)
	first := testSchema(t, testSchemaV1)
	second := testSchema(t, testSchemaNoRequired)

	if got := cache.insertIfAbsent(`orders-value`, candidate, &cacheEntry{schema: first, id: 1, version: 1}); got != first {
		t.Fatal(`need the inserted schema back`)
	}

	if got := cache.insertIfAbsent(`orders-value`, candidate, &cacheEntry{schema: second, id: 2, version: 2}); got != first {
		t.Error(`need the first inserted schema to win`)
	}

	got, ok := cache.get(`orders-value`, candidate)
	if !ok || got != first {
		t.Error(`need the first inserted schema from get`)
	}
}

func TestResolutionCache_KeyedBySubjectAndSchema(t *testing.T) {
	cache := NewResolutionCache()
	candidateA := testSchema(t, testSchemaV1)
	candidateB := testSchema(t, testSchemaNoRequired)
	latest := testSchema(t, testSchemaV1)

	cache.insertIfAbsent(`orders-value`, candidateA, &cacheEntry{schema: latest, id: 1, version: 1})

	if _, ok := cache.get(`orders-value`, candidateB); ok {
		t.Error(`need a miss for a different candidate schema`)
	}

	if _, ok := cache.get(`orders-key`, candidateA); ok {
		t.Error(`need a miss for a different subject`)
	}
}

func TestResolutionCache_ConcurrentInsert(t *testing.T) {
	cache := NewResolutionCache()
	candidate := testSchema(t, testSchemaV1)

	latests := make([]*Schema, 50)
	for i := range latests {
		latests[i] = testSchema(t, testSchemaV1)
	}

	winners := make([]*Schema, 50)
	wg := new(sync.WaitGroup)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			winners[i] = cache.insertIfAbsent(`orders-value`, candidate, &cacheEntry{schema: latests[i], id: i, version: i})
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(winners); i++ {
		if winners[i] != winners[0] {
			t.Fatal(`need every concurrent insert to resolve to the same winner`)
		}
	}
}

func TestResolutionCache_ConcurrentSubjectsDoNotSerialize(t *testing.T) {
	cache := NewResolutionCache()
	latest := testSchema(t, testSchemaV1)
	candidate := testSchema(t, testSchemaV1)

	wg := new(sync.WaitGroup)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			subject := fmt.Sprintf(`topic-%d-value`, i)
			cache.insertIfAbsent(subject, candidate, &cacheEntry{schema: latest, id: i, version: 1})
			if _, ok := cache.get(subject, candidate); !ok {
				t.Errorf(`need a hit for subject [%s]`, subject)
			}
		}(i)
	}
	wg.Wait()
}

func TestResolutionCache_Print(t *testing.T) {
	cache := NewResolutionCache()
	cache.insertIfAbsent(`orders-value`, testSchema(t, testSchemaV1), &cacheEntry{
		schema:  testSchema(t, testSchemaV1),
		id:      7,
		version: 3,
	})

	rendered := cache.render()
	for _, cell := range []string{`orders-value`, `7`, `3`} {
		if !strings.Contains(rendered, cell) {
			t.Errorf(`need the table to contain %q, have\n%s`, cell, rendered)
		}
	}

	cache.Print(log.NewNoopLogger())
}
