package runtime

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when a requested individual does not exist.
var ErrNotFound = errors.New("individual not found")

// Store persists class assertions and property values for individuals.
// Values of one subject and property are a set kept in insertion order.
type Store interface {
	AssertClass(ctx context.Context, individual string, class Class) error
	Individuals(ctx context.Context, class Class) ([]string, error)

	ObjectValues(ctx context.Context, subject string, property ObjectProperty) ([]string, error)
	AddObjectValue(ctx context.Context, subject string, property ObjectProperty, object string) error
	RemoveObjectValue(ctx context.Context, subject string, property ObjectProperty, object string) error

	DataValues(ctx context.Context, subject string, property DataProperty) ([]Literal, error)
	AddDataValue(ctx context.Context, subject string, property DataProperty, value Literal) error
	RemoveDataValue(ctx context.Context, subject string, property DataProperty, value Literal) error

	// DeleteIndividual removes every assertion about iri, including object
	// values that point at it.
	DeleteIndividual(ctx context.Context, iri string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	types   map[Class][]string
	objects map[string]map[ObjectProperty][]string
	data    map[string]map[DataProperty][]Literal
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		types:   make(map[Class][]string),
		objects: make(map[string]map[ObjectProperty][]string),
		data:    make(map[string]map[DataProperty][]Literal),
	}
}

func (s *MemoryStore) AssertClass(ctx context.Context, individual string, class Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.types[class], individual) {
		s.types[class] = append(s.types[class], individual)
	}
	return nil
}

func (s *MemoryStore) Individuals(ctx context.Context, class Class) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.types[class]), nil
}

func (s *MemoryStore) ObjectValues(ctx context.Context, subject string, property ObjectProperty) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects[subject][property]), nil
}

func (s *MemoryStore) AddObjectValue(ctx context.Context, subject string, property ObjectProperty, object string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.objects[subject]
	if !ok {
		props = make(map[ObjectProperty][]string)
		s.objects[subject] = props
	}
	if !slices.Contains(props[property], object) {
		props[property] = append(props[property], object)
	}
	return nil
}

func (s *MemoryStore) RemoveObjectValue(ctx context.Context, subject string, property ObjectProperty, object string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if props, ok := s.objects[subject]; ok {
		props[property] = slices.DeleteFunc(props[property], func(o string) bool { return o == object })
	}
	return nil
}

func (s *MemoryStore) DataValues(ctx context.Context, subject string, property DataProperty) ([]Literal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data[subject][property]), nil
}

func (s *MemoryStore) AddDataValue(ctx context.Context, subject string, property DataProperty, value Literal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.data[subject]
	if !ok {
		props = make(map[DataProperty][]Literal)
		s.data[subject] = props
	}
	if !slices.Contains(props[property], value) {
		props[property] = append(props[property], value)
	}
	return nil
}

func (s *MemoryStore) RemoveDataValue(ctx context.Context, subject string, property DataProperty, value Literal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if props, ok := s.data[subject]; ok {
		props[property] = slices.DeleteFunc(props[property], func(l Literal) bool { return l == value })
	}
	return nil
}

func (s *MemoryStore) DeleteIndividual(ctx context.Context, iri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for class, members := range s.types {
		s.types[class] = slices.DeleteFunc(members, func(m string) bool { return m == iri })
	}
	delete(s.objects, iri)
	delete(s.data, iri)
	for _, props := range s.objects {
		for p, objects := range props {
			props[p] = slices.DeleteFunc(objects, func(o string) bool { return o == iri })
		}
	}
	return nil
}
