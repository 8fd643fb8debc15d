// Package library holds the named algorithms a trainee can practise.
package library

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubetrainer"
)

//go:embed algorithms.yaml
var builtinYAML []byte

// Errors
var (
	ErrUnknownAlgorithm = errors.New("library: unknown algorithm")
	ErrEmptyAlgorithm   = errors.New("library: algorithm has no moves")
	ErrDuplicateID      = errors.New("library: duplicate algorithm id")
	ErrNotCustom        = errors.New("library: only custom algorithms can be removed")
)

// CustomIDPrefix starts the id of every user-added algorithm.
const CustomIDPrefix = "custom-"

// entry is the YAML form of an algorithm.
type entry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Moves       string `yaml:"moves"`
	Description string `yaml:"description"`
}

// Library is an ordered, id-indexed set of algorithms.
type Library struct {
	mu         sync.RWMutex
	algorithms []cubetrainer.Algorithm
	byID       map[string]int
}

// New returns an empty library.
func New() *Library {
	return &Library{byID: make(map[string]int)}
}

// Builtin returns a library holding the embedded algorithm set.
func Builtin() (*Library, error) {
	return Parse(builtinYAML)
}

// Parse reads a YAML list of algorithms. Moves must be canonical notation.
func Parse(data []byte) (*Library, error) {
	var entries []entry
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode algorithms: %w", err)
	}

	lib := New()
	for i, e := range entries {
		moves, err := cubetrainer.ParseSequence(e.Moves)
		if err != nil {
			return nil, fmt.Errorf("algorithm %d (%s): %w", i+1, e.ID, err)
		}

		alg := cubetrainer.Algorithm{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    cubetrainer.Category(e.Category),
			Moves:       moves,
		}
		if err := lib.Add(alg); err != nil {
			return nil, fmt.Errorf("algorithm %d (%s): %w", i+1, e.ID, err)
		}
	}

	return lib, nil
}

// Add registers an algorithm.
func (l *Library) Add(alg cubetrainer.Algorithm) error {
	if alg.ID == "" {
		return errors.New("library: algorithm id is required")
	}
	if !alg.Category.Valid() {
		return fmt.Errorf("library: unknown category %q", alg.Category)
	}
	if len(alg.Moves) == 0 {
		return ErrEmptyAlgorithm
	}
	for _, m := range alg.Moves {
		if !m.Valid() {
			return fmt.Errorf("%w in %s", cubetrainer.ErrInvalidMove, alg.ID)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[alg.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, alg.ID)
	}
	l.byID[alg.ID] = len(l.algorithms)
	l.algorithms = append(l.algorithms, clone(alg))
	return nil
}

// NewCustom builds a custom algorithm from free text parsed with policy. The
// description defaults to the text itself.
func NewCustom(policy cubetrainer.ParsePolicy, name, description, text string) (cubetrainer.Algorithm, error) {
	moves := policy.Parse(text)
	if len(moves) == 0 {
		return cubetrainer.Algorithm{}, ErrEmptyAlgorithm
	}
	if name == "" {
		name = "Custom"
	}
	if description == "" {
		description = text
	}
	return cubetrainer.Algorithm{
		ID:          CustomIDPrefix + uuid.New().String(),
		Name:        name,
		Description: description,
		Category:    cubetrainer.CategoryCustom,
		Moves:       moves,
	}, nil
}

// AddCustom parses text, registers it as a custom algorithm and returns it.
func (l *Library) AddCustom(policy cubetrainer.ParsePolicy, name, description, text string) (cubetrainer.Algorithm, error) {
	alg, err := NewCustom(policy, name, description, text)
	if err != nil {
		return cubetrainer.Algorithm{}, err
	}
	if err := l.Add(alg); err != nil {
		return cubetrainer.Algorithm{}, err
	}
	return alg, nil
}

// Remove deletes a custom algorithm.
func (l *Library) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	if l.algorithms[idx].Category != cubetrainer.CategoryCustom {
		return fmt.Errorf("%w: %s", ErrNotCustom, id)
	}

	l.algorithms = append(l.algorithms[:idx], l.algorithms[idx+1:]...)
	delete(l.byID, id)
	for i := idx; i < len(l.algorithms); i++ {
		l.byID[l.algorithms[i].ID] = i
	}
	return nil
}

// Get returns the algorithm with the given id.
func (l *Library) Get(id string) (cubetrainer.Algorithm, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[id]
	if !ok {
		return cubetrainer.Algorithm{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return clone(l.algorithms[idx]), nil
}

// List returns every algorithm in insertion order.
func (l *Library) List() []cubetrainer.Algorithm {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]cubetrainer.Algorithm, len(l.algorithms))
	for i, a := range l.algorithms {
		out[i] = clone(a)
	}
	return out
}

// ByCategory returns the algorithms of one category in insertion order.
func (l *Library) ByCategory(c cubetrainer.Category) []cubetrainer.Algorithm {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []cubetrainer.Algorithm
	for _, a := range l.algorithms {
		if a.Category == c {
			out = append(out, clone(a))
		}
	}
	return out
}

// Categories returns the categories that have at least one algorithm, in
// display order.
func (l *Library) Categories() []cubetrainer.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()

	present := make(map[cubetrainer.Category]bool)
	for _, a := range l.algorithms {
		present[a.Category] = true
	}

	var out []cubetrainer.Category
	for _, c := range cubetrainer.Categories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of algorithms.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.algorithms)
}

// IDs returns every id sorted alphabetically.
func (l *Library) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.byID))
	for id := range l.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func clone(a cubetrainer.Algorithm) cubetrainer.Algorithm {
	moves := make([]cubetrainer.Move, len(a.Moves))
	copy(moves, a.Moves)
	a.Moves = moves
	return a
}
