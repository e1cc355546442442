// Package game holds the catalog of puzzle games the site covers.
package game

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Filter struct {
	Category   string
	Difficulty string
	Tag        string
	Featured   *bool
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Manager struct {
	mu    sync.RWMutex
	games []model.Game
	byID  map[string]int
}

// NewManager loads the embedded catalog.
func NewManager() (*Manager, error) {
	return LoadCatalog(defaultCatalog)
}

// LoadCatalog parses a YAML catalog of the form {games: [...]}.
func LoadCatalog(data []byte) (*Manager, error) {
	var doc struct {
		Games []model.Game `yaml:"games"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing game catalog: %w", err)
	}

	m := &Manager{byID: make(map[string]int, len(doc.Games))}
	for _, g := range doc.Games {
		if g.ID == "" {
			return nil, fmt.Errorf("game %q has no id", g.Name)
		}
		if _, dup := m.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q", g.ID)
		}
		m.byID[g.ID] = len(m.games)
		m.games = append(m.games, g)
	}
	return m, nil
}

func cloneGame(g model.Game) model.Game {
	g.Tags = append([]string(nil), g.Tags...)
	return g
}

func (m *Manager) All() []model.Game {
	return m.collect(func(model.Game) bool { return true })
}

// ByID returns nil when no game has id.
func (m *Manager) ByID(id string) *model.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return nil
	}
	g := cloneGame(m.games[i])
	return &g
}

// Search matches query against name, description and tags.
func (m *Manager) Search(query string) []model.Game {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return m.All()
	}
	return m.collect(func(g model.Game) bool {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Description), q) {
			return true
		}
		for _, t := range g.Tags {
			if strings.EqualFold(t, q) {
				return true
			}
		}
		return false
	})
}

func (m *Manager) Filter(f Filter) []model.Game {
	return m.collect(func(g model.Game) bool {
		if f.Category != "" && !strings.EqualFold(g.Category, f.Category) {
			return false
		}
		if f.Difficulty != "" && !strings.EqualFold(g.Difficulty, f.Difficulty) {
			return false
		}
		if f.Featured != nil && g.Featured != *f.Featured {
			return false
		}
		if f.Tag != "" {
			for _, t := range g.Tags {
				if strings.EqualFold(t, f.Tag) {
					return true
				}
			}
			return false
		}
		return true
	})
}

// Categories returns each category with its game count, sorted by name.
func (m *Manager) Categories() []CategoryCount {
	m.mu.RLock()
	counts := make(map[string]int)
	for _, g := range m.games {
		counts[g.Category]++
	}
	m.mu.RUnlock()

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Manager) collect(keep func(model.Game) bool) []model.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Game{}
	for _, g := range m.games {
		if keep(g) {
			out = append(out, cloneGame(g))
		}
	}
	return out
}
