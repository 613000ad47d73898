// Package world holds the item drops and ambient markers of a loaded scene.
package world

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Scene is one level's worth of world state the dispatcher reads.
type Scene struct {
	Name   string                `yaml:"name"`
	Papers []drops.AmbientMarker `yaml:"papers"`
	Sticks []drops.StickMarker   `yaml:"sticks"`
	Drops  []drops.WorldItemDrop `yaml:"drops"`
}

// Decode reads a scene fixture.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a scene fixture from disk.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scene) validate() error {
	for i, d := range s.Drops {
		if d.ID == "" {
			return fmt.Errorf("drop %d: missing id", i)
		}
	}
	return nil
}

// Bounds returns the box enclosing every drop and marker.
// An empty scene reports ok false.
func (s *Scene) Bounds() (lo, hi math.Vec3, ok bool) {
	add := func(p math.Vec3) {
		if !ok {
			lo, hi, ok = p, p, true
			return
		}
		lo = math.V3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = math.V3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	for _, p := range s.Papers {
		add(p.Position)
	}
	for _, st := range s.Sticks {
		add(st.Position)
	}
	for _, d := range s.Drops {
		add(d.Position)
	}
	return lo, hi, ok
}

// Manager owns the current scene and applies drop and pickup events to it.
//
// Every change replaces the drops slice, so a frame built before the change
// keeps its snapshot and the dispatcher sees a new slice identity.
type Manager struct {
	current *Scene
	nextID  int
}

// NewManager creates a new world manager.
func NewManager() *Manager {
	return &Manager{current: &Scene{}}
}

// Current returns the current scene.
func (m *Manager) Current() *Scene {
	return m.current
}

// LoadScene loads a fixture from path, or the demo scene when path is empty.
func (m *Manager) LoadScene(path string) error {
	if path == "" {
		m.SetScene(Demo())
		return nil
	}
	s, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	m.SetScene(s)
	return nil
}

// SetScene replaces the current scene.
func (m *Manager) SetScene(s *Scene) {
	m.current = s
	m.nextID = len(s.Drops)
}

// Drop releases an item of typeID at pos and returns its id.
func (m *Manager) Drop(typeID string, pos, rot math.Vec3) string {
	m.nextID++
	id := "spawned_" + strconv.Itoa(m.nextID)

	s := m.current
	next := make([]drops.WorldItemDrop, len(s.Drops), len(s.Drops)+1)
	copy(next, s.Drops)
	s.Drops = append(next, drops.WorldItemDrop{ID: id, TypeID: typeID, Position: pos, Rotation: rot})
	return id
}

// Pickup removes the drop with the given id. It reports whether one was found.
func (m *Manager) Pickup(id string) bool {
	s := m.current
	for i, d := range s.Drops {
		if d.ID != id {
			continue
		}
		next := make([]drops.WorldItemDrop, 0, len(s.Drops)-1)
		next = append(next, s.Drops[:i]...)
		s.Drops = append(next, s.Drops[i+1:]...)
		return true
	}
	return false
}

// Last returns the id of the most recent drop, or "" when there is none.
func (m *Manager) Last() string {
	if n := len(m.current.Drops); n > 0 {
		return m.current.Drops[n-1].ID
	}
	return ""
}

// Frame builds the dispatcher input for the current scene.
func (m *Manager) Frame(scan, reveal bool) drops.Frame {
	s := m.current
	return drops.Frame{
		Papers: s.Papers,
		Sticks: s.Sticks,
		Drops:  s.Drops,
		Scan:   scan,
		Reveal: reveal,
	}
}
