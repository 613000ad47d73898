// Package drops turns the world's item drops and ambient markers into a
// render fragment each frame.
//
// Drops are classified into fixed categories. Categories whose members look
// identical apart from their transform are drawn as instanced batches and
// highlighted as a whole; categories that must be highlighted per item are
// drawn as one cloned asset graph per drop; anything unrecognized is drawn as
// a plain box so every live drop stays visible.
package drops

import (
	"github.com/Faultbox/worlddrops/pkg/math"
)

// WorldItemDrop is an item released into the world by an actor.
// The dispatcher only reads drops; the world state owns them.
type WorldItemDrop struct {
	ID     string `yaml:"id"`
	TypeID string `yaml:"typeId"`
	// Type is the identity field used by older save data. Each category
	// matches TypeID or Type, and categories are tried in order, so a
	// legacy Type for an earlier category wins over a later TypeID.
	Type     string    `yaml:"type,omitempty"`
	Position math.Vec3 `yaml:"position"`
	Rotation math.Vec3 `yaml:"rotation"`
}

// AmbientMarker is a level-placed paper note.
type AmbientMarker struct {
	ID       string    `yaml:"id"`
	Position math.Vec3 `yaml:"position"`
}

// StickMarker is a level-placed stick lying on the floor.
type StickMarker struct {
	ID        string    `yaml:"id"`
	Position  math.Vec3 `yaml:"position"`
	RotationY float32   `yaml:"rotationY"`
}

// Frame is the externally owned input of one update.
type Frame struct {
	Papers []AmbientMarker
	Sticks []StickMarker
	Drops  []WorldItemDrop
	// Scan and Reveal are the two highlight triggers.
	Scan   bool
	Reveal bool
}

// Highlighted reports whether either trigger is set.
func (f *Frame) Highlighted() bool {
	return f.Scan || f.Reveal
}
