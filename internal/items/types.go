// Package items holds the static catalog of item pose configurations: how an
// item type is scaled, corrected and offset across the idle, hip and aimed
// stances of a holder.
package items

// Category groups item types by how they are held.
type Category string

const (
	CategoryMelee  Category = "MELEE"
	CategoryPistol Category = "PISTOL"
	CategoryTool   Category = "TOOL"
)

// GroundLift is how far a dropped item without a model is raised above its
// drop point: half the height of the stand-in box.
const GroundLift float32 = 0.15

// Transform is a stance offset: position and Euler XYZ rotation in radians.
type Transform struct {
	Pos [3]float32 `yaml:"pos"`
	Rot [3]float32 `yaml:"rot"`
}

// Offsets are the per-stance placements of a held item.
type Offsets struct {
	Idle Transform  `yaml:"idle"`
	Hip  [3]float32 `yaml:"hip"`
	// ADS is nil for items that cannot be aimed (all melee items).
	ADS *Transform `yaml:"ads,omitempty"`
}

// AnimationFreq is the procedural bob frequency (Hz) per movement state.
type AnimationFreq struct {
	Idle   float32 `yaml:"idle"`
	Walk   float32 `yaml:"walk"`
	Sprint float32 `yaml:"sprint"`
}

// ItemPoseConfig describes one item type.
type ItemPoseConfig struct {
	TypeID       string     `yaml:"typeId"`
	Name         string     `yaml:"name"`
	Category     Category   `yaml:"category"`
	ModelPath    string     `yaml:"modelPath"`
	Scale        [3]float32 `yaml:"scale"`
	BaseRotation [3]float32 `yaml:"baseRotation"`
	Offsets      Offsets    `yaml:"offsets"`
	// AnimationFreq is nil when the holder should not bob the item.
	AnimationFreq *AnimationFreq `yaml:"animationFreq,omitempty"`
}

// clone deep-copies the optional blocks so callers cannot reach the table.
func (c ItemPoseConfig) clone() ItemPoseConfig {
	if c.Offsets.ADS != nil {
		ads := *c.Offsets.ADS
		c.Offsets.ADS = &ads
	}
	if c.AnimationFreq != nil {
		f := *c.AnimationFreq
		c.AnimationFreq = &f
	}
	return c
}

// CanAim reports whether the item has an aimed stance.
func (c ItemPoseConfig) CanAim() bool {
	return c.Offsets.ADS != nil
}
