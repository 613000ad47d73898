package drops

// Category is the render bucket of a drop.
type Category uint8

const (
	ScanTool Category = iota
	HazardShard
	PistolPrimary
	PistolSecondary
	PillBottle
	HealthSolution
	Generic

	numCategories
)

var categoryNames = [numCategories]string{
	ScanTool:        "scan_tool",
	HazardShard:     "hazard_shard",
	PistolPrimary:   "pistol_primary",
	PistolSecondary: "pistol_secondary",
	PillBottle:      "pill_bottle",
	HealthSolution:  "health_solution",
	Generic:         "generic",
}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return "invalid"
}

// Categories returns every category in match order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// Strategy is how a category is drawn.
type Strategy uint8

const (
	// Instanced draws one shared geometry/material many times.
	Instanced Strategy = iota
	// Cloned draws a private copy of the asset graph per drop.
	Cloned
	// Box draws a plain box with no asset.
	Box
)

func (s Strategy) String() string {
	switch s {
	case Instanced:
		return "instanced"
	case Cloned:
		return "cloned"
	case Box:
		return "box"
	default:
		return "invalid"
	}
}

// Strategy returns how the category is drawn.
func (c Category) Strategy() Strategy {
	switch c {
	case ScanTool:
		return Instanced
	case Generic:
		return Box
	default:
		return Cloned
	}
}

type classifier struct {
	category Category
	ids      []string
}

// classifiers are tried in order; the first match wins.
var classifiers = []classifier{
	{ScanTool, []string{"tool_scanner", "scanner"}},
	{HazardShard, []string{"red_shard"}},
	{PistolPrimary, []string{"weapon_makarov", "makarov"}},
	{PistolSecondary, []string{"weapon_tt", "tt33"}},
	{PillBottle, []string{"pill_bottle"}},
	{HealthSolution, []string{"health_solution"}},
}

func (c classifier) match(d *WorldItemDrop) bool {
	for _, id := range c.ids {
		if d.TypeID == id || (d.Type != "" && d.Type == id) {
			return true
		}
	}
	return false
}

// CategoryOf classifies one drop. Drops matching no category are Generic.
func CategoryOf(d *WorldItemDrop) Category {
	for _, c := range classifiers {
		if c.match(d) {
			return c.category
		}
	}
	return Generic
}

// Buckets partitions drops by category, preserving input order within each.
type Buckets [numCategories][]WorldItemDrop

// Classify assigns every drop to exactly one bucket.
func Classify(drops []WorldItemDrop) Buckets {
	var b Buckets
	for i := range drops {
		c := CategoryOf(&drops[i])
		b[c] = append(b[c], drops[i])
	}
	return b
}

// Of returns the drops in category c.
func (b *Buckets) Of(c Category) []WorldItemDrop {
	if c >= numCategories {
		return nil
	}
	return b[c]
}

// Total returns the number of drops across all buckets.
func (b *Buckets) Total() int {
	n := 0
	for _, items := range b {
		n += len(items)
	}
	return n
}
