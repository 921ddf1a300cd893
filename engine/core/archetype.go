package core

// Archetype is an immutable unit template
type Archetype struct {
	Name         string  `yaml:"name"`
	Cost         int     `yaml:"cost"`
	MoveSpeed    float64 `yaml:"move_speed"`
	AttackRange  float64 `yaml:"attack_range"`
	AttackDamage float64 `yaml:"attack_damage"`
	MaxHealth    float64 `yaml:"max_health"`

	// Optional per-archetype attack timings; zero falls back to the match defaults
	WindUp   float64 `yaml:"wind_up,omitempty"`
	Recovery float64 `yaml:"recovery,omitempty"`
}

// Catalog holds the archetypes available in a match, in slot order
type Catalog struct {
	order  []string
	byName map[string]*Archetype
}

// NewCatalog builds a catalog; later duplicates replace earlier entries
func NewCatalog(defs []Archetype) *Catalog {
	c := &Catalog{byName: make(map[string]*Archetype, len(defs))}
	for i := range defs {
		a := defs[i]
		if _, ok := c.byName[a.Name]; !ok {
			c.order = append(c.order, a.Name)
		}
		c.byName[a.Name] = &a
	}
	return c
}

// DefaultArchetypes is the illustrative Farmer / Archer / Shadow roster
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{Name: "Farmer", Cost: 10, MoveSpeed: 10, AttackRange: 25, AttackDamage: 2, MaxHealth: 5},
		{Name: "Archer", Cost: 25, MoveSpeed: 8, AttackRange: 60, AttackDamage: 1.5, MaxHealth: 4},
		{Name: "Shadow", Cost: 40, MoveSpeed: 16, AttackRange: 15, AttackDamage: 4, MaxHealth: 8, WindUp: 0.6},
	}
}

// Lookup returns the archetype with the given name
func (c *Catalog) Lookup(name string) (*Archetype, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Names returns archetype names in slot order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Slot returns the archetype bound to the given slot index
func (c *Catalog) Slot(i int) (*Archetype, bool) {
	if i < 0 || i >= len(c.order) {
		return nil, false
	}
	return c.byName[c.order[i]], true
}

func (c *Catalog) Len() int {
	return len(c.order)
}
