// Package config loads and validates match settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/lanebattle/engine/core"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Lane struct {
	FriendlyBaseX float64 `yaml:"friendly_base_x"`
	EnemyBaseX    float64 `yaml:"enemy_base_x"`
	BaseHealth    float64 `yaml:"base_health"`
}

type Economy struct {
	Capacity     float64 `yaml:"capacity"`
	Start        float64 `yaml:"start"`
	FriendlyRate float64 `yaml:"friendly_rate"`
	EnemyRate    float64 `yaml:"enemy_rate"`
}

type Spawn struct {
	ForwardOffset float64 `yaml:"forward_offset"`
	ForwardJitter float64 `yaml:"forward_jitter"`
	LateralJitter float64 `yaml:"lateral_jitter"`
}

type Attack struct {
	WindUp   float64 `yaml:"wind_up"`
	Recovery float64 `yaml:"recovery"`
}

type Opponent struct {
	Difficulty Difficulty `yaml:"difficulty"`
	Rotation   []string   `yaml:"rotation"`
}

// Match is the full set of match settings
type Match struct {
	TickRate float64          `yaml:"tick_rate"`
	Seed     int64            `yaml:"seed"`
	Lane     Lane             `yaml:"lane"`
	Economy  Economy          `yaml:"economy"`
	Spawn    Spawn            `yaml:"spawn"`
	Attack   Attack           `yaml:"attack"`
	Units    []core.Archetype `yaml:"units"`
	Opponent Opponent         `yaml:"opponent"`
}

// Default returns the built-in match settings
func Default() Match {
	return Match{
		TickRate: 20,
		Seed:     1,
		Lane:     Lane{FriendlyBaseX: -200, EnemyBaseX: 200, BaseHealth: 100},
		Economy:  Economy{Capacity: 1000, Start: 0, FriendlyRate: 10, EnemyRate: 10},
		Spawn:    Spawn{ForwardOffset: 20, ForwardJitter: 10, LateralJitter: 2},
		Attack:   Attack{WindUp: 1.0, Recovery: 0.5},
		Units:    core.DefaultArchetypes(),
		Opponent: Opponent{Difficulty: DiffMedium, Rotation: []string{"Farmer", "Archer", "Farmer", "Shadow"}},
	}
}

// Load reads a YAML file on top of the defaults and validates the result
func Load(path string) (Match, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Match{}, fmt.Errorf("read config %s: %w", path, err)
	}
	m, err := Parse(b)
	if err != nil {
		return Match{}, fmt.Errorf("config %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(b []byte) (Match, error) {
	m := Default()
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Match{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

// Validate checks every numeric input the simulation relies on
func (m Match) Validate() error {
	if m.TickRate <= 0 {
		return invalid("tick_rate", "must be positive, got %v", m.TickRate)
	}
	if m.Lane.BaseHealth <= 0 {
		return invalid("lane.base_health", "must be positive, got %v", m.Lane.BaseHealth)
	}
	if m.Lane.FriendlyBaseX == m.Lane.EnemyBaseX {
		return invalid("lane", "bases share position %v", m.Lane.EnemyBaseX)
	}
	if m.Economy.Capacity <= 0 {
		return invalid("economy.capacity", "must be positive, got %v", m.Economy.Capacity)
	}
	if m.Economy.Start < 0 || m.Economy.Start > m.Economy.Capacity {
		return invalid("economy.start", "must be within [0, %v], got %v", m.Economy.Capacity, m.Economy.Start)
	}
	if m.Economy.FriendlyRate < 0 || m.Economy.EnemyRate < 0 {
		return invalid("economy", "rates must not be negative")
	}
	if m.Spawn.ForwardOffset < 0 || m.Spawn.ForwardJitter < 0 || m.Spawn.LateralJitter < 0 {
		return invalid("spawn", "offsets must not be negative")
	}
	if m.Attack.WindUp <= 0 || m.Attack.Recovery <= 0 {
		return invalid("attack", "wind_up and recovery must be positive")
	}
	if len(m.Units) == 0 {
		return invalid("units", "at least one archetype is required")
	}
	seen := make(map[string]bool, len(m.Units))
	for i, u := range m.Units {
		field := fmt.Sprintf("units[%d]", i)
		switch {
		case u.Name == "":
			return invalid(field, "name is empty")
		case seen[u.Name]:
			return invalid(field, "duplicate name %q", u.Name)
		case u.Cost < 0:
			return invalid(field, "%s: cost must not be negative", u.Name)
		case u.MoveSpeed <= 0, u.AttackRange <= 0, u.AttackDamage <= 0, u.MaxHealth <= 0:
			return invalid(field, "%s: move_speed, attack_range, attack_damage and max_health must be positive", u.Name)
		case u.WindUp < 0, u.Recovery < 0:
			return invalid(field, "%s: attack timings must not be negative", u.Name)
		}
		seen[u.Name] = true
	}
	if m.Opponent.Difficulty < DiffEasy || m.Opponent.Difficulty > DiffHard {
		return invalid("opponent.difficulty", "out of range: %d", int(m.Opponent.Difficulty))
	}
	for i, name := range m.Opponent.Rotation {
		if !seen[name] {
			return invalid(fmt.Sprintf("opponent.rotation[%d]", i), "unknown unit %q", name)
		}
	}
	return nil
}

// Rates returns accrual rates indexed by faction
func (m Match) Rates() [2]float64 {
	return [2]float64{m.Economy.FriendlyRate, m.Economy.EnemyRate}
}

// Difficulty is the opponent's think interval class
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

// ParseDifficulty accepts easy, medium or hard; empty means medium
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DiffEasy, nil
	case "", "medium":
		return DiffMedium, nil
	case "hard":
		return DiffHard, nil
	}
	return DiffMedium, invalid("opponent.difficulty", "unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffMedium:
		return "medium"
	case DiffHard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// UnmarshalYAML rejects unknown names at decode time
func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

func (d Difficulty) MarshalYAML() (any, error) {
	return d.String(), nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}
