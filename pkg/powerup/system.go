// pkg/powerup/system.go
package powerup

import "fmt"

// System binds inventory power-ups to levels. A power-up is selected before
// launch, taken from the inventory on Activate, and refunded once if the level
// is restarted.
type System struct {
	Inventory *Inventory

	selected     Type
	active       Type
	levelPowerup Type
	restored     bool
}

// NewSystem creates a System over inv
func NewSystem(inv *Inventory) *System {
	return &System{Inventory: inv}
}

// Select arms t for the next activation. An empty type clears the selection.
func (s *System) Select(t Type) error {
	if t == "" {
		s.selected = ""
		return nil
	}
	if s.Inventory.Count(t) <= 0 {
		return fmt.Errorf("%w: %s", ErrNotOwned, t)
	}
	s.selected = t
	return nil
}

// Selected returns the armed power-up, or ""
func (s *System) Selected() Type {
	return s.selected
}

// Activate consumes the selected power-up and makes it active for the level.
// It returns "" when nothing was selected.
func (s *System) Activate() (Type, error) {
	if s.selected == "" {
		return "", nil
	}
	t := s.selected
	s.selected = ""
	if err := s.Inventory.Use(t); err != nil {
		return "", err
	}
	s.active = t
	s.levelPowerup = t
	s.restored = false
	return t, nil
}

// Active returns the power-up in effect, or ""
func (s *System) Active() Type {
	return s.active
}

// IsActive reports whether t is in effect
func (s *System) IsActive(t Type) bool {
	return t != "" && s.active == t
}

// ClearActive ends the active effect without touching the level binding
func (s *System) ClearActive() {
	s.active = ""
}

// RestoreLevelPowerup refunds the level's power-up and selects it again.
// It refunds at most once per activation and reports whether it did.
func (s *System) RestoreLevelPowerup() bool {
	if s.levelPowerup == "" || s.restored {
		return false
	}
	s.Inventory.Add(s.levelPowerup)
	s.selected = s.levelPowerup
	s.restored = true
	s.active = ""
	return true
}

// ClearLevelPowerup forgets the level binding when advancing to another level
func (s *System) ClearLevelPowerup() {
	s.levelPowerup = ""
	s.restored = false
	s.active = ""
}
