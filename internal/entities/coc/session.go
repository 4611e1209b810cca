package coc

// Session binds a creation attempt to an invite code: allowed methods, era,
// perks, attempt budget, and the per-session skill cap. It is consumed as
// read-only configuration by every calculator; only the attempt counter
// mutates, through the session repository.
type Session struct {
	ID             string   `json:"id"`
	Code           string   `json:"code"`
	AllowedMethods []Method `json:"allowed_methods"`
	Era            Era      `json:"era"`
	Perks          []Perk   `json:"perks,omitempty"`
	MaxAttempts    int      `json:"max_attempts"`
	AttemptsUsed   int      `json:"attempts_used"`
	MaxSkillValue  int      `json:"max_skill_value"`
	IsActive       bool     `json:"is_active"`
	CreatedAt      int64    `json:"created_at"`
	UpdatedAt      int64    `json:"updated_at"`
}

// AttemptsRemaining returns how many abandon-and-retry attempts are left
func (s *Session) AttemptsRemaining() int {
	remaining := s.MaxAttempts - s.AttemptsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AllowsMethod reports whether the session permits the generation method
func (s *Session) AllowsMethod(m Method) bool {
	for _, allowed := range s.AllowedMethods {
		if allowed == m {
			return true
		}
	}
	return false
}

// HasPerk reports whether the session grants the perk
func (s *Session) HasPerk(p Perk) bool {
	for _, perk := range s.Perks {
		if perk == p {
			return true
		}
	}
	return false
}

// SkillCap returns the session's max skill value, falling back to the
// ruleset default when unset.
func (s *Session) SkillCap() int {
	if s.MaxSkillValue > 0 {
		return s.MaxSkillValue
	}
	return DefaultMaxSkillValue
}
