package coc

import "strings"

// SkillRef identifies a concrete skill selection: a base skill plus an
// optional specialization. The canonical string form ("base:spec") is used
// only at serialization boundaries and as allocation map keys.
type SkillRef struct {
	BaseID         string `json:"base_id"`
	Specialization string `json:"specialization,omitempty"`
}

// NewSkillRef creates a ref without a specialization
func NewSkillRef(baseID string) SkillRef {
	return SkillRef{BaseID: baseID}
}

// NewSpecializedRef creates a ref with a specialization
func NewSpecializedRef(baseID, specialization string) SkillRef {
	return SkillRef{BaseID: baseID, Specialization: specialization}
}

// Canonical returns the serialized identifier for the ref
func (r SkillRef) Canonical() string {
	if r.Specialization == "" {
		return r.BaseID
	}
	return r.BaseID + ":" + r.Specialization
}

// ParseSkillRef parses a canonical identifier back into a ref
func ParseSkillRef(s string) SkillRef {
	base, spec, found := strings.Cut(s, ":")
	if !found {
		return SkillRef{BaseID: base}
	}
	return SkillRef{BaseID: base, Specialization: spec}
}

// IsZero reports whether the ref is empty
func (r SkillRef) IsZero() bool {
	return r.BaseID == ""
}

// Skill is a catalog entry for one skill
type Skill struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Base     int    `json:"base" yaml:"base"`
	Academic bool   `json:"academic,omitempty" yaml:"academic,omitempty"`
	Eras     []Era  `json:"eras,omitempty" yaml:"eras,omitempty"`

	// Specializations is the closed option set; empty means the skill has
	// no specializations unless AllowCustom is set.
	Specializations []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`

	// AllowCustom permits free-text specializations alongside (or instead
	// of) the catalog set.
	AllowCustom bool `json:"allow_custom,omitempty" yaml:"allow_custom,omitempty"`
}

// InEra reports whether the skill is available in the era. A skill with no
// era tags is available everywhere.
func (s *Skill) InEra(era Era) bool {
	if len(s.Eras) == 0 {
		return true
	}
	for _, e := range s.Eras {
		if e == era {
			return true
		}
	}
	return false
}

// HasSpecialization reports whether spec is in the catalog's closed set
func (s *Skill) HasSpecialization(spec string) bool {
	for _, candidate := range s.Specializations {
		if candidate == spec {
			return true
		}
	}
	return false
}

// Specialized reports whether the skill takes any specialization at all
func (s *Skill) Specialized() bool {
	return len(s.Specializations) > 0 || s.AllowCustom
}
