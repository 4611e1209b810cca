// Package rulebook holds the static reference tables the creation flow
// consumes: the skill, occupation, and equipment catalogs, wealth brackets
// per era, and the fixed age and damage-bonus tables. Catalogs ship as
// embedded YAML and are assumed static for the duration of a session.
package rulebook

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
)

//go:embed data/skills.yaml
var skillsYAML []byte

//go:embed data/occupations.yaml
var occupationsYAML []byte

//go:embed data/equipment.yaml
var equipmentYAML []byte

//go:embed data/wealth.yaml
var wealthYAML []byte

// Rulebook is the loaded, validated reference data set
type Rulebook struct {
	skills      map[string]coc.Skill
	skillOrder  []string
	occupations map[string]coc.Occupation
	occOrder    []string
	equipment   map[string]coc.EquipmentDef
	equipOrder  []string
	brackets    map[coc.Era][]coc.WealthBracket
}

type skillsFile struct {
	Skills []coc.Skill `yaml:"skills"`
}

type equipmentFile struct {
	Equipment []coc.EquipmentDef `yaml:"equipment"`
}

type wealthFile struct {
	Eras map[coc.Era][]coc.WealthBracket `yaml:"eras"`
}

type occupationsFile struct {
	Occupations []occupationSpec `yaml:"occupations"`
}

type occupationSpec struct {
	ID           string                 `yaml:"id"`
	Name         string                 `yaml:"name"`
	Category     string                 `yaml:"category"`
	Eras         []coc.Era              `yaml:"eras"`
	SkillPoints  coc.SkillPointsFormula `yaml:"skill_points"`
	CreditRating coc.CreditRange        `yaml:"credit_rating"`
	Slots        []slotSpec             `yaml:"slots"`
}

// slotSpec is the flat YAML encoding of a skill slot. Exactly one kind must
// be set; toSlot converts it to the closed union in the entities package.
type slotSpec struct {
	Fixed          string   `yaml:"fixed"`
	Skill          string   `yaml:"skill"`
	Specialization string   `yaml:"specialization"`
	Open           bool     `yaml:"open"`
	Options        []string `yaml:"options"`
	Choice         []string `yaml:"choice"`
	Any            bool     `yaml:"any"`
	AnyAcademic    bool     `yaml:"any_academic"`
}

func (s slotSpec) toSlot() (coc.SkillSlot, error) {
	switch {
	case s.Fixed != "":
		return coc.FixedSkillSlot{SkillID: s.Fixed}, nil
	case s.Skill != "" && s.Specialization != "":
		return coc.LockedSpecializationSlot{SkillID: s.Skill, Specialization: s.Specialization}, nil
	case s.Skill != "" && s.Open:
		return coc.OpenSpecializationSlot{SkillID: s.Skill, Options: s.Options}, nil
	case len(s.Choice) > 0:
		return coc.ChoiceSlot{Options: s.Choice}, nil
	case s.Any:
		return coc.AnySkillSlot{}, nil
	case s.AnyAcademic:
		return coc.AnyAcademicSlot{}, nil
	default:
		return nil, errors.InvalidArgument("slot spec does not match any slot kind")
	}
}

// Default loads the embedded catalogs
func Default() (*Rulebook, error) {
	return Load(skillsYAML, occupationsYAML, equipmentYAML, wealthYAML)
}

// Load parses and validates catalog YAML supplied by the caller
func Load(skills, occupations, equipment, wealth []byte) (*Rulebook, error) {
	rb := &Rulebook{
		skills:      make(map[string]coc.Skill),
		occupations: make(map[string]coc.Occupation),
		equipment:   make(map[string]coc.EquipmentDef),
	}

	var sf skillsFile
	if err := yaml.Unmarshal(skills, &sf); err != nil {
		return nil, errors.Wrap(err, "failed to parse skills catalog")
	}
	for _, skill := range sf.Skills {
		if skill.ID == "" {
			return nil, errors.InvalidArgument("skill catalog entry missing id")
		}
		if _, dup := rb.skills[skill.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate skill id %q", skill.ID)
		}
		rb.skills[skill.ID] = skill
		rb.skillOrder = append(rb.skillOrder, skill.ID)
	}

	var of occupationsFile
	if err := yaml.Unmarshal(occupations, &of); err != nil {
		return nil, errors.Wrap(err, "failed to parse occupations catalog")
	}
	for _, spec := range of.Occupations {
		occ, err := rb.buildOccupation(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := rb.occupations[occ.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate occupation id %q", occ.ID)
		}
		rb.occupations[occ.ID] = occ
		rb.occOrder = append(rb.occOrder, occ.ID)
	}

	var ef equipmentFile
	if err := yaml.Unmarshal(equipment, &ef); err != nil {
		return nil, errors.Wrap(err, "failed to parse equipment catalog")
	}
	for _, item := range ef.Equipment {
		if item.ID == "" {
			return nil, errors.InvalidArgument("equipment catalog entry missing id")
		}
		rb.equipment[item.ID] = item
		rb.equipOrder = append(rb.equipOrder, item.ID)
	}

	var wf wealthFile
	if err := yaml.Unmarshal(wealth, &wf); err != nil {
		return nil, errors.Wrap(err, "failed to parse wealth brackets")
	}
	rb.brackets = wf.Eras

	return rb, nil
}

func (rb *Rulebook) buildOccupation(spec occupationSpec) (coc.Occupation, error) {
	if spec.ID == "" {
		return coc.Occupation{}, errors.InvalidArgument("occupation catalog entry missing id")
	}
	if len(spec.SkillPoints.Stats) == 0 || spec.SkillPoints.Multiplier <= 0 {
		return coc.Occupation{}, errors.InvalidArgumentf("occupation %q has no skill point formula", spec.ID)
	}
	for _, stat := range spec.SkillPoints.Stats {
		if !coc.IsValidStat(stat) {
			return coc.Occupation{}, errors.InvalidArgumentf("occupation %q formula references unknown stat %q", spec.ID, stat)
		}
	}

	slots := make([]coc.SkillSlot, 0, len(spec.Slots))
	for i, ss := range spec.Slots {
		slot, err := ss.toSlot()
		if err != nil {
			return coc.Occupation{}, errors.Wrapf(err, "occupation %q slot %d", spec.ID, i)
		}
		if err := rb.checkSlotSkills(slot); err != nil {
			return coc.Occupation{}, errors.Wrapf(err, "occupation %q slot %d", spec.ID, i)
		}
		slots = append(slots, slot)
	}

	return coc.Occupation{
		ID:           spec.ID,
		Name:         spec.Name,
		Category:     spec.Category,
		Eras:         spec.Eras,
		SkillPoints:  spec.SkillPoints,
		Slots:        slots,
		CreditRating: spec.CreditRating,
	}, nil
}

func (rb *Rulebook) checkSlotSkills(slot coc.SkillSlot) error {
	known := func(id string) error {
		if _, ok := rb.skills[id]; !ok {
			return errors.InvalidArgumentf("references unknown skill %q", id)
		}
		return nil
	}

	switch s := slot.(type) {
	case coc.FixedSkillSlot:
		return known(s.SkillID)
	case coc.LockedSpecializationSlot:
		return known(s.SkillID)
	case coc.OpenSpecializationSlot:
		return known(s.SkillID)
	case coc.ChoiceSlot:
		for _, id := range s.Options {
			if err := known(id); err != nil {
				return err
			}
		}
		return nil
	case coc.AnySkillSlot, coc.AnyAcademicSlot:
		return nil
	default:
		return errors.Internalf("unhandled slot kind %T", slot)
	}
}

// Skill returns a skill catalog entry
func (rb *Rulebook) Skill(id string) (coc.Skill, bool) {
	s, ok := rb.skills[id]
	return s, ok
}

// SkillsForEra returns all skills available in the era, in catalog order
func (rb *Rulebook) SkillsForEra(era coc.Era) []coc.Skill {
	var out []coc.Skill
	for _, id := range rb.skillOrder {
		s := rb.skills[id]
		if s.InEra(era) {
			out = append(out, s)
		}
	}
	return out
}

// AcademicSkillsForEra returns era skills tagged academic
func (rb *Rulebook) AcademicSkillsForEra(era coc.Era) []coc.Skill {
	var out []coc.Skill
	for _, s := range rb.SkillsForEra(era) {
		if s.Academic {
			out = append(out, s)
		}
	}
	return out
}

// Occupation returns an occupation catalog entry
func (rb *Rulebook) Occupation(id string) (coc.Occupation, bool) {
	o, ok := rb.occupations[id]
	return o, ok
}

// OccupationsForEra returns occupations available in the era
func (rb *Rulebook) OccupationsForEra(era coc.Era) []coc.Occupation {
	var out []coc.Occupation
	for _, id := range rb.occOrder {
		o := rb.occupations[id]
		if o.InEra(era) {
			out = append(out, o)
		}
	}
	return out
}

// EquipmentItem returns an equipment catalog entry
func (rb *Rulebook) EquipmentItem(id string) (coc.EquipmentDef, bool) {
	e, ok := rb.equipment[id]
	return e, ok
}

// EquipmentForEra returns items available in the era
func (rb *Rulebook) EquipmentForEra(era coc.Era) []coc.EquipmentDef {
	var out []coc.EquipmentDef
	for _, id := range rb.equipOrder {
		e := rb.equipment[id]
		if e.InEra(era) {
			out = append(out, e)
		}
	}
	return out
}

// BracketFor returns the first wealth bracket whose credit range contains
// the value for the era.
func (rb *Rulebook) BracketFor(era coc.Era, creditRating int) (coc.WealthBracket, error) {
	brackets, ok := rb.brackets[era]
	if !ok {
		return coc.WealthBracket{}, errors.NotFoundf("no wealth brackets for era %q", era)
	}
	for _, b := range brackets {
		if b.Contains(creditRating) {
			return b, nil
		}
	}
	return coc.WealthBracket{}, errors.OutOfRangef("credit rating %d matches no wealth bracket for era %q", creditRating, era)
}
