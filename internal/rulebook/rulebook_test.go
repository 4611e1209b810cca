package rulebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/rulebook"
)

func TestDefaultLoads(t *testing.T) {
	rb, err := rulebook.Default()
	require.NoError(t, err)

	skill, ok := rb.Skill("spot_hidden")
	require.True(t, ok)
	assert.Equal(t, 25, skill.Base)

	occ, ok := rb.Occupation("doctor_of_medicine")
	require.True(t, ok)
	assert.Len(t, occ.Slots, 8)
	assert.Equal(t, coc.CreditRange{Min: 30, Max: 80}, occ.CreditRating)
}

func TestEraFiltering(t *testing.T) {
	rb, err := rulebook.Default()
	require.NoError(t, err)

	t.Run("skills", func(t *testing.T) {
		for _, s := range rb.SkillsForEra(coc.Era1920s) {
			assert.NotEqual(t, "computer_use", s.ID)
		}

		found := false
		for _, s := range rb.SkillsForEra(coc.EraModern) {
			if s.ID == "computer_use" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("occupations", func(t *testing.T) {
		for _, o := range rb.OccupationsForEra(coc.Era1920s) {
			assert.NotEqual(t, "hacker", o.ID)
		}
	})

	t.Run("equipment", func(t *testing.T) {
		for _, e := range rb.EquipmentForEra(coc.EraModern) {
			assert.NotEqual(t, "motor_car", e.ID)
		}
	})
}

func TestAcademicSkills(t *testing.T) {
	rb, err := rulebook.Default()
	require.NoError(t, err)

	academic := rb.AcademicSkillsForEra(coc.Era1920s)
	require.NotEmpty(t, academic)
	for _, s := range academic {
		assert.True(t, s.Academic, s.ID)
	}
}

func TestBracketFor(t *testing.T) {
	rb, err := rulebook.Default()
	require.NoError(t, err)

	t.Run("each credit rating maps to exactly one bracket", func(t *testing.T) {
		for _, era := range []coc.Era{coc.Era1920s, coc.EraModern} {
			for cr := 0; cr <= 99; cr++ {
				_, err := rb.BracketFor(era, cr)
				assert.NoError(t, err, "era %s credit %d", era, cr)
			}
		}
	})

	t.Run("bracket values", func(t *testing.T) {
		b, err := rb.BracketFor(coc.Era1920s, 30)
		require.NoError(t, err)
		assert.Equal(t, "average", b.Name)
		assert.Equal(t, 1500, b.Assets(30))
	})

	t.Run("unknown era", func(t *testing.T) {
		_, err := rb.BracketFor(coc.Era("victorian"), 30)
		assert.Error(t, err)
	})
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	valid := func() (skills, occs, equip, wealth []byte) {
		return []byte("skills:\n  - id: listen\n    name: Listen\n    base: 20\n"),
			[]byte("occupations: []\n"),
			[]byte("equipment: []\n"),
			[]byte("eras: {}\n")
	}

	t.Run("duplicate skill id", func(t *testing.T) {
		_, occs, equip, wealth := valid()
		skills := []byte("skills:\n  - id: listen\n    base: 20\n  - id: listen\n    base: 20\n")
		_, err := rulebook.Load(skills, occs, equip, wealth)
		assert.Error(t, err)
	})

	t.Run("occupation slot references unknown skill", func(t *testing.T) {
		skills, _, equip, wealth := valid()
		occs := []byte(`occupations:
  - id: sailor
    name: Sailor
    skill_points: {stats: [edu], multiplier: 2}
    credit_rating: {min: 9, max: 30}
    slots:
      - fixed: navigate
`)
		_, err := rulebook.Load(skills, occs, equip, wealth)
		assert.Error(t, err)
	})

	t.Run("occupation without formula", func(t *testing.T) {
		skills, _, equip, wealth := valid()
		occs := []byte(`occupations:
  - id: drifter
    name: Drifter
    credit_rating: {min: 0, max: 5}
    slots: []
`)
		_, err := rulebook.Load(skills, occs, equip, wealth)
		assert.Error(t, err)
	})

	t.Run("ambiguous slot spec", func(t *testing.T) {
		skills, _, equip, wealth := valid()
		occs := []byte(`occupations:
  - id: sailor
    name: Sailor
    skill_points: {stats: [edu], multiplier: 2}
    credit_rating: {min: 9, max: 30}
    slots:
      - options: [listen]
`)
		_, err := rulebook.Load(skills, occs, equip, wealth)
		assert.Error(t, err)
	})
}
