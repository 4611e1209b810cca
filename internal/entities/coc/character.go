// Package coc implements the Call of Cthulhu 7e creation entities.
package coc

// SkillValue is one finished skill line on the character sheet
type SkillValue struct {
	Ref              SkillRef `json:"ref"`
	Name             string   `json:"name"`
	Base             int      `json:"base"`
	OccupationPoints int      `json:"occupation_points"`
	PersonalPoints   int      `json:"personal_points"`
	Total            int      `json:"total"`
}

// Character is the terminal artifact of a completed creation flow. Owned
// exclusively by one session; immutable once submitted except through the
// administrative surface, so re-reads must not assume it is unchanged.
//
// NOTE: data-only struct, no calculations here.
type Character struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Status    CharacterStatus `json:"status"`

	Name       string `json:"name"`
	PlayerName string `json:"player_name"`
	Gender     string `json:"gender"`
	Appearance string `json:"appearance,omitempty"`

	Era    Era    `json:"era"`
	Method Method `json:"method"`

	Characteristics Characteristics   `json:"characteristics"`
	Luck            int               `json:"luck"`
	Age             int               `json:"age"`
	Derived         DerivedAttributes `json:"derived"`

	OccupationID string       `json:"occupation_id"`
	Skills       []SkillValue `json:"skills"`
	CreditRating int          `json:"credit_rating"`

	Wealth    WealthAllocation `json:"wealth"`
	Equipment []EquipmentItem  `json:"equipment,omitempty"`

	Backstory Backstory `json:"backstory"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
