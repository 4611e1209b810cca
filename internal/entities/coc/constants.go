package coc

// Era identifies the historical setting a session plays in. Catalogs and
// wealth brackets are keyed by era.
type Era string

// Supported eras
const (
	Era1920s  Era = "1920s"
	EraModern Era = "modern"
)

// Method is the characteristic generation method, chosen once per session
// and fixed for every characteristic, luck, and credit-rating input.
type Method string

// Generation methods
const (
	MethodDice     Method = "dice"
	MethodPointBuy Method = "point_buy"
	MethodDirect   Method = "direct"
)

// Perk is a session-granted bonus capability
type Perk string

// Perks
const (
	// PerkCharacteristicSwap allows one swap of two characteristic
	// values before the characteristics are locked.
	PerkCharacteristicSwap Perk = "characteristic_swap"
)

// CharacterStatus is the lifecycle state of a finished character
type CharacterStatus string

// Character statuses
const (
	CharacterStatusDraft     CharacterStatus = "draft"
	CharacterStatusSubmitted CharacterStatus = "submitted"
)

// Point-buy rules
const (
	PointBuyTotal = 460
	PointBuyMin   = 15
	PointBuyMax   = 90
)

// Characteristic value bounds
const (
	StatMin = 1
	StatMax = 99
)

// Age bounds
const (
	AgeMin = 15
	AgeMax = 89
)

// DefaultMaxSkillValue caps base + occupation + personal points on a single
// skill unless the session overrides it.
const DefaultMaxSkillValue = 80

// CreditRatingSkillID is the implicit 9th occupation slot, outside the
// occupation's slot list.
const CreditRatingSkillID = "credit_rating"
