// Package creation defines the interface for investigator creation operations
package creation

//go:generate mockgen -destination=mock/mock_service.go -package=creationmock github.com/mythostools/investigator-api/internal/services/creation Service

import (
	"context"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/rules"
)

// Service defines the interface for the creation flow. One draft per
// session; every mutation persists the full draft before returning.
type Service interface {
	// Session entry
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	ResumeDraft(ctx context.Context, input *ResumeDraftInput) (*ResumeDraftOutput, error)
	FreshStart(ctx context.Context, input *FreshStartInput) (*FreshStartOutput, error)
	GetDraft(ctx context.Context, input *GetDraftInput) (*GetDraftOutput, error)

	// Characteristics
	SetMethod(ctx context.Context, input *SetMethodInput) (*SetMethodOutput, error)
	RollCharacteristics(ctx context.Context, input *RollCharacteristicsInput) (*RollCharacteristicsOutput, error)
	SetCharacteristics(ctx context.Context, input *SetCharacteristicsInput) (*SetCharacteristicsOutput, error)
	RollLuck(ctx context.Context, input *RollLuckInput) (*RollLuckOutput, error)
	SwapCharacteristics(ctx context.Context, input *SwapCharacteristicsInput) (*SwapCharacteristicsOutput, error)
	LockCharacteristics(ctx context.Context, input *LockCharacteristicsInput) (*LockCharacteristicsOutput, error)

	// Age and its modifiers
	SetAge(ctx context.Context, input *SetAgeInput) (*SetAgeOutput, error)
	LockAge(ctx context.Context, input *LockAgeInput) (*LockAgeOutput, error)
	RollEDUImprovement(ctx context.Context, input *RollEDUImprovementInput) (*RollEDUImprovementOutput, error)
	SetAgeDeductions(ctx context.Context, input *SetAgeDeductionsInput) (*SetAgeDeductionsOutput, error)

	// Occupation and skills
	ChooseOccupation(ctx context.Context, input *ChooseOccupationInput) (*ChooseOccupationOutput, error)
	SelectSkillSlot(ctx context.Context, input *SelectSkillSlotInput) (*SelectSkillSlotOutput, error)
	GetSlotOptions(ctx context.Context, input *GetSlotOptionsInput) (*GetSlotOptionsOutput, error)
	AllocateOccupationPoints(ctx context.Context, input *AllocatePointsInput) (*AllocatePointsOutput, error)
	AllocatePersonalPoints(ctx context.Context, input *AllocatePointsInput) (*AllocatePointsOutput, error)

	// Wealth and equipment
	ApplyWealthPreset(ctx context.Context, input *ApplyWealthPresetInput) (*ApplyWealthPresetOutput, error)
	EditWealthField(ctx context.Context, input *EditWealthFieldInput) (*EditWealthFieldOutput, error)
	AddEquipment(ctx context.Context, input *AddEquipmentInput) (*EquipmentOutput, error)
	RemoveEquipment(ctx context.Context, input *RemoveEquipmentInput) (*EquipmentOutput, error)

	// Narrative
	SetBackstory(ctx context.Context, input *SetBackstoryInput) (*SetBackstoryOutput, error)
	SetBasicInfo(ctx context.Context, input *SetBasicInfoInput) (*SetBasicInfoOutput, error)

	// Progression
	NextStep(ctx context.Context, input *NextStepInput) (*NextStepOutput, error)
	PreviousStep(ctx context.Context, input *PreviousStepInput) (*PreviousStepOutput, error)
	OpenConfirmation(ctx context.Context, input *OpenConfirmationInput) (*OpenConfirmationOutput, error)
	CancelConfirmation(ctx context.Context, input *CancelConfirmationInput) (*CancelConfirmationOutput, error)
	Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error)
	Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error)

	// Finished characters
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
}

// Session entry types

// StartSessionInput defines the request for entering by invite code
type StartSessionInput struct {
	Code string
}

// StartSessionOutput reports the session plus whether prior progress or a
// submitted character already exists, so the caller can offer
// resume-or-fresh.
type StartSessionOutput struct {
	Session      *coc.Session
	Draft        *coc.Draft // nil until resume or fresh start when progress exists
	HasProgress  bool
	HasCharacter bool
}

// ResumeDraftInput defines the request for resuming prior progress
type ResumeDraftInput struct {
	SessionID string
}

// ResumeDraftOutput returns the draft at its last step
type ResumeDraftOutput struct {
	Draft *coc.Draft
}

// FreshStartInput defines the request for discarding unlocked progress
type FreshStartInput struct {
	SessionID string
}

// FreshStartOutput returns the reset draft
type FreshStartOutput struct {
	Draft *coc.Draft
}

// GetDraftInput defines the request for reading a draft
type GetDraftInput struct {
	DraftID string
}

// GetDraftOutput returns the draft plus the current step's gate status
type GetDraftOutput struct {
	Draft      *coc.Draft
	CanAdvance bool
	Blocker    string
}

// Characteristics types

// SetMethodInput defines the request for choosing a generation method
type SetMethodInput struct {
	DraftID string
	Method  coc.Method
}

// SetMethodOutput returns the updated draft
type SetMethodOutput struct {
	Draft *coc.Draft
}

// RollCharacteristicsInput defines the request for rolling all 8 stats
type RollCharacteristicsInput struct {
	DraftID string
}

// RollCharacteristicsOutput returns the updated draft
type RollCharacteristicsOutput struct {
	Draft *coc.Draft
}

// SetCharacteristicsInput defines the request for point-buy or direct entry
type SetCharacteristicsInput struct {
	DraftID         string
	Characteristics *coc.Characteristics
}

// SetCharacteristicsOutput returns the updated draft
type SetCharacteristicsOutput struct {
	Draft *coc.Draft
}

// RollLuckInput defines the request for rolling luck
type RollLuckInput struct {
	DraftID string
}

// RollLuckOutput returns the updated draft
type RollLuckOutput struct {
	Draft *coc.Draft
}

// SwapCharacteristicsInput defines the request for the one-time swap perk
type SwapCharacteristicsInput struct {
	DraftID string
	A       coc.Stat
	B       coc.Stat
}

// SwapCharacteristicsOutput returns the updated draft
type SwapCharacteristicsOutput struct {
	Draft *coc.Draft
}

// LockCharacteristicsInput defines the request for the characteristics lock
type LockCharacteristicsInput struct {
	DraftID string
}

// LockCharacteristicsOutput returns the updated draft
type LockCharacteristicsOutput struct {
	Draft *coc.Draft
}

// Age types

// SetAgeInput defines the request for setting the investigator's age
type SetAgeInput struct {
	DraftID string
	Age     int
}

// SetAgeOutput returns the draft and the age band's modification ruleset
type SetAgeOutput struct {
	Draft        *coc.Draft
	Modification coc.AgeModification
}

// LockAgeInput defines the request for the age lock
type LockAgeInput struct {
	DraftID string
}

// LockAgeOutput returns the updated draft
type LockAgeOutput struct {
	Draft *coc.Draft
}

// RollEDUImprovementInput defines the request for one improvement check
type RollEDUImprovementInput struct {
	DraftID string
}

// RollEDUImprovementOutput returns the roll and the updated draft
type RollEDUImprovementOutput struct {
	Draft *coc.Draft
	Roll  coc.EDUImprovementRoll

	// ChecksRemaining is how many improvement rolls are still owed
	ChecksRemaining int
}

// SetAgeDeductionsInput defines the request for distributing deductions
type SetAgeDeductionsInput struct {
	DraftID    string
	Deductions map[coc.Stat]int
}

// SetAgeDeductionsOutput returns the updated draft
type SetAgeDeductionsOutput struct {
	Draft *coc.Draft
}

// Occupation and skill types

// ChooseOccupationInput defines the request for choosing an occupation
type ChooseOccupationInput struct {
	DraftID      string
	OccupationID string
}

// ChooseOccupationOutput returns the draft and both skill budgets
type ChooseOccupationOutput struct {
	Draft            *coc.Draft
	OccupationBudget int
	PersonalBudget   int
}

// SelectSkillSlotInput defines the request for filling one occupation slot
type SelectSkillSlotInput struct {
	DraftID   string
	SlotIndex int
	Ref       coc.SkillRef
}

// SelectSkillSlotOutput returns the draft and any points forfeited by
// switching away from a previous choice.
type SelectSkillSlotOutput struct {
	Draft           *coc.Draft
	ForfeitedPoints int
}

// GetSlotOptionsInput defines the request for listing a slot's choices
type GetSlotOptionsInput struct {
	DraftID   string
	SlotIndex int
}

// GetSlotOptionsOutput lists the skills the slot can still offer
type GetSlotOptionsOutput struct {
	Options []coc.Skill
}

// AllocatePointsInput defines the request for setting one skill's points
// from either budget. Points is the desired pool value, not a delta.
type AllocatePointsInput struct {
	DraftID string
	Ref     coc.SkillRef
	Points  int
}

// AllocatePointsOutput returns the applied (possibly clamped) value and
// the budget remaining after it.
type AllocatePointsOutput struct {
	Draft     *coc.Draft
	Allocated int
	Remaining int
}

// Wealth and equipment types

// ApplyWealthPresetInput defines the request for a named wealth split
type ApplyWealthPresetInput struct {
	DraftID string
	Preset  coc.WealthPreset
}

// ApplyWealthPresetOutput returns the updated draft
type ApplyWealthPresetOutput struct {
	Draft *coc.Draft
}

// EditWealthFieldInput defines the request for a free-form wealth edit
type EditWealthFieldInput struct {
	DraftID string
	Field   rules.WealthField
	Value   int
}

// EditWealthFieldOutput returns the updated draft
type EditWealthFieldOutput struct {
	Draft *coc.Draft
}

// AddEquipmentInput defines the request for adding a catalog item
type AddEquipmentInput struct {
	DraftID string
	ItemID  string
}

// RemoveEquipmentInput defines the request for removing an item
type RemoveEquipmentInput struct {
	DraftID string
	ItemID  string
}

// EquipmentOutput returns the draft and the over-budget warning state
type EquipmentOutput struct {
	Draft      *coc.Draft
	Spent      int
	OverBudget bool
}

// Narrative types

// SetBackstoryInput defines the request for the backstory fields
type SetBackstoryInput struct {
	DraftID   string
	Backstory coc.Backstory
}

// SetBackstoryOutput returns the updated draft
type SetBackstoryOutput struct {
	Draft *coc.Draft
}

// SetBasicInfoInput defines the request for names and presentation
type SetBasicInfoInput struct {
	DraftID       string
	CharacterName string
	PlayerName    string
	Gender        string
	Appearance    string
}

// SetBasicInfoOutput returns the updated draft
type SetBasicInfoOutput struct {
	Draft *coc.Draft
}

// Progression types

// NextStepInput defines the request for advancing the cursor
type NextStepInput struct {
	DraftID string
}

// NextStepOutput returns the updated draft
type NextStepOutput struct {
	Draft *coc.Draft
}

// PreviousStepInput defines the request for moving the cursor back
type PreviousStepInput struct {
	DraftID string
}

// PreviousStepOutput returns the updated draft
type PreviousStepOutput struct {
	Draft *coc.Draft
}

// OpenConfirmationInput defines the request for phase one of review
type OpenConfirmationInput struct {
	DraftID string
}

// OpenConfirmationOutput returns the updated draft
type OpenConfirmationOutput struct {
	Draft *coc.Draft
}

// CancelConfirmationInput defines the request for closing the panel
type CancelConfirmationInput struct {
	DraftID string
}

// CancelConfirmationOutput returns the updated draft
type CancelConfirmationOutput struct {
	Draft *coc.Draft
}

// SubmitInput defines the request for final submission
type SubmitInput struct {
	DraftID string
}

// SubmitOutput returns the stored character and the session's attempt
// counter after the submit.
type SubmitOutput struct {
	Character    *coc.Character
	AttemptsUsed int
}

// AbandonInput defines the request for abandoning the character
type AbandonInput struct {
	DraftID string
}

// AbandonOutput returns the reset draft and the attempts left
type AbandonOutput struct {
	Draft             *coc.Draft
	AttemptsRemaining int
}

// GetCharacterInput defines the request for reading a finished character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput returns the character
type GetCharacterOutput struct {
	Character *coc.Character
}
