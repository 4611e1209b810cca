package creation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	characterrepo "github.com/mythostools/investigator-api/internal/repositories/character"
	draftrepo "github.com/mythostools/investigator-api/internal/repositories/draft"
	sessionrepo "github.com/mythostools/investigator-api/internal/repositories/session"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// SetBackstory stores the free-text background fields
func (o *Orchestrator) SetBackstory(ctx context.Context, input *creation.SetBackstoryInput) (*creation.SetBackstoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	d.Backstory = input.Backstory

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.SetBackstoryOutput{Draft: d}, nil
}

// SetBasicInfo stores names and presentation
func (o *Orchestrator) SetBasicInfo(ctx context.Context, input *creation.SetBasicInfoInput) (*creation.SetBasicInfoOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	d.CharacterName = input.CharacterName
	d.PlayerName = input.PlayerName
	d.Gender = input.Gender
	d.Appearance = input.Appearance

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.SetBasicInfoOutput{Draft: d}, nil
}

// NextStep advances the cursor when the current step's gate passes
func (o *Orchestrator) NextStep(ctx context.Context, input *creation.NextStepInput) (*creation.NextStepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	ok, blocker := o.stepGate(d)
	if !ok {
		return nil, errors.FailedPrecondition(blocker)
	}

	next, has := d.CurrentStep.Next()
	if !has {
		return nil, errors.FailedPrecondition("already at the last step")
	}
	d.CurrentStep = next

	switch next {
	case coc.StepDerived:
		if err := o.recomputeDerived(d); err != nil {
			return nil, err
		}
	case coc.StepEquipment:
		if err := o.ensureWealth(d); err != nil {
			return nil, err
		}
	}

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.NextStepOutput{Draft: d}, nil
}

// PreviousStep moves the cursor back without undoing locks or data
func (o *Orchestrator) PreviousStep(ctx context.Context, input *creation.PreviousStepInput) (*creation.PreviousStepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	prev, has := d.CurrentStep.Prev()
	if !has {
		return nil, errors.FailedPrecondition("already at the first step")
	}
	if d.CurrentStep == coc.StepReview {
		d.ConfirmationOpen = false
	}
	d.CurrentStep = prev

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.PreviousStepOutput{Draft: d}, nil
}

// OpenConfirmation opens the review confirmation panel, phase one of the
// two-phase submit. The whole draft must already satisfy every gate.
func (o *Orchestrator) OpenConfirmation(ctx context.Context, input *creation.OpenConfirmationInput) (*creation.OpenConfirmationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CurrentStep != coc.StepReview {
		return nil, errors.FailedPrecondition("confirmation is only available at the review step")
	}
	if err := o.validateForSubmit(d); err != nil {
		return nil, err
	}

	d.ConfirmationOpen = true

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.OpenConfirmationOutput{Draft: d}, nil
}

// CancelConfirmation closes the review confirmation panel
func (o *Orchestrator) CancelConfirmation(ctx context.Context, input *creation.CancelConfirmationInput) (*creation.CancelConfirmationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	d.ConfirmationOpen = false

	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}
	return &creation.CancelConfirmationOutput{Draft: d}, nil
}

// Submit assembles the character and stores it, replacing any prior
// character for the session and consuming one attempt, atomically. A
// failure leaves the draft fully intact for retry.
func (o *Orchestrator) Submit(ctx context.Context, input *creation.SubmitInput) (*creation.SubmitOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if d.CurrentStep != coc.StepReview {
		return nil, errors.FailedPrecondition("submission is only available at the review step")
	}
	if !d.ConfirmationOpen {
		return nil, errors.FailedPrecondition("open the confirmation panel before submitting")
	}
	if err := o.validateForSubmit(d); err != nil {
		return nil, err
	}

	c, err := o.assembleCharacter(d)
	if err != nil {
		return nil, err
	}

	submitOutput, err := o.characterRepo.Submit(ctx, characterrepo.SubmitInput{Character: c})
	if err != nil {
		return nil, err
	}

	// The draft has served its purpose; a delete failure only leaves a
	// stale draft behind, never a half-submitted character
	if _, err := o.draftRepo.Delete(ctx, draftrepo.DeleteInput{ID: d.ID}); err != nil {
		slog.WarnContext(ctx, "failed to delete draft after submit",
			"draft_id", d.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "character submitted",
		"session_id", d.SessionID,
		"character_id", c.ID,
		"attempts_used", submitOutput.AttemptsUsed)

	return &creation.SubmitOutput{
		Character:    submitOutput.Character,
		AttemptsUsed: submitOutput.AttemptsUsed,
	}, nil
}

// Abandon consumes one attempt and resets unlocked character data,
// returning the cursor to the characteristics step. Refused when no
// attempts remain.
func (o *Orchestrator) Abandon(ctx context.Context, input *creation.AbandonInput) (*creation.AbandonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	sess, err := o.loadSession(ctx, d.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.AttemptsRemaining() == 0 {
		return nil, errors.ResourceExhausted("no attempts remaining")
	}

	incrOutput, err := o.sessionRepo.IncrementAttempts(ctx, sessionrepo.IncrementAttemptsInput{SessionID: d.SessionID})
	if err != nil {
		return nil, err
	}

	resetPreservingLocks(d)
	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	remaining := sess.MaxAttempts - incrOutput.AttemptsUsed
	if remaining < 0 {
		remaining = 0
	}

	slog.InfoContext(ctx, "character abandoned",
		"session_id", d.SessionID,
		"draft_id", d.ID,
		"attempts_remaining", remaining)

	return &creation.AbandonOutput{Draft: d, AttemptsRemaining: remaining}, nil
}

// Gating

// stepGate reports whether the current step's completion predicate holds
func (o *Orchestrator) stepGate(d *coc.Draft) (bool, string) {
	blocker := o.stepBlocker(d, d.CurrentStep)
	return blocker == "", blocker
}

// validateForSubmit runs every step's predicate over the whole draft
func (o *Orchestrator) validateForSubmit(d *coc.Draft) error {
	for _, step := range coc.StepOrder {
		if step == coc.StepReview {
			break
		}
		if blocker := o.stepBlocker(d, step); blocker != "" {
			return errors.FailedPrecondition(blocker).WithMeta("step", string(step))
		}
	}
	return nil
}

// stepBlocker returns the reason a step cannot complete, or "" when it can.
// Steps without a predicate (derived, backstory, equipment) always pass;
// over-budget equipment is a warning, not a block.
func (o *Orchestrator) stepBlocker(d *coc.Draft, step coc.Step) string {
	switch step {
	case coc.StepInviteCode, coc.StepDerived, coc.StepBackstory, coc.StepEquipment:
		return ""

	case coc.StepCharacteristics:
		if d.Method == "" {
			return "no generation method chosen"
		}
		if d.Characteristics == nil || !d.Characteristics.AllSet() {
			return "characteristics are incomplete"
		}
		if err := rules.ValidateCharacteristics(d.Method, d.Characteristics); err != nil {
			return errors.GetMessage(err)
		}
		if d.Luck == 0 {
			return "luck has not been rolled"
		}
		return ""

	case coc.StepAge:
		if d.Age == 0 {
			return "age has not been set"
		}
		if _, err := rulebook.AgeRangeFor(d.Age); err != nil {
			return errors.GetMessage(err)
		}
		if d.Luck == 0 {
			return "luck has not been rolled"
		}
		return ""

	case coc.StepAgeModifiers:
		mod, err := o.ageModification(d)
		if err != nil {
			return errors.GetMessage(err)
		}
		if len(d.EDURolls) < mod.EDUImprovementChecks {
			return fmt.Sprintf("improvement checks made %d / %d", len(d.EDURolls), mod.EDUImprovementChecks)
		}
		if d.Characteristics == nil {
			return "characteristics are incomplete"
		}
		if err := rules.ValidateDeductions(d.Characteristics, mod, d.AgeDeductions); err != nil {
			return errors.GetMessage(err)
		}
		return ""

	case coc.StepOccupation:
		if d.OccupationID == "" {
			return "no occupation chosen"
		}
		return ""

	case coc.StepOccupationSkills:
		occ, err := o.occupation(d)
		if err != nil {
			return errors.GetMessage(err)
		}
		if !rules.AllSlotsResolved(&occ, d.SlotSelections) {
			return "occupation skill slots are unfilled"
		}
		remaining, err := o.occupationRemaining(d, &occ)
		if err != nil {
			return errors.GetMessage(err)
		}
		if remaining != 0 {
			return fmt.Sprintf("occupation points allocated, %d remaining", remaining)
		}
		if cr := o.creditRatingTotal(d); !occ.CreditRating.Contains(cr) {
			return fmt.Sprintf("credit rating %d outside the occupation's range %d-%d",
				cr, occ.CreditRating.Min, occ.CreditRating.Max)
		}
		return ""

	case coc.StepPersonalSkills:
		remaining, err := o.personalRemaining(d)
		if err != nil {
			return errors.GetMessage(err)
		}
		if remaining != 0 {
			return fmt.Sprintf("personal points allocated, %d remaining", remaining)
		}
		return ""

	case coc.StepBasicInfo:
		if d.CharacterName == "" {
			return "character name is required"
		}
		if d.PlayerName == "" {
			return "player name is required"
		}
		if d.Gender == "" {
			return "gender is required"
		}
		return ""

	case coc.StepReview:
		return "confirm and submit to finish"

	default:
		return fmt.Sprintf("unknown step %q", step)
	}
}

// Assembly

// recomputeDerived refreshes the draft's derived attributes from the
// age-adjusted characteristics.
func (o *Orchestrator) recomputeDerived(d *coc.Draft) error {
	eff, err := o.effectiveCharacteristics(d)
	if err != nil {
		return err
	}
	mod, err := o.ageModification(d)
	if err != nil {
		return err
	}
	derived := rules.CalculateDerived(&eff, mod)
	d.Derived = &derived
	return nil
}

// assembleCharacter builds the terminal character record from a fully
// valid draft.
func (o *Orchestrator) assembleCharacter(d *coc.Draft) (*coc.Character, error) {
	eff, err := o.effectiveCharacteristics(d)
	if err != nil {
		return nil, err
	}
	mod, err := o.ageModification(d)
	if err != nil {
		return nil, err
	}
	if err := o.ensureWealth(d); err != nil {
		return nil, err
	}

	skills, err := o.assembleSkills(d)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now().Unix()
	return &coc.Character{
		ID:              o.characterIDs.Generate(),
		SessionID:       d.SessionID,
		Status:          coc.CharacterStatusSubmitted,
		Name:            d.CharacterName,
		PlayerName:      d.PlayerName,
		Gender:          d.Gender,
		Appearance:      d.Appearance,
		Era:             d.Era,
		Method:          d.Method,
		Characteristics: eff,
		Luck:            d.Luck,
		Age:             d.Age,
		Derived:         rules.CalculateDerived(&eff, mod),
		OccupationID:    d.OccupationID,
		Skills:          skills,
		CreditRating:    o.creditRatingTotal(d),
		Wealth:          *d.Wealth,
		Equipment:       d.Equipment,
		Backstory:       d.Backstory,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// assembleSkills builds the character sheet's skill lines: every filled
// slot and every skill holding points, Credit Rating excluded (it is a
// dedicated field).
func (o *Orchestrator) assembleSkills(d *coc.Draft) ([]coc.SkillValue, error) {
	refs := make(map[string]coc.SkillRef)
	for _, ref := range d.SlotSelections {
		if !ref.IsZero() {
			refs[ref.Canonical()] = ref
		}
	}
	for key := range d.Allocations {
		ref := coc.ParseSkillRef(key)
		if ref.BaseID != coc.CreditRatingSkillID {
			refs[key] = ref
		}
	}

	keys := make([]string, 0, len(refs))
	for key := range refs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	skills := make([]coc.SkillValue, 0, len(keys))
	for _, key := range keys {
		ref := refs[key]
		skill, ok := o.rulebook.Skill(ref.BaseID)
		if !ok {
			return nil, errors.Internalf("draft references unknown skill %q", ref.BaseID)
		}

		name := skill.Name
		if ref.Specialization != "" {
			name = fmt.Sprintf("%s (%s)", skill.Name, ref.Specialization)
		}

		pool := d.Allocation(ref)
		skills = append(skills, coc.SkillValue{
			Ref:              ref,
			Name:             name,
			Base:             skill.Base,
			OccupationPoints: pool.Occupation,
			PersonalPoints:   pool.Personal,
			Total:            skill.Base + pool.Total(),
		})
	}
	return skills, nil
}
