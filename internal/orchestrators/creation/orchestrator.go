// Package creation implements the investigator creation orchestrator
package creation

import (
	"context"
	"log/slog"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/pkg/clock"
	"github.com/mythostools/investigator-api/internal/pkg/dice"
	"github.com/mythostools/investigator-api/internal/pkg/idgen"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/rules"
	characterrepo "github.com/mythostools/investigator-api/internal/repositories/character"
	draftrepo "github.com/mythostools/investigator-api/internal/repositories/draft"
	sessionrepo "github.com/mythostools/investigator-api/internal/repositories/session"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// Config holds the dependencies for the creation orchestrator
type Config struct {
	SessionRepo   sessionrepo.Repository
	DraftRepo     draftrepo.Repository
	CharacterRepo characterrepo.Repository
	Rulebook      *rulebook.Rulebook
	Roller        dice.Roller

	// Optional; defaulted when nil
	DraftIDGenerator     idgen.Generator
	CharacterIDGenerator idgen.Generator
	Clock                clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.DraftRepo == nil {
		vb.RequiredField("DraftRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Rulebook == nil {
		vb.RequiredField("Rulebook")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Orchestrator implements the creation.Service interface
type Orchestrator struct {
	sessionRepo   sessionrepo.Repository
	draftRepo     draftrepo.Repository
	characterRepo characterrepo.Repository
	rulebook      *rulebook.Rulebook
	roller        dice.Roller
	draftIDs      idgen.Generator
	characterIDs  idgen.Generator
	clock         clock.Clock
}

// New creates a new creation orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	draftIDs := cfg.DraftIDGenerator
	if draftIDs == nil {
		draftIDs = idgen.NewUUID("draft_")
	}
	characterIDs := cfg.CharacterIDGenerator
	if characterIDs == nil {
		characterIDs = idgen.NewUUID("char_")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Orchestrator{
		sessionRepo:   cfg.SessionRepo,
		draftRepo:     cfg.DraftRepo,
		characterRepo: cfg.CharacterRepo,
		rulebook:      cfg.Rulebook,
		roller:        cfg.Roller,
		draftIDs:      draftIDs,
		characterIDs:  characterIDs,
		clock:         clk,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ creation.Service = (*Orchestrator)(nil)

// Session entry

// StartSession validates an invite code and reports what the player can do
// next: begin a new draft, resume prior progress, or review a submitted
// character. A draft is created only when no prior progress exists.
func (o *Orchestrator) StartSession(ctx context.Context, input *creation.StartSessionInput) (*creation.StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Code == "" {
		return nil, errors.InvalidArgument("invite code is required")
	}

	sessionOutput, err := o.sessionRepo.GetByCode(ctx, sessionrepo.GetByCodeInput{Code: input.Code})
	if err != nil {
		return nil, err
	}
	sess := sessionOutput.Session

	if !sess.IsActive {
		return nil, errors.FailedPreconditionf("invite code %s is no longer active", input.Code)
	}

	hasCharacter := true
	if _, err := o.characterRepo.GetBySessionID(ctx, characterrepo.GetBySessionIDInput{SessionID: sess.ID}); err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		hasCharacter = false
	}

	_, err = o.draftRepo.GetBySessionID(ctx, draftrepo.GetBySessionIDInput{SessionID: sess.ID})
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	if err == nil {
		// Prior progress exists; the player chooses resume or fresh start
		return &creation.StartSessionOutput{
			Session:      sess,
			HasProgress:  true,
			HasCharacter: hasCharacter,
		}, nil
	}

	if sess.AttemptsRemaining() == 0 {
		return nil, errors.ResourceExhaustedf("invite code %s has no attempts remaining", input.Code)
	}

	now := o.clock.Now().Unix()
	d := &coc.Draft{
		ID:          o.draftIDs.Generate(),
		SessionID:   sess.ID,
		Era:         sess.Era,
		CurrentStep: coc.StepCharacteristics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := o.draftRepo.Create(ctx, draftrepo.CreateInput{Draft: d}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "session started",
		"session_id", sess.ID,
		"draft_id", d.ID,
		"era", sess.Era)

	return &creation.StartSessionOutput{
		Session:      sess,
		Draft:        d,
		HasCharacter: hasCharacter,
	}, nil
}

// ResumeDraft returns the session's draft at its last step
func (o *Orchestrator) ResumeDraft(ctx context.Context, input *creation.ResumeDraftInput) (*creation.ResumeDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	draftOutput, err := o.draftRepo.GetBySessionID(ctx, draftrepo.GetBySessionIDInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &creation.ResumeDraftOutput{Draft: draftOutput.Draft}, nil
}

// FreshStart discards unlocked character data and returns the cursor to the
// characteristics step. Locked characteristic and age groups survive; no
// attempt is consumed.
func (o *Orchestrator) FreshStart(ctx context.Context, input *creation.FreshStartInput) (*creation.FreshStartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	draftOutput, err := o.draftRepo.GetBySessionID(ctx, draftrepo.GetBySessionIDInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}
	d := draftOutput.Draft

	resetPreservingLocks(d)
	if err := o.saveDraft(ctx, d); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "fresh start", "session_id", input.SessionID, "draft_id", d.ID)

	return &creation.FreshStartOutput{Draft: d}, nil
}

// GetDraft returns a draft plus the current step's gate status
func (o *Orchestrator) GetDraft(ctx context.Context, input *creation.GetDraftInput) (*creation.GetDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	d, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	canAdvance, blocker := o.stepGate(d)
	return &creation.GetDraftOutput{
		Draft:      d,
		CanAdvance: canAdvance,
		Blocker:    blocker,
	}, nil
}

// GetCharacter returns a finished character
func (o *Orchestrator) GetCharacter(ctx context.Context, input *creation.GetCharacterInput) (*creation.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &creation.GetCharacterOutput{Character: output.Character}, nil
}

// Shared helpers

func (o *Orchestrator) loadDraft(ctx context.Context, draftID string) (*coc.Draft, error) {
	if draftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}
	output, err := o.draftRepo.Get(ctx, draftrepo.GetInput{ID: draftID})
	if err != nil {
		return nil, err
	}
	return output.Draft, nil
}

func (o *Orchestrator) loadSession(ctx context.Context, sessionID string) (*coc.Session, error) {
	output, err := o.sessionRepo.Get(ctx, sessionrepo.GetInput{ID: sessionID})
	if err != nil {
		return nil, err
	}
	return output.Session, nil
}

func (o *Orchestrator) saveDraft(ctx context.Context, d *coc.Draft) error {
	d.UpdatedAt = o.clock.Now().Unix()
	_, err := o.draftRepo.Update(ctx, draftrepo.UpdateInput{Draft: d})
	return err
}

// ageModification resolves the draft's age band, failing when age is unset
// or out of range.
func (o *Orchestrator) ageModification(d *coc.Draft) (coc.AgeModification, error) {
	if d.Age == 0 {
		return coc.AgeModification{}, errors.FailedPrecondition("age has not been set")
	}
	return rules.ResolveAgeModification(d.Age)
}

// improvedEDU returns EDU after any improvement rolls. The stored
// characteristics stay exactly as entered, so the generation method's
// constraints can be re-checked at any point in the flow; each roll
// records the running value, making the last entry authoritative.
func improvedEDU(d *coc.Draft) int {
	if n := len(d.EDURolls); n > 0 {
		return d.EDURolls[n-1].EDUAfter
	}
	return d.Characteristics.EDU
}

// effectiveCharacteristics applies EDU improvements, age deductions, and
// the appearance reduction on top of the as-entered characteristics. Valid
// only once the deduction distribution satisfies the age band.
func (o *Orchestrator) effectiveCharacteristics(d *coc.Draft) (coc.Characteristics, error) {
	if d.Characteristics == nil {
		return coc.Characteristics{}, errors.FailedPrecondition("characteristics have not been set")
	}
	mod, err := o.ageModification(d)
	if err != nil {
		return coc.Characteristics{}, err
	}
	eff, err := rules.ApplyAgeEffects(d.Characteristics, mod, d.AgeDeductions)
	if err != nil {
		return coc.Characteristics{}, err
	}
	eff.EDU = improvedEDU(d)
	return eff, nil
}

// occupation resolves the draft's chosen occupation
func (o *Orchestrator) occupation(d *coc.Draft) (coc.Occupation, error) {
	if d.OccupationID == "" {
		return coc.Occupation{}, errors.FailedPrecondition("no occupation chosen")
	}
	occ, ok := o.rulebook.Occupation(d.OccupationID)
	if !ok {
		return coc.Occupation{}, errors.Internalf("draft references unknown occupation %q", d.OccupationID)
	}
	return occ, nil
}

// creditRatingTotal is the credit rating skill base plus allocated points
func (o *Orchestrator) creditRatingTotal(d *coc.Draft) int {
	base := 0
	if skill, ok := o.rulebook.Skill(coc.CreditRatingSkillID); ok {
		base = skill.Base
	}
	return base + d.CreditRatingPoints()
}

// resetPreservingLocks clears character-scoped data while honoring the
// lock rule: locked characteristic and age groups survive abandon and
// fresh start for the remainder of the session.
func resetPreservingLocks(d *coc.Draft) {
	chars := d.Characteristics
	luck := d.Luck
	method := d.Method
	swapUsed := d.SwapUsed
	charsLocked := d.CharacteristicsLocked

	age := d.Age
	ageLocked := d.AgeLocked
	eduRolls := d.EDURolls
	deductions := d.AgeDeductions

	d.ResetCharacterData()

	if charsLocked {
		d.Characteristics = chars
		d.Luck = luck
		d.Method = method
		d.SwapUsed = swapUsed
		d.CharacteristicsLocked = true
	}
	if ageLocked {
		d.Age = age
		d.AgeLocked = true
		// EDU rolls are relative to the entered EDU; keep them only
		// when the characteristics they built on survived too
		if charsLocked {
			d.EDURolls = eduRolls
			d.AgeDeductions = deductions
		}
	}

	d.CurrentStep = coc.StepCharacteristics
}
