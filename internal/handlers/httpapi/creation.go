package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rules"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// Session entry

func (h *Handler) enterSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.StartSession(r.Context(), &creation.StartSessionInput{Code: req.Code})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"session":       output.Session,
		"draft":         output.Draft,
		"has_progress":  output.HasProgress,
		"has_character": output.HasCharacter,
	})
}

func (h *Handler) resumeDraft(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.ResumeDraft(r.Context(), &creation.ResumeDraftInput{
		SessionID: r.PathValue("sessionID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) freshStart(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.FreshStart(r.Context(), &creation.FreshStartInput{
		SessionID: r.PathValue("sessionID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

// Draft state

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.GetDraft(r.Context(), &creation.GetDraftInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":       output.Draft,
		"can_advance": output.CanAdvance,
		"blocker":     output.Blocker,
	})
}

func (h *Handler) setMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method coc.Method `json:"method"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetMethod(r.Context(), &creation.SetMethodInput{
		DraftID: r.PathValue("draftID"),
		Method:  req.Method,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) rollCharacteristics(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.RollCharacteristics(r.Context(), &creation.RollCharacteristicsInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) setCharacteristics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Characteristics *coc.Characteristics `json:"characteristics"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetCharacteristics(r.Context(), &creation.SetCharacteristicsInput{
		DraftID:         r.PathValue("draftID"),
		Characteristics: req.Characteristics,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) swapCharacteristics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		A coc.Stat `json:"a"`
		B coc.Stat `json:"b"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SwapCharacteristics(r.Context(), &creation.SwapCharacteristicsInput{
		DraftID: r.PathValue("draftID"),
		A:       req.A,
		B:       req.B,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) lockCharacteristics(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.LockCharacteristics(r.Context(), &creation.LockCharacteristicsInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) rollLuck(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.RollLuck(r.Context(), &creation.RollLuckInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

// Age

func (h *Handler) setAge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Age int `json:"age"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetAge(r.Context(), &creation.SetAgeInput{
		DraftID: r.PathValue("draftID"),
		Age:     req.Age,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":        output.Draft,
		"modification": output.Modification,
	})
}

func (h *Handler) lockAge(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.LockAge(r.Context(), &creation.LockAgeInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) rollEDUImprovement(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.RollEDUImprovement(r.Context(), &creation.RollEDUImprovementInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":            output.Draft,
		"roll":             output.Roll,
		"checks_remaining": output.ChecksRemaining,
	})
}

func (h *Handler) setAgeDeductions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Deductions map[coc.Stat]int `json:"deductions"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetAgeDeductions(r.Context(), &creation.SetAgeDeductionsInput{
		DraftID:    r.PathValue("draftID"),
		Deductions: req.Deductions,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

// Occupation and skills

func (h *Handler) chooseOccupation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OccupationID string `json:"occupation_id"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.ChooseOccupation(r.Context(), &creation.ChooseOccupationInput{
		DraftID:      r.PathValue("draftID"),
		OccupationID: req.OccupationID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":             output.Draft,
		"occupation_budget": output.OccupationBudget,
		"personal_budget":   output.PersonalBudget,
	})
}

func slotIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid slot index %q", r.PathValue("index"))
	}
	return index, nil
}

func (h *Handler) selectSkillSlot(w http.ResponseWriter, r *http.Request) {
	index, err := slotIndex(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		SkillID        string `json:"skill_id"`
		Specialization string `json:"specialization,omitempty"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SelectSkillSlot(r.Context(), &creation.SelectSkillSlotInput{
		DraftID:   r.PathValue("draftID"),
		SlotIndex: index,
		Ref:       coc.SkillRef{BaseID: req.SkillID, Specialization: req.Specialization},
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":            output.Draft,
		"forfeited_points": output.ForfeitedPoints,
	})
}

func (h *Handler) getSlotOptions(w http.ResponseWriter, r *http.Request) {
	index, err := slotIndex(r)
	if err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.GetSlotOptions(r.Context(), &creation.GetSlotOptionsInput{
		DraftID:   r.PathValue("draftID"),
		SlotIndex: index,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"options": output.Options})
}

type allocateRequest struct {
	SkillID        string `json:"skill_id"`
	Specialization string `json:"specialization,omitempty"`
	Points         int    `json:"points"`
}

func (h *Handler) allocateOccupationPoints(w http.ResponseWriter, r *http.Request) {
	h.allocate(w, r, h.creationService.AllocateOccupationPoints)
}

func (h *Handler) allocatePersonalPoints(w http.ResponseWriter, r *http.Request) {
	h.allocate(w, r, h.creationService.AllocatePersonalPoints)
}

func (h *Handler) allocate(
	w http.ResponseWriter,
	r *http.Request,
	call func(ctx context.Context, input *creation.AllocatePointsInput) (*creation.AllocatePointsOutput, error),
) {
	var req allocateRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := call(r.Context(), &creation.AllocatePointsInput{
		DraftID: r.PathValue("draftID"),
		Ref:     coc.SkillRef{BaseID: req.SkillID, Specialization: req.Specialization},
		Points:  req.Points,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":     output.Draft,
		"allocated": output.Allocated,
		"remaining": output.Remaining,
	})
}

// Wealth and equipment

func (h *Handler) applyWealthPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preset coc.WealthPreset `json:"preset"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.ApplyWealthPreset(r.Context(), &creation.ApplyWealthPresetInput{
		DraftID: r.PathValue("draftID"),
		Preset:  req.Preset,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) editWealthField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field rules.WealthField `json:"field"`
		Value int               `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.EditWealthField(r.Context(), &creation.EditWealthFieldInput{
		DraftID: r.PathValue("draftID"),
		Field:   req.Field,
		Value:   req.Value,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) addEquipment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.AddEquipment(r.Context(), &creation.AddEquipmentInput{
		DraftID: r.PathValue("draftID"),
		ItemID:  req.ItemID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondEquipment(w, output)
}

func (h *Handler) removeEquipment(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.RemoveEquipment(r.Context(), &creation.RemoveEquipmentInput{
		DraftID: r.PathValue("draftID"),
		ItemID:  r.PathValue("itemID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondEquipment(w, output)
}

func respondEquipment(w http.ResponseWriter, output *creation.EquipmentOutput) {
	respond(w, http.StatusOK, map[string]any{
		"draft":       output.Draft,
		"spent":       output.Spent,
		"over_budget": output.OverBudget,
	})
}

// Narrative

func (h *Handler) setBackstory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Backstory coc.Backstory `json:"backstory"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetBackstory(r.Context(), &creation.SetBackstoryInput{
		DraftID:   r.PathValue("draftID"),
		Backstory: req.Backstory,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) setBasicInfo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CharacterName string `json:"character_name"`
		PlayerName    string `json:"player_name"`
		Gender        string `json:"gender"`
		Appearance    string `json:"appearance"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	output, err := h.creationService.SetBasicInfo(r.Context(), &creation.SetBasicInfoInput{
		DraftID:       r.PathValue("draftID"),
		CharacterName: req.CharacterName,
		PlayerName:    req.PlayerName,
		Gender:        req.Gender,
		Appearance:    req.Appearance,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

// Progression

func (h *Handler) nextStep(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.NextStep(r.Context(), &creation.NextStepInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) previousStep(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.PreviousStep(r.Context(), &creation.PreviousStepInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) openConfirmation(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.OpenConfirmation(r.Context(), &creation.OpenConfirmationInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) cancelConfirmation(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.CancelConfirmation(r.Context(), &creation.CancelConfirmationInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"draft": output.Draft})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.Submit(r.Context(), &creation.SubmitInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]any{
		"character":     output.Character,
		"attempts_used": output.AttemptsUsed,
	})
}

func (h *Handler) abandon(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.Abandon(r.Context(), &creation.AbandonInput{
		DraftID: r.PathValue("draftID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"draft":              output.Draft,
		"attempts_remaining": output.AttemptsRemaining,
	})
}

// Finished characters

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	output, err := h.creationService.GetCharacter(r.Context(), &creation.GetCharacterInput{
		CharacterID: r.PathValue("characterID"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"character": output.Character})
}
