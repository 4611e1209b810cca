// Package httpapi exposes the creation service over a JSON HTTP interface
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mythostools/investigator-api/internal/errors"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/services/creation"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CreationService creation.Service
	Rulebook        *rulebook.Rulebook
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CreationService == nil {
		vb.RequiredField("CreationService")
	}
	if c.Rulebook == nil {
		vb.RequiredField("Rulebook")
	}

	return vb.Build()
}

// Handler serves the creation API
type Handler struct {
	creationService creation.Service
	rulebook        *rulebook.Rulebook
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		creationService: cfg.CreationService,
		rulebook:        cfg.Rulebook,
	}, nil
}

// Routes returns the API route table
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)

	// Session entry
	mux.HandleFunc("POST /v1/sessions/enter", h.enterSession)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/resume", h.resumeDraft)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/fresh-start", h.freshStart)

	// Draft state
	mux.HandleFunc("GET /v1/drafts/{draftID}", h.getDraft)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/method", h.setMethod)
	mux.HandleFunc("POST /v1/drafts/{draftID}/characteristics/roll", h.rollCharacteristics)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/characteristics", h.setCharacteristics)
	mux.HandleFunc("POST /v1/drafts/{draftID}/characteristics/swap", h.swapCharacteristics)
	mux.HandleFunc("POST /v1/drafts/{draftID}/characteristics/lock", h.lockCharacteristics)
	mux.HandleFunc("POST /v1/drafts/{draftID}/luck/roll", h.rollLuck)

	// Age
	mux.HandleFunc("PUT /v1/drafts/{draftID}/age", h.setAge)
	mux.HandleFunc("POST /v1/drafts/{draftID}/age/lock", h.lockAge)
	mux.HandleFunc("POST /v1/drafts/{draftID}/age/improvement-roll", h.rollEDUImprovement)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/age/deductions", h.setAgeDeductions)

	// Occupation and skills
	mux.HandleFunc("PUT /v1/drafts/{draftID}/occupation", h.chooseOccupation)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/slots/{index}", h.selectSkillSlot)
	mux.HandleFunc("GET /v1/drafts/{draftID}/slots/{index}/options", h.getSlotOptions)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/skills/occupation", h.allocateOccupationPoints)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/skills/personal", h.allocatePersonalPoints)

	// Wealth and equipment
	mux.HandleFunc("POST /v1/drafts/{draftID}/wealth/preset", h.applyWealthPreset)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/wealth/field", h.editWealthField)
	mux.HandleFunc("POST /v1/drafts/{draftID}/equipment", h.addEquipment)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}/equipment/{itemID}", h.removeEquipment)

	// Narrative
	mux.HandleFunc("PUT /v1/drafts/{draftID}/backstory", h.setBackstory)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/basic-info", h.setBasicInfo)

	// Progression
	mux.HandleFunc("POST /v1/drafts/{draftID}/next", h.nextStep)
	mux.HandleFunc("POST /v1/drafts/{draftID}/previous", h.previousStep)
	mux.HandleFunc("POST /v1/drafts/{draftID}/confirmation/open", h.openConfirmation)
	mux.HandleFunc("POST /v1/drafts/{draftID}/confirmation/cancel", h.cancelConfirmation)
	mux.HandleFunc("POST /v1/drafts/{draftID}/submit", h.submit)
	mux.HandleFunc("POST /v1/drafts/{draftID}/abandon", h.abandon)

	// Finished characters
	mux.HandleFunc("GET /v1/characters/{characterID}", h.getCharacter)

	// Catalogs
	mux.HandleFunc("GET /v1/catalog/{era}/skills", h.listSkills)
	mux.HandleFunc("GET /v1/catalog/{era}/occupations", h.listOccupations)
	mux.HandleFunc("GET /v1/catalog/{era}/equipment", h.listEquipment)

	return mux
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the wire shape of a failed request
type errorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	body := errorBody{
		Code:    code.String(),
		Message: errors.GetMessage(err),
		Meta:    errors.GetMeta(err),
	}
	respond(w, code.HTTPStatus(), body)
}

// decode reads a JSON request body into dst. An empty body is not an error;
// endpoints with no parameters accept it.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidArgumentf("invalid request body: %v", err)
	}
	return nil
}
