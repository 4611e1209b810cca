package httpapi

import (
	"net/http"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
)

func parseEra(r *http.Request) (coc.Era, error) {
	era := coc.Era(r.PathValue("era"))
	switch era {
	case coc.Era1920s, coc.EraModern:
		return era, nil
	default:
		return "", errors.InvalidArgumentf("unknown era %q", era)
	}
}

func (h *Handler) listSkills(w http.ResponseWriter, r *http.Request) {
	era, err := parseEra(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"skills": h.rulebook.SkillsForEra(era)})
}

func (h *Handler) listOccupations(w http.ResponseWriter, r *http.Request) {
	era, err := parseEra(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"occupations": h.rulebook.OccupationsForEra(era)})
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	era, err := parseEra(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"equipment": h.rulebook.EquipmentForEra(era)})
}
