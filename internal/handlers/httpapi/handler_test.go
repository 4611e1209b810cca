package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/handlers/httpapi"
	"github.com/mythostools/investigator-api/internal/orchestrators/creation"
	"github.com/mythostools/investigator-api/internal/pkg/dice"
	characterrepo "github.com/mythostools/investigator-api/internal/repositories/character"
	draftrepo "github.com/mythostools/investigator-api/internal/repositories/draft"
	sessionrepo "github.com/mythostools/investigator-api/internal/repositories/session"
	"github.com/mythostools/investigator-api/internal/rulebook"
	"github.com/mythostools/investigator-api/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	server  *httptest.Server
	cleanup func()
}

func (s *HandlerTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	rb, err := rulebook.Default()
	s.Require().NoError(err)

	sessionRepo := sessionrepo.NewRedisRepository(client)
	_, err = sessionRepo.Create(s.T().Context(), sessionrepo.CreateInput{Session: &coc.Session{
		ID:             "sess_1",
		Code:           "MU-1928",
		AllowedMethods: []coc.Method{coc.MethodDice, coc.MethodDirect},
		Era:            coc.Era1920s,
		MaxAttempts:    3,
		IsActive:       true,
	}})
	s.Require().NoError(err)

	orc, err := creation.New(&creation.Config{
		SessionRepo:   sessionRepo,
		DraftRepo:     draftrepo.NewRedisRepository(client),
		CharacterRepo: characterrepo.NewRedisRepository(client),
		Rulebook:      rb,
		Roller:        dice.NewRoller(),
	})
	s.Require().NoError(err)

	handler, err := httpapi.NewHandler(&httpapi.HandlerConfig{
		CreationService: orc,
		Rulebook:        rb,
	})
	s.Require().NoError(err)

	s.server = httptest.NewServer(handler.Routes())
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.cleanup()
}

func (s *HandlerTestSuite) do(method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]json.RawMessage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (s *HandlerTestSuite) enter() string {
	resp, body := s.do(http.MethodPost, "/v1/sessions/enter", map[string]string{"code": "MU-1928"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var draft coc.Draft
	s.Require().NoError(json.Unmarshal(body["draft"], &draft))
	s.Require().NotEmpty(draft.ID)
	return draft.ID
}

func (s *HandlerTestSuite) TestHealth() {
	resp, _ := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *HandlerTestSuite) TestEnterUnknownCodeIs404() {
	resp, body := s.do(http.MethodPost, "/v1/sessions/enter", map[string]string{"code": "NOPE"})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var code string
	s.Require().NoError(json.Unmarshal(body["code"], &code))
	s.Equal("NOT_FOUND", code)
}

func (s *HandlerTestSuite) TestDraftLifecycle() {
	draftID := s.enter()

	resp, _ := s.do(http.MethodPut, "/v1/drafts/"+draftID+"/method", map[string]string{"method": "direct"})
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, body := s.do(http.MethodPut, "/v1/drafts/"+draftID+"/characteristics", map[string]any{
		"characteristics": coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67},
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var draft coc.Draft
	s.Require().NoError(json.Unmarshal(body["draft"], &draft))
	s.Equal(67, draft.Characteristics.EDU)

	// blocked transitions surface as 412 with the blocker message
	resp, body = s.do(http.MethodPost, "/v1/drafts/"+draftID+"/next", nil)
	s.Equal(http.StatusPreconditionFailed, resp.StatusCode)

	var message string
	s.Require().NoError(json.Unmarshal(body["message"], &message))
	s.NotEmpty(message)
}

func (s *HandlerTestSuite) TestPointBuyNotAllowedIs400() {
	draftID := s.enter()

	resp, _ := s.do(http.MethodPut, "/v1/drafts/"+draftID+"/method", map[string]string{"method": "point_buy"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestMalformedBodyIs400() {
	draftID := s.enter()

	req, err := http.NewRequest(http.MethodPut, s.server.URL+"/v1/drafts/"+draftID+"/age", bytes.NewBufferString("{bad json"))
	s.Require().NoError(err)
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestBadSlotIndexIs400() {
	draftID := s.enter()

	resp, _ := s.do(http.MethodPut, "/v1/drafts/"+draftID+"/slots/abc", map[string]string{"skill_id": "history"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestCatalogs() {
	resp, body := s.do(http.MethodGet, "/v1/catalog/1920s/skills", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var skills []coc.Skill
	s.Require().NoError(json.Unmarshal(body["skills"], &skills))
	s.NotEmpty(skills)
	for _, skill := range skills {
		s.NotEqual("computer_use", skill.ID)
	}

	resp, body = s.do(http.MethodGet, "/v1/catalog/1920s/occupations", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var occupations []coc.Occupation
	s.Require().NoError(json.Unmarshal(body["occupations"], &occupations))
	s.NotEmpty(occupations)

	resp, _ = s.do(http.MethodGet, "/v1/catalog/victorian/skills", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestAbandonExhaustionIs429() {
	draftID := s.enter()

	for i := 0; i < 3; i++ {
		resp, _ := s.do(http.MethodPost, "/v1/drafts/"+draftID+"/abandon", nil)
		s.Equal(http.StatusOK, resp.StatusCode)
	}

	resp, _ := s.do(http.MethodPost, "/v1/drafts/"+draftID+"/abandon", nil)
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
