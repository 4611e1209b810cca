package draft_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mythostools/investigator-api/internal/entities/coc"
	"github.com/mythostools/investigator-api/internal/errors"
	redisclient "github.com/mythostools/investigator-api/internal/redis"
	"github.com/mythostools/investigator-api/internal/repositories/draft"
	"github.com/mythostools/investigator-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    draft.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.repo = draft.NewRedisRepository(s.client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testDraft() *coc.Draft {
	now := time.Now().Unix()
	return &coc.Draft{
		ID:          "draft_123",
		SessionID:   "sess_456",
		Era:         coc.Era1920s,
		CurrentStep: coc.StepCharacteristics,
		Method:      coc.MethodDice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: s.testDraft()})
	s.NoError(err)

	output, err := s.repo.Get(s.ctx, draft.GetInput{ID: "draft_123"})
	s.NoError(err)
	s.Equal("sess_456", output.Draft.SessionID)
	s.Equal(coc.StepCharacteristics, output.Draft.CurrentStep)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	s.Run("nil draft", func() {
		_, err := s.repo.Create(s.ctx, draft.CreateInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing ID", func() {
		d := s.testDraft()
		d.ID = ""
		_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: d})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing session ID", func() {
		d := s.testDraft()
		d.SessionID = ""
		_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: d})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestCreateReplacesExistingDraft() {
	_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: s.testDraft()})
	s.NoError(err)

	replacement := s.testDraft()
	replacement.ID = "draft_789"
	_, err = s.repo.Create(s.ctx, draft.CreateInput{Draft: replacement})
	s.NoError(err)

	// old draft is gone, session maps to the new one
	_, err = s.repo.Get(s.ctx, draft.GetInput{ID: "draft_123"})
	s.True(errors.IsNotFound(err))

	output, err := s.repo.GetBySessionID(s.ctx, draft.GetBySessionIDInput{SessionID: "sess_456"})
	s.NoError(err)
	s.Equal("draft_789", output.Draft.ID)
}

func (s *RedisRepositoryTestSuite) TestGetBySessionID() {
	_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: s.testDraft()})
	s.NoError(err)

	output, err := s.repo.GetBySessionID(s.ctx, draft.GetBySessionIDInput{SessionID: "sess_456"})
	s.NoError(err)
	s.Equal("draft_123", output.Draft.ID)

	_, err = s.repo.GetBySessionID(s.ctx, draft.GetBySessionIDInput{SessionID: "sess_999"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateRoundTripsFullState() {
	d := s.testDraft()
	_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: d})
	s.NoError(err)

	d.Characteristics = &coc.Characteristics{STR: 60, CON: 65, SIZ: 45, DEX: 50, APP: 30, INT: 40, POW: 60, EDU: 67}
	d.Luck = 55
	d.CharacteristicsLocked = true
	d.Age = 42
	d.AgeDeductions = map[coc.Stat]int{coc.StatSTR: 3, coc.StatDEX: 2}
	d.SlotSelections = map[int]coc.SkillRef{
		0: coc.NewSkillRef("first_aid"),
		3: coc.NewSpecializedRef("science", "biology"),
	}
	d.Allocations = map[string]coc.PointPool{
		"first_aid":       {Occupation: 30},
		"science:biology": {Occupation: 20, Personal: 10},
	}
	_, err = s.repo.Update(s.ctx, draft.UpdateInput{Draft: d})
	s.NoError(err)

	output, err := s.repo.Get(s.ctx, draft.GetInput{ID: "draft_123"})
	s.NoError(err)
	s.Equal(d.Characteristics, output.Draft.Characteristics)
	s.Equal(55, output.Draft.Luck)
	s.True(output.Draft.CharacteristicsLocked)
	s.Equal(map[coc.Stat]int{coc.StatSTR: 3, coc.StatDEX: 2}, output.Draft.AgeDeductions)
	s.Equal(coc.NewSpecializedRef("science", "biology"), output.Draft.SlotSelections[3])
	s.Equal(coc.PointPool{Occupation: 20, Personal: 10}, output.Draft.Allocations["science:biology"])
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, draft.UpdateInput{Draft: s.testDraft()})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, draft.CreateInput{Draft: s.testDraft()})
	s.NoError(err)

	_, err = s.repo.Delete(s.ctx, draft.DeleteInput{ID: "draft_123"})
	s.NoError(err)

	_, err = s.repo.Get(s.ctx, draft.GetInput{ID: "draft_123"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.GetBySessionID(s.ctx, draft.GetBySessionIDInput{SessionID: "sess_456"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
