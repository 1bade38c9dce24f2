package casters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/repositories/casters/mocks"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	client       *redis.Client
	mock         redismock.ClientMock
	repo         Repository
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:       s.client,
		TimeProvider: s.timeProvider,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) createTestCaster() *spellcasting.Caster {
	return &spellcasting.Caster{
		ID:          "caster-1",
		OwnerID:     "user-1",
		Name:        "Elara",
		PlayerOwned: true,
		Exhaustion:  2,
		Items: []*spellcasting.Item{
			{Key: "wand-1", Name: "Wand of Sparks", Type: spellcasting.ItemTypeEquipment, Equipped: true, Tags: []string{"focus"}},
		},
		SpellSlots: map[int]*spellcasting.SlotInfo{
			1: {Max: 4, Remaining: 3},
			3: {Max: 2, Remaining: 1},
		},
	}
}

func (s *RedisRepoTestSuite) marshal(c *spellcasting.Caster) string {
	data, err := json.Marshal(c)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) stored() *spellcasting.Caster {
	c := s.createTestCaster()
	c.CreatedAt = s.now.Add(-time.Hour)
	c.UpdatedAt = c.CreatedAt
	return c
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	caster := s.createTestCaster()
	s.timeProvider.EXPECT().Now().Return(s.now)

	expected := caster.Clone()
	expected.CreatedAt = s.now
	expected.UpdatedAt = s.now

	s.mock.ExpectExists("caster:caster-1").SetVal(0)
	s.mock.ExpectSet("caster:caster-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:user-1:casters", "caster-1").SetVal(1)

	err := s.repo.Create(ctx, caster)
	s.NoError(err)
	s.Equal(s.now, caster.CreatedAt)
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	ctx := context.Background()

	s.mock.ExpectExists("caster:caster-1").SetVal(1)

	err := s.repo.Create(ctx, s.createTestCaster())
	s.Error(err)

	var dndErr *dnderr.Error
	s.ErrorAs(err, &dndErr)
	s.Equal(dnderr.CodeAlreadyExists, dndErr.Code)
}

func (s *RedisRepoTestSuite) TestCreate_InputValidation() {
	ctx := context.Background()

	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, &spellcasting.Caster{OwnerID: "user-1"})))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, &spellcasting.Caster{ID: "caster-1"})))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	stored := s.stored()

	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))

	caster, err := s.repo.Get(ctx, "caster-1")
	s.Require().NoError(err)
	s.Equal("Elara", caster.Name)
	s.Equal(2, caster.Exhaustion)
	s.Equal(1, caster.SpellSlots[3].Remaining)
	s.Require().Len(caster.Items, 1)
	s.True(caster.Items[0].IsEquippedFocus())
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("caster:missing").RedisNil()

	_, err := s.repo.Get(ctx, "missing")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_DependencyError() {
	ctx := context.Background()

	s.mock.ExpectGet("caster:caster-1").SetErr(errors.New("redis error"))

	_, err := s.repo.Get(ctx, "caster-1")
	s.Error(err)
	s.False(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestListByOwner() {
	ctx := context.Background()
	stored := s.stored()

	s.mock.ExpectSMembers("owner:user-1:casters").SetVal([]string{"caster-1"})
	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))

	casters, err := s.repo.ListByOwner(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(casters, 1)
	s.Equal("caster-1", casters[0].ID)
}

func (s *RedisRepoTestSuite) TestUpdate_PreservesCreatedAt() {
	ctx := context.Background()
	stored := s.stored()
	s.timeProvider.EXPECT().Now().Return(s.now)

	changed := s.createTestCaster()
	changed.Exhaustion = 3

	expected := changed.Clone()
	expected.CreatedAt = stored.CreatedAt
	expected.UpdatedAt = s.now

	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))
	s.mock.ExpectSet("caster:caster-1", s.marshal(expected), 0).SetVal("OK")

	err := s.repo.Update(ctx, changed)
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestApply() {
	ctx := context.Background()
	stored := s.stored()
	s.timeProvider.EXPECT().Now().Return(s.now)

	pool := spellcasting.SlotPool{Kind: spellcasting.PoolKindSpell, Level: 3}
	update := &spellcasting.CasterUpdate{ExhaustionDelta: 1, SpendSlot: &pool}

	expected := stored.Clone()
	expected.Exhaustion = 3
	expected.SpellSlots[3].Remaining = 0
	expected.UpdatedAt = s.now

	s.mock.ExpectWatch("caster:caster-1")
	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("caster:caster-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	updated, err := s.repo.Apply(ctx, "caster-1", update)
	s.Require().NoError(err)
	s.Equal(3, updated.Exhaustion)
	s.Equal(0, updated.SpellSlots[3].Remaining)
}

func (s *RedisRepoTestSuite) TestApply_InvalidUpdateWritesNothing() {
	ctx := context.Background()
	stored := s.stored()
	stored.Exhaustion = 6

	s.mock.ExpectWatch("caster:caster-1")
	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))

	_, err := s.repo.Apply(ctx, "caster-1", &spellcasting.CasterUpdate{ExhaustionDelta: 1})
	s.True(dnderr.IsFailedPrecondition(err))
}

func (s *RedisRepoTestSuite) TestApply_CeilingCheckedAgainstStoredValue() {
	ctx := context.Background()
	stored := s.stored()
	stored.Exhaustion = 5

	pool := spellcasting.SlotPool{Kind: spellcasting.PoolKindSpell, Level: 1}
	s.mock.ExpectWatch("caster:caster-1")
	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(stored))

	_, err := s.repo.Apply(ctx, "caster-1", &spellcasting.CasterUpdate{
		ExhaustionDelta:   1,
		SpendSlot:         &pool,
		ExhaustionCeiling: 5,
	})
	s.True(dnderr.IsResourceExhausted(err))
}

func (s *RedisRepoTestSuite) TestApply_NotFound() {
	ctx := context.Background()

	s.mock.ExpectWatch("caster:missing")
	s.mock.ExpectGet("caster:missing").RedisNil()

	_, err := s.repo.Apply(ctx, "missing", &spellcasting.CasterUpdate{ExhaustionDelta: 1})
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectGet("caster:caster-1").SetVal(s.marshal(s.stored()))
	s.mock.ExpectDel("caster:caster-1").SetVal(1)
	s.mock.ExpectSRem("owner:user-1:casters", "caster-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "caster-1"))
}
