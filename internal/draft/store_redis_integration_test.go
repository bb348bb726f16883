//go:build integration

package draft_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wastetrack/internal/draft"
	"wastetrack/pkg/platform/sentinel"
	"wastetrack/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *draft.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = draft.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	accountID := uuid.New()
	sub := newStoredSubmission(accountID)
	sub.WasteDescription = draft.CompleteSection(draft.WasteDescription{
		Classification: draft.ClassificationOECD,
		WasteCode:      "GB040",
		EWCCodes:       []string{"010101"},
		Description:    "Slags",
	})
	sub.RecomputeDerived()

	s.Require().NoError(s.store.Create(ctx, sub))

	got, err := s.store.Get(ctx, accountID, sub.ID)
	s.Require().NoError(err)
	s.Equal(sub.ID, got.ID)
	s.Require().NotNil(got.WasteDescription.Value)
	s.Equal("GB040", got.WasteDescription.Value.WasteCode)
}

func (s *RedisStoreSuite) TestCreateConflict() {
	ctx := context.Background()
	sub := newStoredSubmission(uuid.New())
	s.Require().NoError(s.store.Create(ctx, sub))
	s.ErrorIs(s.store.Create(ctx, sub), sentinel.ErrConflict)
}

func (s *RedisStoreSuite) TestGetScopedToAccount() {
	ctx := context.Background()
	sub := newStoredSubmission(uuid.New())
	s.Require().NoError(s.store.Create(ctx, sub))

	_, err := s.store.Get(ctx, uuid.New(), sub.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestTerminalStatesAreInvisible() {
	ctx := context.Background()
	accountID := uuid.New()
	sub := newStoredSubmission(accountID)
	s.Require().NoError(s.store.Create(ctx, sub))

	s.Require().NoError(sub.Transition(draft.StateCancelled, time.Now().UTC()))
	s.Require().NoError(s.store.Update(ctx, sub))

	_, err := s.store.Get(ctx, accountID, sub.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	listed, err := s.store.ListByAccount(ctx, accountID)
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *RedisStoreSuite) TestUpdateMissing() {
	sub := newStoredSubmission(uuid.New())
	s.ErrorIs(s.store.Update(context.Background(), sub), sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestListByAccount() {
	ctx := context.Background()
	accountID := uuid.New()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Create(ctx, newStoredSubmission(accountID)))
	}
	s.Require().NoError(s.store.Create(ctx, newStoredSubmission(uuid.New())))

	listed, err := s.store.ListByAccount(ctx, accountID)
	s.Require().NoError(err)
	s.Len(listed, 3)
}
