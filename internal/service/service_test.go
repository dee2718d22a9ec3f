package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/service/mocks"
)

type JokeServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	aggregator *mocks.MockAggregator
	repo       *mocks.MockRepository
	health     *mocks.MockHealthChecker
	publisher  *mocks.MockPublisher

	service *JokeService
}

func (s *JokeServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.aggregator = mocks.NewMockAggregator(s.ctrl)
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.health = mocks.NewMockHealthChecker(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.service = NewJokeService(s.aggregator, s.repo, s.health, WithPublisher(s.publisher))
}

func (s *JokeServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestJokeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JokeServiceTestSuite))
}

func fetched(n int) []models.JokeWithSource {
	out := make([]models.JokeWithSource, 0, n)
	for range n {
		out = append(out, models.JokeWithSource{Joke: models.NewSingleJoke("x"), Provider: "https://a"})
	}
	return out
}

func saved(n int) []models.SavedJoke {
	out := make([]models.SavedJoke, 0, n)
	for range n {
		out = append(out, models.SavedJoke{ID: uuid.New(), Type: models.JokeTypeSingle, Provider: "https://a"})
	}
	return out
}

func (s *JokeServiceTestSuite) TestRetrieve_SavesAndPublishes() {
	ctx := context.Background()
	jokes := fetched(3)
	rows := saved(3)

	s.aggregator.EXPECT().GetMultipleJokes(ctx, 3).Return(jokes)
	s.repo.EXPECT().UpsertBatch(ctx, jokes).Return(rows, nil)
	s.publisher.EXPECT().PublishSaved(ctx, rows).Return(nil)

	res, err := s.service.Retrieve(ctx, 3)

	s.NoError(err)
	s.Equal(3, res.SavedCount)
	s.Equal(rows, res.Jokes)
}

func (s *JokeServiceTestSuite) TestRetrieve_ClampsCount() {
	ctx := context.Background()

	s.aggregator.EXPECT().GetMultipleJokes(ctx, MaxRetrieveCount).Return(nil)
	s.repo.EXPECT().UpsertBatch(ctx, gomock.Nil()).Return(nil, nil)

	res, err := s.service.Retrieve(ctx, 1000)

	s.NoError(err)
	s.Equal(0, res.SavedCount)
	s.NotNil(res.Jokes)
}

func (s *JokeServiceTestSuite) TestRetrieve_PartialBatch() {
	ctx := context.Background()
	jokes := fetched(2)
	rows := saved(2)

	s.aggregator.EXPECT().GetMultipleJokes(ctx, 5).Return(jokes)
	s.repo.EXPECT().UpsertBatch(ctx, jokes).Return(rows, nil)
	s.publisher.EXPECT().PublishSaved(ctx, rows).Return(nil)

	res, err := s.service.Retrieve(ctx, 5)

	s.NoError(err)
	s.Equal(2, res.SavedCount)
}

func (s *JokeServiceTestSuite) TestRetrieve_StoreFailure() {
	ctx := context.Background()
	jokes := fetched(1)
	storeErr := errors.New("connection reset")

	s.aggregator.EXPECT().GetMultipleJokes(ctx, 1).Return(jokes)
	s.repo.EXPECT().UpsertBatch(ctx, jokes).Return(nil, storeErr)

	res, err := s.service.Retrieve(ctx, 1)

	s.ErrorIs(err, storeErr)
	s.Nil(res)
}

func (s *JokeServiceTestSuite) TestRetrieve_PublishFailureIsNotFatal() {
	ctx := context.Background()
	jokes := fetched(1)
	rows := saved(1)

	s.aggregator.EXPECT().GetMultipleJokes(ctx, 1).Return(jokes)
	s.repo.EXPECT().UpsertBatch(ctx, jokes).Return(rows, nil)
	s.publisher.EXPECT().PublishSaved(ctx, rows).Return(errors.New("nats down"))

	res, err := s.service.Retrieve(ctx, 1)

	s.NoError(err)
	s.Equal(1, res.SavedCount)
}

func (s *JokeServiceTestSuite) TestRetrieve_WithoutPublisher() {
	ctx := context.Background()
	svc := NewJokeService(s.aggregator, s.repo, s.health)
	jokes := fetched(1)

	s.aggregator.EXPECT().GetMultipleJokes(ctx, 1).Return(jokes)
	s.repo.EXPECT().UpsertBatch(ctx, jokes).Return(saved(1), nil)

	_, err := svc.Retrieve(ctx, 1)
	s.NoError(err)
}

func (s *JokeServiceTestSuite) TestRandom() {
	ctx := context.Background()
	stored := &models.StoredJoke{ID: uuid.New(), Type: models.JokeTypeSingle}

	s.repo.EXPECT().GetRandom(ctx).Return(stored, nil)

	got, err := s.service.Random(ctx)
	s.NoError(err)
	s.Equal(stored, got)
}

func (s *JokeServiceTestSuite) TestLive_Dispatch() {
	ctx := context.Background()
	joke := &models.JokeWithSource{Joke: models.NewSingleJoke("x"), Provider: "https://a"}

	s.aggregator.EXPECT().GetJokeFromProvider(ctx, "chuck").Return(joke, nil)
	got, err := s.service.Live(ctx, "chuck", "dev")
	s.NoError(err)
	s.Equal(joke, got)

	s.aggregator.EXPECT().GetJokeByCategory(ctx, "dev").Return(joke, nil)
	_, err = s.service.Live(ctx, "", "dev")
	s.NoError(err)

	s.aggregator.EXPECT().GetRandomJoke(ctx).Return(joke, nil)
	_, err = s.service.Live(ctx, "", "")
	s.NoError(err)
}

func (s *JokeServiceTestSuite) TestStats() {
	ctx := context.Background()

	s.repo.EXPECT().Stats(ctx).Return(&models.JokeStats{TotalJokes: 4}, nil)
	s.repo.EXPECT().CountByProvider(ctx).Return(nil, nil)

	stats, err := s.service.Stats(ctx)
	s.NoError(err)
	s.Equal(int64(4), stats.Totals.TotalJokes)
	s.NotNil(stats.ByProvider)
}

func (s *JokeServiceTestSuite) TestPing() {
	ctx := context.Background()
	s.health.EXPECT().Ping(ctx).Return(errors.New("down"))

	s.Error(s.service.Ping(ctx))
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{101, 100},
	}
	for _, tt := range tests {
		if got := ClampCount(tt.in); got != tt.want {
			t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
