package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
	"github.com/vytor/leitnerbox/internal/repository/sqlite"
	"github.com/vytor/leitnerbox/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.StatsRepository
	profileID int64
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.profileID = testutil.MustProfile(s.T(), s.db, "testuser")
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) TestRecentScores_OldestFirstAndLimited() {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, err := s.repo.InsertSessionScore(ctx, models.SessionScore{
			ProfileID: s.profileID,
			Size:      10,
			Correct:   i,
			Score:     float64(i * 10),
		})
		s.Require().NoError(err)
	}

	scores, err := s.repo.RecentScores(ctx, s.profileID, 3)
	s.Require().NoError(err)
	s.Require().Len(scores, 3)
	s.Assert().Equal(3, scores[0].Correct)
	s.Assert().Equal(4, scores[1].Correct)
	s.Assert().Equal(5, scores[2].Correct)
	s.Assert().Equal(50.0, scores[2].Score)
}

func (s *StatsRepositorySuite) TestFocusSeconds_Accumulate() {
	ctx := context.Background()

	total, err := s.repo.FocusSeconds(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Zero(total)

	total, err = s.repo.AddFocusSeconds(ctx, s.profileID, 1500)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1500), total)

	total, err = s.repo.AddFocusSeconds(ctx, s.profileID, 300)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1800), total)

	total, err = s.repo.FocusSeconds(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1800), total)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
