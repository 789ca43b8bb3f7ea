package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
	"github.com/vytor/leitnerbox/internal/repository/sqlite"
	"github.com/vytor/leitnerbox/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.CardRepository
	profileID int64
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
	s.profileID = testutil.MustProfile(s.T(), s.db, "testuser")
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(answer string, box int) models.Card {
	card := leitner.NewCard(answer, leitner.Questions{leitner.Text("what is " + answer + "?"), nil})
	card.SetBox(box)
	return models.CardFromRecord(s.profileID, card.Record())
}

func (s *CardRepositorySuite) seed(perBox int) {
	var cards []models.Card
	for box := 1; box <= leitner.NumBoxes; box++ {
		for i := 0; i < perBox; i++ {
			cards = append(cards, s.newCard(fmt.Sprintf("b%d-%d", box, i), box))
		}
	}
	n, err := s.repo.InsertBatch(context.Background(), cards)
	s.Require().NoError(err)
	s.Require().Equal(len(cards), n)
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	card := s.newCard("Paris", 2)

	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, s.profileID, card.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Paris", got.Answer)
	s.Assert().Equal(2, got.Box)
	s.Assert().Equal("0000000000", got.History)
	s.Assert().Nil(got.QuestionChoice)
	s.Assert().False(got.CheckedOut)

	missing, err := s.repo.Get(ctx, s.profileID, "nope")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *CardRepositorySuite) TestInsertBatch_SkipsExisting() {
	ctx := context.Background()
	card := s.newCard("Paris", 1)
	s.Require().NoError(s.repo.Insert(ctx, card))

	n, err := s.repo.InsertBatch(ctx, []models.Card{card, s.newCard("Rome", 1)})
	s.Require().NoError(err)
	s.Assert().Equal(1, n)

	count, err := s.repo.Count(ctx, models.CardFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *CardRepositorySuite) TestList_WithFilters() {
	ctx := context.Background()
	s.seed(3)

	all, err := s.repo.List(ctx, models.CardFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Assert().Len(all, 15)
	for i := 1; i < len(all); i++ {
		s.Assert().LessOrEqual(all[i-1].Box, all[i].Box)
	}

	box4, err := s.repo.List(ctx, models.CardFilter{ProfileID: s.profileID, Box: 4})
	s.Require().NoError(err)
	s.Assert().Len(box4, 3)
	for _, c := range box4 {
		s.Assert().Equal(4, c.Box)
	}

	page, err := s.repo.List(ctx, models.CardFilter{ProfileID: s.profileID, Limit: 4, Offset: 12})
	s.Require().NoError(err)
	s.Assert().Len(page, 3)
}

func (s *CardRepositorySuite) TestCheckOut_CapsPerBox() {
	ctx := context.Background()
	s.seed(4)

	out, err := s.repo.CheckOut(ctx, s.profileID, 3)
	s.Require().NoError(err)
	s.Assert().Len(out, 15)

	perBox := map[int]int{}
	for _, c := range out {
		perBox[c.Box]++
		s.Assert().True(c.CheckedOut)
	}
	for box := 1; box <= leitner.NumBoxes; box++ {
		s.Assert().Equal(3, perBox[box], "box %d", box)
	}

	yes := true
	held, err := s.repo.Count(ctx, models.CardFilter{ProfileID: s.profileID, CheckedOut: &yes})
	s.Require().NoError(err)
	s.Assert().Equal(15, held)

	// Only the remaining card of each box is available to a second checkout.
	again, err := s.repo.CheckOut(ctx, s.profileID, 3)
	s.Require().NoError(err)
	s.Assert().Len(again, 5)
}

func (s *CardRepositorySuite) TestCheckIn_UpdatesAndInserts() {
	ctx := context.Background()
	s.seed(1)

	out, err := s.repo.CheckOut(ctx, s.profileID, 50)
	s.Require().NoError(err)
	s.Require().Len(out, 5)

	record, err := out[0].Record()
	s.Require().NoError(err)
	card, err := leitner.RestoreCard(record)
	s.Require().NoError(err)
	card.RecordOutcome(true)
	card.RecordOutcome(true)
	card.SetBox(2)
	out[0] = models.CardFromRecord(s.profileID, card.Record())

	added := s.newCard("brand new", 1)
	s.Require().NoError(s.repo.CheckIn(ctx, s.profileID, append(out, added)))

	got, err := s.repo.Get(ctx, s.profileID, card.ID())
	s.Require().NoError(err)
	s.Assert().Equal(2, got.Box)
	s.Assert().Equal("0000000011", got.History)
	s.Assert().False(got.CheckedOut)

	inserted, err := s.repo.Get(ctx, s.profileID, added.ID)
	s.Require().NoError(err)
	s.Require().NotNil(inserted)

	yes := true
	held, err := s.repo.Count(ctx, models.CardFilter{ProfileID: s.profileID, CheckedOut: &yes})
	s.Require().NoError(err)
	s.Assert().Zero(held)
}

func (s *CardRepositorySuite) TestReleaseAll() {
	ctx := context.Background()
	s.seed(2)

	_, err := s.repo.CheckOut(ctx, s.profileID, 1)
	s.Require().NoError(err)

	n, err := s.repo.ReleaseAll(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(int64(5), n)

	out, err := s.repo.CheckOut(ctx, s.profileID, 10)
	s.Require().NoError(err)
	s.Assert().Len(out, 10)
}

func (s *CardRepositorySuite) TestCountByBox() {
	ctx := context.Background()
	s.seed(2)
	s.Require().NoError(s.repo.Insert(ctx, s.newCard("extra", 5)))

	_, err := s.repo.CheckOut(ctx, s.profileID, 1)
	s.Require().NoError(err)

	counts, err := s.repo.CountByBox(ctx, s.profileID)
	s.Require().NoError(err)
	s.Require().Len(counts, leitner.NumBoxes)
	for i, bc := range counts {
		s.Assert().Equal(i+1, bc.Box)
		s.Assert().Equal(1, bc.CheckedOut)
	}
	s.Assert().Equal(2, counts[0].Total)
	s.Assert().Equal(3, counts[4].Total)

	other := testutil.MustProfile(s.T(), s.db, "other")
	empty, err := s.repo.CountByBox(ctx, other)
	s.Require().NoError(err)
	s.Assert().Len(empty, leitner.NumBoxes)
	for _, bc := range empty {
		s.Assert().Zero(bc.Total)
	}
}

func (s *CardRepositorySuite) TestDelete() {
	ctx := context.Background()
	free := s.newCard("free", 1)
	held := s.newCard("held", 2)
	s.Require().NoError(s.repo.Insert(ctx, free))
	held.CheckedOut = true
	s.Require().NoError(s.repo.Insert(ctx, held))

	s.Require().NoError(s.repo.Delete(ctx, s.profileID, free.ID))
	s.Assert().ErrorIs(s.repo.Delete(ctx, s.profileID, free.ID), repository.ErrNotFound)
	s.Assert().ErrorIs(s.repo.Delete(ctx, s.profileID, held.ID), repository.ErrCardCheckedOut)

	other := testutil.MustProfile(s.T(), s.db, "other")
	s.Assert().ErrorIs(s.repo.Delete(ctx, other, held.ID), repository.ErrNotFound)
}

func (s *CardRepositorySuite) TestProfileDeleteCascades() {
	ctx := context.Background()
	s.seed(1)

	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, s.profileID)
	s.Require().NoError(err)

	count, err := s.repo.Count(ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
