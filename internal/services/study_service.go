package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/quiz"
	"github.com/vytor/leitnerbox/internal/random"
	"github.com/vytor/leitnerbox/internal/repository"
)

// StudyService owns the in-memory working set of every profile and runs
// quiz sessions against it.
type StudyService interface {
	LoadDeck(ctx context.Context, profileID int64) (*models.DeckSummary, error)
	SaveDeck(ctx context.Context, profileID int64) (*models.DeckSummary, error)
	AddCard(ctx context.Context, profileID int64, answer string, questions leitner.Questions) (*models.Card, error)
	StartSession(ctx context.Context, profileID int64, size int) (*models.Session, error)
	Answer(ctx context.Context, profileID int64, sessionID string, input string) (*models.AnswerResult, error)
	EndSession(ctx context.Context, profileID int64, sessionID string) (*models.SessionResult, error)
	// Discard forgets a profile's working set without saving it.
	Discard(ctx context.Context, profileID int64)
	// Shutdown rebalances and saves every working set.
	Shutdown(ctx context.Context) error
}

type StudyOptions struct {
	// PerBox caps how many cards of each box a load checks out.
	PerBox int
	// Seed fixes the sampler seed; zero draws a fresh seed per working set.
	Seed int64
	Now  func() time.Time
}

type workingSet struct {
	mu      sync.Mutex
	box     *leitner.Box
	sampler *leitner.Sampler
	session *studySession
}

type studySession struct {
	id        string
	size      int
	cards     []*leitner.Card
	next      int
	correct   int
	startedAt time.Time
}

type studyService struct {
	cardRepo    repository.CardRepository
	profileRepo repository.ProfileRepository
	statsRepo   repository.StatsRepository
	opts        StudyOptions

	mu   sync.Mutex
	sets map[int64]*workingSet
}

// NewStudyService creates a new StudyService
func NewStudyService(cardRepo repository.CardRepository, profileRepo repository.ProfileRepository, statsRepo repository.StatsRepository, opts StudyOptions) StudyService {
	if opts.PerBox <= 0 {
		opts.PerBox = 50
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &studyService{
		cardRepo:    cardRepo,
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
		opts:        opts,
		sets:        make(map[int64]*workingSet),
	}
}

// workingSetFor returns the profile's working set, creating it on first use.
func (s *studyService) workingSetFor(ctx context.Context, profileID int64) (*workingSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.sets[profileID]; ok {
		return ws, nil
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	src, err := random.Source(s.opts.Seed)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	box, _ := leitner.NewBox()
	ws := &workingSet{box: box, sampler: leitner.NewSampler(src)}
	s.sets[profileID] = ws
	return ws, nil
}

func (s *studyService) LoadDeck(ctx context.Context, profileID int64) (*models.DeckSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading deck: profile_id=%d", profileID)

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.session != nil {
		return nil, errors.NewConflictError("a study session is in progress")
	}
	if !ws.box.Empty() {
		log.Debug("working set not empty, saving before reload")
		if err := s.save(ctx, profileID, ws); err != nil {
			return nil, err
		}
	}
	if err := s.load(ctx, profileID, ws); err != nil {
		return nil, err
	}

	summary := deckSummary(profileID, ws.box)
	log.Info("deck loaded: profile_id=%d, cards=%d", profileID, summary.Total)
	return &summary, nil
}

func (s *studyService) SaveDeck(ctx context.Context, profileID int64) (*models.DeckSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("saving deck: profile_id=%d", profileID)

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.session != nil {
		return nil, errors.NewConflictError("a study session is in progress")
	}

	summary := deckSummary(profileID, ws.box)
	if err := s.save(ctx, profileID, ws); err != nil {
		return nil, err
	}
	log.Info("deck saved: profile_id=%d, cards=%d", profileID, summary.Total)
	return &summary, nil
}

func (s *studyService) AddCard(ctx context.Context, profileID int64, answer string, questions leitner.Questions) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding card: profile_id=%d", profileID)

	answer, questions, appErr := normalizeCard(answer, questions)
	if appErr != nil {
		return nil, appErr
	}

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.box.Empty() {
		if err := s.load(ctx, profileID, ws); err != nil {
			return nil, err
		}
	}

	card := ws.box.Add(answer, questions)
	stored := models.CardFromRecord(profileID, card.Record())
	stored.CheckedOut = true
	log.Debug("card added to working set: id=%s", card.ID())
	return &stored, nil
}

func (s *studyService) StartSession(ctx context.Context, profileID int64, size int) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: profile_id=%d, size=%d", profileID, size)

	if _, err := leitner.AllocationFor(size); err != nil {
		return nil, errors.FromDomain(err)
	}

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.session != nil {
		return nil, errors.NewConflictError("a study session is already in progress")
	}
	if ws.box.Empty() {
		if err := s.load(ctx, profileID, ws); err != nil {
			return nil, err
		}
	}

	cards, err := ws.sampler.Select(ws.box, size)
	if err != nil {
		log.Error("failed to select session cards: %v", err)
		return nil, errors.FromDomain(err)
	}
	if len(cards) == 0 {
		return nil, errors.NewBadRequestError("the deck has no cards to study")
	}

	prompts := make([]models.Prompt, 0, len(cards))
	for _, c := range cards {
		p, err := quiz.Format(c, ws.sampler.Rand())
		if err != nil {
			log.Error("failed to format card %s: %v", c.ID(), err)
			return nil, errors.FromDomain(err)
		}
		prompts = append(prompts, models.Prompt{
			CardID:   c.ID(),
			Kind:     p.Kind.String(),
			Question: p.Question,
			Options:  p.Options,
		})
	}

	ws.session = &studySession{
		id:        uuid.NewString(),
		size:      size,
		cards:     cards,
		startedAt: s.opts.Now(),
	}

	log.Info("session started: id=%s, profile_id=%d, cards=%d", ws.session.id, profileID, len(cards))
	return &models.Session{
		ID:        ws.session.id,
		ProfileID: profileID,
		Size:      size,
		Prompts:   prompts,
		StartedAt: ws.session.startedAt,
	}, nil
}

func (s *studyService) Answer(ctx context.Context, profileID int64, sessionID string, input string) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering: profile_id=%d, session_id=%s", profileID, sessionID)

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	sess := ws.session
	if sess == nil || sess.id != sessionID {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	if sess.next >= len(sess.cards) {
		return nil, errors.NewConflictError("every card of this session has been answered")
	}

	card := sess.cards[sess.next]
	correct := quiz.Check(input, card.Answer())
	card.RecordOutcome(correct)
	sess.next++
	if correct {
		sess.correct++
	}

	return &models.AnswerResult{
		CardID:    card.ID(),
		Correct:   correct,
		Expected:  card.Answer(),
		Answered:  sess.next,
		Remaining: len(sess.cards) - sess.next,
	}, nil
}

func (s *studyService) EndSession(ctx context.Context, profileID int64, sessionID string) (*models.SessionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending session: profile_id=%d, session_id=%s", profileID, sessionID)

	ws, err := s.workingSetFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	sess := ws.session
	if sess == nil || sess.id != sessionID {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	ws.session = nil

	moves, err := leitner.Rebalance(ws.box)
	if err != nil {
		log.Error("rebalance failed after %d moves: %v", len(moves), err)
		return nil, errors.FromDomain(err)
	}

	result := &models.SessionResult{
		SessionID: sess.id,
		Size:      sess.size,
		Drawn:     len(sess.cards),
		Answered:  sess.next,
		Correct:   sess.correct,
		Score:     float64(sess.correct*100) / float64(sess.size),
		Moves:     boxMoves(moves),
		Deck:      deckSummary(profileID, ws.box),
	}

	if err := s.save(ctx, profileID, ws); err != nil {
		return nil, err
	}

	if _, err := s.statsRepo.InsertSessionScore(ctx, models.SessionScore{
		ProfileID: profileID,
		Size:      sess.size,
		Correct:   sess.correct,
		Score:     result.Score,
	}); err != nil {
		log.Error("failed to record session score: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.profileRepo.TouchSession(ctx, profileID, s.opts.Now()); err != nil {
		log.Error("failed to update last session time: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("session ended: id=%s, correct=%d/%d, moves=%d", sess.id, sess.correct, sess.size, len(moves))
	return result, nil
}

func (s *studyService) Discard(ctx context.Context, profileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[profileID]; ok {
		logger.FromContext(ctx).Debug("discarding working set: profile_id=%d", profileID)
		delete(s.sets, profileID)
	}
}

func (s *studyService) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	sets := make(map[int64]*workingSet, len(s.sets))
	for id, ws := range s.sets {
		sets[id] = ws
	}
	s.mu.Unlock()

	log.Info("saving %d working sets", len(sets))
	var failed []string
	for profileID, ws := range sets {
		ws.mu.Lock()
		ws.session = nil
		if !ws.box.Empty() {
			if moves, err := leitner.Rebalance(ws.box); err != nil {
				log.Error("rebalance failed for profile %d after %d moves: %v", profileID, len(moves), err)
			}
			if err := s.save(ctx, profileID, ws); err != nil {
				failed = append(failed, fmt.Sprint(profileID))
			}
		}
		ws.mu.Unlock()
	}

	if len(failed) > 0 {
		return fmt.Errorf("save working sets for profiles %s", strings.Join(failed, ", "))
	}
	return nil
}

// load checks cards out of storage into the working set.
func (s *studyService) load(ctx context.Context, profileID int64, ws *workingSet) error {
	log := logger.FromContext(ctx)

	stored, err := s.cardRepo.CheckOut(ctx, profileID, s.opts.PerBox)
	if err != nil {
		log.Error("failed to check out cards: %v", err)
		return errors.NewInternalError(err)
	}

	for _, c := range stored {
		card, err := restore(c)
		if err == nil {
			err = ws.box.Insert(card)
		}
		if err != nil {
			log.Error("failed to restore card %s: %v", c.ID, err)
			// Hand everything back untouched so nothing stays checked out.
			ws.box.Drain()
			if releaseErr := s.cardRepo.CheckIn(ctx, profileID, stored); releaseErr != nil {
				log.Error("failed to release cards: %v", releaseErr)
			}
			return errors.NewInternalError(err)
		}
	}
	log.Debug("checked out %d cards", len(stored))
	return nil
}

// save checks every card of the working set back in and empties it.
func (s *studyService) save(ctx context.Context, profileID int64, ws *workingSet) error {
	log := logger.FromContext(ctx)

	cards := ws.box.All()
	stored := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		stored = append(stored, models.CardFromRecord(profileID, c.Record()))
	}
	if err := s.cardRepo.CheckIn(ctx, profileID, stored); err != nil {
		log.Error("failed to check in cards: %v", err)
		return errors.NewInternalError(err)
	}
	ws.box.Drain()
	return nil
}

func restore(c models.Card) (*leitner.Card, error) {
	record, err := c.Record()
	if err != nil {
		return nil, err
	}
	return leitner.RestoreCard(record)
}

// normalizeCard trims the card text and drops blank questions.
func normalizeCard(answer string, questions leitner.Questions) (string, leitner.Questions, *errors.AppError) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", questions, errors.NewValidationError("answer", "cannot be empty")
	}

	var out leitner.Questions
	for i, q := range questions {
		if q == nil || strings.TrimSpace(*q) == "" {
			continue
		}
		out[i] = leitner.Text(strings.TrimSpace(*q))
	}
	if out[leitner.KindInput] == nil && out[leitner.KindChoice] == nil {
		return "", out, errors.NewValidationError("questions", "at least one question is required")
	}
	if out[leitner.KindChoice] != nil {
		if err := quiz.ValidateChoice(*out[leitner.KindChoice]); err != nil {
			return "", out, errors.NewValidationError("question_choice", "needs a prompt and three distractors separated by commas")
		}
	}
	return answer, out, nil
}

func deckSummary(profileID int64, box *leitner.Box) models.DeckSummary {
	counts := box.Counts()
	return models.DeckSummary{
		ProfileID: profileID,
		Boxes:     counts[:],
		Total:     box.Total(),
	}
}

func boxMoves(moves []leitner.Move) []models.BoxMove {
	out := make([]models.BoxMove, 0, len(moves))
	for _, m := range moves {
		out = append(out, models.BoxMove{CardID: m.Card.ID(), From: m.From, To: m.To})
	}
	return out
}
