package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
)

var cardColumns = []string{
	"id", "profile_id", "answer", "question_input", "question_choice",
	"box", "history", "checked_out", "created_at", "updated_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.ProfileID, &c.Answer, &c.QuestionInput, &c.QuestionChoice,
		&c.Box, &c.History, &c.CheckedOut, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, profile_id=%d", c.ID, c.ProfileID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, profile_id, answer, question_input, question_choice, box, history, checked_out)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.ProfileID, c.Answer, c.QuestionInput, c.QuestionChoice, c.Box, c.History, c.CheckedOut)
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

func (r *cardRepository) InsertBatch(ctx context.Context, cards []models.Card) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("batch inserting %d cards", len(cards))

	if len(cards) == 0 {
		return 0, nil
	}

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cards (id, profile_id, answer, question_input, question_choice, box, history)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			res, err := stmt.ExecContext(ctx, c.ID, c.ProfileID, c.Answer, c.QuestionInput, c.QuestionChoice, c.Box, c.History)
			if err != nil {
				log.Error("failed to insert card id=%s: %v", c.ID, err)
				return err
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("batch insert completed, %d new cards inserted", inserted)
	return inserted, nil
}

func (r *cardRepository) Get(ctx context.Context, profileID int64, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(cardColumns...).From("cards").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func applyCardFilter(q squirrel.SelectBuilder, filter models.CardFilter) squirrel.SelectBuilder {
	if filter.ProfileID != 0 {
		q = q.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Box != 0 {
		q = q.Where(squirrel.Eq{"box": filter.Box})
	}
	if filter.CheckedOut != nil {
		q = q.Where(squirrel.Eq{"checked_out": *filter.CheckedOut})
	}
	return q
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with filter: profile_id=%d, box=%d", filter.ProfileID, filter.Box)

	q := applyCardFilter(sqlBuilder.Select(cardColumns...).From("cards"), filter).
		OrderBy("box ASC", "created_at ASC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	q = q.Limit(uint64(limit)).Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards with filter: profile_id=%d, box=%d", filter.ProfileID, filter.Box)

	query, args, err := applyCardFilter(sqlBuilder.Select("COUNT(*)").From("cards"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) CountByBox(ctx context.Context, profileID int64) ([]models.BoxCount, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards by box: profile_id=%d", profileID)

	query, args, err := sqlBuilder.
		Select("box", "COUNT(*)", "COALESCE(SUM(checked_out), 0)").
		From("cards").
		Where(squirrel.Eq{"profile_id": profileID}).
		GroupBy("box").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to count cards by box: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make([]models.BoxCount, leitner.NumBoxes)
	for i := range counts {
		counts[i].Box = i + 1
	}
	for rows.Next() {
		var bc models.BoxCount
		if err := rows.Scan(&bc.Box, &bc.Total, &bc.CheckedOut); err != nil {
			log.Error("failed to scan box count: %v", err)
			return nil, err
		}
		if bc.Box >= 1 && bc.Box <= leitner.NumBoxes {
			counts[bc.Box-1] = bc
		}
	}
	return counts, rows.Err()
}

func (r *cardRepository) CheckOut(ctx context.Context, profileID int64, perBox int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("checking out cards: profile_id=%d, per_box=%d", profileID, perBox)

	if perBox <= 0 {
		return nil, nil
	}

	var out []models.Card
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for box := 1; box <= leitner.NumBoxes; box++ {
			query, args, err := sqlBuilder.Select(cardColumns...).From("cards").
				Where(squirrel.Eq{"profile_id": profileID, "box": box, "checked_out": false}).
				OrderBy("RANDOM()").
				Limit(uint64(perBox)).
				ToSql()
			if err != nil {
				log.Error("failed to build query: %v", err)
				return err
			}

			rows, err := tx.QueryContext(ctx, query, args...)
			if err != nil {
				log.Error("failed to select box %d: %v", box, err)
				return err
			}
			var ids []string
			for rows.Next() {
				c, err := scanCard(rows)
				if err != nil {
					rows.Close()
					log.Error("failed to scan card row: %v", err)
					return err
				}
				c.CheckedOut = true
				ids = append(ids, c.ID)
				out = append(out, c)
			}
			if err := rows.Close(); err != nil {
				return err
			}
			if len(ids) == 0 {
				continue
			}

			update, args, err := sqlBuilder.Update("cards").
				Set("checked_out", true).
				Where(squirrel.Eq{"id": ids}).
				ToSql()
			if err != nil {
				log.Error("failed to build update: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, update, args...); err != nil {
				log.Error("failed to mark box %d checked out: %v", box, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("checked out %d cards", len(out))
	return out, nil
}

func (r *cardRepository) CheckIn(ctx context.Context, profileID int64, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("checking in %d cards: profile_id=%d", len(cards), profileID)

	if len(cards) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cards (id, profile_id, answer, question_input, question_choice, box, history, checked_out)
VALUES (?, ?, ?, ?, ?, ?, ?, 0)
ON CONFLICT(id) DO UPDATE SET
    box = excluded.box,
    history = excluded.history,
    checked_out = 0,
    updated_at = CURRENT_TIMESTAMP
WHERE cards.profile_id = excluded.profile_id
`)
		if err != nil {
			log.Error("failed to prepare check in: %v", err)
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			if _, err := stmt.ExecContext(ctx, c.ID, profileID, c.Answer, c.QuestionInput, c.QuestionChoice, c.Box, c.History); err != nil {
				log.Error("failed to check in card id=%s: %v", c.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *cardRepository) ReleaseAll(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("releasing all checked out cards")

	res, err := r.db.ExecContext(ctx, `UPDATE cards SET checked_out = 0 WHERE checked_out = 1`)
	if err != nil {
		log.Error("failed to release cards: %v", err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Info("released %d stale card checkouts", n)
	}
	return n, nil
}

func (r *cardRepository) Delete(ctx context.Context, profileID int64, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s, profile_id=%d", id, profileID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var checkedOut bool
		err := tx.QueryRowContext(ctx, `SELECT checked_out FROM cards WHERE id = ? AND profile_id = ?`, id, profileID).Scan(&checkedOut)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			log.Error("failed to look up card: %v", err)
			return err
		}
		if checkedOut {
			return repository.ErrCardCheckedOut
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
			log.Error("failed to delete card: %v", err)
			return err
		}
		return nil
	})
}
