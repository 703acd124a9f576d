package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/quizhub/pkg/models"
)

// MasteryRepository handles database operations for mastery states
type MasteryRepository struct{}

// NewMasteryRepository creates a new repository instance
func NewMasteryRepository() *MasteryRepository {
	return &MasteryRepository{}
}

// GetByUserAndQuestion returns the mastery state for a user and question,
// including the full attempt history, oldest attempt first. Returns
// (nil, nil) when the user has never answered the question: missing rows
// are created lazily on the first answer, not here.
func (r *MasteryRepository) GetByUserAndQuestion(ctx context.Context, userID, questionID int64) (*models.MasteryState, error) {
	var state models.MasteryState
	err := DB.GetContext(ctx, &state,
		"SELECT * FROM mastery_states WHERE user_id = $1 AND question_id = $2",
		userID, questionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery state: %v", err)
	}

	err = DB.SelectContext(ctx, &state.Attempts,
		"SELECT * FROM mastery_attempts WHERE mastery_id = $1 ORDER BY answered_at ASC, id ASC",
		state.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %v", err)
	}
	return &state, nil
}

// Save persists a mastery state produced by the update engine together with
// the one attempt the update appended. New states (ID == 0) are inserted;
// existing states are updated under an optimistic version check. Both paths
// return ErrConflict when a concurrent writer got there first.
func (r *MasteryRepository) Save(ctx context.Context, state *models.MasteryState) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if state.ID == 0 {
		if err := r.insert(ctx, tx, state); err != nil {
			return err
		}
	} else {
		if err := r.update(ctx, tx, state); err != nil {
			return err
		}
	}

	// Append only the attempts the engine added in this update
	for i := range state.Attempts {
		attempt := &state.Attempts[i]
		if attempt.ID != 0 {
			continue
		}
		attempt.MasteryID = state.ID
		if err := r.insertAttempt(ctx, tx, attempt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mastery update: %v", err)
	}
	return nil
}

func (r *MasteryRepository) insert(ctx context.Context, tx *sqlx.Tx, state *models.MasteryState) error {
	query := `
		INSERT INTO mastery_states (
			user_id, question_id, easiness_factor, interval, box, priority,
			repetition, session_count, last_score, last_answered_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
	`
	if tx.DriverName() == "postgres" {
		err := tx.QueryRowContext(ctx, query+" RETURNING id",
			state.UserID, state.QuestionID, state.EasinessFactor, state.Interval,
			state.Box, state.Priority, state.Repetition, state.SessionCount,
			state.LastScore, state.LastAnsweredAt,
		).Scan(&state.ID)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("failed to create mastery state: %v", err)
		}
		state.Version = 1
		return nil
	}

	result, err := tx.ExecContext(ctx, query,
		state.UserID, state.QuestionID, state.EasinessFactor, state.Interval,
		state.Box, state.Priority, state.Repetition, state.SessionCount,
		state.LastScore, state.LastAnsweredAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create mastery state: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	state.ID = id
	state.Version = 1
	return nil
}

func (r *MasteryRepository) update(ctx context.Context, tx *sqlx.Tx, state *models.MasteryState) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE mastery_states SET
			easiness_factor = $1,
			interval = $2,
			box = $3,
			priority = $4,
			repetition = $5,
			session_count = $6,
			last_score = $7,
			last_answered_at = $8,
			version = version + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND version = $10
	`,
		state.EasinessFactor, state.Interval, state.Box, state.Priority,
		state.Repetition, state.SessionCount, state.LastScore,
		state.LastAnsweredAt, state.ID, state.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update mastery state: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return ErrConflict
	}
	state.Version++
	return nil
}

func (r *MasteryRepository) insertAttempt(ctx context.Context, tx *sqlx.Tx, attempt *models.Attempt) error {
	query := `
		INSERT INTO mastery_attempts (mastery_id, answered_at, score)
		VALUES ($1, $2, $3)
	`
	if tx.DriverName() == "postgres" {
		err := tx.QueryRowContext(ctx, query+" RETURNING id",
			attempt.MasteryID, attempt.AnsweredAt, attempt.Score).Scan(&attempt.ID)
		if err != nil {
			return fmt.Errorf("failed to record attempt: %v", err)
		}
		return nil
	}

	result, err := tx.ExecContext(ctx, query, attempt.MasteryID, attempt.AnsweredAt, attempt.Score)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	attempt.ID = id
	return nil
}

// GetBoxDistribution returns how many of the user's tracked questions sit
// in each Leitner box.
func (r *MasteryRepository) GetBoxDistribution(ctx context.Context, userID int64) (map[int]int, error) {
	rows := []struct {
		Box   int `db:"box"`
		Count int `db:"count"`
	}{}
	err := DB.SelectContext(ctx, &rows,
		"SELECT box, COUNT(*) AS count FROM mastery_states WHERE user_id = $1 GROUP BY box",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get box distribution: %v", err)
	}
	distribution := make(map[int]int, len(rows))
	for _, row := range rows {
		distribution[row.Box] = row.Count
	}
	return distribution, nil
}

// GetUserStatistics returns aggregate progress statistics for a user
func (r *MasteryRepository) GetUserStatistics(ctx context.Context, userID int64) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int
	err := DB.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM mastery_states WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	stats["tracked_questions"] = total

	var mastered int
	err = DB.GetContext(ctx, &mastered,
		"SELECT COUNT(*) FROM mastery_states WHERE user_id = $1 AND box >= 5", userID)
	if err != nil {
		return nil, err
	}
	stats["mastered_questions"] = mastered

	var avgEF float64
	err = DB.GetContext(ctx, &avgEF,
		"SELECT COALESCE(AVG(easiness_factor), 2.5) FROM mastery_states WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	stats["avg_easiness_factor"] = avgEF

	return stats, nil
}
