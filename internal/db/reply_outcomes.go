package db

import (
	"context"
	"fmt"
	"time"

	"medchat/internal/models"
)

// IncrementReplyOutcome upserts a reply count by trigger and outcome.
func (d *DB) IncrementReplyOutcome(ctx context.Context, trigger, outcome string) error {
	if outcome == "" {
		return ErrInvalidOutcome
	}
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO reply_outcomes (keyword, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (keyword, outcome) DO UPDATE
		SET count = reply_outcomes.count + 1, last_seen_at = NOW()
	`, trigger, outcome)
	if err != nil {
		return fmt.Errorf("failed to increment reply outcome: %w", err)
	}
	return nil
}

// GetAllReplyOutcomes returns all reply outcome rows for metrics export.
func (d *DB) GetAllReplyOutcomes(ctx context.Context) ([]models.ReplyOutcome, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT keyword, outcome, count, last_seen_at
		FROM reply_outcomes
		ORDER BY outcome, keyword
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.ReplyOutcome
	for rows.Next() {
		var o models.ReplyOutcome
		if err := rows.Scan(&o.Trigger, &o.Outcome, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// PruneReplyOutcomes deletes rows last seen before cutoff and returns how many
// were removed.
func (d *DB) PruneReplyOutcomes(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM reply_outcomes WHERE last_seen_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune reply outcomes: %w", err)
	}
	return tag.RowsAffected(), nil
}
