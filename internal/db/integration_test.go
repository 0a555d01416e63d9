package db_test

import (
	"context"
	"testing"
	"time"

	"medchat/internal/jobs"
	"medchat/internal/metrics"
	"medchat/internal/testutil"
)

func TestRecorderAndPrunerAgainstPostgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	log := testutil.Logger(t)

	recorder := metrics.NewRecorder(database, log)
	recorder.RecordReply("fever", "keyword")
	recorder.RecordReply("fever", "keyword")
	recorder.RecordReply("", "general")
	recorder.Wait()

	rows, err := database.GetAllReplyOutcomes(ctx)
	if err != nil {
		t.Fatalf("GetAllReplyOutcomes() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if _, err := database.Pool.Exec(ctx, `UPDATE reply_outcomes SET last_seen_at = NOW() - INTERVAL '40 days' WHERE outcome = 'general'`); err != nil {
		t.Fatalf("failed to age row: %v", err)
	}

	jobs.NewPruner(database, nil, time.Hour, 30*24*time.Hour, log).RunOnce(ctx)

	rows, err = database.GetAllReplyOutcomes(ctx)
	if err != nil {
		t.Fatalf("GetAllReplyOutcomes() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Trigger != "fever" || rows[0].Count != 2 {
		t.Errorf("rows after prune = %+v, want fever x2", rows)
	}
}
