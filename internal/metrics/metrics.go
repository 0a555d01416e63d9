package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"medchat/internal/models"
)

var (
	replyDesc = prometheus.NewDesc(
		"medchat_replies_total",
		"Total responder replies by trigger and outcome",
		[]string{"keyword", "outcome"},
		nil,
	)
)

// OutcomeStore persists reply counts. *db.DB and *MemoryStore implement it.
type OutcomeStore interface {
	IncrementReplyOutcome(ctx context.Context, trigger, outcome string) error
	GetAllReplyOutcomes(ctx context.Context) ([]models.ReplyOutcome, error)
}

// ReplyCollector is a custom Prometheus collector that reads reply counts from
// the store on each scrape.
type ReplyCollector struct {
	store  OutcomeStore
	logger *zap.Logger
}

// Describe sends the metric descriptor to the channel.
func (c *ReplyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- replyDesc
}

// Collect queries the store for all reply outcomes and emits them as counters.
func (c *ReplyCollector) Collect(ch chan<- prometheus.Metric) {
	outcomes, err := c.store.GetAllReplyOutcomes(context.Background())
	if err != nil {
		c.logger.Error("failed to collect reply metrics", zap.Error(err))
		return
	}
	for _, o := range outcomes {
		ch <- prometheus.MustNewConstMetric(
			replyDesc,
			prometheus.CounterValue,
			float64(o.Count),
			o.Trigger,
			o.Outcome,
		)
	}
}

// Recorder provides async reply outcome recording.
type Recorder struct {
	store  OutcomeStore
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store OutcomeStore, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Collector returns a collector over the recorder's store.
func (r *Recorder) Collector() *ReplyCollector {
	return &ReplyCollector{store: r.store, logger: r.logger}
}

// Register adds the reply collector to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	return reg.Register(r.Collector())
}

// RecordReply asynchronously records one reply. A nil recorder is a no-op.
func (r *Recorder) RecordReply(trigger, outcome string) {
	if r == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.store.IncrementReplyOutcome(context.Background(), trigger, outcome); err != nil {
			r.logger.Error("failed to record reply outcome",
				zap.String("keyword", trigger),
				zap.String("outcome", outcome),
				zap.Error(err))
		}
	}()
}

// Wait blocks until pending writes have finished.
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}
