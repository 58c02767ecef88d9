package consumers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/reviewsense/internal/clients/kafka_client"
	"github.com/spacesedan/reviewsense/internal/models"
	"github.com/spacesedan/reviewsense/internal/review"
	"github.com/spacesedan/reviewsense/internal/utils"
)

type Analyzer interface {
	Analyze(ctx context.Context, text string) (review.Result, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type ResultStore interface {
	SaveResults(ctx context.Context, results []models.AnalysisResult) error
}

type MessageSource interface {
	Next() (*kafka.Message, error)
}

type Committer interface {
	Commit(msg *kafka.Message) error
}

// ReviewConsumer analyzes review requests and flushes results in batches to
// the result topic and the store. Offsets are committed only after a flush.
type ReviewConsumer struct {
	Analyzer  Analyzer
	Publisher Publisher

	// Store is optional.
	Store ResultStore

	buffer  *utils.BatchBuffer[models.AnalysisResult]
	tracker *utils.MessageTracker
	now     func() time.Time
}

func NewReviewConsumer(analyzer Analyzer, publisher Publisher, store ResultStore) *ReviewConsumer {
	return &ReviewConsumer{
		Analyzer:  analyzer,
		Publisher: publisher,
		Store:     store,
		buffer:    utils.NewBatchBuffer[models.AnalysisResult](),
		tracker:   utils.NewMessageTracker(),
		now:       time.Now,
	}
}

// Start is a kafka_client.ConsumerFunc. Any health flags passed in pause
// consumption while one of them reports false.
func (rc *ReviewConsumer) Start(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)
	rc.Run(ctx, iterator, committer, health...)
}

func (rc *ReviewConsumer) Run(ctx context.Context, source MessageSource, committer Committer, health ...*atomic.Bool) {
	slog.Info("[ReviewConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[ReviewConsumer] Stopping consumer...")
			rc.Flush(context.WithoutCancel(ctx), committer)
			return
		case <-ticker.C:
			rc.Flush(ctx, committer)
		default:
			if !healthy(health) {
				time.Sleep(time.Second)
				continue
			}

			msg, err := source.Next()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				utils.HandleConsumerError(err)
				continue
			}

			if rc.Handle(ctx, msg, committer) >= utils.BATCH_SIZE {
				rc.Flush(ctx, committer)
			}
		}
	}
}

// Handle analyzes one message and buffers its result. Messages that can never
// succeed are committed straight away. It returns the buffer size.
func (rc *ReviewConsumer) Handle(ctx context.Context, msg *kafka.Message, committer Committer) int {
	var req models.AnalysisRequest
	if err := utils.DeserializeFromJSON(msg.Value, &req); err != nil {
		rc.commit(committer, msg)
		return rc.buffer.Size()
	}
	if req.ReviewID == "" {
		req.ReviewID = string(msg.Key)
	}

	result, err := rc.Analyzer.Analyze(ctx, req.ReviewText)
	if err != nil {
		slog.Warn("[ReviewConsumer] Skipping review",
			slog.String("review_id", req.ReviewID),
			slog.String("error", err.Error()))
		rc.commit(committer, msg)
		return rc.buffer.Size()
	}

	rc.tracker.Track(req.ReviewID, msg)
	return rc.buffer.Add(models.AnalysisResult{
		ReviewID:   req.ReviewID,
		ReviewText: req.ReviewText,
		Sentiment:  result.Sentiment,
		KeyPoints:  result.KeyPoints,
		Language:   result.Language.String(),
		AnalyzedAt: rc.now().UTC(),
	})
}

// Flush publishes and stores the buffered results, then commits their
// messages. Results that fail to publish are put back for the next flush.
func (rc *ReviewConsumer) Flush(ctx context.Context, committer Committer) {
	batch := rc.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}
	slog.Info("[ReviewConsumer] Flushing results", slog.Int("batch_size", len(batch)))

	var published []models.AnalysisResult
	for _, result := range batch {
		if err := rc.Publisher.Publish(ctx, kafka_client.KAFKA_TOPIC_REVIEW_RESULT, result.ReviewID, result); err != nil {
			slog.Warn("[ReviewConsumer] Result publishing failed",
				slog.String("review_id", result.ReviewID),
				slog.String("error", err.Error()))
			rc.buffer.Add(result)
			continue
		}
		published = append(published, result)
	}

	if rc.Store != nil && len(published) > 0 {
		if err := rc.Store.SaveResults(ctx, published); err != nil {
			slog.Error("[ReviewConsumer] Failed to store results",
				slog.String("error", err.Error()))
		}
	}

	for _, result := range published {
		if msg, found := rc.tracker.Take(result.ReviewID); found {
			rc.commit(committer, msg)
		}
	}
}

func (rc *ReviewConsumer) commit(committer Committer, msg *kafka.Message) {
	if err := committer.Commit(msg); err != nil {
		slog.Warn("[ReviewConsumer] Failed to commit offset",
			slog.String("error", err.Error()))
	}
}

func healthy(flags []*atomic.Bool) bool {
	for _, f := range flags {
		if f != nil && !f.Load() {
			return false
		}
	}
	return true
}
