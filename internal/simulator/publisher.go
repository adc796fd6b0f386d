package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lucsky/cuid"
	"github.com/rs/zerolog"
)

// Sink is the downstream destination for published batches. Implementations
// must treat payloads as opaque bytes and either deliver the whole batch or
// return an error.
type Sink interface {
	SendBatch(ctx context.Context, topic string, payloads [][]byte) error
	Close() error
}

// ItemTooLargeError reports a single reading whose serialized form exceeds
// the batch size limit. The reading is dropped; publishing continues.
type ItemTooLargeError struct {
	Size  int
	Limit int
}

func (e *ItemTooLargeError) Error() string {
	return fmt.Sprintf("serialized reading is %d bytes, above the %d byte batch limit", e.Size, e.Limit)
}

// DeliveryError reports a batch the sink did not acknowledge after retries.
type DeliveryError struct {
	Topic   string
	BatchID string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery of batch %s to topic %s failed: %v", e.BatchID, e.Topic, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// PublishResult summarizes one Publish call.
type PublishResult struct {
	Published int // readings delivered to the sink
	Batches   int // batches sent
	Oversized int // readings dropped as individually over the limit
}

// BatchPublisher serializes readings and packs them into size-bounded batches
// before handing them to the sink. Batch boundaries depend only on cumulative
// serialized size and input order, never on reading content.
type BatchPublisher struct {
	sink          Sink
	maxBatchBytes int
	logger        zerolog.Logger

	retryInterval time.Duration
	maxRetries    uint64
}

func NewBatchPublisher(sink Sink, maxBatchBytes int, logger zerolog.Logger) *BatchPublisher {
	return &BatchPublisher{
		sink:          sink,
		maxBatchBytes: maxBatchBytes,
		logger:        logger,
		retryInterval: 200 * time.Millisecond,
		maxRetries:    3,
	}
}

// Publish serializes the readings in order and sends them in batches whose
// cumulative size never exceeds the limit. A reading that alone exceeds the
// limit is dropped and counted; a send failure stops the call and is returned
// along with the result accumulated so far.
func (p *BatchPublisher) Publish(ctx context.Context, topic string, readings []any) (PublishResult, error) {
	var result PublishResult
	var batch [][]byte
	var batchBytes int

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.send(ctx, topic, batch); err != nil {
			return err
		}
		result.Batches++
		result.Published += len(batch)
		batch = nil
		batchBytes = 0
		return nil
	}

	for _, reading := range readings {
		payload, err := json.Marshal(reading)
		if err != nil {
			return result, fmt.Errorf("serializing reading for topic %s: %w", topic, err)
		}

		if len(payload) > p.maxBatchBytes {
			result.Oversized++
			tooLarge := &ItemTooLargeError{Size: len(payload), Limit: p.maxBatchBytes}
			p.logger.Warn().Err(tooLarge).Str("topic", topic).Msg("dropping oversized reading")
			continue
		}

		if batchBytes+len(payload) > p.maxBatchBytes {
			if err := flush(); err != nil {
				return result, err
			}
		}

		batch = append(batch, payload)
		batchBytes += len(payload)
	}

	if err := flush(); err != nil {
		return result, err
	}
	return result, nil
}

func (p *BatchPublisher) send(ctx context.Context, topic string, batch [][]byte) error {
	batchID := cuid.Slug()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.retryInterval

	err := backoff.Retry(func() error {
		return p.sink.SendBatch(ctx, topic, batch)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, p.maxRetries), ctx))
	if err != nil {
		return &DeliveryError{Topic: topic, BatchID: batchID, Err: err}
	}

	p.logger.Debug().
		Str("topic", topic).
		Str("batch_id", batchID).
		Int("events", len(batch)).
		Msg("batch delivered")
	return nil
}
