package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"

	"github.com/segmentio/kafka-go"
)

// Wire shape of one delivery-completed event on the history topic.
type deliveryEvent struct {
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// kafkaReader is the slice of kafka.Reader this adapter uses; tests swap in
// a fake.
type kafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaHistorySource reads delivery-completed events from a topic and
// batches them into DeliveryRecords for hotspot analysis.
type KafkaHistorySource struct {
	reader      kafkaReader
	pollTimeout time.Duration
}

func NewKafkaHistorySource(brokers []string, topic, groupID string, pollTimeout time.Duration) *KafkaHistorySource {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		// Batch reads: at least 10KB, at most 10MB per fetch.
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &KafkaHistorySource{reader: reader, pollTimeout: pollTimeout}
}

var _ ports.DeliveryHistorySource = (*KafkaHistorySource)(nil)

// ReadBatch drains up to max events. It stops early when the poll timeout
// elapses with no further messages; a short batch is a normal outcome.
// Malformed events are logged and skipped, never fatal.
func (s *KafkaHistorySource) ReadBatch(ctx context.Context, max int) ([]domain.DeliveryRecord, error) {
	out := make([]domain.DeliveryRecord, 0, max)

	for len(out) < max {
		rctx, cancel := context.WithTimeout(ctx, s.pollTimeout)
		msg, err := s.reader.ReadMessage(rctx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return out, nil // topic drained for now
			}
			if errors.Is(err, context.Canceled) {
				return out, ctx.Err()
			}
			return out, fmt.Errorf("read delivery history: %w", err)
		}

		var ev deliveryEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Printf("skipping malformed delivery event offset=%d err=%v", msg.Offset, err)
			continue
		}

		loc, err := domain.NewCoordinate(ev.Lat, ev.Lng)
		if err != nil {
			log.Printf("skipping delivery event with bad coordinate offset=%d err=%v", msg.Offset, err)
			continue
		}

		out = append(out, domain.DeliveryRecord{Location: loc, Timestamp: ev.DeliveredAt})
	}

	return out, nil
}

func (s *KafkaHistorySource) Close() error {
	return s.reader.Close()
}
