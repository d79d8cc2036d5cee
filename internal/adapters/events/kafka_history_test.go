package events

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// fakeReader feeds canned messages, then simulates an idle topic by waiting
// out the caller's poll deadline.
type fakeReader struct {
	messages []kafka.Message
	next     int
	closed   bool
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.next < len(f.messages) {
		msg := f.messages[f.next]
		f.next++
		return msg, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func newFakeSource(messages ...string) (*KafkaHistorySource, *fakeReader) {
	msgs := make([]kafka.Message, len(messages))
	for i, m := range messages {
		msgs[i] = kafka.Message{Offset: int64(i), Value: []byte(m)}
	}
	reader := &fakeReader{messages: msgs}
	return &KafkaHistorySource{reader: reader, pollTimeout: 10 * time.Millisecond}, reader
}

func TestReadBatch(t *testing.T) {
	source, _ := newFakeSource(
		`{"lat": 40.7128, "lng": -74.0060, "delivered_at": "2026-08-30T14:05:00Z"}`,
		`{"lat": 40.7130, "lng": -74.0061, "delivered_at": "2026-08-30T15:10:00Z"}`,
	)

	records, err := source.ReadBatch(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Location.Lat != 40.7128 {
		t.Errorf("record 0 lat = %v", records[0].Location.Lat)
	}
	if records[1].Timestamp.Hour() != 15 {
		t.Errorf("record 1 hour = %d, want 15", records[1].Timestamp.Hour())
	}
}

func TestReadBatchStopsAtMax(t *testing.T) {
	source, reader := newFakeSource(
		`{"lat": 1, "lng": 1, "delivered_at": "2026-08-30T10:00:00Z"}`,
		`{"lat": 2, "lng": 2, "delivered_at": "2026-08-30T11:00:00Z"}`,
		`{"lat": 3, "lng": 3, "delivered_at": "2026-08-30T12:00:00Z"}`,
	)

	records, err := source.ReadBatch(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want exactly max", len(records))
	}
	if reader.next != 2 {
		t.Errorf("reader consumed %d messages, want 2", reader.next)
	}
}

func TestReadBatchSkipsBadEvents(t *testing.T) {
	source, _ := newFakeSource(
		`not json at all`,
		`{"lat": 95, "lng": 0, "delivered_at": "2026-08-30T10:00:00Z"}`,
		`{"lat": 40.7128, "lng": -74.0060, "delivered_at": "2026-08-30T10:00:00Z"}`,
	)

	records, err := source.ReadBatch(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want only the well-formed event", len(records))
	}
}

func TestReadBatchReturnsShortBatchWhenDrained(t *testing.T) {
	source, _ := newFakeSource(
		`{"lat": 40.7128, "lng": -74.0060, "delivered_at": "2026-08-30T10:00:00Z"}`,
	)

	records, err := source.ReadBatch(context.Background(), 50)
	if err != nil {
		t.Fatalf("drained topic must not be an error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
}

func TestClose(t *testing.T) {
	source, reader := newFakeSource()
	if err := source.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !reader.closed {
		t.Error("close must propagate to the reader")
	}
}
