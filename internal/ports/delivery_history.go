package ports

import (
	"context"
	"geo-intel-service/internal/domain"
)

// Port: a source of historical delivery events for hotspot analysis.
type DeliveryHistorySource interface {
	// ReadBatch returns up to max records. A short read is not an error;
	// it means the source has no more events available right now.
	ReadBatch(ctx context.Context, max int) ([]domain.DeliveryRecord, error)
}
