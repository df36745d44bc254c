package services

import (
	"sort"

	"dispatch/internal/core/domain/model/order"
)

// UnassignedSectorID keys the distinguished bucket for ready delivery
// orders that have no sector reference.
const UnassignedSectorID = ""

// SectorBatch is one bucket of the delivery board: all orders of a
// sector currently waiting to be claimed.
type SectorBatch struct {
	SectorID string
	Orders   []*order.Order
}

// SectorBatcher groups ready delivery orders by sector so agents can
// claim whole sectors into a route. It is a pure function of current
// order state; nothing is persisted and no agent is involved.
type SectorBatcher struct{}

// NewSectorBatcher creates a SectorBatcher.
func NewSectorBatcher() SectorBatcher {
	return SectorBatcher{}
}

// Batch partitions the given orders by sector id. Only delivery orders
// in ReadyForDelivery participate; everything else is ignored, so the
// caller may pass an unfiltered listing.
//
// Orders inside a bucket are sorted newest-created first, approximating
// recency of becoming ready. Buckets are sorted by sector id with the
// unassigned bucket last, so the output is stable between polls.
func (b SectorBatcher) Batch(orders []*order.Order) []SectorBatch {
	buckets := make(map[string][]*order.Order)
	for _, o := range orders {
		if o.Mode() != order.Delivery || o.Status() != order.ReadyForDelivery {
			continue
		}
		buckets[o.SectorID()] = append(buckets[o.SectorID()], o)
	}

	batches := make([]SectorBatch, 0, len(buckets))
	for sectorID, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt().After(bucket[j].CreatedAt())
		})
		batches = append(batches, SectorBatch{SectorID: sectorID, Orders: bucket})
	}

	sort.Slice(batches, func(i, j int) bool {
		if batches[i].SectorID == UnassignedSectorID {
			return false
		}
		if batches[j].SectorID == UnassignedSectorID {
			return true
		}
		return batches[i].SectorID < batches[j].SectorID
	})

	return batches
}
