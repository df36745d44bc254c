// Package services provides domain services for the dispatch core:
// pure business decisions that span aggregates without owning state.
// SectorBatcher groups ready orders for the delivery board; SlotAllocator
// arbitrates color slot claims for a business day.
package services
