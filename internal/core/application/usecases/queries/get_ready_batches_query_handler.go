package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// GetReadyBatchesQueryHandler builds the claimable board. Unlike the
// plain listing queries this one goes through the domain batcher, so
// the grouping and ordering rules live in exactly one place for both
// the board read and the route claim.
type GetReadyBatchesQueryHandler struct {
	orders  ports.OrderRepository
	sectors ports.SectorRepository
}

// NewGetReadyBatchesQueryHandler creates a handler for claimable board
// queries.
func NewGetReadyBatchesQueryHandler(
	orders ports.OrderRepository,
	sectors ports.SectorRepository,
) GetReadyBatchesQueryHandler {
	return GetReadyBatchesQueryHandler{orders: orders, sectors: sectors}
}

// Handle batches the ready delivery orders by sector. Sectors with no
// ready orders produce no batch; the unassigned batch comes last.
func (h GetReadyBatchesQueryHandler) Handle(
	ctx context.Context,
	query GetReadyBatchesQuery,
) ([]SectorBatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ready, err := h.orders.GetReadyForDelivery(ctx, nil)
	if err != nil {
		return nil, err
	}

	catalog, err := h.sectors.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(catalog))
	colors := make(map[string]string, len(catalog))
	for _, s := range catalog {
		names[s.ID()] = s.Name()
		colors[s.ID()] = s.Color()
	}

	batches := services.NewSectorBatcher().Batch(ready)

	responses := make([]SectorBatchResponse, 0, len(batches))
	for _, batch := range batches {
		resp := SectorBatchResponse{
			SectorID:   batch.SectorID,
			SectorName: names[batch.SectorID],
			Color:      colors[batch.SectorID],
			Orders:     make([]OrderResponse, 0, len(batch.Orders)),
		}
		for _, o := range batch.Orders {
			resp.Orders = append(resp.Orders, orderToResponse(o))
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// orderToResponse maps a domain aggregate to the shared read model.
// Used by the queries that read through the repository rather than raw
// SQL.
func orderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	resp := OrderResponse{
		Code:          o.Code(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Mode:          o.Mode().String(),
		Address:       o.Address(),
		SectorID:      o.SectorID(),
		Items:         items,
		Total:         o.Total(),
		PaymentMethod: o.PaymentMethod(),
		ChangeFor:     o.ChangeFor(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		CompletedAt:   o.CompletedAt(),
	}

	if d := o.Driver(); d != nil {
		resp.DriverName = d.Name
		resp.DriverPhone = d.Phone.String()
		resp.DriverColor = d.Color
	}

	return resp
}
