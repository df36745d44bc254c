// Package orderrepo persists order aggregates. It owns the mapping
// between the aggregate and its relational shape, including the
// conditional claim write that backs route exclusivity.
package orderrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO is the relational shape of an order aggregate. Status and
// driver_phone are indexed: every dispatch read path filters on one or
// both.
type OrderDTO struct {
	Code          string `gorm:"primaryKey"`
	CustomerName  string
	CustomerPhone string
	Mode          string
	Address       *string
	SectorID      *string `gorm:"index"`
	Items         []byte  `gorm:"type:jsonb"`
	Total         float64
	PaymentMethod string
	ChangeFor     float64
	Status        string  `gorm:"index"`
	DriverName    *string
	DriverPhone   *string `gorm:"index"`
	DriverColor   *string
	ReviewRating  *int
	ReviewComment *string
	ReviewAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSON shape of one order line inside the items column.
type itemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		Code:          aggregate.Code(),
		CustomerName:  aggregate.CustomerName(),
		CustomerPhone: aggregate.CustomerPhone(),
		Mode:          aggregate.Mode().String(),
		Items:         itemsRaw,
		Total:         aggregate.Total(),
		PaymentMethod: aggregate.PaymentMethod(),
		ChangeFor:     aggregate.ChangeFor(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
	}

	if aggregate.Address() != "" {
		address := aggregate.Address()
		dto.Address = &address
	}
	if aggregate.SectorID() != "" {
		sectorID := aggregate.SectorID()
		dto.SectorID = &sectorID
	}

	if d := aggregate.Driver(); d != nil {
		name, phone, color := d.Name, d.Phone.String(), d.Color
		dto.DriverName = &name
		dto.DriverPhone = &phone
		dto.DriverColor = &color
	}

	if r := aggregate.Review(); r != nil {
		rating, comment, at := r.Rating, r.Comment, r.At
		dto.ReviewRating = &rating
		dto.ReviewComment = &comment
		dto.ReviewAt = &at
	}

	return dto, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	mode, err := order.ModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var itemDTOs []itemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, item := range itemDTOs {
		items = append(items, order.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var binding *order.DriverBinding
	if dto.DriverPhone != nil {
		phone, phoneErr := kernel.NewPhone(*dto.DriverPhone)
		if phoneErr != nil {
			return nil, phoneErr
		}

		binding = &order.DriverBinding{
			Name:  deref(dto.DriverName),
			Phone: phone,
			Color: deref(dto.DriverColor),
		}
	}

	var review *order.Review
	if dto.ReviewRating != nil {
		review = &order.Review{
			Rating:  *dto.ReviewRating,
			Comment: deref(dto.ReviewComment),
		}
		if dto.ReviewAt != nil {
			review.At = *dto.ReviewAt
		}
	}

	return order.RestoreOrder(
		dto.Code,
		dto.CustomerName,
		dto.CustomerPhone,
		mode,
		deref(dto.Address),
		deref(dto.SectorID),
		items,
		dto.PaymentMethod,
		dto.ChangeFor,
		status,
		binding,
		review,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
