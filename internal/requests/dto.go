package requests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	"github.com/procurehub/procurehub-backend/pkg/types"
)

// LineItemInput is one requested catalog item.
type LineItemInput struct {
	ItemID   uuid.UUID
	Quantity int
	Notes    *string
}

// CreateRequestInput carries the payload to submit a new request.
type CreateRequestInput struct {
	StaffID       uuid.UUID
	Title         string
	Justification *string
	Items         []LineItemInput
}

// ManagerDecisionInput carries a manager's single-use approve/reject decision.
type ManagerDecisionInput struct {
	RequestID uuid.UUID
	ManagerID uuid.UUID
	Action    enums.ManagerAction
	Notes     *string
}

// AdminProcessInput carries a super-admin processing step. The Optional fields
// follow partial-update semantics: absent leaves the column unchanged, an
// explicit null clears it, a value overwrites it.
type AdminProcessInput struct {
	RequestID    uuid.UUID
	AdminID      uuid.UUID
	Action       enums.AdminAction
	Notes        types.Optional[string]
	ActualCost   types.Optional[decimal.Decimal]
	PurchaseDate types.Optional[time.Time]
	ReceivedDate types.Optional[time.Time]
}

// RequestFilters narrow the request listing; criteria are ANDed and the date
// range is inclusive on both ends.
type RequestFilters struct {
	Status    *enums.RequestStatus
	StaffID   *uuid.UUID
	ManagerID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// UserSummary is the projection of a user embedded in a request view.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CategorySummary is the projection of a category under a line item.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemSummary is the projection of a catalog item under a line item.
type ItemSummary struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Unit     string           `json:"unit"`
	Category *CategorySummary `json:"category,omitempty"`
}

// LineItemDetail is one hydrated line of a request.
type LineItemDetail struct {
	ID                uuid.UUID        `json:"id"`
	ItemID            uuid.UUID        `json:"item_id"`
	Quantity          int              `json:"quantity"`
	EstimatedUnitCost *decimal.Decimal `json:"estimated_unit_cost"`
	Notes             *string          `json:"notes,omitempty"`
	Item              *ItemSummary     `json:"item,omitempty"`
}

// RequestDetail is the hydrated request view returned by every read path.
// Manager and Admin stay nil until the matching transition has run.
type RequestDetail struct {
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	Justification      *string             `json:"justification,omitempty"`
	Status             enums.RequestStatus `json:"status"`
	Staff              *UserSummary        `json:"staff,omitempty"`
	Manager            *UserSummary        `json:"manager,omitempty"`
	ManagerNotes       *string             `json:"manager_notes,omitempty"`
	Admin              *UserSummary        `json:"admin,omitempty"`
	AdminNotes         *string             `json:"admin_notes,omitempty"`
	Items              []LineItemDetail    `json:"items"`
	TotalEstimatedCost *decimal.Decimal    `json:"total_estimated_cost"`
	ActualCost         *decimal.Decimal    `json:"actual_cost"`
	PurchaseDate       *time.Time          `json:"purchase_date,omitempty"`
	ReceivedDate       *time.Time          `json:"received_date,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// RequestList wraps a page of requests plus the next page cursor.
type RequestList struct {
	Requests   []RequestDetail `json:"requests"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func userSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func itemSummary(i *models.Item) *ItemSummary {
	if i == nil {
		return nil
	}
	summary := &ItemSummary{ID: i.ID, Name: i.Name, Unit: i.Unit}
	if i.Category != nil {
		summary.Category = &CategorySummary{ID: i.Category.ID, Name: i.Category.Name}
	}
	return summary
}

// DetailFromModel hydrates the transport view from a preloaded request model.
func DetailFromModel(r *models.Request) *RequestDetail {
	if r == nil {
		return nil
	}

	items := make([]LineItemDetail, 0, len(r.Items))
	for i := range r.Items {
		line := r.Items[i]
		items = append(items, LineItemDetail{
			ID:                line.ID,
			ItemID:            line.ItemID,
			Quantity:          line.Quantity,
			EstimatedUnitCost: line.EstimatedUnitCost,
			Notes:             line.Notes,
			Item:              itemSummary(line.Item),
		})
	}

	return &RequestDetail{
		ID:                 r.ID,
		Title:              r.Title,
		Justification:      r.Justification,
		Status:             r.Status,
		Staff:              userSummary(r.Staff),
		Manager:            userSummary(r.Manager),
		ManagerNotes:       r.ManagerNotes,
		Admin:              userSummary(r.Admin),
		AdminNotes:         r.AdminNotes,
		Items:              items,
		TotalEstimatedCost: r.TotalEstimatedCost,
		ActualCost:         r.ActualCost,
		PurchaseDate:       r.PurchaseDate,
		ReceivedDate:       r.ReceivedDate,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
