package services

import (
	"database/sql"
	"errors"
	"math"

	"milkrun/internal/apperr"
	"milkrun/internal/domain"
	"milkrun/internal/repos"
	"milkrun/internal/validate"

	"github.com/google/uuid"
)

type OrderService struct {
	Orders  *repos.OrderRepo
	Clients *repos.ClientRepo
	Prods   *repos.ProductRepo
	Pricing *PricingService
	Rounds  *RoundService
}

func NewOrderService(orders *repos.OrderRepo, clients *repos.ClientRepo, prods *repos.ProductRepo,
	pricing *PricingService, rounds *RoundService) *OrderService {
	return &OrderService{Orders: orders, Clients: clients, Prods: prods, Pricing: pricing, Rounds: rounds}
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type OrderInput struct {
	ClientID string           `json:"clientId"`
	RoundID  string           `json:"roundId"`
	Note     string           `json:"note"`
	Items    []OrderItemInput `json:"items"`
}

// OrderUpdate carries the partial PUT body; nil fields are left untouched.
type OrderUpdate struct {
	Status  *string `json:"status"`
	Paid    *bool   `json:"paid"`
	Note    *string `json:"note"`
	RoundID *string `json:"roundId"`
}

// OrderDetail is an order with its client, round and lines resolved.
type OrderDetail struct {
	Order  domain.Order          `json:"order"`
	Client domain.Client         `json:"client"`
	Round  *domain.DeliveryRound `json:"round,omitempty"`
	Items  []repos.ItemRow       `json:"items"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// canAccess gates order operations: admins always, users only on their own
// client's orders.
func canAccess(actor *domain.User, clientID string) bool {
	return actor.IsAdmin() || actor.OwnsClient(clientID)
}

// Create validates the client and items, resolves each line's unit price from
// the active (category, tier) price, and auto-assigns the nearest upcoming
// round in the client's zone unless one was given explicitly.
func (s *OrderService) Create(actor *domain.User, in OrderInput) (OrderDetail, error) {
	if !canAccess(actor, in.ClientID) {
		return OrderDetail{}, apperr.Unauthorized("cannot create orders for another client")
	}

	client, err := s.Clients.Get(in.ClientID)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("client")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if len(in.Items) == 0 {
		return OrderDetail{}, apperr.Invalid("items", "at least one item is required")
	}

	seen := map[string]bool{}
	items := make([]domain.OrderItem, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		if !validate.Qty(it.Qty) {
			return OrderDetail{}, apperr.Invalid("items.qty", "must be between 1 and 10000")
		}
		if seen[it.ProductID] {
			return OrderDetail{}, apperr.Invalid("items.productId", "duplicate product "+it.ProductID)
		}
		seen[it.ProductID] = true

		p, err := s.Prods.Get(it.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetail{}, apperr.NotFound("product " + it.ProductID)
		}
		if err != nil {
			return OrderDetail{}, err
		}

		price, err := s.Pricing.Resolve(p.CategoryID, client.Tier)
		if err != nil {
			if apperr.As(err) != nil {
				return OrderDetail{}, apperr.Validation("no active %s price for category %s", client.Tier, p.CategoryID)
			}
			return OrderDetail{}, err
		}

		sub := round2(price.Value * float64(it.Qty))
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			PriceID:   price.ID,
			Qty:       it.Qty,
			UnitPrice: price.Value,
			Subtotal:  sub,
		})
		total += sub
	}

	roundID := in.RoundID
	if roundID != "" {
		if err := s.checkRoundZone(roundID, client.Zone); err != nil {
			return OrderDetail{}, err
		}
	} else {
		if roundID, err = s.Rounds.AutoAssign(client.Zone); err != nil {
			return OrderDetail{}, err
		}
	}

	o := domain.Order{
		ID:       uuid.NewString(),
		ClientID: client.ID,
		RoundID:  roundID,
		Status:   domain.StatusPending,
		Note:     in.Note,
		Total:    round2(total),
	}
	if err := s.Orders.CreateWithItems(o, items); err != nil {
		return OrderDetail{}, err
	}
	return s.detail(o.ID)
}

// checkRoundZone rejects a manual round assignment whose zone does not match
// the client's zone. The mismatch is an error, never silently corrected.
func (s *OrderService) checkRoundZone(roundID, clientZone string) error {
	r, err := s.Rounds.Get(roundID)
	if err != nil {
		return err
	}
	if r.Zone != clientZone {
		return apperr.Validation("round zone %s does not match client zone %s", r.Zone, clientZone)
	}
	return nil
}

func (s *OrderService) Get(actor *domain.User, id string) (OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("order")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if !canAccess(actor, o.ClientID) {
		return OrderDetail{}, apperr.Unauthorized("not your order")
	}
	return s.detail(id)
}

// List returns all orders for admins, and the user's client's orders otherwise.
func (s *OrderService) List(actor *domain.User) ([]domain.Order, error) {
	if actor.IsAdmin() {
		return s.Orders.ListLatest(100)
	}
	if actor.ClientID == "" {
		return nil, apperr.Unauthorized("no client bound to this account")
	}
	return s.Orders.ListByClient(actor.ClientID)
}

// Update applies the partial PUT body under the lifecycle guards: DELIVERED
// and CANCELLED are terminal, cancelled orders accept only the note field,
// and round changes are only valid while the order is PENDING.
func (s *OrderService) Update(actor *domain.User, id string, in OrderUpdate) (OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("order")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if !canAccess(actor, o.ClientID) {
		return OrderDetail{}, apperr.Unauthorized("not your order")
	}

	if o.Status == domain.StatusCancelled && (in.Status != nil || in.Paid != nil || in.RoundID != nil) {
		return OrderDetail{}, apperr.State("a cancelled order only accepts note changes")
	}

	if in.Status != nil {
		switch *in.Status {
		case domain.StatusDelivered:
			if o.Status != domain.StatusPending {
				return OrderDetail{}, apperr.State("only a pending order can be delivered")
			}
		case domain.StatusCancelled:
			if err := cancelGuard(o.Status); err != nil {
				return OrderDetail{}, err
			}
		default:
			return OrderDetail{}, apperr.Invalid("status", "must be DELIVERED or CANCELLED")
		}
	}

	if in.RoundID != nil {
		if o.Status != domain.StatusPending {
			return OrderDetail{}, apperr.State("round assignment is only valid on a pending order")
		}
		if *in.RoundID != "" {
			client, err := s.Clients.Get(o.ClientID)
			if err != nil {
				return OrderDetail{}, err
			}
			if err := s.checkRoundZone(*in.RoundID, client.Zone); err != nil {
				return OrderDetail{}, err
			}
		}
	}

	// Guards passed; apply the requested fields.
	if in.Status != nil {
		if err := s.Orders.UpdateStatus(id, *in.Status); err != nil {
			return OrderDetail{}, err
		}
	}
	if in.Paid != nil {
		if err := s.Orders.UpdatePaid(id, *in.Paid); err != nil {
			return OrderDetail{}, err
		}
	}
	if in.Note != nil {
		if err := s.Orders.UpdateNote(id, *in.Note); err != nil {
			return OrderDetail{}, err
		}
	}
	if in.RoundID != nil {
		if err := s.Orders.SetRound(id, *in.RoundID); err != nil {
			return OrderDetail{}, err
		}
	}

	return s.detail(id)
}

func cancelGuard(status string) error {
	switch status {
	case domain.StatusDelivered:
		return apperr.State("a delivered order cannot be cancelled")
	case domain.StatusCancelled:
		return apperr.State("order is already cancelled")
	}
	return nil
}

// Cancel moves the order to CANCELLED. Delivered orders are immovable and a
// repeated cancel is an error, not a no-op.
func (s *OrderService) Cancel(actor *domain.User, id string) (OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("order")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if !canAccess(actor, o.ClientID) {
		return OrderDetail{}, apperr.Unauthorized("not your order")
	}
	if err := cancelGuard(o.Status); err != nil {
		return OrderDetail{}, err
	}
	if err := s.Orders.UpdateStatus(id, domain.StatusCancelled); err != nil {
		return OrderDetail{}, err
	}
	return s.detail(id)
}

// TogglePaid flips the paid flag. Payment tracking is orthogonal to delivery
// status, so any status is fine.
func (s *OrderService) TogglePaid(actor *domain.User, id string) (OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetail{}, apperr.NotFound("order")
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if !canAccess(actor, o.ClientID) {
		return OrderDetail{}, apperr.Unauthorized("not your order")
	}
	if err := s.Orders.UpdatePaid(id, !o.Paid); err != nil {
		return OrderDetail{}, err
	}
	return s.detail(id)
}

func (s *OrderService) detail(id string) (OrderDetail, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return OrderDetail{}, err
	}
	client, err := s.Clients.Get(o.ClientID)
	if err != nil {
		return OrderDetail{}, err
	}
	items, err := s.Orders.Items(id)
	if err != nil {
		return OrderDetail{}, err
	}
	d := OrderDetail{Order: o, Client: client, Items: items}
	if o.RoundID != "" {
		r, err := s.Rounds.Get(o.RoundID)
		if err != nil {
			return OrderDetail{}, err
		}
		d.Round = &r
	}
	return d, nil
}
