package commands

import (
	"context"
	"errors"
	"time"

	"orderboard/internal/core/domain/events"
	"orderboard/internal/core/domain/model/cart"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// maxCheckoutAttempts bounds retries when a concurrent checkout wins the race
// for an identifier between the allocator's existence check and the insert.
const maxCheckoutAttempts = 3

// CheckoutCommandHandler converts a cart into a pending order.
// Allocation of both identifiers, the order insert and the cart clear run in
// one transaction; the order-created event is published only after commit.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory, menuRepo, allocator, publisher)
//	cmd, _ := NewCheckoutCommand(42, "Ada Lovelace")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	// The cart is now empty and the order is pending in the kitchen queue.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	menu       ports.MenuItemRepository
	allocator  services.IdentifierAllocator
	publisher  ports.EventPublisher
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// Requires a CheckoutUoWFactory for transactional persistence, a menu
// repository to validate line references, an allocator for identifier
// assignment and a publisher for the order-created event.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	menu ports.MenuItemRepository,
	allocator services.IdentifierAllocator,
	publisher ports.EventPublisher,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		menu:       menu,
		allocator:  allocator,
		publisher:  publisher,
	}
}

// Handle processes the checkout command and returns the created order.
// An empty cart fails with cart.ErrEmptyCart before anything is written.
// When the insert loses an identifier race to a concurrent checkout, the
// whole unit of work is retried with freshly allocated identifiers.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxCheckoutAttempts; attempt++ {
		created, totals, err := h.checkout(ctx, cmd)
		if errors.Is(err, ports.ErrStoreConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		h.publisher.Publish(events.OrderCreated{
			OrderID:       created.ID(),
			RefCode:       created.RefCode().String(),
			DisplayNumber: created.DisplayNumber().Value(),
			CustomerID:    created.CustomerID(),
			CustomerName:  created.CustomerName(),
			TotalValue:    totals.value,
			TotalTickets:  totals.tickets,
			ItemCount:     len(created.Lines()),
			At:            created.CreatedAt(),
		})

		return created, nil
	}

	return nil, lastErr
}

// validateMenuReferences ensures every cart line points at a known menu item.
// A stale line referencing a removed item fails the checkout before anything
// is allocated or written.
func (h *CheckoutCommandHandler) validateMenuReferences(ctx context.Context, snapshot cart.Snapshot) error {
	lines := snapshot.Lines()
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID())
	}

	items, err := h.menu.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if _, ok := items[line.MenuItemID()]; !ok {
			return errs.NewObjectNotFoundError("menuItemID", line.MenuItemID())
		}
	}

	return nil
}

type orderTotals struct {
	value   float64
	tickets int
}

// checkout runs one attempt of the checkout unit of work.
func (h *CheckoutCommandHandler) checkout(
	ctx context.Context,
	cmd CheckoutCommand,
) (*order.Order, orderTotals, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, orderTotals{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cartRepo := uow.CartRepository()

	snapshot, err := cartRepo.GetSnapshot(ctx, cmd.CustomerID())
	if err != nil {
		return nil, orderTotals{}, err
	}
	if snapshot.IsEmpty() {
		return nil, orderTotals{}, cart.ErrEmptyCart
	}

	if err = h.validateMenuReferences(ctx, snapshot); err != nil {
		return nil, orderTotals{}, err
	}

	refCode, err := h.allocator.AllocateRefCode(ctx, orderRepo)
	if err != nil {
		return nil, orderTotals{}, err
	}

	displayNumber, err := h.allocator.AllocateDisplayNumber(ctx, orderRepo)
	if err != nil {
		return nil, orderTotals{}, err
	}

	lines := make([]order.Line, 0, len(snapshot.Lines()))
	for _, cartLine := range snapshot.Lines() {
		line, lineErr := order.NewLine(cartLine.MenuItemID(), cartLine.Quantity())
		if lineErr != nil {
			return nil, orderTotals{}, lineErr
		}
		lines = append(lines, line)
	}

	created, err := order.NewOrder(
		refCode,
		displayNumber,
		cmd.CustomerID(),
		cmd.CustomerName(),
		lines,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, orderTotals{}, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, orderTotals{}, err
	}

	value, tickets, err := orderRepo.SumLineValues(ctx, created.ID())
	if err != nil {
		return nil, orderTotals{}, err
	}

	if err = cartRepo.Clear(ctx, cmd.CustomerID()); err != nil {
		return nil, orderTotals{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, orderTotals{}, err
	}

	return created, orderTotals{value: value, tickets: tickets}, nil
}
