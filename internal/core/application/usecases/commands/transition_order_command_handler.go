package commands

import (
	"context"
	"time"

	"orderboard/internal/core/domain/events"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
)

// TransitionOrderCommandHandler advances an order one step along the
// lifecycle. The persistence update is guarded by the status the transition
// started from, so two staff members racing the same step produce exactly one
// accepted transition and one conflict.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewTransitionOrderCommand(orderID, "preparing")
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	// Kitchen displays receive the status change and a fresh queue snapshot.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for the status-change event.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition command and returns the updated order.
// A target that is not the immediate successor of the current status fails
// with order.ErrIllegalTransition and leaves the order untouched. A
// concurrent transition that moved the order first surfaces as
// ports.ErrStoreConflict.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetByID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, from); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.StatusChanged{
		OrderID:      aggregate.ID(),
		RefCode:      aggregate.RefCode().String(),
		CustomerID:   aggregate.CustomerID(),
		CustomerName: aggregate.CustomerName(),
		OldStatus:    from.String(),
		NewStatus:    aggregate.Status().String(),
		At:           aggregate.LastStatusChangeAt(),
	})

	return aggregate, nil
}
