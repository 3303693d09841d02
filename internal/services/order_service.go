package services

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"canteen-service/internal/domain"
	"canteen-service/internal/infra/estimator"
	rabbit "canteen-service/internal/infra/rabbitmq"
	"canteen-service/internal/infra/token"
	"canteen-service/internal/notify"
	"canteen-service/internal/repository"

	"github.com/google/uuid"
)

const estimateTimeout = 2 * time.Second

type OrderService struct {
	repo        repository.OrderRepository
	receiptRepo repository.ReceiptRepository
	allocator   token.Allocator
	estimator   estimator.EstimatorInterface
	publisher   rabbit.PublisherInterface
	hub         *notify.Hub

	// One in-flight status write per order; a second advance for the
	// same order is rejected until the first is confirmed.
	inflight sync.Map
}

func NewOrderService(
	repo repository.OrderRepository,
	receiptRepo repository.ReceiptRepository,
	allocator token.Allocator,
	est estimator.EstimatorInterface,
	pub rabbit.PublisherInterface,
	hub *notify.Hub,
) *OrderService {
	return &OrderService{
		repo:        repo,
		receiptRepo: receiptRepo,
		allocator:   allocator,
		estimator:   est,
		publisher:   pub,
		hub:         hub,
	}
}

// Submit turns a validated cart into exactly one queued order. A token
// is allocated first; if the order write then fails the token number
// is skipped, which is accepted (tokens need not be contiguous). The
// cart is cleared exactly once, only after the write is confirmed.
func (s *OrderService) Submit(
	ctx context.Context,
	session domain.Session,
	cart *domain.Cart,
	orderType domain.OrderType,
	pickupTime *time.Time,
	payment domain.PaymentMethod,
) (*domain.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if payment != domain.PaymentOnline && payment != domain.PaymentOffline {
		return nil, domain.ErrPaymentNotResolved
	}
	if orderType == domain.OrderTypeScheduled {
		if pickupTime == nil || !pickupTime.After(time.Now()) {
			return nil, domain.ErrPastPickupTime
		}
	} else {
		pickupTime = nil
	}

	tokenNumber, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, &domain.AllocationError{Err: err}
	}

	items := cart.Snapshot()

	var estimate string
	if orderType == domain.OrderTypeInstant {
		estimate = s.estimateWaitTime(ctx, items.TotalQuantity())
	}

	order := &domain.Order{
		ID:                uuid.NewString(),
		TokenNumber:       tokenNumber,
		UserID:            session.UserID,
		Items:             items,
		TotalAmount:       items.TotalAmount(),
		Status:            domain.StatusQueued,
		OrderType:         orderType,
		PickupTime:        pickupTime,
		TimeSlot:          domain.TimeSlotLabel(orderType, pickupTime),
		EstimatedWaitTime: estimate,
		PaymentMethod:     payment,
		PaymentStatus:     domain.PaymentStatusFor(payment),
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, &domain.PersistenceError{Op: "create order", Err: err}
	}

	cart.Clear()

	go s.publishOrderCreated(context.Background(), order)
	if s.hub != nil {
		s.hub.OrderChanged(*order)
	}

	return order, nil
}

// estimateWaitTime asks the external estimator with a short deadline.
// Any failure leaves the estimate unset; an order never waits on it.
func (s *OrderService) estimateWaitTime(ctx context.Context, itemCount int) string {
	if s.estimator == nil {
		return ""
	}

	activeCount, err := s.repo.CountActive(ctx)
	if err != nil {
		log.Printf("active order count failed, skipping estimate: %v", err)
		return ""
	}

	estCtx, cancel := context.WithTimeout(ctx, estimateTimeout)
	defer cancel()

	estimate, err := s.estimator.Estimate(estCtx, int(activeCount), itemCount)
	if err != nil {
		log.Printf("wait-time estimate failed: %v", err)
		return ""
	}
	return estimate
}

// AdvanceStatus moves an order one step along
// queued -> preparing -> ready -> completed. Any other target is
// rejected here, not just hidden by the dashboard.
func (s *OrderService) AdvanceStatus(ctx context.Context, session domain.Session, orderID string, target domain.OrderStatus) (*domain.Order, error) {
	if !session.IsStaff() {
		return nil, domain.ErrForbidden
	}

	if _, busy := s.inflight.LoadOrStore(orderID, struct{}{}); busy {
		return nil, domain.ErrUpdateInProgress
	}
	defer s.inflight.Delete(orderID)

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order", Err: err}
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if !domain.CanTransition(order.Status, target) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: target}
	}

	if err := s.repo.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, &domain.PersistenceError{Op: "update status", Err: err}
	}
	order.Status = target

	go s.publishStatusUpdated(context.Background(), order)
	if s.hub != nil {
		s.hub.OrderChanged(*order)
	}

	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order", Err: err}
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// GetUserOrders returns the customer's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	out, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list user orders", Err: err}
	}
	return out, nil
}

// GetActiveOrders returns the staff queue: non-completed orders,
// oldest first.
func (s *OrderService) GetActiveOrders(ctx context.Context) ([]domain.Order, error) {
	out, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list active orders", Err: err}
	}
	return out, nil
}

// CreateReceipt snapshots an order's billing details. The caller must
// own the order or be staff.
func (s *OrderService) CreateReceipt(ctx context.Context, session domain.Session, orderID string) (*domain.Receipt, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != session.UserID && !session.IsStaff() {
		return nil, domain.ErrForbidden
	}

	receipt := &domain.Receipt{
		ID:            uuid.NewString(),
		ReceiptID:     newReceiptID(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		TokenNumber:   order.TokenNumber,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, &domain.PersistenceError{Op: "create receipt", Err: err}
	}
	return receipt, nil
}

func (s *OrderService) GetReceipt(ctx context.Context, orderID string) (*domain.Receipt, error) {
	rec, err := s.receiptRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load receipt", Err: err}
	}
	if rec == nil {
		return nil, domain.ErrReceiptNotFound
	}
	return rec, nil
}

func newReceiptID() string {
	return "RCP" + strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.Itoa(rand.Intn(1000))
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		TokenNumber: order.TokenNumber,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		OrderType:   order.OrderType,
		TimeSlot:    order.TimeSlot,
		CreatedAt:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, rabbit.RouteOrderCreated, evt); err != nil {
		log.Printf("failed to publish %s: %v", rabbit.RouteOrderCreated, err)
	}
}

func (s *OrderService) publishStatusUpdated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderStatusUpdatedEvent{
		OrderID:     order.ID,
		TokenNumber: order.TokenNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		UpdatedAt:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, rabbit.RouteOrderStatusUpdated, evt); err != nil {
		log.Printf("failed to publish %s: %v", rabbit.RouteOrderStatusUpdated, err)
	}
}
