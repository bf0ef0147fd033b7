package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/repository"
)

// OrderService handles order business logic
type OrderService interface {
	Create(ctx context.Context, input models.OrderInput) (*models.Order, error)
	List(ctx context.Context, page models.Page) (*models.ListResult[*models.Order], error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create records an order for an existing customer. The repository checks
// the customer inside the insert transaction.
func (s *orderService) Create(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	status := input.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		CustomerID:  input.CustomerID,
		OrderDate:   models.Date{Time: input.OrderDate},
		TotalAmount: input.TotalAmount,
		Status:      status,
		Items:       input.Items,
		Notes:       input.Notes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("failed to create order",
			slog.Int64("customer_id", input.CustomerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", order.CustomerID),
		slog.String("status", order.Status),
	)

	return order, nil
}

// List retrieves a page of orders, most recent order date first
func (s *orderService) List(ctx context.Context, page models.Page) (*models.ListResult[*models.Order], error) {
	page.Normalize()

	orders, totalCount, err := s.orderRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}

	return &models.ListResult[*models.Order]{
		Data:       orders,
		Pagination: models.NewPaginationResult(page, totalCount),
	}, nil
}

// ListByCustomer retrieves every order of one customer. An unknown customer is NOT_FOUND.
func (s *orderService) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Order, error) {
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", customerID))
	}

	return s.orderRepo.ListByCustomer(ctx, customerID)
}
