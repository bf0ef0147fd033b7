package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/smallbiz-crm/internal/export"
	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/repository"
)

// ExportLimit bounds the number of customers written to one spreadsheet
const ExportLimit = 10000

// CustomerService handles customer business logic
type CustomerService interface {
	Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context, page models.Page) (*models.ListResult[*models.Customer], error)
	Update(ctx context.Context, id int64, input models.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
	// Export renders customers ordered by name as an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *customerService) Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{}
	input.Apply(customer)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("failed to create customer",
			slog.String("name", customer.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
	)

	return customer, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// List retrieves a page of customers, newest first
func (s *customerService) List(ctx context.Context, page models.Page) (*models.ListResult[*models.Customer], error) {
	page.Normalize()

	customers, totalCount, err := s.customerRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}

	return &models.ListResult[*models.Customer]{
		Data:       customers,
		Pagination: models.NewPaginationResult(page, totalCount),
	}, nil
}

// Update replaces every mutable field of a customer
func (s *customerService) Update(ctx context.Context, id int64, input models.CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{ID: id}
	input.Apply(customer)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("failed to update customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("customer updated",
		slog.Int64("customer_id", id),
	)

	return customer, nil
}

// Delete deletes a customer together with its orders and followups
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)

	return nil
}

// Export renders up to ExportLimit customers. An empty customer table is a NO_DATA error.
func (s *customerService) Export(ctx context.Context) ([]byte, error) {
	customers, err := s.customerRepo.ListForExport(ctx, ExportLimit)
	if err != nil {
		return nil, err
	}

	if len(customers) == 0 {
		return nil, models.ErrNoDataWithMsg("No data to export")
	}

	var buf bytes.Buffer
	if err := export.WriteCustomers(&buf, customers); err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	s.logger.Info("customers exported",
		slog.Int("rows", len(customers)),
	)

	return buf.Bytes(), nil
}
