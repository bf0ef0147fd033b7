// Package memory provides in-process implementations of the repository
// interfaces. They mirror the PostgreSQL ordering and cascade rules closely
// enough to drive service and handler tests without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/repository"
)

// Store holds every table behind one lock so cascades stay consistent.
type Store struct {
	mu        sync.Mutex
	now       func() time.Time
	customers map[int64]*models.Customer
	orders    map[int64]*models.Order
	followups map[int64]*models.Followup
	nextID    struct{ customer, order, followup int64 }
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:       time.Now,
		customers: make(map[int64]*models.Customer),
		orders:    make(map[int64]*models.Order),
		followups: make(map[int64]*models.Followup),
	}
}

// Customers returns a CustomerRepository backed by the store.
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }

// Orders returns an OrderRepository backed by the store.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s} }

// Followups returns a FollowupRepository backed by the store.
func (s *Store) Followups() repository.FollowupRepository { return &followupRepo{s} }

// Counts reports the number of rows per table.
func (s *Store) Counts() (customers, orders, followups int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers), len(s.orders), len(s.followups)
}

func customerNotFound(id int64) error {
	return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}

func cloneCustomer(c *models.Customer) *models.Customer {
	cp := *c
	cp.Tags = append([]models.Tag{}, c.Tags...)
	return &cp
}

func paginate[T any](items []T, page models.Page) []T {
	page.Normalize()
	start := min(page.Offset, len(items))
	end := min(start+page.Limit, len(items))
	return items[start:end]
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, customer *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID.customer++
	customer.ID = r.s.nextID.customer
	customer.CreatedAt = r.s.now()
	customer.UpdatedAt = customer.CreatedAt
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, customerNotFound(id)
	}
	return cloneCustomer(c), nil
}

func (r *customerRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.customers[id]
	return ok, nil
}

func (r *customerRepo) sorted(less func(a, b *models.Customer) bool) []*models.Customer {
	all := make([]*models.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, cloneCustomer(c))
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func (r *customerRepo) List(_ context.Context, page models.Page) ([]*models.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := r.sorted(func(a, b *models.Customer) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return paginate(all, page), int64(len(all)), nil
}

func (r *customerRepo) ListForExport(_ context.Context, limit int) ([]*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := r.sorted(func(a, b *models.Customer) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return all[:min(limit, len(all))], nil
}

func (r *customerRepo) Update(_ context.Context, customer *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.customers[customer.ID]
	if !ok {
		return customerNotFound(customer.ID)
	}
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = r.s.now()
	r.s.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return customerNotFound(id)
	}
	delete(r.s.customers, id)
	for oid, o := range r.s.orders {
		if o.CustomerID == id {
			delete(r.s.orders, oid)
		}
	}
	for fid, f := range r.s.followups {
		if f.CustomerID == id {
			delete(r.s.followups, fid)
		}
	}
	return nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[order.CustomerID]; !ok {
		return customerNotFound(order.CustomerID)
	}
	r.s.nextID.order++
	order.ID = r.s.nextID.order
	order.CreatedAt = r.s.now()
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *orderRepo) sorted(keep func(o *models.Order) bool) []*models.Order {
	all := []*models.Order{}
	for _, o := range r.s.orders {
		if keep(o) {
			cp := *o
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].OrderDate.Equal(all[j].OrderDate.Time) {
			return all[i].OrderDate.After(all[j].OrderDate.Time)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func (r *orderRepo) List(_ context.Context, page models.Page) ([]*models.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := r.sorted(func(*models.Order) bool { return true })
	for _, o := range all {
		if c, ok := r.s.customers[o.CustomerID]; ok {
			o.CustomerName = c.Name
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *orderRepo) ListByCustomer(_ context.Context, customerID int64) ([]*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.sorted(func(o *models.Order) bool { return o.CustomerID == customerID }), nil
}

type followupRepo struct{ s *Store }

func (r *followupRepo) Create(_ context.Context, followup *models.Followup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[followup.CustomerID]; !ok {
		return customerNotFound(followup.CustomerID)
	}
	r.s.nextID.followup++
	followup.ID = r.s.nextID.followup
	followup.CreatedAt = r.s.now()
	cp := *followup
	r.s.followups[followup.ID] = &cp
	return nil
}

func (r *followupRepo) GetByID(_ context.Context, id int64) (*models.Followup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.followups[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("followup with ID %d not found", id))
	}
	cp := *f
	return &cp, nil
}

func (r *followupRepo) ListPending(_ context.Context) ([]*models.Followup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pending := []*models.Followup{}
	for _, f := range r.s.followups {
		if f.Status != models.FollowupStatusPending {
			continue
		}
		cp := *f
		if c, ok := r.s.customers[f.CustomerID]; ok {
			cp.CustomerName = c.Name
			cp.CustomerPhone = c.Phone
		}
		pending = append(pending, &cp)
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].DueDate.Equal(pending[j].DueDate.Time) {
			return pending[i].DueDate.Before(pending[j].DueDate.Time)
		}
		return pending[i].ID < pending[j].ID
	})
	return pending, nil
}

func (r *followupRepo) MarkCompleted(_ context.Context, id int64) (*models.Followup, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.followups[id]
	if !ok {
		return nil, false, models.ErrNotFoundWithMsg(fmt.Sprintf("followup with ID %d not found", id))
	}

	changed := false
	if f.Status == models.FollowupStatusPending {
		now := r.s.now()
		f.Status = models.FollowupStatusCompleted
		f.CompletedAt = &now
		changed = true
	}
	cp := *f
	return &cp, changed, nil
}
