// Package memory is a process-local storage adapter used by `serve --in-memory`
// and by tests that run the full stack without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
)

// Store holds every table behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]domain.User
	requests map[uuid.UUID]domain.CreditRequest
	audit    []domain.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		requests: make(map[uuid.UUID]domain.CreditRequest),
	}
}

func (s *Store) Users() *UserRepo                   { return &UserRepo{s} }
func (s *Store) CreditRequests() *CreditRequestRepo { return &CreditRequestRepo{s} }
func (s *Store) AuditLogs() *AuditRepo              { return &AuditRepo{s} }

// Ping implements ports.HealthChecker.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Name() string                   { return "memory" }

// --- Users ---

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperror.ErrDuplicate("email")
		}
		if existing.Username == u.Username {
			return apperror.ErrDuplicate("username")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	u.RecordLogin(at)
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *UserRepo) find(match func(domain.User) bool) *domain.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

// --- Credit requests ---

type CreditRequestRepo struct{ s *Store }

func (r *CreditRequestRepo) Create(ctx context.Context, cr *domain.CreditRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[cr.UserID]; !ok {
		return apperror.ValidationField("user_id", "user does not exist")
	}
	r.s.requests[cr.ID] = *cr
	return nil
}

func (r *CreditRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cr, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	return &cr, nil
}

func (r *CreditRequestRepo) GetDetail(ctx context.Context, id uuid.UUID) (*ports.CreditRequestDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cr, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	d := r.detail(cr)
	return &d, nil
}

func (r *CreditRequestRepo) UpdateStatus(ctx context.Context, cr *domain.CreditRequest) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[cr.ID]
	if !ok {
		return false, nil
	}
	stored.Status = cr.Status
	stored.RejectionReason = cr.RejectionReason
	stored.ApprovedBy = cr.ApprovedBy
	stored.ApprovedAt = cr.ApprovedAt
	stored.UpdatedAt = cr.UpdatedAt
	r.s.requests[cr.ID] = stored
	return true, nil
}

func (r *CreditRequestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[id]; !ok {
		return false, nil
	}
	delete(r.s.requests, id)
	return true, nil
}

func (r *CreditRequestRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CreditRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.CreditRequest
	for _, cr := range r.sorted(nil) {
		if cr.UserID == userID {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (r *CreditRequestRepo) ListPaged(ctx context.Context, params ports.CreditRequestListParams) ([]ports.CreditRequestDetail, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.sorted(params.Status)
	total := int64(len(all))

	start := (params.Page - 1) * params.PageSize
	if start >= len(all) {
		return []ports.CreditRequestDetail{}, total, nil
	}
	end := min(start+params.PageSize, len(all))

	out := make([]ports.CreditRequestDetail, 0, end-start)
	for _, cr := range all[start:end] {
		out = append(out, r.detail(cr))
	}
	return out, total, nil
}

func (r *CreditRequestRepo) ListForExport(ctx context.Context, status *string) ([]ports.CreditRequestDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.sorted(status)
	out := make([]ports.CreditRequestDetail, len(all))
	for i, cr := range all {
		out[i] = r.detail(cr)
	}
	return out, nil
}

// sorted orders newest first with id as tiebreak, matching the SQL ordering.
// Callers hold the lock.
func (r *CreditRequestRepo) sorted(status *string) []domain.CreditRequest {
	out := make([]domain.CreditRequest, 0, len(r.s.requests))
	for _, cr := range r.s.requests {
		if status != nil && cr.Status != *status {
			continue
		}
		out = append(out, cr)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (r *CreditRequestRepo) detail(cr domain.CreditRequest) ports.CreditRequestDetail {
	u := r.s.users[cr.UserID]
	return ports.CreditRequestDetail{CreditRequest: cr, Username: u.Username, Email: u.Email}
}

// --- Audit ---

type AuditRepo struct{ s *Store }

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *log)
	return nil
}

func (r *AuditRepo) List(ctx context.Context, f ports.AuditLogFilter) ([]domain.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.AuditLog
	for _, l := range r.s.audit {
		switch {
		case f.EntityName != nil && l.EntityName != *f.EntityName,
			f.EntityID != nil && l.EntityID != *f.EntityID,
			f.Action != nil && l.Action != *f.Action,
			f.PerformedBy != nil && l.PerformedBy != *f.PerformedBy,
			f.From != nil && l.Timestamp.Before(*f.From),
			f.To != nil && l.Timestamp.After(*f.To):
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}
