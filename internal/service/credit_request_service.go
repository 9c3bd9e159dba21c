package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
)

// MaxPageSize bounds ListCreditRequests.
const MaxPageSize = 100

// CreditRequestService handles the credit request commands and queries.
type CreditRequestService struct {
	repo ports.CreditRequestRepository
	log  zerolog.Logger
}

func NewCreditRequestService(repo ports.CreditRequestRepository, log zerolog.Logger) *CreditRequestService {
	return &CreditRequestService{repo: repo, log: log}
}

// Create builds a Pending request. It writes the assigned id and the normalized
// currencies back onto cmd for the audit entry.
func (s *CreditRequestService) Create(ctx context.Context, cmd *ports.CreateCreditRequest) (ports.CreditRequestView, error) {
	if err := requireActor("actor_name", cmd.ActorName); err != nil {
		return ports.CreditRequestView{}, err
	}

	amount, err := domain.NewMoney(cmd.Amount, defaultCurrency(cmd.Currency))
	if err != nil {
		return ports.CreditRequestView{}, err
	}
	income, err := domain.NewMoney(cmd.MonthlyIncome, defaultCurrency(cmd.MonthlyIncomeCurrency))
	if err != nil {
		return ports.CreditRequestView{}, prefixField(err, "monthly_income")
	}
	cmd.Currency, cmd.MonthlyIncomeCurrency = amount.Currency(), income.Currency()

	if cmd.ID == uuid.Nil {
		cmd.ID = uuid.New()
	}
	cr, err := domain.NewCreditRequest(cmd.ID, cmd.UserID, amount, cmd.TermInMonths, income, cmd.WorkSeniorityYears, cmd.Purpose)
	if err != nil {
		return ports.CreditRequestView{}, err
	}

	if err := ctx.Err(); err != nil {
		return ports.CreditRequestView{}, err
	}
	if err := s.repo.Create(ctx, cr); err != nil {
		return ports.CreditRequestView{}, apperror.ErrDatabaseError(fmt.Errorf("create credit request: %w", err))
	}

	s.log.Info().
		Str("credit_request_id", cr.ID.String()).
		Str("user_id", cr.UserID.String()).
		Str("amount", cr.Amount.String()).
		Msg("credit request created")

	return ports.NewCreditRequestView(cr), nil
}

// UpdateStatus applies an analyst decision. Concurrent decisions overwrite each other.
func (s *CreditRequestService) UpdateStatus(ctx context.Context, cmd *ports.UpdateCreditRequestStatus) (ports.CreditRequestView, error) {
	if err := requireActor("approver_name", cmd.ApproverName); err != nil {
		return ports.CreditRequestView{}, err
	}

	cr, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return ports.CreditRequestView{}, apperror.ErrDatabaseError(fmt.Errorf("get credit request: %w", err))
	}
	if cr == nil {
		return ports.CreditRequestView{}, apperror.ErrNotFound("credit request")
	}

	if err := cr.UpdateStatus(cmd.Status, cmd.RejectionReason, cmd.ApproverName); err != nil {
		return ports.CreditRequestView{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, cr)
	if err != nil {
		return ports.CreditRequestView{}, apperror.ErrDatabaseError(fmt.Errorf("update credit request status: %w", err))
	}
	if !updated {
		return ports.CreditRequestView{}, apperror.ErrNotFound("credit request")
	}

	s.log.Info().
		Str("credit_request_id", cr.ID.String()).
		Str("status", cr.Status).
		Str("approved_by", cr.ApprovedBy).
		Msg("credit request status updated")

	return ports.NewCreditRequestView(cr), nil
}

// Delete reports false when the request does not exist.
func (s *CreditRequestService) Delete(ctx context.Context, cmd *ports.DeleteCreditRequest) (bool, error) {
	if err := requireActor("actor_name", cmd.ActorName); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, cmd.ID)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("delete credit request: %w", err))
	}
	return deleted, nil
}

func (s *CreditRequestService) Get(ctx context.Context, q ports.GetCreditRequest) (ports.CreditRequestDetailView, error) {
	detail, err := s.repo.GetDetail(ctx, q.ID)
	if err != nil {
		return ports.CreditRequestDetailView{}, apperror.ErrDatabaseError(fmt.Errorf("get credit request: %w", err))
	}
	if detail == nil {
		return ports.CreditRequestDetailView{}, apperror.ErrNotFound("credit request")
	}
	return ports.NewCreditRequestDetailView(detail), nil
}

func (s *CreditRequestService) ListMine(ctx context.Context, q ports.ListMyCreditRequests) ([]ports.CreditRequestView, error) {
	rows, err := s.repo.ListByUser(ctx, q.UserID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list user credit requests: %w", err))
	}

	views := make([]ports.CreditRequestView, len(rows))
	for i := range rows {
		views[i] = ports.NewCreditRequestView(&rows[i])
	}
	return views, nil
}

// ListPaged returns one page, newest first.
func (s *CreditRequestService) ListPaged(ctx context.Context, q ports.ListCreditRequests) (ports.PagedResult[ports.CreditRequestDetailView], error) {
	var empty ports.PagedResult[ports.CreditRequestDetailView]

	if q.Page < 1 {
		return empty, apperror.ValidationField("page", "page must be at least 1")
	}
	if q.Size < 1 || q.Size > MaxPageSize {
		return empty, apperror.ValidationField("size", fmt.Sprintf("size must be between 1 and %d", MaxPageSize))
	}

	rows, total, err := s.repo.ListPaged(ctx, ports.CreditRequestListParams{
		Status:   NormalizeStatus(q.Status),
		Page:     q.Page,
		PageSize: q.Size,
	})
	if err != nil {
		return empty, apperror.ErrDatabaseError(fmt.Errorf("list credit requests: %w", err))
	}

	items := make([]ports.CreditRequestDetailView, len(rows))
	for i := range rows {
		items[i] = ports.NewCreditRequestDetailView(&rows[i])
	}
	return ports.NewPagedResult(items, q.Page, q.Size, total), nil
}

// NormalizeStatus treats a blank filter as no filter.
func NormalizeStatus(status *string) *string {
	if status == nil {
		return nil
	}
	s := strings.TrimSpace(*status)
	if s == "" {
		return nil
	}
	return &s
}

// requireActor rejects a command with no one to attribute its audit entry to.
func requireActor(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.ValidationField(field, field+" cannot be blank")
	}
	return nil
}

// prefixField scopes a validation error raised for a nested value.
func prefixField(err error, prefix string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		return apperror.ValidationField(prefix+"_"+appErr.Field, appErr.Message)
	}
	return err
}

func defaultCurrency(c string) string {
	if strings.TrimSpace(c) == "" {
		return domain.DefaultCurrency
	}
	return c
}
