package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
)

const creditRequestColumns = `cr.id, cr.user_id, cr.amount::text, cr.amount_currency, cr.term_in_months,
		cr.monthly_income::text, cr.monthly_income_currency, cr.work_seniority_years, cr.purpose,
		cr.status, cr.rejection_reason, cr.approved_by, cr.approved_at, cr.created_at, cr.updated_at`

const creditRequestOrder = `ORDER BY cr.created_at DESC, cr.id DESC`

// CreditRequestRepo implements ports.CreditRequestRepository.
type CreditRequestRepo struct {
	pool Pool
}

func NewCreditRequestRepo(pool Pool) *CreditRequestRepo {
	return &CreditRequestRepo{pool: pool}
}

// Create inserts a new credit request.
func (r *CreditRequestRepo) Create(ctx context.Context, cr *domain.CreditRequest) error {
	query := `INSERT INTO credit_requests (id, user_id, amount, amount_currency, term_in_months,
		monthly_income, monthly_income_currency, work_seniority_years, purpose,
		status, rejection_reason, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		cr.ID, cr.UserID, cr.Amount.Amount().String(), cr.Amount.Currency(), cr.TermInMonths,
		cr.MonthlyIncome.Amount().String(), cr.MonthlyIncome.Currency(), cr.WorkSeniorityYears, cr.Purpose,
		cr.Status, cr.RejectionReason, cr.ApprovedBy, cr.ApprovedAt, cr.CreatedAt, cr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit request: %w", translate(err))
	}
	return nil
}

// GetByID fetches a credit request by id.
func (r *CreditRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error) {
	query := `SELECT ` + creditRequestColumns + ` FROM credit_requests cr WHERE cr.id = $1`

	cr, err := scanCreditRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit request by id: %w", err)
	}
	return cr, nil
}

// GetDetail fetches a credit request joined with its requester.
func (r *CreditRequestRepo) GetDetail(ctx context.Context, id uuid.UUID) (*ports.CreditRequestDetail, error) {
	query := `SELECT ` + creditRequestColumns + `, u.username, u.email
		FROM credit_requests cr JOIN users u ON u.id = cr.user_id WHERE cr.id = $1`

	d, err := scanCreditRequestDetail(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit request detail: %w", err)
	}
	return d, nil
}

// UpdateStatus writes the decision fields unconditionally and reports
// whether the row still existed.
func (r *CreditRequestRepo) UpdateStatus(ctx context.Context, cr *domain.CreditRequest) (bool, error) {
	query := `UPDATE credit_requests
		SET status=$1, rejection_reason=$2, approved_by=$3, approved_at=$4, updated_at=$5
		WHERE id=$6`

	tag, err := r.pool.Exec(ctx, query,
		cr.Status, cr.RejectionReason, cr.ApprovedBy, cr.ApprovedAt, cr.UpdatedAt, cr.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update credit request status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a credit request and reports whether it existed.
func (r *CreditRequestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete credit request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns the requests owned by userID, newest first.
func (r *CreditRequestRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CreditRequest, error) {
	query := `SELECT ` + creditRequestColumns + ` FROM credit_requests cr WHERE cr.user_id = $1 ` + creditRequestOrder

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list credit requests by user: %w", err)
	}
	defer rows.Close()

	var out []domain.CreditRequest
	for rows.Next() {
		cr, err := scanCreditRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credit request: %w", err)
		}
		out = append(out, *cr)
	}
	return out, rows.Err()
}

// ListPaged returns one page of filtered credit requests with the filtered total.
func (r *CreditRequestRepo) ListPaged(ctx context.Context, params ports.CreditRequestListParams) ([]ports.CreditRequestDetail, int64, error) {
	where, args := statusFilter(params.Status)
	argIdx := len(args) + 1

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM credit_requests cr %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count credit requests: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s, u.username, u.email
		FROM credit_requests cr JOIN users u ON u.id = cr.user_id %s %s LIMIT $%d OFFSET $%d`,
		creditRequestColumns, where, creditRequestOrder, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	items, err := r.queryDetails(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list credit requests: %w", err)
	}
	return items, total, nil
}

// ListForExport returns every filtered credit request with its requester.
func (r *CreditRequestRepo) ListForExport(ctx context.Context, status *string) ([]ports.CreditRequestDetail, error) {
	where, args := statusFilter(status)
	query := fmt.Sprintf(`SELECT %s, u.username, u.email
		FROM credit_requests cr JOIN users u ON u.id = cr.user_id %s %s`,
		creditRequestColumns, where, creditRequestOrder)

	items, err := r.queryDetails(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit requests for export: %w", err)
	}
	return items, nil
}

func (r *CreditRequestRepo) queryDetails(ctx context.Context, query string, args ...any) ([]ports.CreditRequestDetail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.CreditRequestDetail
	for rows.Next() {
		d, err := scanCreditRequestDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func statusFilter(status *string) (string, []any) {
	if status == nil {
		return "", nil
	}
	return "WHERE cr.status = $1", []any{*status}
}

// creditRequestScan holds the raw column values before money is rebuilt.
type creditRequestScan struct {
	cr                     domain.CreditRequest
	amount, amountCurrency string
	income, incomeCurrency string
}

func (s *creditRequestScan) dest() []any {
	return []any{
		&s.cr.ID, &s.cr.UserID, &s.amount, &s.amountCurrency, &s.cr.TermInMonths,
		&s.income, &s.incomeCurrency, &s.cr.WorkSeniorityYears, &s.cr.Purpose,
		&s.cr.Status, &s.cr.RejectionReason, &s.cr.ApprovedBy, &s.cr.ApprovedAt,
		&s.cr.CreatedAt, &s.cr.UpdatedAt,
	}
}

func (s *creditRequestScan) finish() (*domain.CreditRequest, error) {
	var err error
	if s.cr.Amount, err = parseMoney(s.amount, s.amountCurrency); err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if s.cr.MonthlyIncome, err = parseMoney(s.income, s.incomeCurrency); err != nil {
		return nil, fmt.Errorf("monthly income: %w", err)
	}
	return &s.cr, nil
}

func scanCreditRequest(row pgx.Row) (*domain.CreditRequest, error) {
	var s creditRequestScan
	if err := row.Scan(s.dest()...); err != nil {
		return nil, err
	}
	return s.finish()
}

func scanCreditRequestDetail(row pgx.Row) (*ports.CreditRequestDetail, error) {
	var (
		s               creditRequestScan
		username, email string
	)
	if err := row.Scan(append(s.dest(), &username, &email)...); err != nil {
		return nil, err
	}
	cr, err := s.finish()
	if err != nil {
		return nil, err
	}
	return &ports.CreditRequestDetail{CreditRequest: *cr, Username: username, Email: email}, nil
}

func parseMoney(amount, currency string) (domain.Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(d, currency)
}
