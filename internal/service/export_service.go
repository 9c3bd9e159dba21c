package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"credit-app/internal/core/ports"
	"credit-app/pkg/apperror"
)

// ExportTimeLayout renders timestamps as dd/MM/yyyy HH:mm in UTC.
const ExportTimeLayout = "02/01/2006 15:04"

// ExportHeader is the fixed column order of a credit request export.
var ExportHeader = []string{
	"ID",
	"Username",
	"Email",
	"Amount",
	"Monthly Income",
	"Term (months)",
	"Work Seniority (years)",
	"Purpose",
	"Status",
	"Rejection Reason",
	"Approved By",
	"Created At",
	"Approved At",
	"Updated At",
}

// ExportService renders filtered credit requests through a TableEncoder.
type ExportService struct {
	repo          ports.CreditRequestRepository
	encoders      map[string]ports.TableEncoder
	defaultFormat string
	title         string
	now           func() time.Time
}

func NewExportService(repo ports.CreditRequestRepository, defaultFormat, title string, encoders ...ports.TableEncoder) *ExportService {
	byFormat := make(map[string]ports.TableEncoder, len(encoders))
	for _, enc := range encoders {
		byFormat[enc.Format()] = enc
	}
	return &ExportService{
		repo:          repo,
		encoders:      byFormat,
		defaultFormat: strings.ToLower(defaultFormat),
		title:         title,
		now:           time.Now,
	}
}

// Export loads every matching row, unpaginated, and encodes it.
func (s *ExportService) Export(ctx context.Context, q ports.ExportCreditRequests) (ports.ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(q.Format))
	if format == "" {
		format = s.defaultFormat
	}
	enc, ok := s.encoders[format]
	if !ok {
		return ports.ExportFile{}, apperror.ValidationField("format", fmt.Sprintf("unsupported export format %q", q.Format))
	}

	rows, err := s.repo.ListForExport(ctx, NormalizeStatus(q.Status))
	if err != nil {
		return ports.ExportFile{}, apperror.ErrDatabaseError(fmt.Errorf("list credit requests for export: %w", err))
	}

	now := s.now().UTC()
	data, err := enc.Encode(BuildExportTable(s.title, rows, now))
	if err != nil {
		return ports.ExportFile{}, apperror.InternalError(fmt.Errorf("encode %s export: %w", format, err))
	}

	return ports.ExportFile{
		FileName:    fmt.Sprintf("credit_requests_%s.%s", now.Format("20060102_150405"), format),
		ContentType: enc.ContentType(),
		Data:        data,
	}, nil
}

// BuildExportTable projects rows in ExportHeader order. Missing values become "".
func BuildExportTable(title string, rows []ports.CreditRequestDetail, generatedAt time.Time) ports.ExportTable {
	out := make([][]string, len(rows))
	for i := range rows {
		r := &rows[i]
		out[i] = []string{
			r.ID.String(),
			r.Username,
			r.Email,
			r.Amount.Amount().StringFixed(2),
			r.MonthlyIncome.Amount().StringFixed(2),
			fmt.Sprint(r.TermInMonths),
			fmt.Sprint(r.WorkSeniorityYears),
			r.Purpose,
			r.Status,
			r.RejectionReason,
			r.ApprovedBy,
			formatExportTime(&r.CreatedAt),
			formatExportTime(r.ApprovedAt),
			formatExportTime(r.UpdatedAt),
		}
	}

	return ports.ExportTable{
		Title:          title,
		Header:         ExportHeader,
		Rows:           out,
		NumericColumns: []int{3, 4, 5, 6},
		GeneratedAt:    generatedAt,
	}
}

func formatExportTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(ExportTimeLayout)
}
