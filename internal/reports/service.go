package reports

import (
	"context"
	"sync/atomic"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
	"github.com/dukkanhq/dukkan-backend/pkg/logger"
)

// Service runs report queries against the row store and folds the rows into
// summaries. A remote failure aborts the whole report with a typed error; no
// partial summaries are ever returned.
//
// Summary and Monthly each carry their own generation number. When a newer
// query of the same view is issued before an older one resolves, the older
// response comes back as CodeSuperseded so the caller keeps showing only the
// latest filter's data. Queries of a different view never supersede each
// other: a monthly series refresh must not discard an in-flight summary.
type Service interface {
	Summary(ctx context.Context, filter Filter) (*TransactionSummary, error)
	Monthly(ctx context.Context, filter Filter) (*MonthlySeries, error)
	TopProducts(ctx context.Context, filter TopProductsFilter) ([]ProductSales, error)
	Branches(ctx context.Context, businessCode string) ([]models.Branch, error)
}

// ServiceParams configure the reports service.
type ServiceParams struct {
	Repo    Repository
	Logger  *logger.Logger
	MaxRows int
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	maxRows int

	summaryGen atomic.Int64
	monthlyGen atomic.Int64
}

// NewService wires a reports service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports repository required")
	}
	maxRows := params.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &service{
		repo:    params.Repo,
		logg:    params.Logger,
		maxRows: maxRows,
	}, nil
}

func (s *service) Summary(ctx context.Context, filter Filter) (*TransactionSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	gen := s.summaryGen.Add(1)

	transactions, err := s.repo.ListTransactions(ctx, filter, s.maxRows)
	if err != nil {
		return nil, s.queryFailed(ctx, err, "list transactions")
	}
	if s.summaryGen.Load() != gen {
		return nil, pkgerrors.New(pkgerrors.CodeSuperseded, "summary superseded by a newer summary query")
	}
	return Aggregate(transactions), nil
}

func (s *service) Monthly(ctx context.Context, filter Filter) (*MonthlySeries, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	gen := s.monthlyGen.Add(1)

	transactions, err := s.repo.ListTransactions(ctx, filter, s.maxRows)
	if err != nil {
		return nil, s.queryFailed(ctx, err, "list transactions")
	}
	if s.monthlyGen.Load() != gen {
		return nil, pkgerrors.New(pkgerrors.CodeSuperseded, "monthly series superseded by a newer monthly query")
	}
	return MonthlySales(transactions), nil
}

func (s *service) TopProducts(ctx context.Context, filter TopProductsFilter) ([]ProductSales, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	receiptIDs, err := s.repo.ListReceiptIDs(ctx, filter)
	if err != nil {
		return nil, s.queryFailed(ctx, err, "list receipts")
	}
	lines, err := s.repo.ListSoldProducts(ctx, receiptIDs)
	if err != nil {
		return nil, s.queryFailed(ctx, err, "list sold products")
	}
	return reduceTopProducts(lines, filter), nil
}

func (s *service) Branches(ctx context.Context, businessCode string) ([]models.Branch, error) {
	if businessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	branches, err := s.repo.ListBranches(ctx, businessCode)
	if err != nil {
		return nil, s.queryFailed(ctx, err, "list branches")
	}
	return branches, nil
}

func (s *service) queryFailed(ctx context.Context, err error, msg string) error {
	if s.logg != nil {
		s.logg.Error(ctx, "report query failed", err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
