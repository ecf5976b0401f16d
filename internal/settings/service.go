package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

// Service reads and writes per-tenant configuration. A missing row is never
// an error: callers always get a usable settings object.
type Service interface {
	Get(ctx context.Context, businessCode string) (*models.BusinessSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.BusinessSettings, error)
}

type service struct {
	repo Repository
}

// UpdateInput carries owner-editable settings values.
type UpdateInput struct {
	BusinessCode            string
	CommissionEnabled       bool
	CommissionRate          decimal.Decimal
	MinimumCommissionAmount decimal.Decimal
	TaxEnabled              bool
	TaxRate                 decimal.Decimal
	ReceiptHeader           string
	ReceiptFooter           string
	LogoURL                 string
}

// NewService wires a settings service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings repository required")
	}
	return &service{repo: repo}, nil
}

// Defaults synthesizes the settings a business gets before it configures
// anything: commission and tax disabled, zero rates.
func Defaults(businessCode string) *models.BusinessSettings {
	return &models.BusinessSettings{
		BusinessCode:            businessCode,
		CommissionEnabled:       false,
		CommissionRate:          decimal.Zero,
		MinimumCommissionAmount: decimal.Zero,
		TaxEnabled:              false,
		TaxRate:                 decimal.Zero,
	}
}

func (s *service) Get(ctx context.Context, businessCode string) (*models.BusinessSettings, error) {
	if businessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}

	existing, err := s.repo.FindByBusinessCode(ctx, businessCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load business settings")
	}
	if existing != nil {
		return existing, nil
	}

	// Lazy creation: persist the defaults so later reads are stable, but
	// never fail the caller if the write loses a race or errors.
	defaults := Defaults(businessCode)
	if err := s.repo.Upsert(ctx, defaults); err != nil {
		return Defaults(businessCode), nil
	}
	return defaults, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.BusinessSettings, error) {
	if input.BusinessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	if input.CommissionRate.IsNegative() || input.TaxRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rates must not be negative")
	}
	if input.MinimumCommissionAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum commission amount must not be negative")
	}

	settings := &models.BusinessSettings{
		BusinessCode:            input.BusinessCode,
		CommissionEnabled:       input.CommissionEnabled,
		CommissionRate:          input.CommissionRate,
		MinimumCommissionAmount: money.Round(input.MinimumCommissionAmount),
		TaxEnabled:              input.TaxEnabled,
		TaxRate:                 input.TaxRate,
		ReceiptHeader:           input.ReceiptHeader,
		ReceiptFooter:           input.ReceiptFooter,
		LogoURL:                 input.LogoURL,
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save business settings")
	}
	return settings, nil
}
