package rentals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
	"github.com/dukkanhq/dukkan-backend/pkg/logger"
	"github.com/dukkanhq/dukkan-backend/pkg/money"
)

// Service manages vendor rental spaces and the monthly rent payment flow.
//
// PayRent is a multi-write sequence over rows that cannot share one store
// transaction, so each dependent write checkpoints its phase on the history
// row. A payment interrupted between writes leaves a pending row naming
// exactly how far it got; Resume picks such a row up and finishes it.
type Service interface {
	CreateRental(ctx context.Context, input RentalInput) (*models.VendorRental, error)
	UpdateRental(ctx context.Context, id uuid.UUID, rentAmount decimal.Decimal, spaceName string) (*models.VendorRental, error)
	DeleteRental(ctx context.Context, id uuid.UUID) error
	ListRentals(ctx context.Context, ownerBusinessCode, branchName string) ([]models.VendorRental, error)

	PayRent(ctx context.Context, input PayRentInput) (*models.VendorRentalHistory, error)
	Resume(ctx context.Context, history *models.VendorRentalHistory) error
	Stats(ctx context.Context, input StatsInput) (*PeriodStats, error)
}

// RentalInput creates a vendor's claim on a named space. OwnerName is the
// owner's display name; it ends up in the payer-facing ledger reasons.
type RentalInput struct {
	OwnerBusinessCode  string
	OwnerName          string
	VendorBusinessCode string
	VendorName         string
	BranchName         string
	SpaceName          string
	RentAmount         decimal.Decimal
}

// PayRentInput identifies one rent period to settle.
type PayRentInput struct {
	OwnerBusinessCode  string
	VendorBusinessCode string
	BranchName         string
	Month              int
	Year               int
}

// StatsInput scopes the per-period rollup.
type StatsInput struct {
	OwnerBusinessCode string
	BranchName        string
	Month             int
	Year              int
}

// PeriodStats is the rent rollup for one month.
type PeriodStats struct {
	TotalSpaces   int             `json:"total_spaces"`
	PaidCount     int             `json:"paid_count"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingCount  int             `json:"pending_count"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires a rentals service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rentals repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) CreateRental(ctx context.Context, input RentalInput) (*models.VendorRental, error) {
	if err := validateRentalInput(input); err != nil {
		return nil, err
	}
	rental := &models.VendorRental{
		OwnerBusinessCode:  input.OwnerBusinessCode,
		OwnerName:          input.OwnerName,
		VendorBusinessCode: input.VendorBusinessCode,
		VendorName:         input.VendorName,
		BranchName:         input.BranchName,
		SpaceName:          input.SpaceName,
		RentAmount:         money.Round(input.RentAmount),
	}
	if err := s.repo.CreateRental(ctx, rental); err != nil {
		if IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, "vendor already rents a space in this branch")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating rental")
	}
	return rental, nil
}

func (s *service) UpdateRental(ctx context.Context, id uuid.UUID, rentAmount decimal.Decimal, spaceName string) (*models.VendorRental, error) {
	if rentAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rent amount must not be negative")
	}
	rental, err := s.repo.FindRentalByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding rental")
	}
	if rental == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
	}
	rental.RentAmount = money.Round(rentAmount)
	if spaceName != "" {
		rental.SpaceName = spaceName
	}
	if err := s.repo.UpdateRental(ctx, rental); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating rental")
	}
	return rental, nil
}

func (s *service) DeleteRental(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRental(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting rental")
	}
	return nil
}

func (s *service) ListRentals(ctx context.Context, ownerBusinessCode, branchName string) ([]models.VendorRental, error) {
	rentals, err := s.repo.ListRentals(ctx, ownerBusinessCode, branchName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing rentals")
	}
	return rentals, nil
}

// PayRent settles one (vendor, branch, month, year) period. A period already
// paid is rejected; a period left mid-flight by an interrupted earlier
// attempt is resumed in place so the payer does not wait for the
// reconciliation sweep. The unique index on the history table is what
// actually makes a concurrent second payment lose.
func (s *service) PayRent(ctx context.Context, input PayRentInput) (*models.VendorRentalHistory, error) {
	if err := validatePayRentInput(input); err != nil {
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithVendor(ctx, input.VendorBusinessCode)
		ctx = s.logg.WithBranch(ctx, input.BranchName)
	}

	existing, err := s.repo.FindHistory(ctx, input.VendorBusinessCode, input.BranchName, input.Month, input.Year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking rent period")
	}
	if existing != nil {
		if existing.Status == enums.RentalPaymentStatusPaid {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, "rent already paid for this period")
		}
		// An earlier attempt was interrupted mid-flight. Finish it now
		// instead of making the payer wait for the reconciliation sweep.
		if err := s.Resume(ctx, existing); err != nil {
			return existing, err
		}
		return existing, nil
	}

	rental, err := s.repo.FindRental(ctx, input.VendorBusinessCode, input.BranchName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving rental")
	}
	if rental == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no rental space for vendor in this branch")
	}

	history := &models.VendorRentalHistory{
		OwnerBusinessCode:  rental.OwnerBusinessCode,
		OwnerName:          rental.OwnerName,
		VendorBusinessCode: rental.VendorBusinessCode,
		VendorName:         rental.VendorName,
		BranchName:         rental.BranchName,
		SpaceName:          rental.SpaceName,
		Month:              input.Month,
		Year:               input.Year,
		RentAmount:         rental.RentAmount,
		Status:             enums.RentalPaymentStatusPending,
		Phase:              enums.RentalPaymentPhasePending,
	}
	if err := s.repo.CreateHistory(ctx, history); err != nil {
		if IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, "rent already recorded for this period")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording rent period")
	}

	if err := s.Resume(ctx, history); err != nil {
		// The pending row with its checkpointed phase stays behind for the
		// reconciliation job.
		return history, err
	}
	return history, nil
}

// Resume drives a pending history row through its remaining writes, skipping
// phases already checkpointed. Steps are at-least-once, not exactly-once: a
// crash after a ledger write but before its phase advance repeats that one
// write on the next resume.
func (s *service) Resume(ctx context.Context, history *models.VendorRentalHistory) error {
	if history == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "history row required")
	}
	if history.Status == enums.RentalPaymentStatusPaid {
		return nil
	}

	if history.Phase == enums.RentalPaymentPhasePending {
		if err := s.recordVendorExpense(ctx, history); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording vendor expense")
		}
		if err := s.repo.AdvancePhase(ctx, history.ID, enums.RentalPaymentPhaseVendorRecorded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advancing phase")
		}
		history.Phase = enums.RentalPaymentPhaseVendorRecorded
	}

	if history.Phase == enums.RentalPaymentPhaseVendorRecorded {
		if err := s.recordOwnerIncome(ctx, history); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording rental income")
		}
		if err := s.repo.AdvancePhase(ctx, history.ID, enums.RentalPaymentPhaseBothRecorded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advancing phase")
		}
		history.Phase = enums.RentalPaymentPhaseBothRecorded
	}

	if history.Phase == enums.RentalPaymentPhaseBothRecorded {
		paidAt := time.Now().UTC()
		if err := s.repo.MarkPaid(ctx, history.ID, paidAt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marking paid")
		}
		history.Status = enums.RentalPaymentStatusPaid
		history.Phase = enums.RentalPaymentPhasePaid
		history.PaidAt = &paidAt
		if s.logg != nil {
			s.logg.Info(ctx, "rent payment settled")
		}
	}
	return nil
}

func (s *service) recordVendorExpense(ctx context.Context, history *models.VendorRentalHistory) error {
	owner := history.OwnerName
	if owner == "" {
		owner = history.OwnerBusinessCode
	}
	reason := fmt.Sprintf("Rent paid to %s for %s at %s, %s %d",
		owner, history.SpaceName, history.BranchName, time.Month(history.Month), history.Year)
	return s.repo.CreateTransaction(ctx, &models.Transaction{
		BusinessCode:  history.VendorBusinessCode,
		BranchName:    history.BranchName,
		Type:          enums.TransactionTypeExpense,
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.TransactionStatusCompleted,
		Amount:        history.RentAmount,
		Reason:        &reason,
	})
}

func (s *service) recordOwnerIncome(ctx context.Context, history *models.VendorRentalHistory) error {
	reason := fmt.Sprintf("Rent from %s for %s, %s %d",
		history.VendorName, history.SpaceName, time.Month(history.Month), history.Year)
	return s.repo.CreateTransaction(ctx, &models.Transaction{
		BusinessCode:  history.OwnerBusinessCode,
		BranchName:    history.BranchName,
		Type:          enums.TransactionTypeRentalIncome,
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.TransactionStatusCompleted,
		Amount:        history.RentAmount,
		VendorCode:    &history.VendorBusinessCode,
		VendorName:    &history.VendorName,
		Reason:        &reason,
	})
}

// Stats rolls up one period. A space with no history row counts pending at
// its configured rent; a pending history row counts at the amount frozen on
// the row.
func (s *service) Stats(ctx context.Context, input StatsInput) (*PeriodStats, error) {
	if input.OwnerBusinessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner business code required")
	}
	if err := validatePeriod(input.Month, input.Year); err != nil {
		return nil, err
	}

	rentals, err := s.repo.ListRentals(ctx, input.OwnerBusinessCode, input.BranchName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing rentals")
	}
	histories, err := s.repo.ListHistories(ctx, input.OwnerBusinessCode, input.BranchName, input.Month, input.Year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing rent histories")
	}

	type periodKey struct{ vendor, branch string }
	byKey := make(map[periodKey]*models.VendorRentalHistory, len(histories))
	for i := range histories {
		h := &histories[i]
		byKey[periodKey{h.VendorBusinessCode, h.BranchName}] = h
	}

	stats := &PeriodStats{
		TotalSpaces:   len(rentals),
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, rental := range rentals {
		history := byKey[periodKey{rental.VendorBusinessCode, rental.BranchName}]
		if history != nil && history.Status == enums.RentalPaymentStatusPaid {
			stats.PaidCount++
			stats.PaidAmount = money.Add(stats.PaidAmount, history.RentAmount)
			continue
		}
		stats.PendingCount++
		if history != nil {
			stats.PendingAmount = money.Add(stats.PendingAmount, history.RentAmount)
		} else {
			stats.PendingAmount = money.Add(stats.PendingAmount, rental.RentAmount)
		}
	}
	return stats, nil
}

func validateRentalInput(input RentalInput) error {
	switch {
	case input.OwnerBusinessCode == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "owner business code required")
	case input.VendorBusinessCode == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor business code required")
	case input.BranchName == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "branch name required")
	case input.SpaceName == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "space name required")
	case input.RentAmount.IsNegative():
		return pkgerrors.New(pkgerrors.CodeValidation, "rent amount must not be negative")
	}
	return nil
}

func validatePayRentInput(input PayRentInput) error {
	switch {
	case input.VendorBusinessCode == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor business code required")
	case input.BranchName == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "branch name required")
	}
	return validatePeriod(input.Month, input.Year)
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	if year < 2000 || year > 2200 {
		return pkgerrors.New(pkgerrors.CodeValidation, "year out of range")
	}
	return nil
}
