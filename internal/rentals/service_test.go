package rentals

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
)

type fakeRepository struct {
	findHistoryFn   func(ctx context.Context, vendor, branch string, month, year int) (*models.VendorRentalHistory, error)
	findRentalFn    func(ctx context.Context, vendor, branch string) (*models.VendorRental, error)
	createHistoryFn func(ctx context.Context, history *models.VendorRentalHistory) error
	createTxFn      func(ctx context.Context, tx *models.Transaction) error
	listRentalsFn   func(ctx context.Context, owner, branch string) ([]models.VendorRental, error)
	listHistoriesFn func(ctx context.Context, owner, branch string, month, year int) ([]models.VendorRentalHistory, error)
	listStuckFn     func(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error)
	advancePhaseFn  func(ctx context.Context, id uuid.UUID, phase enums.RentalPaymentPhase) error

	createdTxs []models.Transaction
	histories  int
	phases     []enums.RentalPaymentPhase
	paid       bool
}

func (f *fakeRepository) CreateRental(ctx context.Context, rental *models.VendorRental) error {
	return nil
}

func (f *fakeRepository) UpdateRental(ctx context.Context, rental *models.VendorRental) error {
	return nil
}

func (f *fakeRepository) DeleteRental(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeRepository) FindRental(ctx context.Context, vendor, branch string) (*models.VendorRental, error) {
	if f.findRentalFn != nil {
		return f.findRentalFn(ctx, vendor, branch)
	}
	return nil, nil
}

func (f *fakeRepository) FindRentalByID(ctx context.Context, id uuid.UUID) (*models.VendorRental, error) {
	return nil, nil
}

func (f *fakeRepository) ListRentals(ctx context.Context, owner, branch string) ([]models.VendorRental, error) {
	if f.listRentalsFn != nil {
		return f.listRentalsFn(ctx, owner, branch)
	}
	return nil, nil
}

func (f *fakeRepository) CreateHistory(ctx context.Context, history *models.VendorRentalHistory) error {
	history.ID = uuid.New()
	if f.createHistoryFn != nil {
		return f.createHistoryFn(ctx, history)
	}
	f.histories++
	return nil
}

func (f *fakeRepository) FindHistory(ctx context.Context, vendor, branch string, month, year int) (*models.VendorRentalHistory, error) {
	if f.findHistoryFn != nil {
		return f.findHistoryFn(ctx, vendor, branch, month, year)
	}
	return nil, nil
}

func (f *fakeRepository) ListHistories(ctx context.Context, owner, branch string, month, year int) ([]models.VendorRentalHistory, error) {
	if f.listHistoriesFn != nil {
		return f.listHistoriesFn(ctx, owner, branch, month, year)
	}
	return nil, nil
}

func (f *fakeRepository) ListStuckHistories(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error) {
	if f.listStuckFn != nil {
		return f.listStuckFn(ctx, before)
	}
	return nil, nil
}

func (f *fakeRepository) AdvancePhase(ctx context.Context, id uuid.UUID, phase enums.RentalPaymentPhase) error {
	if f.advancePhaseFn != nil {
		if err := f.advancePhaseFn(ctx, id, phase); err != nil {
			return err
		}
	}
	f.phases = append(f.phases, phase)
	return nil
}

func (f *fakeRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	f.paid = true
	return nil
}

func (f *fakeRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if f.createTxFn != nil {
		if err := f.createTxFn(ctx, tx); err != nil {
			return err
		}
	}
	f.createdTxs = append(f.createdTxs, *tx)
	return nil
}

func testRental() *models.VendorRental {
	return &models.VendorRental{
		ID:                 uuid.New(),
		OwnerBusinessCode:  "OWNER1",
		OwnerName:          "Sahwa Hypermarket",
		VendorBusinessCode: "VEND1",
		VendorName:         "Al Noor Textiles",
		BranchName:         "Ruwi",
		SpaceName:          "A-12",
		RentAmount:         decimal.RequireFromString("45.500"),
	}
}

func payInput() PayRentInput {
	return PayRentInput{
		OwnerBusinessCode:  "OWNER1",
		VendorBusinessCode: "VEND1",
		BranchName:         "Ruwi",
		Month:              3,
		Year:               2024,
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return svc
}

func TestPayRent_HappyPath(t *testing.T) {
	repo := &fakeRepository{
		findRentalFn: func(ctx context.Context, vendor, branch string) (*models.VendorRental, error) {
			return testRental(), nil
		},
	}
	svc := newTestService(t, repo)

	history, err := svc.PayRent(context.Background(), payInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.Status != enums.RentalPaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", history.Status)
	}
	if history.PaidAt == nil {
		t.Fatal("expected paid_at set")
	}
	if len(repo.createdTxs) != 2 {
		t.Fatalf("expected vendor expense plus owner income, got %d transactions", len(repo.createdTxs))
	}
	if repo.createdTxs[0].BusinessCode != "VEND1" || repo.createdTxs[0].Type != enums.TransactionTypeExpense {
		t.Fatalf("unexpected vendor-side transaction: %+v", repo.createdTxs[0])
	}
	if repo.createdTxs[1].BusinessCode != "OWNER1" || repo.createdTxs[1].Type != enums.TransactionTypeRentalIncome {
		t.Fatalf("unexpected owner-side transaction: %+v", repo.createdTxs[1])
	}
	if !repo.paid {
		t.Fatal("expected the history row marked paid")
	}
}

func TestPayRent_DuplicatePeriodRejected(t *testing.T) {
	repo := &fakeRepository{
		findHistoryFn: func(ctx context.Context, vendor, branch string, month, year int) (*models.VendorRentalHistory, error) {
			return &models.VendorRentalHistory{Status: enums.RentalPaymentStatusPaid}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.PayRent(context.Background(), payInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if len(repo.createdTxs) != 0 {
		t.Fatal("expected no transactions for a duplicate payment")
	}
}

func TestPayRent_RetryResumesStuckPendingPeriod(t *testing.T) {
	// An earlier attempt recorded the vendor expense and then died. The retry
	// must finish the payment in place rather than reject it or insert a
	// second history row.
	stuck := &models.VendorRentalHistory{
		ID:                 uuid.New(),
		OwnerBusinessCode:  "OWNER1",
		OwnerName:          "Sahwa Hypermarket",
		VendorBusinessCode: "VEND1",
		VendorName:         "Al Noor Textiles",
		BranchName:         "Ruwi",
		SpaceName:          "A-12",
		Month:              3,
		Year:               2024,
		RentAmount:         decimal.RequireFromString("45.500"),
		Status:             enums.RentalPaymentStatusPending,
		Phase:              enums.RentalPaymentPhaseVendorRecorded,
	}
	repo := &fakeRepository{
		findHistoryFn: func(ctx context.Context, vendor, branch string, month, year int) (*models.VendorRentalHistory, error) {
			return stuck, nil
		},
	}
	svc := newTestService(t, repo)

	history, err := svc.PayRent(context.Background(), payInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history != stuck {
		t.Fatal("expected the existing row finished in place")
	}
	if history.Status != enums.RentalPaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", history.Status)
	}
	if repo.histories != 0 {
		t.Fatalf("expected no new history row, got %d", repo.histories)
	}
	if len(repo.createdTxs) != 1 || repo.createdTxs[0].Type != enums.TransactionTypeRentalIncome {
		t.Fatalf("expected only the missing owner income recorded, got %+v", repo.createdTxs)
	}
}

func TestPayRent_ReasonsNameBothParties(t *testing.T) {
	repo := &fakeRepository{
		findRentalFn: func(ctx context.Context, vendor, branch string) (*models.VendorRental, error) {
			return testRental(), nil
		},
	}
	svc := newTestService(t, repo)

	if _, err := svc.PayRent(context.Background(), payInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.createdTxs) != 2 {
		t.Fatalf("expected two transactions, got %d", len(repo.createdTxs))
	}
	vendorReason := *repo.createdTxs[0].Reason
	if !strings.Contains(vendorReason, "Sahwa Hypermarket") {
		t.Fatalf("expected the vendor-side reason to name the owner, got %q", vendorReason)
	}
	ownerReason := *repo.createdTxs[1].Reason
	if !strings.Contains(ownerReason, "Al Noor Textiles") {
		t.Fatalf("expected the owner-side reason to name the vendor, got %q", ownerReason)
	}
}

func TestPayRent_StoreUniqueIndexBackstopsRace(t *testing.T) {
	// The pre-check sees no row, but a concurrent payment lands first and the
	// insert collides with the unique index.
	repo := &fakeRepository{
		findRentalFn: func(ctx context.Context, vendor, branch string) (*models.VendorRental, error) {
			return testRental(), nil
		},
		createHistoryFn: func(ctx context.Context, history *models.VendorRentalHistory) error {
			return errors.New(`duplicate key value violates unique constraint "uq_rental_period"`)
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.PayRent(context.Background(), payInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestPayRent_UnknownSpace(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	_, err := svc.PayRent(context.Background(), payInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestPayRent_FailureLeavesCheckpointedRow(t *testing.T) {
	// Vendor expense lands, then the owner-side write fails. The row must be
	// left at vendor_recorded for the reconciliation job.
	calls := 0
	repo := &fakeRepository{
		findRentalFn: func(ctx context.Context, vendor, branch string) (*models.VendorRental, error) {
			return testRental(), nil
		},
		createTxFn: func(ctx context.Context, tx *models.Transaction) error {
			calls++
			if calls == 2 {
				return errors.New("store down")
			}
			return nil
		},
	}
	svc := newTestService(t, repo)

	history, err := svc.PayRent(context.Background(), payInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if history == nil || history.Phase != enums.RentalPaymentPhaseVendorRecorded {
		t.Fatalf("expected row checkpointed at vendor_recorded, got %+v", history)
	}
	if repo.paid {
		t.Fatal("expected the row left unpaid")
	}
}

func TestResume_FromEachPhase(t *testing.T) {
	cases := []struct {
		name    string
		phase   enums.RentalPaymentPhase
		wantTxs int
	}{
		{"pending", enums.RentalPaymentPhasePending, 2},
		{"vendor_recorded", enums.RentalPaymentPhaseVendorRecorded, 1},
		{"both_recorded", enums.RentalPaymentPhaseBothRecorded, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepository{}
			svc := newTestService(t, repo)

			history := &models.VendorRentalHistory{
				ID:                 uuid.New(),
				OwnerBusinessCode:  "OWNER1",
				VendorBusinessCode: "VEND1",
				VendorName:         "Al Noor Textiles",
				BranchName:         "Ruwi",
				SpaceName:          "A-12",
				Month:              3,
				Year:               2024,
				RentAmount:         decimal.NewFromInt(45),
				Status:             enums.RentalPaymentStatusPending,
				Phase:              tc.phase,
			}
			if err := svc.Resume(context.Background(), history); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.createdTxs) != tc.wantTxs {
				t.Fatalf("expected %d transactions, got %d", tc.wantTxs, len(repo.createdTxs))
			}
			if history.Status != enums.RentalPaymentStatusPaid {
				t.Fatalf("expected paid status, got %s", history.Status)
			}
		})
	}
}

func TestResume_PaidRowIsNoop(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	history := &models.VendorRentalHistory{
		Status: enums.RentalPaymentStatusPaid,
		Phase:  enums.RentalPaymentPhasePaid,
	}
	if err := svc.Resume(context.Background(), history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.createdTxs) != 0 || repo.paid {
		t.Fatal("expected no writes for a settled row")
	}
}

func TestResume_RepeatsWriteWhenPhaseAdvanceWasLost(t *testing.T) {
	// The vendor expense lands but the phase advance does not, so the next
	// resume starts from the pending checkpoint and records the expense a
	// second time. Each step is at-least-once, never silently skipped.
	failOnce := true
	repo := &fakeRepository{
		advancePhaseFn: func(ctx context.Context, id uuid.UUID, phase enums.RentalPaymentPhase) error {
			if failOnce && phase == enums.RentalPaymentPhaseVendorRecorded {
				failOnce = false
				return errors.New("store down")
			}
			return nil
		},
	}
	svc := newTestService(t, repo)

	history := &models.VendorRentalHistory{
		ID:                 uuid.New(),
		OwnerBusinessCode:  "OWNER1",
		VendorBusinessCode: "VEND1",
		VendorName:         "Al Noor Textiles",
		BranchName:         "Ruwi",
		SpaceName:          "A-12",
		Month:              3,
		Year:               2024,
		RentAmount:         decimal.NewFromInt(45),
		Status:             enums.RentalPaymentStatusPending,
		Phase:              enums.RentalPaymentPhasePending,
	}
	if err := svc.Resume(context.Background(), history); !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if history.Phase != enums.RentalPaymentPhasePending {
		t.Fatalf("expected the checkpoint untouched, got %s", history.Phase)
	}

	if err := svc.Resume(context.Background(), history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expenses := 0
	for _, tx := range repo.createdTxs {
		if tx.Type == enums.TransactionTypeExpense {
			expenses++
		}
	}
	if expenses != 2 {
		t.Fatalf("expected the vendor expense recorded twice, got %d", expenses)
	}
	if history.Status != enums.RentalPaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", history.Status)
	}
}

func TestStats_CountsMissingHistoryAsPending(t *testing.T) {
	rentalA := testRental()
	rentalB := testRental()
	rentalB.VendorBusinessCode = "VEND2"
	rentalB.VendorName = "Muscat Dates"
	rentalB.RentAmount = decimal.NewFromInt(30)

	paidAt := time.Now()
	repo := &fakeRepository{
		listRentalsFn: func(ctx context.Context, owner, branch string) ([]models.VendorRental, error) {
			return []models.VendorRental{*rentalA, *rentalB}, nil
		},
		listHistoriesFn: func(ctx context.Context, owner, branch string, month, year int) ([]models.VendorRentalHistory, error) {
			return []models.VendorRentalHistory{{
				VendorBusinessCode: rentalA.VendorBusinessCode,
				BranchName:         rentalA.BranchName,
				RentAmount:         rentalA.RentAmount,
				Status:             enums.RentalPaymentStatusPaid,
				PaidAt:             &paidAt,
			}}, nil
		},
	}
	svc := newTestService(t, repo)

	stats, err := svc.Stats(context.Background(), StatsInput{
		OwnerBusinessCode: "OWNER1",
		Month:             3,
		Year:              2024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalSpaces != 2 || stats.PaidCount != 1 || stats.PendingCount != 1 {
		t.Fatalf("unexpected rollup: %+v", stats)
	}
	if !stats.PaidAmount.Equal(decimal.RequireFromString("45.5")) {
		t.Fatalf("unexpected paid amount: %s", stats.PaidAmount)
	}
	if !stats.PendingAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected pending amount: %s", stats.PendingAmount)
	}
}

func TestStats_RejectsBadPeriod(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})
	_, err := svc.Stats(context.Background(), StatsInput{OwnerBusinessCode: "OWNER1", Month: 13, Year: 2024})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRental_DuplicateSpace(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(&createFailRepo{fakeRepository: repo}, nil)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	_, err = svc.CreateRental(context.Background(), RentalInput{
		OwnerBusinessCode:  "OWNER1",
		VendorBusinessCode: "VEND1",
		BranchName:         "Ruwi",
		SpaceName:          "A-12",
		RentAmount:         decimal.NewFromInt(45),
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

type createFailRepo struct {
	*fakeRepository
}

func (r *createFailRepo) CreateRental(ctx context.Context, rental *models.VendorRental) error {
	return errors.New("UNIQUE constraint failed: vendor_rentals.vendor_business_code")
}
