package rentals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

func stuckRow(phase enums.RentalPaymentPhase) models.VendorRentalHistory {
	return models.VendorRentalHistory{
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
		Phase:              phase,
	}
}

func TestReconcileJob_ResumesStuckRows(t *testing.T) {
	repo := &fakeRepository{
		listStuckFn: func(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error) {
			return []models.VendorRentalHistory{
				stuckRow(enums.RentalPaymentPhaseVendorRecorded),
				stuckRow(enums.RentalPaymentPhaseBothRecorded),
			}, nil
		},
	}
	svc := newTestService(t, repo)
	job := NewReconcileJob(svc, repo, nil, 0)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The vendor_recorded row needs one more transaction; the both_recorded
	// row needs none.
	if len(repo.createdTxs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(repo.createdTxs))
	}
	if !repo.paid {
		t.Fatal("expected rows marked paid")
	}
}

func TestReconcileJob_CollectsFailuresAndContinues(t *testing.T) {
	calls := 0
	repo := &fakeRepository{
		listStuckFn: func(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error) {
			return []models.VendorRentalHistory{
				stuckRow(enums.RentalPaymentPhaseVendorRecorded),
				stuckRow(enums.RentalPaymentPhaseVendorRecorded),
			}, nil
		},
		createTxFn: func(ctx context.Context, tx *models.Transaction) error {
			calls++
			if calls == 1 {
				return errors.New("store down")
			}
			return nil
		},
	}
	svc := newTestService(t, repo)
	job := NewReconcileJob(svc, repo, nil, 0)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected the first row's failure reported")
	}
	// The sweep continued past the failed row.
	if calls != 2 {
		t.Fatalf("expected both rows attempted, got %d attempts", calls)
	}
}

func TestReconcileJob_ListFailurePropagates(t *testing.T) {
	repo := &fakeRepository{
		listStuckFn: func(ctx context.Context, before time.Time) ([]models.VendorRentalHistory, error) {
			return nil, errors.New("store down")
		},
	}
	svc := newTestService(t, repo)
	job := NewReconcileJob(svc, repo, nil, 0)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
