package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
)

// The production schema lives in the goose migrations; this mirror keeps the
// postgres-only column defaults out so the tests can run on sqlite.
const testSchema = `
CREATE TABLE transactions (
    id text PRIMARY KEY,
    business_code text NOT NULL,
    branch_name text NOT NULL,
    type text NOT NULL,
    payment_method text NOT NULL,
    status text NOT NULL DEFAULT 'completed',
    amount numeric NOT NULL,
    owner_profit numeric,
    vendor_code text,
    vendor_name text,
    customer_name text,
    customer_phone text,
    reason text,
    details text,
    created_at datetime NOT NULL
);
CREATE TABLE branches (
    id text PRIMARY KEY,
    business_code text NOT NULL,
    name text NOT NULL,
    created_at datetime NOT NULL
);
`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.Exec(testSchema).Error; err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return conn
}

func storedTx(business, branch, customer string, amount string, at time.Time) models.Transaction {
	return models.Transaction{
		ID:            uuid.New(),
		BusinessCode:  business,
		BranchName:    branch,
		Type:          enums.TransactionTypeSale,
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.TransactionStatusCompleted,
		Amount:        decimal.RequireFromString(amount),
		CustomerName:  &customer,
		CreatedAt:     at,
	}
}

func TestListTransactions_FiltersAndOrders(t *testing.T) {
	conn := newTestDB(t)
	day := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		storedTx("B100", "Ruwi", "Ahmed Al Balushi", "5", day),
		storedTx("B100", "Ruwi", "Fatma", "20", day.Add(time.Hour)),
		storedTx("B100", "Seeb", "Salim", "50", day),
		storedTx("B200", "Ruwi", "Ahmed", "7", day),
	}
	if err := conn.Create(&rows).Error; err != nil {
		t.Fatalf("seeding rows: %v", err)
	}

	repo := NewRepository(conn)
	got, err := repo.ListTransactions(context.Background(), Filter{
		BusinessCode:   "B100",
		Start:          day,
		End:            day,
		BranchName:     "Ruwi",
		SortBy:         SortByAmount,
		SortDescending: true,
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if !got[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected descending amount order, got %s first", got[0].Amount)
	}
}

func TestListTransactions_SearchIsCaseInsensitive(t *testing.T) {
	conn := newTestDB(t)
	day := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		storedTx("B100", "Ruwi", "Ahmed Al Balushi", "5", day),
		storedTx("B100", "Ruwi", "Fatma", "20", day),
	}
	if err := conn.Create(&rows).Error; err != nil {
		t.Fatalf("seeding rows: %v", err)
	}

	repo := NewRepository(conn)
	got, err := repo.ListTransactions(context.Background(), Filter{
		BusinessCode: "B100",
		Start:        day,
		End:          day,
		Search:       "balushi",
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || *got[0].CustomerName != "Ahmed Al Balushi" {
		t.Fatalf("expected the Balushi row, got %d rows", len(got))
	}
}

func TestListTransactions_RowCap(t *testing.T) {
	conn := newTestDB(t)
	day := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	var rows []models.Transaction
	for i := 0; i < 10; i++ {
		rows = append(rows, storedTx("B100", "Ruwi", "Customer", "1", day.Add(time.Duration(i)*time.Minute)))
	}
	if err := conn.Create(&rows).Error; err != nil {
		t.Fatalf("seeding rows: %v", err)
	}

	repo := NewRepository(conn)
	got, err := repo.ListTransactions(context.Background(), Filter{
		BusinessCode: "B100",
		Start:        day,
		End:          day,
	}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected the cap applied, got %d rows", len(got))
	}
}

func TestListBranches_SortedByName(t *testing.T) {
	conn := newTestDB(t)
	now := time.Now().UTC()
	branches := []models.Branch{
		{ID: uuid.New(), BusinessCode: "B100", Name: "Seeb", CreatedAt: now},
		{ID: uuid.New(), BusinessCode: "B100", Name: "Ruwi", CreatedAt: now},
		{ID: uuid.New(), BusinessCode: "B200", Name: "Nizwa", CreatedAt: now},
	}
	if err := conn.Create(&branches).Error; err != nil {
		t.Fatalf("seeding branches: %v", err)
	}

	repo := NewRepository(conn)
	got, err := repo.ListBranches(context.Background(), "B100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Ruwi" || got[1].Name != "Seeb" {
		t.Fatalf("expected [Ruwi Seeb], got %+v", got)
	}
}
