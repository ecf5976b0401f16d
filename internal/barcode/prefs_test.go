package barcode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukkanhq/dukkan-backend/pkg/redis"
)

type fakePrefsStore struct {
	values map[string]string
	getErr error
}

func newFakePrefsStore() *fakePrefsStore {
	return &fakePrefsStore{values: map[string]string{}}
}

func (f *fakePrefsStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakePrefsStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakePrefsStore) BarcodePrefsKey(businessCode string) string {
	return "dk:prefs:barcode:" + businessCode
}

func TestPrefs_DefaultsWhenAbsent(t *testing.T) {
	svc, err := NewPrefsService(newFakePrefsStore(), nil)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	prefs := svc.Get(context.Background(), "B100")
	if prefs != DefaultLayoutPrefs() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}
}

func TestPrefs_DefaultsOnCorruptValue(t *testing.T) {
	store := newFakePrefsStore()
	store.values[store.BarcodePrefsKey("B100")] = "{not json"
	svc, _ := NewPrefsService(store, nil)

	prefs := svc.Get(context.Background(), "B100")
	if prefs != DefaultLayoutPrefs() {
		t.Fatalf("expected defaults on corrupt value, got %+v", prefs)
	}
}

func TestPrefs_DefaultsOnStoreError(t *testing.T) {
	store := newFakePrefsStore()
	store.getErr = errors.New("redis down")
	svc, _ := NewPrefsService(store, nil)

	prefs := svc.Get(context.Background(), "B100")
	if prefs != DefaultLayoutPrefs() {
		t.Fatalf("expected defaults on store error, got %+v", prefs)
	}
}

func TestPrefs_SaveRoundTrip(t *testing.T) {
	store := newFakePrefsStore()
	svc, _ := NewPrefsService(store, nil)

	custom := LayoutPrefs{
		LabelWidth:    80,
		LabelHeight:   40,
		NameFontSize:  12,
		PriceFontSize: 14,
		CodeFontSize:  10,
		LineSpacing:   1.5,
		Margin:        3,
	}
	if err := svc.Save(context.Background(), "B100", custom); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	if got := svc.Get(context.Background(), "B100"); got != custom {
		t.Fatalf("expected saved layout back, got %+v", got)
	}

	// Another business still sees defaults.
	if got := svc.Get(context.Background(), "B200"); got != DefaultLayoutPrefs() {
		t.Fatalf("expected defaults for another business, got %+v", got)
	}
}
