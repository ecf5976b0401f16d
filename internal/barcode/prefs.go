package barcode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dukkanhq/dukkan-backend/pkg/logger"
	"github.com/dukkanhq/dukkan-backend/pkg/redis"
)

// LayoutPrefs holds the per-business print layout. All sizes are in
// millimeters, fonts in points.
type LayoutPrefs struct {
	LabelWidth    float64 `json:"label_width"`
	LabelHeight   float64 `json:"label_height"`
	NameFontSize  float64 `json:"name_font_size"`
	PriceFontSize float64 `json:"price_font_size"`
	CodeFontSize  float64 `json:"code_font_size"`
	LineSpacing   float64 `json:"line_spacing"`
	Margin        float64 `json:"margin"`
}

// DefaultLayoutPrefs returns the layout used until a business saves its own.
func DefaultLayoutPrefs() LayoutPrefs {
	return LayoutPrefs{
		LabelWidth:    50,
		LabelHeight:   30,
		NameFontSize:  9,
		PriceFontSize: 11,
		CodeFontSize:  8,
		LineSpacing:   1.2,
		Margin:        2,
	}
}

type prefsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	BarcodePrefsKey(businessCode string) string
}

// PrefsService persists one JSON layout value per business.
type PrefsService struct {
	store prefsStore
	logg  *logger.Logger
}

// NewPrefsService wires the layout store.
func NewPrefsService(store prefsStore, logg *logger.Logger) (*PrefsService, error) {
	if store == nil {
		return nil, errors.New("prefs store required")
	}
	return &PrefsService{store: store, logg: logg}, nil
}

// Get returns the saved layout, or the defaults when nothing is stored or
// the stored value does not parse. A corrupt value never blocks printing.
func (s *PrefsService) Get(ctx context.Context, businessCode string) LayoutPrefs {
	raw, err := s.store.Get(ctx, s.store.BarcodePrefsKey(businessCode))
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Error(ctx, "reading barcode layout prefs failed", err)
		}
		return DefaultLayoutPrefs()
	}

	var prefs LayoutPrefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "stored barcode layout prefs are corrupt", err)
		}
		return DefaultLayoutPrefs()
	}
	return prefs
}

// Save replaces the stored layout for a business.
func (s *PrefsService) Save(ctx context.Context, businessCode string, prefs LayoutPrefs) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.store.BarcodePrefsKey(businessCode), string(payload), 0)
}
