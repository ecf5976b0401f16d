package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dukkanhq/dukkan-backend/internal/notifications"
	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
	"github.com/dukkanhq/dukkan-backend/pkg/logger"
	"github.com/dukkanhq/dukkan-backend/pkg/metrics"
)

const (
	defaultPollInterval = 30 * time.Second
	tickMetricName      = "product-monitor"
)

// Params configure a monitor controller.
type Params struct {
	Repo         Repository
	Notifier     notifications.Service
	Events       EventPublisher
	Logger       *logger.Logger
	Metrics      *metrics.JobMetrics
	Interval     time.Duration
	BusinessCode string
	BranchName   string
	Role         enums.UserRole
}

// Controller watches the pending-acceptance queue for one business scope and
// raises a notification per newly seen product. All poller state lives on
// the controller; Stop resets it so a restarted controller begins cold.
type Controller struct {
	repo     Repository
	notifier notifications.Service
	events   EventPublisher
	logg     *logger.Logger
	metrics  *metrics.JobMetrics
	interval time.Duration

	businessCode string
	branchName   string
	role         enums.UserRole

	mu      sync.Mutex
	seen    map[string]struct{}
	primed  bool
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewController validates wiring and builds a stopped controller.
func NewController(params Params) (*Controller, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "monitor repository required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if params.BusinessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Controller{
		repo:         params.Repo,
		notifier:     params.Notifier,
		events:       params.Events,
		logg:         params.Logger,
		metrics:      params.Metrics,
		interval:     interval,
		businessCode: params.BusinessCode,
		branchName:   params.BranchName,
		role:         params.Role,
		seen:         map[string]struct{}{},
	}, nil
}

// Start launches the poll loop. Starting a running controller is an error.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return pkgerrors.New(pkgerrors.CodeConflict, "monitor already running")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true

	go c.loop(loopCtx, c.done)
	return nil
}

// Stop cancels the loop, waits for it to exit, and resets all seen-state.
// Safe to call on a stopped controller.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = map[string]struct{}{}
	c.primed = false
	c.cancel = nil
	c.done = nil
	c.running = false
}

func (c *Controller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	c.tick(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick diffs the current pending set against the previous one. Errors are
// logged and counted but never stop the loop.
func (c *Controller) tick(ctx context.Context) {
	start := time.Now()
	pending, err := c.repo.ListPending(ctx, c.businessCode, c.branchName)
	c.metrics.ObserveDuration(tickMetricName, time.Since(start))
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "pending product poll failed", err)
		}
		c.metrics.IncFailure(tickMetricName)
		return
	}

	fresh := c.diff(pending)
	for i := range fresh {
		c.announce(ctx, &fresh[i])
	}
	c.metrics.IncSuccess(tickMetricName)
}

// diff swaps the seen-set for the current pending ids and returns the
// products not seen before. On the first tick only branch-scoped roles get
// the backlog announced; owner and admin scopes just prime the set, since
// they review the full queue in the dashboard anyway.
func (c *Controller) diff(pending []models.Product) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := make(map[string]struct{}, len(pending))
	var fresh []models.Product
	for _, product := range pending {
		id := product.ID.String()
		current[id] = struct{}{}
		if _, ok := c.seen[id]; !ok {
			fresh = append(fresh, product)
		}
	}

	firstTick := !c.primed
	c.primed = true
	c.seen = current

	if firstTick && !c.role.BranchScoped() {
		return nil
	}
	return fresh
}

func (c *Controller) announce(ctx context.Context, product *models.Product) {
	branch := product.BranchName
	title := "New product awaiting acceptance"
	body := fmt.Sprintf("%s is waiting for review", product.Name)
	if product.VendorName != nil && *product.VendorName != "" {
		body = fmt.Sprintf("%s from %s is waiting for review", product.Name, *product.VendorName)
	}

	if _, err := c.notifier.Notify(ctx, notifications.NotifyInput{
		BusinessCode: c.businessCode,
		BranchName:   &branch,
		Kind:         enums.NotificationKindProductPending,
		Title:        title,
		Body:         body,
	}); err != nil && c.logg != nil {
		c.logg.Error(ctx, "pending product notification failed", err)
	}

	if c.events == nil {
		return
	}
	event := ProductPendingEvent{
		ProductID:    product.ID.String(),
		ProductName:  product.Name,
		BusinessCode: product.BusinessCode,
		BranchName:   product.BranchName,
		ObservedAt:   time.Now().UTC(),
	}
	if product.VendorCode != nil {
		event.VendorCode = *product.VendorCode
	}
	if err := c.events.PublishProductPending(ctx, event); err != nil && c.logg != nil {
		c.logg.Error(ctx, "pending product event publish failed", err)
	}
}
