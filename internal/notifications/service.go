package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukkanhq/dukkan-backend/pkg/db/models"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	pkgerrors "github.com/dukkanhq/dukkan-backend/pkg/errors"
)

const defaultListLimit = 50

// Service defines notification create/list/read operations.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) (*models.Notification, error)
	List(ctx context.Context, params ListParams) ([]models.Notification, error)
	MarkRead(ctx context.Context, businessCode string, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, businessCode string) (int64, error)
}

type service struct {
	repo Repository
}

// NotifyInput captures a new alert.
type NotifyInput struct {
	BusinessCode string
	BranchName   *string
	Kind         enums.NotificationKind
	Title        string
	Body         string
}

// ListParams scope and bound a notification listing.
type ListParams struct {
	BusinessCode string
	BranchName   string
	Limit        int
	UnreadOnly   bool
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Notify(ctx context.Context, input NotifyInput) (*models.Notification, error) {
	if input.BusinessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification kind required")
	}
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	notification := &models.Notification{
		BusinessCode: input.BusinessCode,
		BranchName:   input.BranchName,
		Kind:         input.Kind,
		Title:        input.Title,
		Body:         input.Body,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.Notification, error) {
	if params.BusinessCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.repo.List(ctx, listParams{
		BusinessCode: params.BusinessCode,
		BranchName:   params.BranchName,
		Limit:        limit,
		UnreadOnly:   params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return rows, nil
}

func (s *service) MarkRead(ctx context.Context, businessCode string, notificationID uuid.UUID) error {
	if businessCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	found, err := s.repo.MarkRead(ctx, businessCode, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, businessCode string) (int64, error) {
	if businessCode == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "business code required")
	}

	count, err := s.repo.MarkAllRead(ctx, businessCode, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}
