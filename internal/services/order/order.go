// Package order содержит бизнес-логику работы с заказами: создание,
// предпросмотр даты забора, списки владельца, исправления и удаление с кешированием.
package order

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

const (
	orderTTL     = time.Hour
	ownerListTTL = 5 * time.Minute
)

// Repository определяет методы хранилища заказов.
type Repository interface {
	// Insert сохраняет новый активный заказ и возвращает его.
	Insert(ctx context.Context, ownerID int64, title, dateTransfer string, months int) (*models.Order, error)
	// ListByOwner возвращает активные заказы владельца.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error)
	// Read возвращает заказ по ID.
	Read(ctx context.Context, id int64) (*models.Order, error)
	// Update применяет частичное обновление и сообщает, нашлась ли запись.
	Update(ctx context.Context, id int64, upd models.OrderUpdate) (bool, error)
	// Delete удаляет заказ и сообщает, существовал ли он.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Service реализует бизнес-логику работы с заказами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func orderKey(id int64) string {
	return fmt.Sprintf("order:%d", id)
}

func ownerKey(ownerID int64) string {
	return fmt.Sprintf("owner:%d:orders", ownerID)
}

// Preview вычисляет заказ, который получится из введённых данных, не сохраняя его.
func (s *Service) Preview(title, dateTransfer string, months int) (*models.Order, error) {
	const op = "services.order.Preview"
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%s: %w", op, &models.ValidationError{Field: "title", Reason: "must not be empty"})
	}
	if months <= 0 {
		return nil, fmt.Errorf("%s: %w", op, &models.ValidationError{Field: "months", Reason: "must be a positive integer"})
	}
	transfer, err := calendar.Parse(dateTransfer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pickup, err := calendar.AddMonths(transfer, months)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Order{
		Title:        title,
		DateTransfer: transfer,
		Months:       months,
		DatePickup:   pickup,
		Status:       models.StatusActive,
	}, nil
}

// Create сохраняет новый заказ и кладёт его в кеш.
func (s *Service) Create(ctx context.Context, in models.NewOrderInput) (*models.Order, error) {
	const op = "services.order.Create"
	order, err := s.repo.Insert(ctx, in.OwnerID, in.Title, in.DateTransfer, in.Months)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new order", sl.OrderID(order.ID), sl.OwnerID(order.OwnerID))

	if err := s.cache.Set(ctx, orderKey(order.ID), order, orderTTL); err != nil {
		s.log.Warn("failed to cache order", sl.OrderID(order.ID), sl.Err(err))
	}
	s.invalidateOwner(ctx, order.OwnerID)
	return order, nil
}

// ListByOwner возвращает активные заказы владельца, упорядоченные по дате передачи.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error) {
	const op = "services.order.ListByOwner"

	var cached []*models.Order
	found, err := s.cache.Get(ctx, ownerKey(ownerID), &cached)
	if err != nil {
		s.log.Warn("failed to read owner orders from cache", sl.OwnerID(ownerID), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	orders, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	SortByTransferDate(orders)

	if err := s.cache.Set(ctx, ownerKey(ownerID), orders, ownerListTTL); err != nil {
		s.log.Warn("failed to cache owner orders", sl.OwnerID(ownerID), sl.Err(err))
	}
	return orders, nil
}

// SortByTransferDate упорядочивает заказы по дате передачи, при равенстве по ID.
func SortByTransferDate(orders []*models.Order) {
	slices.SortStableFunc(orders, func(a, b *models.Order) int {
		switch {
		case a.DateTransfer.Before(b.DateTransfer):
			return -1
		case b.DateTransfer.Before(a.DateTransfer):
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Read возвращает заказ по ID, сначала из кеша.
func (s *Service) Read(ctx context.Context, id int64) (*models.Order, error) {
	const op = "services.order.Read"

	var cached models.Order
	found, err := s.cache.Get(ctx, orderKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read order from cache", sl.OrderID(id), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	order, err := s.repo.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, orderKey(id), order, orderTTL); err != nil {
		s.log.Warn("failed to cache order", sl.OrderID(id), sl.Err(err))
	}
	return order, nil
}

// Update проверяет и применяет исправление заказа. Дату забора задать напрямую
// нельзя: она пересчитывается из даты передачи и срока, если меняется любое из них.
func (s *Service) Update(ctx context.Context, id int64, upd models.OrderUpdate) (bool, error) {
	const op = "services.order.Update"
	upd.DatePickup = nil
	if err := validateUpdate(upd); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var current *models.Order
	if upd.DateTransfer != nil || upd.Months != nil {
		order, err := s.repo.Read(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return false, nil
			}
			return false, fmt.Errorf("%s: %w", op, err)
		}
		current = order

		transfer := current.DateTransfer
		if upd.DateTransfer != nil {
			transfer = *upd.DateTransfer
		}
		months := current.Months
		if upd.Months != nil {
			months = *upd.Months
		}
		pickup, err := calendar.AddMonths(transfer, months)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		upd.DatePickup = &pickup
	}

	ok, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return false, nil
	}

	keys := []string{orderKey(id)}
	if current != nil {
		keys = append(keys, ownerKey(current.OwnerID))
	} else if order, err := s.repo.Read(ctx, id); err == nil {
		keys = append(keys, ownerKey(order.OwnerID))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate cache", sl.OrderID(id), sl.Err(err))
	}
	s.log.Info("updated order", sl.OrderID(id))
	return true, nil
}

func validateUpdate(upd models.OrderUpdate) error {
	if upd.IsEmpty() {
		return &models.ValidationError{Field: "update", Reason: "no fields to change"}
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if upd.Months != nil && *upd.Months <= 0 {
		return &models.ValidationError{Field: "months", Reason: "must be a positive integer"}
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *upd.Status)}
	}
	return nil
}

// Remove удаляет заказ и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, id int64) (bool, error) {
	const op = "services.order.Remove"

	keys := []string{orderKey(id)}
	if order, err := s.repo.Read(ctx, id); err == nil {
		keys = append(keys, ownerKey(order.OwnerID))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to remove from cache", sl.OrderID(id), sl.Err(err))
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		s.log.Info("removed order", sl.OrderID(id))
	}
	return ok, nil
}

func (s *Service) invalidateOwner(ctx context.Context, ownerID int64) {
	if err := s.cache.Invalidate(ctx, ownerKey(ownerID)); err != nil {
		s.log.Warn("failed to invalidate owner orders", sl.OwnerID(ownerID), sl.Err(err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrOrderNotFound)
}
