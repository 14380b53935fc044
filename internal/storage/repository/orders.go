package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

const orderColumns = `id, owner_id, title, date_transfer, months, date_pickup, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o                models.Order
		transfer, pickup time.Time
		status           string
	)
	if err := row.Scan(&o.ID, &o.OwnerID, &o.Title, &transfer, &o.Months, &pickup, &status); err != nil {
		return nil, err
	}
	o.DateTransfer = calendar.FromTime(transfer)
	o.DatePickup = calendar.FromTime(pickup)
	o.Status = models.Status(status)
	return &o, nil
}

// Insert проверяет входные данные, вычисляет дату забора и сохраняет новый
// активный заказ. Возвращает запись целиком вместе с присвоенным ID.
func (s *Storage) Insert(ctx context.Context, ownerID int64, title, dateTransfer string, months int) (*models.Order, error) {
	const op = "storage.Insert"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

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

	order := &models.Order{
		OwnerID:      ownerID,
		Title:        title,
		DateTransfer: transfer,
		Months:       months,
		DatePickup:   pickup,
		Status:       models.StatusActive,
	}

	query := `INSERT INTO orders (owner_id, title, date_transfer, months, date_pickup, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	err = s.DB.QueryRowContext(ctx, query,
		order.OwnerID, order.Title, transfer.Time(), order.Months, pickup.Time(), string(order.Status)).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListByOwner возвращает активные заказы владельца. Порядок не гарантируется.
func (s *Storage) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error) {
	const op = "storage.ListByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  WHERE owner_id = $1 AND status = $2`
	rows, err := s.DB.QueryContext(ctx, query, ownerID, string(models.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActive возвращает все активные заказы для пакетной обработки.
func (s *Storage) ListActive(ctx context.Context) ([]*models.Order, error) {
	const op = "storage.ListActive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  WHERE status = $1`
	rows, err := s.DB.QueryContext(ctx, query, string(models.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func collectOrders(rows *sql.Rows) ([]*models.Order, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Read возвращает заказ по ID независимо от статуса.
func (s *Storage) Read(ctx context.Context, id int64) (*models.Order, error) {
	const op = "storage.Read"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// Update применяет заданные поля обновления к заказу с указанным ID и сообщает,
// нашлась ли запись. Дата забора сама не пересчитывается.
func (s *Storage) Update(ctx context.Context, id int64, upd models.OrderUpdate) (bool, error) {
	const op = "storage.Update"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if upd.IsEmpty() {
		var exists bool
		err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return exists, nil
	}

	query, args := buildUpdate(id, upd)
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

func buildUpdate(id int64, upd models.OrderUpdate) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.DateTransfer != nil {
		add("date_transfer", upd.DateTransfer.Time())
	}
	if upd.Months != nil {
		add("months", *upd.Months)
	}
	if upd.DatePickup != nil {
		add("date_pickup", upd.DatePickup.Time())
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args
}

// Delete физически удаляет заказ и сообщает, существовала ли запись.
func (s *Storage) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "storage.Delete"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
