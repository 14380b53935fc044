// Package repository реализует хранилище заказов на основе PostgreSQL.
// Каждая изменяющая операция выполняется одним автокоммитным запросом, поэтому к моменту
// возврата из метода данные уже записаны.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с заказами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет, что таблица заказов уже создана миграциями.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'orders'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check orders table: %w", err)
	}
	if !exists {
		return fmt.Errorf("required table orders missing")
	}
	return nil
}

// WaitForDB ждёт готовности базы, делая attempts попыток с паузой delay.
func WaitForDB(storage *Storage, attempts int, delay time.Duration) error {
	var err error
	for range attempts {
		err = CheckDatabaseReady(storage)
		if err == nil {
			return nil
		}
		time.Sleep(delay)
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}
