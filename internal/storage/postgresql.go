// Package storage реализует хранилище пользователей на основе PostgreSQL.
// Предоставляет методы создания, чтения, обновления записей и проверки
// занятости электронной почты.
//
// Уникальность почты обеспечивается уникальным индексом в базе: проверка
// занятости перед вставкой в сервисе — лишь быстрый путь, параллельные
// создания с одинаковой почтой окончательно разрешает именно индекс.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, различимые на границе через errors.Is.
var (
	// ErrUserNotFound возвращается, когда записи с запрошенным ID нет.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken возвращается при конфликте уникальности электронной почты.
	ErrEmailTaken = errors.New("email already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
