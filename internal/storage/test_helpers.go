package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/users-api/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser вставляет тестового пользователя напрямую и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash string, birthDate time.Time, phone *string, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users
		(name, email, password_hash, birth_date, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		name, email, passwordHash, birthDate, phone, isActive, time.Now().UTC()).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() models.User {
	return models.User{
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		BirthDate:    time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		CreatedAt:    time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, id int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE id = $1", id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyUserActive проверяет признак активности пользователя
func (v *TestVerification) VerifyUserActive(t *testing.T, id int, expected bool) {
	var isActive bool
	err := v.storage.DB.QueryRow("SELECT is_active FROM users WHERE id = $1", id).Scan(&isActive)
	require.NoError(t, err)
	require.Equal(t, expected, isActive)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы так же, как в migrations/
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS users CASCADE;

        CREATE TABLE users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            birth_date DATE NOT NULL,
            phone TEXT,
            is_active BOOLEAN NOT NULL DEFAULT true,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ
        );

        CREATE UNIQUE INDEX users_email_unique_idx ON users (email);
    `)
	require.NoError(t, err, "failed to create schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = postgresContainer.Terminate(ctx)
	}
	return storage, cleanup
}
