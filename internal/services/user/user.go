// Package services содержит бизнес-логику управления учётными записями:
// создание, чтение, обновление и мягкое удаление пользователей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/users-api/internal/lib/password"
	"github.com/magabrotheeeer/users-api/internal/models"
	"github.com/magabrotheeeer/users-api/internal/storage"
)

// cacheTTL время жизни пользователя в кеше.
const cacheTTL = time.Hour

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser добавляет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
	// GetUserByID возвращает пользователя по ID.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUser перезаписывает изменяемые поля пользователя.
	UpdateUser(ctx context.Context, user models.User) (int, error)
	// EmailExists проверяет занятость почты по всей таблице.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserService реализует рабочий процесс над учётными записями.
// Общего изменяемого состояния в памяти нет: точка синхронизации
// параллельных запросов — хранилище.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает проекции всех пользователей без какой-либо фильтрации.
func (s *UserService) List(ctx context.Context) ([]*models.UserView, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.ToView())
	}
	return views, nil
}

// GetByID возвращает проекцию пользователя по ID, используя кеш или хранилище.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.UserView, error) {
	var user *models.User
	cacheKey := fmt.Sprintf("user:%d", id)
	found, err := s.cache.Get(cacheKey, &user)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && user != nil {
		return user.ToView(), nil
	}

	user, err = s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, user, cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return user.ToView(), nil
}

// Create создает нового пользователя и возвращает его проекцию.
//
// Почта нормализуется к нижнему регистру до проверки занятости.
// Проверка занятости — быстрый путь: окончательно конфликт параллельных
// созданий разрешает уникальный индекс в базе (storage.ErrEmailTaken).
func (s *UserService) Create(ctx context.Context, req models.DummyCreateUser) (*models.UserView, error) {
	birthDate, err := time.Parse(models.DateLayout, req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date: %w", err)
	}

	email := strings.ToLower(req.Email)
	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, storage.ErrEmailTaken
	}

	passwordHash, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		BirthDate:    birthDate,
		Phone:        optionalPhone(req.Phone),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.log.Info("created new user", slog.Int("id", id))

	cacheKey := fmt.Sprintf("user:%d", id)
	if err := s.cache.Set(cacheKey, &user, cacheTTL); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return user.ToView(), nil
}

// Update перезаписывает изменяемые поля пользователя, включая признак
// активности, и возвращает обновленную проекцию.
//
// Занятость почты здесь повторно не проверяется; если новая почта
// столкнется с другой записью, конфликт поднимет уникальный индекс.
func (s *UserService) Update(ctx context.Context, id int, req models.DummyUpdateUser) (*models.UserView, error) {
	birthDate, err := time.Parse(models.DateLayout, req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date: %w", err)
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.Name = req.Name
	user.Email = strings.ToLower(req.Email)
	user.BirthDate = birthDate
	user.Phone = optionalPhone(req.Phone)
	user.IsActive = *req.Active
	user.UpdatedAt = &now

	if _, err := s.repo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	s.log.Info("updated user in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("user:%d", id)
	if err := s.cache.Set(cacheKey, user, cacheTTL); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return user.ToView(), nil
}

// Delete выполняет мягкое удаление: запись остается в хранилище,
// сбрасывается только признак активности и ставится дата изменения.
func (s *UserService) Delete(ctx context.Context, id int) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.IsActive = false
	user.UpdatedAt = &now

	if _, err := s.repo.UpdateUser(ctx, *user); err != nil {
		return err
	}
	s.log.Info("deactivated user", slog.Int("id", id))

	cacheKey := fmt.Sprintf("user:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// EmailExists проверяет занятость почты, нормализуя её к нижнему регистру.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, strings.ToLower(email))
}

func optionalPhone(phone string) *string {
	if phone == "" {
		return nil
	}
	return &phone
}
