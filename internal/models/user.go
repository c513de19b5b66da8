// Package models содержит доменную модель пользователя, проекцию для
// ответов API и вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// DateLayout формат дат (дата рождения) во входных и исходящих данных.
const DateLayout = "2006-01-02"

// User представляет учётную запись пользователя.
// Поле UpdatedAt равно nil до первого изменения записи.
type User struct {
	ID           int        // Идентификатор, выдается базой при создании
	Name         string     // Имя пользователя
	Email        string     // Электронная почта, хранится в нижнем регистре
	PasswordHash string     // bcrypt-хэш пароля
	BirthDate    time.Time  // Дата рождения
	Phone        *string    // Телефон, необязательное поле
	IsActive     bool       // Признак активности, false после мягкого удаления
	CreatedAt    time.Time  // Дата создания, неизменяемая
	UpdatedAt    *time.Time // Дата последнего изменения
}

// UserView проекция пользователя для ответов API.
// Хэш пароля в проекцию не попадает никогда.
type UserView struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	BirthDate string    `json:"birth_date"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyCreateUser используется для приёма данных запроса на создание
// пользователя, прежде чем конвертировать их в User.
// Дата рождения приходит строкой, чтобы её можно было валидировать
// и парсить вручную.
type DummyCreateUser struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`          // Имя, 2-100 символов
	Email     string `json:"email" validate:"required,email"`                 // Электронная почта
	Password  string `json:"password" validate:"required,min=6"`              // Пароль, минимум 6 символов
	BirthDate string `json:"birth_date" validate:"required,birthdate,adult"`  // Дата рождения в формате 2006-01-02, возраст от 18 лет
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`      // Телефон, 10 или 11 цифр
}

// DummyUpdateUser используется для приёма данных запроса на обновление.
// Пароль через обновление не меняется, проверка возраста не повторяется.
// Поле Active обязано присутствовать явно, поэтому указатель.
type DummyUpdateUser struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`     // Имя, 2-100 символов
	Email     string `json:"email" validate:"required,email"`            // Электронная почта
	BirthDate string `json:"birth_date" validate:"required,birthdate"`   // Дата рождения в прошлом
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"` // Телефон, 10 или 11 цифр
	Active    *bool  `json:"active" validate:"required"`                 // Признак активности, обязательное поле
}

// ToView строит проекцию пользователя для ответа API.
func (u *User) ToView() *UserView {
	return &UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		BirthDate: u.BirthDate.Format(DateLayout),
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
