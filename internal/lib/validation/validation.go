// Package validation собирает валидатор входящих данных с доменными
// правилами: дата рождения в прошлом, минимальный возраст, формат телефона.
//
// Валидатор не имеет состояния и не обращается к хранилищу: проверка
// закрепленных за полями правил выполняется целиком, по всем полям сразу,
// и возвращает полный список нарушений.
package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/users-api/internal/lib/age"
	"github.com/magabrotheeeer/users-api/internal/models"
)

// AdultAge минимальный возраст пользователя при регистрации.
const AdultAge = 18

var phoneRegexp = regexp.MustCompile(`^\d{10,11}$`)

// New возвращает валидатор с зарегистрированными доменными правилами:
//
//	birthdate — строка парсится по формату 2006-01-02 и дата строго в прошлом;
//	adult     — полных лет на момент проверки не меньше 18;
//	phone     — ровно 10 или 11 цифр.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("birthdate", birthDate)
	_ = v.RegisterValidation("adult", adult)
	_ = v.RegisterValidation("phone", phone)
	return v
}

// birthDate проверяет, что строка является датой в прошлом.
func birthDate(fl validator.FieldLevel) bool {
	birth, err := time.Parse(models.DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return birth.Before(time.Now())
}

// adult проверяет минимальный возраст. Непарсящееся значение пропускается:
// о нем уже сообщит правило birthdate.
func adult(fl validator.FieldLevel) bool {
	birth, err := time.Parse(models.DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	return age.FullYears(birth, time.Now()) >= AdultAge
}

func phone(fl validator.FieldLevel) bool {
	return phoneRegexp.MatchString(fl.Field().String())
}
