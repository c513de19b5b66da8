// Package age содержит расчет полного количества лет между двумя датами.
// Используется валидацией при проверке минимального возраста пользователя.
package age

import (
	"time"
)

// FullYears возвращает количество полных лет, прошедших от born до now.
//
// Расчет календарный: разница годов уменьшается на единицу, если день
// рождения в текущем году еще не наступил. Наивное деление по дням здесь
// не подходит из-за високосных лет.
func FullYears(born, now time.Time) int {
	years := now.Year() - born.Year()
	if born.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}
