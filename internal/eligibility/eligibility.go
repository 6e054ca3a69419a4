// Package eligibility считает окно присоединения к событию: отметиться
// можно до истечения фиксированного срока после начала.
package eligibility

import (
	"fmt"
	"time"
)

// DefaultJoinWindow - срок после начала события, в течение которого ещё
// можно присоединиться
const DefaultJoinWindow = 30 * time.Minute

// Remaining - остаток окна целыми минутами, с округлением вниз
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// StartInstant собирает момент начала из даты (день/месяц/год) и времени
// (чч:мм) в локальной зоне
func StartInstant(date, startTime string) (time.Time, error) {
	t, err := time.ParseInLocation("2/1/2006 15:04", date+" "+startTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse start instant: %w", err)
	}
	return t, nil
}

// CanJoin сообщает, укладывается ли момент now в окно присоединения.
// Нечитаемые дата или время открывают доступ, а не запирают пользователя:
// доступность здесь важнее строгости.
func CanJoin(date, startTime string, window time.Duration, now time.Time) bool {
	start, err := StartInstant(date, startTime)
	if err != nil {
		return true
	}
	return !now.After(start.Add(window))
}

// TimeLeft возвращает остаток окна. После дедлайна и при нечитаемых полях
// остаток нулевой.
func TimeLeft(date, startTime string, window time.Duration, now time.Time) Remaining {
	start, err := StartInstant(date, startTime)
	if err != nil {
		return Remaining{}
	}
	left := start.Add(window).Sub(now)
	if left < 0 {
		return Remaining{}
	}
	mins := int(left.Minutes())
	return Remaining{Hours: mins / 60, Minutes: mins % 60}
}
