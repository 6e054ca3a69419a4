// Package visibility решает, какую часть коллекции видит конкретный
// пользователь. Предикат чистый: всё состояние приходит аргументами.
package visibility

import (
	"strings"

	"github.com/smirnov-dev/presence_sync/internal/models"
)

// Target - сущность, к которой применим фильтр видимости (событие или график)
type Target interface {
	Assigned() models.Assignment
	Origin() models.Provenance
}

// Visible сообщает, видит ли пользователь сущность.
//
// Привилегированные роли обходят предикат: главный администратор видит
// всё, администратор филиала - сущности своего филиала и сущности без
// провенанса (созданные до его учёта).
//
// Для остальных критерии проверяются в фиксированном порядке с выходом
// на первом совпадении:
//  1. сущность без единого критерия назначения невидима;
//  2. несовпадение кода филиала - абсолютный запрет, положительные
//     проверки ниже не рассматриваются;
//  3. идентификатор пользователя в списке назначенных;
//  4. отдел: равенство или подстрока в любую сторону, без учёта регистра;
//  5. должность: та же политика;
//  6. метка команды против отдела или должности пользователя.
func Visible(t Target, v models.Viewer) bool {
	switch v.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleBranchAdmin:
		province := t.Origin().Province
		return province == "" || province == v.Province
	}

	a := t.Assigned()
	if a.Empty() {
		return false
	}

	if p := t.Origin().Province; p != "" && v.Province != "" && p != v.Province {
		return false
	}

	for _, u := range a.Users {
		if u.Matches(v.ID) {
			return true
		}
	}
	for _, d := range a.Departments {
		if looseMatch(d, v.Department) {
			return true
		}
	}
	for _, p := range a.Positions {
		if looseMatch(p, v.Position) {
			return true
		}
	}
	for _, team := range a.Teams {
		if looseMatch(team, v.Department) || looseMatch(team, v.Position) {
			return true
		}
	}
	return false
}

// Filter возвращает видимую пользователю часть последовательности
func Filter[T Target](items []T, v models.Viewer) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Visible(it, v) {
			out = append(out, it)
		}
	}
	return out
}

// looseMatch - регистронезависимое равенство или вхождение подстроки в
// любую сторону. Пустые значения не совпадают ни с чем.
func looseMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
