package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UserRef - ссылка на назначенного сотрудника. Исторически назначение
// хранилось в трёх видах: голый идентификатор, объект с полем id или
// строка с именем/идентификатором. Все формы приводятся к тегированному
// варианту ById/ByName один раз при разборе JSON.
type UserRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ByID создает ссылку по идентификатору
func ByID(id int64) UserRef {
	return UserRef{ID: id}
}

// ByName создает ссылку по строке (имя или текст с идентификатором)
func ByName(name string) UserRef {
	return UserRef{Name: name}
}

// Matches сообщает, указывает ли ссылка на сотрудника с данным идентификатором.
// Строковая форма считается совпадением, если содержит идентификатор как подстроку.
func (u UserRef) Matches(viewerID int64) bool {
	if u.ID != 0 {
		return u.ID == viewerID
	}
	if u.Name == "" {
		return false
	}
	return strings.Contains(u.Name, strconv.FormatInt(viewerID, 10))
}

// UnmarshalJSON принимает все унаследованные формы записи назначения
func (u *UserRef) UnmarshalJSON(b []byte) error {
	var id int64
	if err := json.Unmarshal(b, &id); err == nil {
		u.ID = id
		u.Name = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			u.ID = id
			u.Name = ""
			return nil
		}
		u.ID = 0
		u.Name = s
		return nil
	}

	var obj struct {
		ID     int64  `json:"id"`
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	u.ID = obj.ID
	if u.ID == 0 {
		u.ID = obj.UserID
	}
	u.Name = obj.Name
	return nil
}

// Assignment - критерии назначения: кому сущность видна
type Assignment struct {
	Users       []UserRef `json:"assigned_users,omitempty"`
	Departments []string  `json:"assigned_departments,omitempty"`
	Positions   []string  `json:"assigned_positions,omitempty"`
	Teams       []string  `json:"assigned_teams,omitempty"`
}

// Empty сообщает, что не задан ни один критерий назначения
func (a Assignment) Empty() bool {
	return len(a.Users) == 0 && len(a.Departments) == 0 && len(a.Positions) == 0 && len(a.Teams) == 0
}

// Provenance - кто и из какого филиала создал сущность
type Provenance struct {
	CreatorID int64  `json:"created_by,omitempty"`
	Province  string `json:"province,omitempty"`
}
