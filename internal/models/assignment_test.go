package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRef_UnmarshalBareNumber(t *testing.T) {
	var u UserRef
	require.NoError(t, json.Unmarshal([]byte(`42`), &u))

	assert.Equal(t, ByID(42), u)
}

func TestUserRef_UnmarshalNumericString(t *testing.T) {
	// Числовая строка - это идентификатор, а не имя
	var u UserRef
	require.NoError(t, json.Unmarshal([]byte(`" 42 "`), &u))

	assert.Equal(t, ByID(42), u)
}

func TestUserRef_UnmarshalNameString(t *testing.T) {
	var u UserRef
	require.NoError(t, json.Unmarshal([]byte(`"Иванов (42)"`), &u))

	assert.Equal(t, ByName("Иванов (42)"), u)
}

func TestUserRef_UnmarshalObjectWithID(t *testing.T) {
	var u UserRef
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "name": "Петров"}`), &u))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "Петров", u.Name)
}

func TestUserRef_UnmarshalObjectWithUserID(t *testing.T) {
	// Самая старая форма хранила поле user_id
	var u UserRef
	require.NoError(t, json.Unmarshal([]byte(`{"user_id": 11}`), &u))

	assert.Equal(t, int64(11), u.ID)
}

func TestUserRef_UnmarshalMixedList(t *testing.T) {
	// В одном списке могут встретиться все унаследованные формы сразу
	var a Assignment
	require.NoError(t, json.Unmarshal([]byte(`{
		"assigned_users": [5, "17", "Сидорова", {"id": 23}]
	}`), &a))

	require.Len(t, a.Users, 4)
	assert.Equal(t, ByID(5), a.Users[0])
	assert.Equal(t, ByID(17), a.Users[1])
	assert.Equal(t, ByName("Сидорова"), a.Users[2])
	assert.Equal(t, int64(23), a.Users[3].ID)
}

func TestUserRef_Matches(t *testing.T) {
	assert.True(t, ByID(5).Matches(5))
	assert.False(t, ByID(5).Matches(6))

	// Строковая форма совпадает по вхождению идентификатора
	assert.True(t, ByName("Иванов (42)").Matches(42))
	assert.False(t, ByName("Иванов").Matches(42))
	assert.False(t, UserRef{}.Matches(42))
}

func TestAssignment_Empty(t *testing.T) {
	assert.True(t, Assignment{}.Empty())
	assert.False(t, Assignment{Users: []UserRef{ByID(1)}}.Empty())
	assert.False(t, Assignment{Departments: []string{"HR"}}.Empty())
	assert.False(t, Assignment{Positions: []string{"кассир"}}.Empty())
	assert.False(t, Assignment{Teams: []string{"смена"}}.Empty())
}
