package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartInstant_ParsesLocalDateTime(t *testing.T) {
	got, err := StartInstant("15/1/2026", "10:00")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local), got)
}

func TestStartInstant_AcceptsPaddedForm(t *testing.T) {
	// Падинг нулями в дате допустим
	got, err := StartInstant("05/01/2026", "09:30")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 9, 30, 0, 0, time.Local), got)
}

func TestStartInstant_RejectsGarbage(t *testing.T) {
	_, err := StartInstant("когда-нибудь", "10:00")

	assert.Error(t, err)
}

func TestCanJoin_WindowBoundary(t *testing.T) {
	// Событие 15/1/2026 в 10:00, окно 30 минут: дедлайн ровно 10:30:00
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	// Ровно на границе ещё можно
	assert.True(t, CanJoin("15/1/2026", "10:00", 30*time.Minute, start.Add(30*time.Minute)))
	// Секундой позже уже нельзя
	assert.False(t, CanJoin("15/1/2026", "10:00", 30*time.Minute, start.Add(30*time.Minute+time.Second)))
}

func TestCanJoin_BeforeStart(t *testing.T) {
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	assert.True(t, CanJoin("15/1/2026", "10:00", 30*time.Minute, start.Add(-2*time.Hour)))
}

func TestCanJoin_UnreadableFieldsFailOpen(t *testing.T) {
	// Нечитаемые дата или время не запирают пользователя
	now := time.Now()

	assert.True(t, CanJoin("", "10:00", 30*time.Minute, now))
	assert.True(t, CanJoin("15/1/2026", "скоро", 30*time.Minute, now))
}

func TestTimeLeft_FullWindowAtStart(t *testing.T) {
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	got := TimeLeft("15/1/2026", "10:00", 30*time.Minute, start)

	assert.Equal(t, Remaining{Hours: 0, Minutes: 30}, got)
}

func TestTimeLeft_SplitsHoursAndMinutes(t *testing.T) {
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	// За два часа до начала при окне 30 минут остаток 2:30
	got := TimeLeft("15/1/2026", "10:00", 30*time.Minute, start.Add(-2*time.Hour))

	assert.Equal(t, Remaining{Hours: 2, Minutes: 30}, got)
}

func TestTimeLeft_FloorsPartialMinutes(t *testing.T) {
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	// 29 минут 59 секунд до дедлайна округляются вниз до 29 минут
	got := TimeLeft("15/1/2026", "10:00", 30*time.Minute, start.Add(time.Second))

	assert.Equal(t, Remaining{Hours: 0, Minutes: 29}, got)
}

func TestTimeLeft_ZeroAfterDeadline(t *testing.T) {
	start := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)

	got := TimeLeft("15/1/2026", "10:00", 30*time.Minute, start.Add(time.Hour))

	assert.Equal(t, Remaining{}, got)
}

func TestTimeLeft_ZeroWhenUnreadable(t *testing.T) {
	got := TimeLeft("", "", 30*time.Minute, time.Now())

	assert.Equal(t, Remaining{}, got)
}
