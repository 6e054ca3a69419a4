package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/smirnov-dev/presence_sync/internal/store/mocks"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func TestPersistent_ReadWriteRoundtrip(t *testing.T) {
	// Подготовка
	ps := NewPersistent(NewMemoryKV(), testLogger())
	ctx := context.Background()
	value := map[string]int{"a": 1, "b": 2}

	// Действие
	ps.WriteJSON(ctx, "numbers", value)

	var got map[string]int
	ok := ps.ReadJSON(ctx, "numbers", &got)

	// Проверки
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestPersistent_ReadMissingKey(t *testing.T) {
	// Подготовка
	ps := NewPersistent(NewMemoryKV(), testLogger())

	// Действие
	var got []string
	ok := ps.ReadJSON(context.Background(), "absent", &got)

	// Проверки
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPersistent_CorruptValueTreatedAsAbsent(t *testing.T) {
	// Подготовка
	kv := NewMemoryKV()
	ps := NewPersistent(kv, testLogger())
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "broken", []byte("{not json")))

	// Действие
	var got map[string]string
	ok := ps.ReadJSON(ctx, "broken", &got)

	// Проверки
	assert.False(t, ok)
}

func TestPersistent_WriteFailureDoesNotPanic(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	kvMock := mocks.NewMockKV(ctrl)
	ps := NewPersistent(kvMock, testLogger())
	ctx := context.Background()

	// Ожидания: бэкенд отказывает, обёртка только логирует
	kvMock.EXPECT().
		Set(ctx, "doomed", gomock.Any()).
		Return(errors.New("disk full")).
		Times(1)

	// Действие и проверка: паники нет, вызывающий продолжает работать
	assert.NotPanics(t, func() {
		ps.WriteJSON(ctx, "doomed", []int{1, 2, 3})
	})
}

func TestPersistent_ReadBackendFailure(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	kvMock := mocks.NewMockKV(ctrl)
	ps := NewPersistent(kvMock, testLogger())
	ctx := context.Background()

	// Ожидания
	kvMock.EXPECT().
		Get(ctx, "flaky").
		Return(nil, errors.New("connection refused")).
		Times(1)

	// Действие
	var got []int
	ok := ps.ReadJSON(ctx, "flaky", &got)

	// Проверки
	assert.False(t, ok)
}

func TestMemoryKV_GetReturnsCopy(t *testing.T) {
	// Подготовка
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "k", []byte("abc")))

	// Действие
	raw, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	raw[0] = 'X'

	again, err := kv.Get(ctx, "k")

	// Проверки: мутация копии не трогает хранимое значение
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryKV_MissingKey(t *testing.T) {
	kv := NewMemoryKV()

	_, err := kv.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKV_WatchNotifiesOnSet(t *testing.T) {
	// Подготовка
	kv := NewMemoryKV()
	ctx := context.Background()
	notified := make(chan struct{}, 1)

	stop, err := kv.Watch(ctx, "watched", func() {
		notified <- struct{}{}
	})
	require.NoError(t, err)
	defer stop()

	// Действие
	require.NoError(t, kv.Set(ctx, "watched", []byte("v")))

	// Проверки
	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was not notified")
	}
}

func TestMemoryKV_StoppedWatcherNotNotified(t *testing.T) {
	// Подготовка
	kv := NewMemoryKV()
	ctx := context.Background()
	notified := make(chan struct{}, 1)

	stop, err := kv.Watch(ctx, "watched", func() {
		notified <- struct{}{}
	})
	require.NoError(t, err)

	// Действие
	stop()
	require.NoError(t, kv.Set(ctx, "watched", []byte("v")))

	// Проверки
	select {
	case <-notified:
		t.Fatal("stopped watcher still notified")
	case <-time.After(150 * time.Millisecond):
	}
}
