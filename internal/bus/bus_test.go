package bus

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smirnov-dev/presence_sync/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestBus создает шину над памятью с отключённым опросом
func newTestBus(kv store.KV, origin string) *Bus {
	return New(store.NewPersistent(kv, testLogger()), origin, 0, testLogger())
}

func TestPublish_DeliversLocallyBeforeReturn(t *testing.T) {
	// Подготовка
	b := newTestBus(store.NewMemoryKV(), "ctx-a")
	defer b.Close()

	var got []Envelope
	unsub := b.Subscribe("events", func(env Envelope) {
		got = append(got, env)
	})
	defer unsub()

	// Действие
	err := b.Publish(context.Background(), "events", ActionCreate, map[string]int{"id": 7})

	// Проверки: конверт получен синхронно, до возврата из Publish
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ActionCreate, got[0].Action)
	assert.Equal(t, "ctx-a", got[0].Origin)
	assert.JSONEq(t, `{"id":7}`, string(got[0].Data))
	assert.NotZero(t, got[0].Timestamp)
}

func TestPublish_WritesTriggerKey(t *testing.T) {
	// Подготовка
	kv := store.NewMemoryKV()
	b := newTestBus(kv, "ctx-a")
	defer b.Close()

	// Действие
	require.NoError(t, b.Publish(context.Background(), "events", ActionDelete, Envelope{}))

	// Проверки: конверт лежит в триггерном ключе темы
	var env Envelope
	ps := store.NewPersistent(kv, testLogger())
	require.True(t, ps.ReadJSON(context.Background(), TriggerKey("events"), &env))
	assert.Equal(t, ActionDelete, env.Action)
	assert.Equal(t, "ctx-a", env.Origin)
}

func TestPublish_ReachesNeighbourContext(t *testing.T) {
	// Подготовка: две шины делят один бэкенд, как два процесса
	kv := store.NewMemoryKV()
	writer := newTestBus(kv, "ctx-a")
	defer writer.Close()
	reader := newTestBus(kv, "ctx-b")
	defer reader.Close()

	received := make(chan Envelope, 1)
	unsub := reader.Subscribe("events", func(env Envelope) {
		received <- env
	})
	defer unsub()

	// Действие
	require.NoError(t, writer.Publish(context.Background(), "events", ActionUpdate, map[string]int{"id": 3}))

	// Проверки
	select {
	case env := <-received:
		assert.Equal(t, ActionUpdate, env.Action)
		assert.Equal(t, "ctx-a", env.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("neighbour context did not receive the change")
	}
}

func TestDeliver_SkipsOwnOrigin(t *testing.T) {
	// Подготовка: подписчик и издатель в одном контексте
	kv := store.NewMemoryKV()
	b := newTestBus(kv, "ctx-a")
	defer b.Close()

	var mu sync.Mutex
	count := 0
	unsub := b.Subscribe("events", func(Envelope) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	// Действие
	require.NoError(t, b.Publish(context.Background(), "events", ActionCreate, nil))

	// Даём уведомлению бэкенда время дойти
	time.Sleep(200 * time.Millisecond)

	// Проверки: ровно одна доставка, эхо собственной записи отброшено
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestDeliver_SkipsUnreadableEnvelope(t *testing.T) {
	// Подготовка: в триггерном ключе лежит мусор
	kv := store.NewMemoryKV()
	b := newTestBus(kv, "ctx-b")
	defer b.Close()

	var mu sync.Mutex
	count := 0
	unsub := b.Subscribe("events", func(Envelope) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	// Действие: сосед пишет в триггерный ключ испорченный конверт
	require.NoError(t, kv.Set(context.Background(), TriggerKey("events"), []byte("{broken")))
	time.Sleep(200 * time.Millisecond)

	// Проверки: обработчик не дёрнулся и ничего не упало
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestPoll_FiresSyncWithoutBackendNotification(t *testing.T) {
	// Подготовка: шина с коротким опросом и бэкендом без Watch
	ps := store.NewPersistent(noWatchKV{store.NewMemoryKV()}, testLogger())
	b := New(ps, "ctx-a", 50*time.Millisecond, testLogger())
	defer b.Close()

	received := make(chan Envelope, 8)
	unsub := b.Subscribe("events", func(env Envelope) {
		received <- env
	})
	defer unsub()

	// Проверки: тикер приносит конверт sync
	select {
	case env := <-received:
		assert.Equal(t, ActionSync, env.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("poll ticker never fired")
	}
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	// Подготовка
	b := newTestBus(store.NewMemoryKV(), "ctx-a")
	defer b.Close()

	count := 0
	unsub := b.Subscribe("events", func(Envelope) {
		count++
	})

	// Действие
	unsub()
	require.NoError(t, b.Publish(context.Background(), "events", ActionCreate, nil))

	// Проверки
	assert.Equal(t, 0, count)
}

func TestClose_Idempotent(t *testing.T) {
	b := newTestBus(store.NewMemoryKV(), "ctx-a")
	b.Subscribe("events", func(Envelope) {})

	assert.NotPanics(t, func() {
		b.Close()
		b.Close()
	})
}

// noWatchKV прячет способность Watcher у бэкенда
type noWatchKV struct {
	inner *store.MemoryKV
}

func (n noWatchKV) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, key)
}

func (n noWatchKV) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, key, value)
}

func (n noWatchKV) Close() error { return n.inner.Close() }
