package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/store"
)

// DefaultPollInterval - период страховочной пересинхронизации
const DefaultPollInterval = 3 * time.Second

// Действия в конверте изменения
const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionDeleteAll = "deleteAll"
	ActionSync      = "sync"
)

// Envelope - конверт изменения, записываемый в триггерный ключ темы
type Envelope struct {
	Action    string          `json:"action"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Origin    string          `json:"origin,omitempty"`
}

// Handler получает конверт изменения. Обработчик обязан быть идемпотентным:
// одно изменение может прийти и локально, и через хранилище, и по опросу.
type Handler func(Envelope)

// Bus доставляет уведомления об изменениях тремя путями:
//  1. синхронный локальный обход подписчиков до возврата из Publish;
//  2. конверт в триггерном ключе хранилища + Watch бэкенда для соседних
//     контекстов;
//  3. периодический опрос на случай, когда уведомление бэкенда не дошло
//     (подписка появилась после записи, бэкенд без Watch и т.п.).
type Bus struct {
	ps     *store.Persistent
	origin string
	poll   time.Duration
	log    *logrus.Logger

	mu     sync.Mutex
	topics map[string]*topicState
	nextID int64
	closed bool
}

type topicState struct {
	handlers  map[int64]Handler
	stopWatch func()
	stopPoll  chan struct{}
}

// New создает шину. origin - идентификатор этого контекста, попадает в
// конверт; poll <= 0 отключает опрос (в основном для тестов).
func New(ps *store.Persistent, origin string, poll time.Duration, log *logrus.Logger) *Bus {
	return &Bus{
		ps:     ps,
		origin: origin,
		poll:   poll,
		log:    log,
		topics: make(map[string]*topicState),
	}
}

// TriggerKey - ключ хранилища, через который тема будит соседние контексты
func TriggerKey(topic string) string {
	return topic + ":sync"
}

// Subscribe регистрирует обработчик темы и возвращает функцию отписки.
// Первая подписка на тему поднимает наблюдение за триггерным ключом и
// тикер опроса; последняя отписка их гасит.
func (b *Bus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	ts, ok := b.topics[topic]
	if !ok {
		ts = &topicState{handlers: make(map[int64]Handler)}
		b.topics[topic] = ts
		b.startWatchLocked(topic, ts)
		b.startPollLocked(topic, ts)
	}

	id := b.nextID
	b.nextID++
	ts.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		ts, ok := b.topics[topic]
		if !ok {
			return
		}
		delete(ts.handlers, id)
		if len(ts.handlers) == 0 {
			b.stopTopicLocked(topic, ts)
		}
	}
}

// Publish рассылает изменение. Локальные подписчики получают конверт
// синхронно, до возврата; затем конверт пишется в триггерный ключ, чтобы
// разбудить соседние контексты.
func (b *Bus) Publish(ctx context.Context, topic, action string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal change payload: %w", err)
	}
	env := Envelope{
		Action:    action,
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
		Origin:    b.origin,
	}

	b.dispatch(topic, env)
	b.ps.WriteJSON(ctx, TriggerKey(topic), env)
	return nil
}

// deliver вызывается наблюдателем бэкенда при изменении триггерного ключа
func (b *Bus) deliver(topic string) {
	var env Envelope
	if !b.ps.ReadJSON(context.Background(), TriggerKey(topic), &env) {
		// Испорченный или недоступный конверт пропускаем, опрос догонит
		b.log.WithField("topic", topic).Debug("Skipping unreadable change envelope")
		return
	}
	if env.Origin == b.origin {
		// Собственную запись этот контекст уже обработал локальным путём
		return
	}
	b.dispatch(topic, env)
}

func (b *Bus) dispatch(topic string, env Envelope) {
	b.mu.Lock()
	ts, ok := b.topics[topic]
	if !ok {
		b.mu.Unlock()
		return
	}
	handlers := make([]Handler, 0, len(ts.handlers))
	for _, h := range ts.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(env)
	}
}

func (b *Bus) startWatchLocked(topic string, ts *topicState) {
	w, ok := b.ps.KV().(store.Watcher)
	if !ok {
		return
	}
	stop, err := w.Watch(context.Background(), TriggerKey(topic), func() {
		b.deliver(topic)
	})
	if err != nil {
		b.log.WithError(err).WithField("topic", topic).Warn("Failed to watch trigger key, falling back to polling only")
		return
	}
	ts.stopWatch = stop
}

func (b *Bus) startPollLocked(topic string, ts *topicState) {
	if b.poll <= 0 {
		return
	}
	done := make(chan struct{})
	ts.stopPoll = done
	go func() {
		ticker := time.NewTicker(b.poll)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				b.dispatch(topic, Envelope{
					Action:    ActionSync,
					Timestamp: time.Now().UnixMilli(),
					Origin:    b.origin,
				})
			}
		}
	}()
}

func (b *Bus) stopTopicLocked(topic string, ts *topicState) {
	if ts.stopWatch != nil {
		ts.stopWatch()
	}
	if ts.stopPoll != nil {
		close(ts.stopPoll)
	}
	delete(b.topics, topic)
}

// Close гасит все наблюдения и опросы
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for topic, ts := range b.topics {
		if ts.stopWatch != nil {
			ts.stopWatch()
		}
		if ts.stopPoll != nil {
			close(ts.stopPoll)
		}
		delete(b.topics, topic)
	}
}
