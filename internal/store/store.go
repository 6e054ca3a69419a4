package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotFound возвращается бэкендом, когда ключ отсутствует
var ErrNotFound = errors.New("store: key not found")

//go:generate mockgen -source=store.go -destination=mocks/kv.go -package=mocks

// KV определяет контракт бэкенда хранилища: плоские ключи, значения-байты.
// Реализации: память, файлы, redis, badger.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Watcher - опциональная способность бэкенда сообщать об изменении ключа
// из соседнего контекста. Бэкенды без Watcher полагаются на периодическую
// пересинхронизацию.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func()) (stop func(), err error)
}

// Persistent - JSON-обёртка над бэкендом. По контракту никогда не роняет
// вызывающего: повреждённые данные читаются как отсутствующие, неудачная
// запись логируется, и состояние в памяти остаётся рабочим.
type Persistent struct {
	kv  KV
	log *logrus.Logger
}

func NewPersistent(kv KV, log *logrus.Logger) *Persistent {
	return &Persistent{kv: kv, log: log}
}

// KV возвращает нижележащий бэкенд (нужен шине для подписки на ключи)
func (p *Persistent) KV() KV {
	return p.kv
}

// ReadJSON читает и разбирает значение по ключу. false означает
// "отсутствует": ключа нет, бэкенд недоступен или JSON повреждён.
func (p *Persistent) ReadJSON(ctx context.Context, key string, dst any) bool {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.WithError(err).WithField("key", key).Warn("Failed to read from store")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Corrupt value in store, treating as absent")
		return false
	}
	return true
}

// WriteJSON сериализует и записывает значение. Неудача только логируется:
// контекст продолжает работать на своей копии в памяти.
func (p *Persistent) WriteJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Error("Failed to marshal value for store")
		return
	}
	if err := p.kv.Set(ctx, key, raw); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Failed to write to store, in-memory state stays authoritative")
	}
}
