package replicate

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/bus"
	"github.com/smirnov-dev/presence_sync/internal/store"
)

// Entity - элемент коллекции. UniqueName может быть пустым, тогда ось
// уникальности по имени для типа отключена.
type Entity[T any] interface {
	EntityID() int64
	UniqueName() string
	WithID(id int64) T
}

// Patch - разреженное обновление: Apply возвращает новое значение,
// не изменяя исходное
type Patch[T any] interface {
	Apply(T) T
}

// Deleted - полезная нагрузка конвертов delete/deleteAll
type Deleted struct {
	IDs []int64 `json:"deleted_ids"`
}

// Collection - реплицируемая коллекция: упорядоченная последовательность
// сущностей в памяти, сквозная запись в хранилище и вещание изменений
// через шину. Каждый контекст держит свою копию; при любом уведомлении
// копия целиком замещается свежим чтением из хранилища.
//
// Согласования между одновременными писателями нет: два контекста,
// пишущие один ключ, перезаписывают его каждый своим полным снимком, и
// целиком побеждает та запись, что физически легла последней. Проигравшие
// изменения молча теряются.
type Collection[T Entity[T]] struct {
	mu    sync.RWMutex
	items []T

	ps  *store.Persistent
	bus *bus.Bus
	key string
	log *logrus.Entry

	unsub func()
}

// New загружает коллекцию из хранилища. Пустой ключ засевается встроенной
// коллекцией по умолчанию; загруженная последовательность проходит
// дедупликацию (первое вхождение по идентификатору и по нормализованному
// имени побеждает), и починенная версия пишется обратно.
func New[T Entity[T]](ctx context.Context, ps *store.Persistent, b *bus.Bus, key string, seed []T, log *logrus.Logger) *Collection[T] {
	c := &Collection[T]{
		ps:  ps,
		bus: b,
		key: key,
		log: log.WithField("collection", key),
	}

	var loaded []T
	if !ps.ReadJSON(ctx, key, &loaded) {
		c.items = append([]T(nil), seed...)
		ps.WriteJSON(ctx, key, c.items)
		c.log.WithField("count", len(c.items)).Info("Seeded collection with defaults")
	} else {
		deduped, dropped := dedup(loaded)
		c.items = deduped
		if dropped > 0 {
			ps.WriteJSON(ctx, key, c.items)
			c.log.WithField("dropped", dropped).Warn("Removed duplicate entities on load")
		}
	}

	c.unsub = b.Subscribe(key, func(bus.Envelope) {
		c.reload()
	})
	return c
}

// Create присваивает новый идентификатор (максимум существующих + 1),
// дописывает сущность, сохраняет и вещает изменение. Инварианты
// уникальности проверяет вызывающий до мутации.
func (c *Collection[T]) Create(ctx context.Context, e T) T {
	c.mu.Lock()
	var maxID int64
	for _, it := range c.items {
		if it.EntityID() > maxID {
			maxID = it.EntityID()
		}
	}
	e = e.WithID(maxID + 1)
	c.items = append(c.items, e)
	c.ps.WriteJSON(ctx, c.key, c.items)
	c.mu.Unlock()

	c.publish(ctx, bus.ActionCreate, e)
	return e
}

// Update накладывает разреженный патч на сущность с данным идентификатором
func (c *Collection[T]) Update(ctx context.Context, id int64, p Patch[T]) (T, bool) {
	var merged T
	c.mu.Lock()
	idx := -1
	for i, it := range c.items {
		if it.EntityID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return merged, false
	}
	merged = p.Apply(c.items[idx])
	c.items[idx] = merged
	c.ps.WriteJSON(ctx, c.key, c.items)
	c.mu.Unlock()

	c.publish(ctx, bus.ActionUpdate, merged)
	return merged, true
}

// Delete удаляет сущность. Удаление разрушающее и вещается немедленно.
func (c *Collection[T]) Delete(ctx context.Context, id int64) bool {
	c.mu.Lock()
	kept := c.items[:0]
	found := false
	for _, it := range c.items {
		if it.EntityID() == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		c.mu.Unlock()
		return false
	}
	c.items = kept
	c.ps.WriteJSON(ctx, c.key, c.items)
	c.mu.Unlock()

	c.publish(ctx, bus.ActionDelete, Deleted{IDs: []int64{id}})
	return true
}

// DeleteMany удаляет набор сущностей и возвращает действительно удалённые
// идентификаторы
func (c *Collection[T]) DeleteMany(ctx context.Context, ids []int64) []int64 {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	c.mu.Lock()
	kept := c.items[:0]
	var deleted []int64
	for _, it := range c.items {
		if drop[it.EntityID()] {
			deleted = append(deleted, it.EntityID())
			continue
		}
		kept = append(kept, it)
	}
	if len(deleted) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.items = kept
	c.ps.WriteJSON(ctx, c.key, c.items)
	c.mu.Unlock()

	c.publish(ctx, bus.ActionDeleteAll, Deleted{IDs: deleted})
	return deleted
}

// Get возвращает сущность по идентификатору
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// List возвращает копию текущей последовательности
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// NameExists проверяет занятость нормализованного имени, игнорируя
// сущность excludeID (для проверок при обновлении)
func (c *Collection[T]) NameExists(name string, excludeID int64) bool {
	want := NormName(name)
	if want == "" {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.EntityID() == excludeID {
			continue
		}
		if NormName(it.UniqueName()) == want {
			return true
		}
	}
	return false
}

// Close отписывает коллекцию от шины
func (c *Collection[T]) Close() {
	if c.unsub != nil {
		c.unsub()
	}
}

// reload целиком замещает копию в памяти свежим чтением из хранилища.
// Полевое слияние не делается: писатели сохраняют до вещания, поэтому
// свежее чтение уже содержит их изменение, а повторные и перепутанные
// уведомления становятся безвредными.
func (c *Collection[T]) reload() {
	var fresh []T
	if !c.ps.ReadJSON(context.Background(), c.key, &fresh) {
		// Хранилище пусто или испорчено: работаем на текущей копии
		c.log.Debug("Reload skipped, store value unavailable")
		return
	}
	c.mu.Lock()
	c.items = fresh
	c.mu.Unlock()
}

func (c *Collection[T]) publish(ctx context.Context, action string, data any) {
	if err := c.bus.Publish(ctx, c.key, action, data); err != nil {
		c.log.WithError(err).WithField("action", action).Warn("Failed to broadcast change")
	}
}

// NormName - нормализация имени для оси уникальности
func NormName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dedup оставляет первое вхождение каждого идентификатора и каждого
// непустого нормализованного имени
func dedup[T Entity[T]](items []T) ([]T, int) {
	seenID := make(map[int64]bool, len(items))
	seenName := make(map[string]bool, len(items))
	kept := make([]T, 0, len(items))
	dropped := 0
	for _, it := range items {
		if seenID[it.EntityID()] {
			dropped++
			continue
		}
		name := NormName(it.UniqueName())
		if name != "" && seenName[name] {
			dropped++
			continue
		}
		seenID[it.EntityID()] = true
		if name != "" {
			seenName[name] = true
		}
		kept = append(kept, it)
	}
	return kept, dropped
}
