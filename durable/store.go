package durable

import "sync"

// Store is the key-value abstraction the tenant registry runs on. The
// service ships with the volatile in-memory implementation below; a durable
// backend only needs to satisfy this interface.
type Store interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
	Delete(key string) bool
	Count() int
}

type MemoryStore struct {
	mutex   sync.RWMutex
	records map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]interface{})}
}

func (store *MemoryStore) Get(key string) (interface{}, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	value, found := store.records[key]
	return value, found
}

func (store *MemoryStore) Put(key string, value interface{}) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.records[key] = value
}

func (store *MemoryStore) Delete(key string) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	_, found := store.records[key]
	delete(store.records, key)
	return found
}

func (store *MemoryStore) Count() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	return len(store.records)
}
