package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store holds active sessions keyed by session id. Get hands out an
// independent copy; Save replaces the stored record with a copy of the
// argument; Update mutates the stored record atomically, so two writers
// (the request cycle and the embeddings consumer) never exchange bare
// pointers.
type Store interface {
	Save(s *Session)
	Get(id string) (*Session, bool)
	// Update applies fn to the stored session under the store's lock and
	// persists the result. Returns false when the session does not exist.
	Update(id string, fn func(*Session)) bool
	Delete(id string)
}

type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewMemoryStore keeps sessions in-process with the given idle TTL,
// purging expired entries every 10 minutes.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (r *MemoryStore) Save(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(s.Id, s.Clone(), cache.DefaultExpiration)
}

func (r *MemoryStore) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(id); found {
		return x.(*Session).Clone(), true
	}
	return nil, false
}

func (r *MemoryStore) Update(id string, fn func(*Session)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, found := r.cache.Get(id)
	if !found {
		return false
	}
	s := x.(*Session)
	fn(s)
	r.cache.Set(id, s, cache.DefaultExpiration)
	return true
}

func (r *MemoryStore) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(id)
}
