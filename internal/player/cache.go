package player

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/striderquest/StriderQuest_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cached session shape.
// Increment when the cached structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedSession wraps a loaded session with version metadata
type cachedSession struct {
	Version  string
	Player   *domain.Player
	QuestLog *domain.QuestLog
	CachedAt time.Time
}

// sessionCache is an in-memory LRU for loaded player sessions with
// time-based expiration. Entries hold the live record; the per-player lock
// in the service serializes access to it.
type sessionCache struct {
	lru *expirable.LRU[string, *cachedSession]
}

func newSessionCache(size int, ttl time.Duration) *sessionCache {
	return &sessionCache{
		lru: expirable.NewLRU[string, *cachedSession](size, nil, ttl),
	}
}

// Get returns the cached session, dropping entries written by an older
// schema version.
func (c *sessionCache) Get(playerID string) (*cachedSession, bool) {
	entry, found := c.lru.Get(playerID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(playerID)
		return nil, false
	}
	return entry, true
}

func (c *sessionCache) Set(playerID string, player *domain.Player, questLog *domain.QuestLog) {
	c.lru.Add(playerID, &cachedSession{
		Version:  CacheSchemaVersion,
		Player:   player,
		QuestLog: questLog,
		CachedAt: time.Now(),
	})
}

// Keys returns the player IDs with a live cached session
func (c *sessionCache) Keys() []string {
	return c.lru.Keys()
}

// Invalidate removes a session, forcing the next operation to reload from
// the stores
func (c *sessionCache) Invalidate(playerID string) {
	c.lru.Remove(playerID)
}

func (c *sessionCache) Clear() {
	c.lru.Purge()
}
