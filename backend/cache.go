package backend

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"eventdesk/logger"
	"eventdesk/models"
)

const (
	cacheListKey    = "cache:events:list"
	cacheItemPrefix = "cache:events:item:"
)

// CachedEvents is a read-through cache in front of an EventRepository. List
// and item reads are served from Redis until the TTL expires; every mutation
// purges the affected keys so a re-render after enroll or edit sees fresh
// capacity. Redis trouble degrades to the inner repository.
type CachedEvents struct {
	inner models.EventRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedEvents(inner models.EventRepository, rdb *redis.Client, ttl time.Duration) *CachedEvents {
	return &CachedEvents{inner: inner, rdb: rdb, ttl: ttl}
}

func (r *CachedEvents) GetAll() ([]models.Event, error) {
	var cached []models.Event
	if r.lookup(cacheListKey, &cached) {
		return cached, nil
	}

	events, err := r.inner.GetAll()
	if err != nil {
		return nil, err
	}
	r.fill(cacheListKey, events)
	return events, nil
}

func (r *CachedEvents) GetByID(id string) (models.Event, error) {
	var cached models.Event
	if r.lookup(cacheItemPrefix+id, &cached) {
		return cached, nil
	}

	event, err := r.inner.GetByID(id)
	if err != nil {
		return models.Event{}, err
	}
	r.fill(cacheItemPrefix+id, event)
	return event, nil
}

func (r *CachedEvents) Create(e *models.Event) error {
	if err := r.inner.Create(e); err != nil {
		return err
	}
	r.purge(e.ID)
	return nil
}

func (r *CachedEvents) Update(e *models.Event) error {
	if err := r.inner.Update(e); err != nil {
		return err
	}
	r.purge(e.ID)
	return nil
}

func (r *CachedEvents) Delete(id string) error {
	if err := r.inner.Delete(id); err != nil {
		return err
	}
	r.purge(id)
	return nil
}

func (r *CachedEvents) lookup(key string, out any) bool {
	ctx := context.Background()
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Debugf("event cache read %s: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (r *CachedEvents) fill(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(context.Background(), key, raw, r.ttl).Err(); err != nil {
		logger.Debugf("event cache write %s: %v", key, err)
	}
}

// purge drops the list key and the item key for id. Item ids are kept
// verbatim in the key, so no scan is needed.
func (r *CachedEvents) purge(id string) {
	ctx := context.Background()
	keys := []string{cacheListKey}
	if id != "" {
		keys = append(keys, cacheItemPrefix+id)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Debugf("event cache purge: %v", err)
	}
}
