package translate

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
)

// Cache is the part of *memcache.Client used by CachedTranslator.
type Cache interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

type CachedTranslator struct {
	next Translator
	// ttl in seconds
	ttl   int32
	cache Cache
	onErr func(err error)
}

func NewCachedTranslator(next Translator, cache Cache, ttl int32, onErr func(err error)) *CachedTranslator {
	if onErr == nil {
		onErr = func(error) {}
	}

	return &CachedTranslator{
		next:  next,
		ttl:   ttl,
		cache: cache,
		onErr: onErr,
	}
}

// cacheKey hashes the request since memcached keys are limited to 250 bytes
// without whitespace.
func cacheKey(text string, source string, dest string) string {
	sum := sha1.Sum([]byte(source + "\x00" + dest + "\x00" + text))
	return "translation:" + hex.EncodeToString(sum[:])
}

func (t *CachedTranslator) Translate(ctx context.Context, text string, source string, dest string) (string, error) {
	key := cacheKey(text, source, dest)

	item, err := t.cache.Get(key)
	if err == nil {
		return string(item.Value), nil
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		t.onErr(err)
	}

	translated, err := t.next.Translate(ctx, text, source, dest)
	if err != nil {
		return "", err
	}

	if err := t.cache.Set(&memcache.Item{
		Key:        key,
		Value:      []byte(translated),
		Expiration: t.ttl,
	}); err != nil {
		t.onErr(err)
	}

	return translated, nil
}
