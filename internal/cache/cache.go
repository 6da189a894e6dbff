// Package cache stores serialized engine results keyed by their input.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cache is a string key/value store with a fixed time-to-live per entry.
// A miss and an unreachable backend both report ok == false.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key hashes the canonical JSON encoding of v under a namespace
func Key(namespace string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return namespace + ":" + hex.EncodeToString(sum[:]), nil
}
