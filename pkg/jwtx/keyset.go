package jwtx

import (
	"errors"
	"sync"
)

// KeySet holds the HMAC keys a verifier accepts, indexed by kid. The active
// signing key is in here too, alongside any previous keys kept around so
// links minted before a secret rotation keep working until they expire.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string][]byte
	kids []string // insertion order, for listing
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		keys: make(map[string][]byte),
	}
}

// Add registers an HMAC key under kid. Re-adding a kid replaces its key.
func (k *KeySet) Add(kid string, key []byte) error {
	if kid == "" {
		return errors.New("jwtx: missing kid")
	}
	if len(key) == 0 {
		return ErrNoKey
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, exists := k.keys[kid]; !exists {
		k.kids = append(k.kids, kid)
	}
	k.keys[kid] = append([]byte(nil), key...)
	return nil
}

// Get returns the key for the given kid.
func (k *KeySet) Get(kid string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if key, ok := k.keys[kid]; ok {
		return key, nil
	}
	return nil, ErrNoKey
}

// KIDs returns the registered key ids in the order they were added.
func (k *KeySet) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]string(nil), k.kids...)
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
