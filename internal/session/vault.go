package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// Vault is one visitor's session: the token and the cached user profile.
type Vault struct {
	store Store
	id    string
}

func NewVault(store Store, id string) *Vault {
	return &Vault{store: store, id: id}
}

func (v *Vault) ID() string {
	return v.id
}

func (v *Vault) SaveToken(ctx context.Context, token string) error {
	return v.store.Set(ctx, v.id, TokenKey, token)
}

// Token returns "" when the visitor has no active session.
func (v *Vault) Token(ctx context.Context) (string, error) {
	token, _, err := v.store.Get(ctx, v.id, TokenKey)
	return token, err
}

func (v *Vault) RemoveToken(ctx context.Context) error {
	return v.store.Delete(ctx, v.id, TokenKey)
}

func (v *Vault) SaveUser(ctx context.Context, user any) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	return v.store.Set(ctx, v.id, UserKey, string(raw))
}

// User decodes the cached profile into dst and reports whether one existed.
func (v *Vault) User(ctx context.Context, dst any) (bool, error) {
	raw, ok, err := v.store.Get(ctx, v.id, UserKey)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("session: decode user: %w", err)
	}
	return true, nil
}

func (v *Vault) RemoveUser(ctx context.Context) error {
	return v.store.Delete(ctx, v.id, UserKey)
}

// Rotate moves the record to a freshly minted id and deletes the old one.
// Callers must reissue the visitor cookie with the new ID.
func (v *Vault) Rotate(ctx context.Context) error {
	next := NewID()
	for _, key := range []string{TokenKey, UserKey} {
		value, ok, err := v.store.Get(ctx, v.id, key)
		if err != nil {
			return fmt.Errorf("session: rotate: %w", err)
		}
		if !ok {
			continue
		}
		if err := v.store.Set(ctx, next, key, value); err != nil {
			return fmt.Errorf("session: rotate: %w", err)
		}
	}
	if err := v.store.Delete(ctx, v.id, TokenKey, UserKey); err != nil {
		return fmt.Errorf("session: rotate: %w", err)
	}
	v.id = next
	return nil
}
