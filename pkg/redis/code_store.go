package redis

import (
	"context"
	"strings"
	"time"
)

// CodeStore keeps short-lived one-time codes, such as password reset codes,
// keyed by purpose and email.
type CodeStore struct {
	client *Client
	prefix string
}

// NewCodeStore creates a code store whose keys start with prefix
func NewCodeStore(client *Client, prefix string) *CodeStore {
	return &CodeStore{client: client, prefix: prefix}
}

func (s *CodeStore) key(email string) string {
	return s.prefix + ":" + strings.ToLower(email)
}

// Save stores code for email, replacing any previous one
func (s *CodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(email), code, ttl)
}

// Get returns the stored code or ErrKeyNotFound
func (s *CodeStore) Get(ctx context.Context, email string) (string, error) {
	return s.client.Get(ctx, s.key(email))
}

// Delete removes the code for email
func (s *CodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email))
}
