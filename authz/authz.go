// Package authz supplies the authorization gate consulted by the ledger.
//
// Real role and permission management is an external collaborator's concern;
// the ledger only needs to know the admin identity and whether a caller is an
// authorized producer. Static is a trivial allow-list implementation suitable
// for embedding and for tests; production deployments inject their own
// Authorizer at wiring time.
package authz

import (
	"sync"

	"github.com/bigshegs18/OrganicTrace/types"
)

// Authorizer decides whether a caller may create batches and identifies the
// registry admin. Implementations must be safe for concurrent use.
type Authorizer interface {
	// Admin returns the registry admin identity.
	Admin() types.Account

	// IsAuthorizedProducer reports whether the account may create batches.
	// The admin is gated separately and need not be listed here.
	IsAuthorizedProducer(account types.Account) bool
}

// Static is an allow-list Authorizer with a fixed admin identity.
type Static struct {
	mu        sync.RWMutex
	admin     types.Account
	producers map[types.Account]struct{}
}

var _ Authorizer = (*Static)(nil)

// NewStatic creates a Static authorizer with the given admin and initial
// producer allow-list.
func NewStatic(admin types.Account, producers ...types.Account) *Static {
	s := &Static{
		admin:     admin,
		producers: make(map[types.Account]struct{}, len(producers)),
	}
	for _, p := range producers {
		s.producers[p] = struct{}{}
	}
	return s
}

// Admin implements Authorizer.
func (s *Static) Admin() types.Account { return s.admin }

// IsAuthorizedProducer implements Authorizer.
func (s *Static) IsAuthorizedProducer(account types.Account) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.producers[account]
	return ok
}

// Allow adds an account to the producer allow-list.
func (s *Static) Allow(account types.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.producers[account] = struct{}{}
}

// Deny removes an account from the producer allow-list.
func (s *Static) Deny(account types.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.producers, account)
}
