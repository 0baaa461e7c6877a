package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// cachedStore memoizes the list reads used by report views. Any write by a
// user drops every cached entry for that user, so cached reads never return
// results that differ from the underlying store.
//
// Each write also bumps the user's generation. A read only fills the cache
// if no write for that user landed while it was in flight.
type cachedStore struct {
	Store
	transactions *cache.LRU[[]models.Transaction]
	limits       *cache.LRU[[]models.BudgetLimit]

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedStore wraps next with a per-user read cache. size <= 0 disables
// caching and returns next unchanged.
func NewCachedStore(next Store, size int, ttl time.Duration) Store {
	if size <= 0 {
		return next
	}
	logger.Named("ledger").Infow("report cache enabled", "size", size, "ttl", ttl.String())
	return &cachedStore{
		Store:        next,
		transactions: cache.NewLRU[[]models.Transaction](size, ttl),
		limits:       cache.NewLRU[[]models.BudgetLimit](size, ttl),
		generations:  make(map[string]uint64),
	}
}

func userPrefix(userID string) string {
	return userID + "|"
}

func filterKey(f Filter) string {
	var b strings.Builder
	b.WriteString(userPrefix(f.UserID))
	if f.Range != nil {
		fmt.Fprintf(&b, "%s..%s", f.Range.Start.Format(time.RFC3339Nano), f.Range.End.Format(time.RFC3339Nano))
	}
	b.WriteString("|")
	types := make([]string, len(f.Types))
	for i, t := range f.Types {
		types[i] = string(t)
	}
	sort.Strings(types)
	b.WriteString(strings.Join(types, ","))
	b.WriteString("|")
	cats := append([]string(nil), f.Categories...)
	sort.Strings(cats)
	b.WriteString(strings.Join(cats, ","))
	return b.String()
}

func (s *cachedStore) ListTransactions(ctx context.Context, f Filter) ([]models.Transaction, error) {
	key := filterKey(f)
	if rows, ok := s.transactions.Get(key); ok {
		return append([]models.Transaction(nil), rows...), nil
	}
	gen := s.generation(f.UserID)
	rows, err := s.Store.ListTransactions(ctx, f)
	if err != nil {
		return nil, err
	}
	s.fill(f.UserID, gen, func() {
		s.transactions.Set(key, append([]models.Transaction(nil), rows...))
	})
	return rows, nil
}

func (s *cachedStore) ListBudgetLimits(ctx context.Context, userID string, categories []string) ([]models.BudgetLimit, error) {
	cats := append([]string(nil), categories...)
	sort.Strings(cats)
	key := userPrefix(userID) + strings.Join(cats, ",")
	if limits, ok := s.limits.Get(key); ok {
		return append([]models.BudgetLimit(nil), limits...), nil
	}
	gen := s.generation(userID)
	limits, err := s.Store.ListBudgetLimits(ctx, userID, categories)
	if err != nil {
		return nil, err
	}
	s.fill(userID, gen, func() {
		s.limits.Set(key, append([]models.BudgetLimit(nil), limits...))
	})
	return limits, nil
}

func (s *cachedStore) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// fill runs set only if the user's generation still equals gen.
func (s *cachedStore) fill(userID string, gen uint64, set func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		return
	}
	set()
}

func (s *cachedStore) invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[userID]++
	s.transactions.DeletePrefix(userPrefix(userID))
	s.limits.DeletePrefix(userPrefix(userID))
}

func (s *cachedStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	defer s.invalidate(tx.UserID)
	return s.Store.CreateTransaction(ctx, tx)
}

func (s *cachedStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	defer s.invalidate(tx.UserID)
	return s.Store.UpdateTransaction(ctx, tx)
}

func (s *cachedStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	defer s.invalidate(userID)
	return s.Store.DeleteTransaction(ctx, userID, id)
}

func (s *cachedStore) UpsertBudgetLimit(ctx context.Context, limit *models.BudgetLimit) error {
	defer s.invalidate(limit.UserID)
	return s.Store.UpsertBudgetLimit(ctx, limit)
}
