package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

// RewardsKeyPrefix namespaces every computed-rewards cache key.
// Implementations of RewardsCache.Invalidate drop all keys under it.
const RewardsKeyPrefix = "rewards:"

// RewardsCache abstracts the computed-rewards cache (Redis). Cache failures
// are never fatal to a request; the service falls back to recomputation.
type RewardsCache interface {
	Get(ctx context.Context, key string) ([]*domain.CustomerRewards, bool, error)
	Set(ctx context.Context, key string, rewards []*domain.CustomerRewards) error
	Invalidate(ctx context.Context) error
}

type rewardService struct {
	txns  ports.TransactionRepository
	cache RewardsCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewRewardService returns a RewardService computing points over the
// trailing three calendar months. cache may be nil (no caching).
func NewRewardService(txns ports.TransactionRepository, cache RewardsCache, log zerolog.Logger) ports.RewardService {
	return &rewardService{txns: txns, cache: cache, log: log, now: time.Now}
}

// AllRewards returns the reward summary for every customer with activity in
// the window, ordered by customer ID. Results are served through the cache
// when possible.
func (s *rewardService) AllRewards(ctx context.Context) ([]*domain.CustomerRewards, error) {
	from := windowStart(s.now())
	key := RewardsKeyPrefix + "all:" + from.Format("2006-01-02")

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn().Err(err).Msg("rewards cache read failed, recomputing")
		} else if ok {
			s.log.Debug().Str("key", key).Msg("rewards served from cache")
			return cached, nil
		}
	}

	txns, err := s.txns.FindSince(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("compute rewards: %w", err)
	}

	byCustomer := make(map[int][]*domain.Transaction)
	for _, t := range txns {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}

	rewards := make([]*domain.CustomerRewards, 0, len(byCustomer))
	for id, group := range byCustomer {
		rewards = append(rewards, buildRewards(id, group))
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].CustomerID < rewards[j].CustomerID })

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rewards); err != nil {
			s.log.Warn().Err(err).Msg("failed to populate rewards cache")
		}
	}

	s.log.Info().Int("customers", len(rewards)).Time("from", from).Msg("rewards computed")
	return rewards, nil
}

// CustomerRewards returns one customer's summary, or
// domain.ErrCustomerNotFound when the customer has no transactions in the
// window.
func (s *rewardService) CustomerRewards(ctx context.Context, customerID int) (*domain.CustomerRewards, error) {
	from := windowStart(s.now())

	txns, err := s.txns.FindByCustomerSince(ctx, customerID, from)
	if err != nil {
		return nil, fmt.Errorf("compute customer rewards: %w", err)
	}
	if len(txns) == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return buildRewards(customerID, txns), nil
}

// windowStart is the first day of the month two months before now, so the
// window always covers three calendar months including the current one.
func windowStart(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m-2, 1, 0, 0, 0, 0, time.UTC)
}

func buildRewards(customerID int, txns []*domain.Transaction) *domain.CustomerRewards {
	monthly := make(map[string]int)
	total := 0
	for _, t := range txns {
		p := points(t.Amount)
		month := t.Date.Month().String()
		monthly[month] += p
		total += p
	}
	return &domain.CustomerRewards{
		CustomerID:        customerID,
		MonthlyRewards:    monthly,
		TotalRewardPoints: total,
	}
}

// points: 2 per dollar over $100 plus 1 per dollar between $50 and $100,
// truncated to whole points. $49 → 0, $70 → 20, $120 → 90.
func points(amount float64) int {
	p := 0
	if amount > 100 {
		p += int((amount - 100) * 2)
	}
	if amount > 50 {
		p += int(math.Min(amount, 100) - 50)
	}
	return p
}
