package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StandardPrizePct is the fixed percentage schedule applied to the total prize
// budget, indexed by rank-1. The slots intentionally sum to ~96.7%, not 100%;
// the flooring residue stays unallocated and must never be redistributed.
var StandardPrizePct = [domain.PayoutTierSize]float64{
	20, 15, 10, 8, 7, 5, 4, 3, 2.5, 2,
	1.2, 1.2, 1.2, 1.2, 1.2,
	1, 1, 1, 1, 1,
	0.8, 0.8, 0.8, 0.8, 0.8,
	0.5, 0.5, 0.5, 0.5, 0.5,
}

// RecomputeResult summarizes one leaderboard recomputation.
type RecomputeResult struct {
	Eligible int `json:"eligible"` // approved submissions considered
	Written  int `json:"written"`  // leaderboard rows persisted (<= PayoutTierSize)
}

// --- Service Interface ---
type LeaderboardService interface {
	// RecomputeLeaderboard rebuilds the contest's leaderboard from current
	// metrics totals and replaces all persisted rows for that contest.
	RecomputeLeaderboard(ctx context.Context, contestID primitive.ObjectID) (*RecomputeResult, error)
	GetLeaderboard(ctx context.Context, contestID primitive.ObjectID) ([]domain.LeaderboardEntry, error)
}

// --- Service Implementation ---

// leaderboardService implements the LeaderboardService interface.
type leaderboardService struct {
	submissionRepo  repository.SubmissionRepository
	contestRepo     repository.ContestRepository
	leaderboardRepo repository.LeaderboardRepository

	// Serializes recomputes per contest within this process. Two concurrent
	// recomputes for the same contest would otherwise interleave the
	// delete and upsert phases. Cross-process isolation is NOT provided;
	// the last completed recompute wins.
	locksMu sync.Mutex
	locks   map[primitive.ObjectID]*sync.Mutex
}

// NewLeaderboardService creates a new instance of leaderboardService.
func NewLeaderboardService(
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
	leaderboardRepo repository.LeaderboardRepository,
) LeaderboardService {
	return &leaderboardService{
		submissionRepo:  submissionRepo,
		contestRepo:     contestRepo,
		leaderboardRepo: leaderboardRepo,
		locks:           make(map[primitive.ObjectID]*sync.Mutex),
	}
}

// RecomputeLeaderboard ranks the contest's approved submissions by cumulative
// view count, truncates to the payout tier, allocates the prize budget with
// the fixed percentage schedule and replaces the persisted rows.
//
// The replacement is delete-then-upsert across two storage calls; a failure
// between them can leave the contest with an empty leaderboard until the next
// recompute. Any storage failure aborts and propagates unmodified.
func (s *leaderboardService) RecomputeLeaderboard(ctx context.Context, contestID primitive.ObjectID) (*RecomputeResult, error) {
	if contestID == primitive.NilObjectID {
		return nil, errors.New("contest ID is required")
	}

	unlock := s.lockContest(contestID)
	defer unlock()

	// 1. Approved submissions with summed metrics across all snapshot dates.
	totals, err := s.submissionRepo.GetApprovedTotalsByContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	// 2. Rank by raw cumulative views. Likes/comments/shares are fetched but
	// deliberately not part of the ranking key. Ties are broken by earlier
	// submission creation, then by submission ID, so the ordering is a
	// deterministic total order regardless of fetch order.
	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if a.SumViews != b.SumViews {
			return a.SumViews > b.SumViews
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.SubmissionID.Hex() < b.SubmissionID.Hex()
	})

	// 3. Prize budget; a missing contest ranks against a zero budget.
	var totalPrizeCents int64
	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	} else {
		totalPrizeCents = contest.TotalPrizeCents
	}

	// 4. Truncate to the payout tier and allocate prizes.
	top := totals
	if len(top) > domain.PayoutTierSize {
		top = top[:domain.PayoutTierSize]
	}

	now := time.Now().UTC()
	entries := make([]domain.LeaderboardEntry, len(top))
	for idx, row := range top {
		entries[idx] = domain.LeaderboardEntry{
			ContestID:     contestID,
			Rank:          idx + 1,
			SubmissionID:  row.SubmissionID,
			CreatorID:     row.CreatorID,
			ViewsWeighted: row.SumViews,
			PrizeCents:    prizeCentsForRank(idx, totalPrizeCents),
			ComputedAt:    now,
		}
	}

	// 5. Replace the persisted rows. Zero eligible submissions still clears
	// the old leaderboard; the upsert is then a no-op, not an error.
	if err := s.leaderboardRepo.DeleteByContestID(ctx, contestID); err != nil {
		return nil, err
	}
	if err := s.leaderboardRepo.UpsertMany(ctx, entries); err != nil {
		return nil, err
	}

	return &RecomputeResult{
		Eligible: len(totals),
		Written:  len(entries),
	}, nil
}

// GetLeaderboard returns the persisted leaderboard ordered by rank.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, contestID primitive.ObjectID) ([]domain.LeaderboardEntry, error) {
	if contestID == primitive.NilObjectID {
		return nil, errors.New("contest ID is required")
	}
	return s.leaderboardRepo.GetByContestID(ctx, contestID)
}

// prizeCentsForRank computes floor(pct/100 * total) for the 0-based rank
// index. Decimal arithmetic keeps the fractional slots (2.5, 1.2, 0.8, 0.5)
// exact; float64 would floor 1.2% of some budgets one cent short.
func prizeCentsForRank(idx int, totalPrizeCents int64) int64 {
	if idx < 0 || idx >= domain.PayoutTierSize || totalPrizeCents <= 0 {
		return 0
	}
	pct := decimal.NewFromFloat(StandardPrizePct[idx])
	return pct.
		Mul(decimal.NewFromInt(totalPrizeCents)).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
}

// lockContest acquires the per-contest mutex, creating it on first use.
func (s *leaderboardService) lockContest(contestID primitive.ObjectID) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[contestID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[contestID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
