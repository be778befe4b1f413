package service

import (
	"cliprace/backend/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLeaderboardFixture() (*fakeSubmissionRepo, *fakeContestRepo, *fakeLeaderboardRepo, LeaderboardService) {
	submissionRepo := newFakeSubmissionRepo()
	contestRepo := newFakeContestRepo()
	leaderboardRepo := newFakeLeaderboardRepo()
	svc := NewLeaderboardService(submissionRepo, contestRepo, leaderboardRepo)
	return submissionRepo, contestRepo, leaderboardRepo, svc
}

// totalsWithViews builds n totals rows with strictly decreasing view counts
// and increasing creation timestamps.
func totalsWithViews(views ...int64) []domain.SubmissionTotals {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	totals := make([]domain.SubmissionTotals, len(views))
	for i, v := range views {
		totals[i] = domain.SubmissionTotals{
			SubmissionID: primitive.NewObjectID(),
			CreatorID:    primitive.NewObjectID(),
			CreatedAt:    primitive.NewDateTimeFromTime(base.Add(time.Duration(i) * time.Minute)),
			SumViews:     v,
		}
	}
	return totals
}

func TestRecomputeLeaderboard_PrizeSchedule(t *testing.T) {
	require := require.New(t)
	submissionRepo, contestRepo, _, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{
		Status:          domain.ContestActive,
		TotalPrizeCents: 100000, // 1000.00 EUR
	})

	views := make([]int64, domain.PayoutTierSize)
	for i := range views {
		views[i] = int64(100000 - i*1000)
	}
	submissionRepo.totals = totalsWithViews(views...)

	result, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Equal(30, result.Eligible)
	require.Equal(30, result.Written)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Len(entries, 30)

	// Spot-check the fixed schedule against a 1000 EUR budget
	require.Equal(int64(20000), entries[0].PrizeCents)
	require.Equal(int64(15000), entries[1].PrizeCents)
	require.Equal(int64(10000), entries[2].PrizeCents)
	require.Equal(int64(2500), entries[8].PrizeCents)
	require.Equal(int64(2000), entries[9].PrizeCents)
	require.Equal(int64(1200), entries[10].PrizeCents)
	require.Equal(int64(1000), entries[15].PrizeCents)
	require.Equal(int64(800), entries[20].PrizeCents)
	require.Equal(int64(500), entries[29].PrizeCents)

	// The schedule sums to 96.7% of the budget; the residue stays unallocated
	var sum int64
	for _, entry := range entries {
		sum += entry.PrizeCents
	}
	require.Equal(int64(96700), sum)
}

func TestRecomputeLeaderboard_RankingInvariants(t *testing.T) {
	require := require.New(t)
	submissionRepo, contestRepo, _, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 50000})
	submissionRepo.totals = totalsWithViews(10, 900, 42, 900, 7)

	result, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Equal(5, result.Eligible)
	require.Equal(5, result.Written)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Len(entries, 5)

	for i, entry := range entries {
		require.Equal(i+1, entry.Rank, "ranks must be dense starting at 1")
		require.Equal(contestID, entry.ContestID)
		if i > 0 {
			require.LessOrEqual(entry.ViewsWeighted, entries[i-1].ViewsWeighted)
			require.LessOrEqual(entry.PrizeCents, entries[i-1].PrizeCents)
		}
	}
	require.Equal(int64(900), entries[0].ViewsWeighted)
	require.Equal(int64(7), entries[4].ViewsWeighted)
}

func TestRecomputeLeaderboard_TieBreakDeterministic(t *testing.T) {
	require := require.New(t)
	submissionRepo, contestRepo, _, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 10000})

	earlier := primitive.NewDateTimeFromTime(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC))
	later := primitive.NewDateTimeFromTime(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	submissionRepo.totals = []domain.SubmissionTotals{
		{SubmissionID: second, CreatorID: primitive.NewObjectID(), CreatedAt: later, SumViews: 500},
		{SubmissionID: first, CreatorID: primitive.NewObjectID(), CreatedAt: earlier, SumViews: 500},
	}

	_, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Len(entries, 2)
	require.Equal(first, entries[0].SubmissionID, "earlier submission wins the tie")
	require.Equal(second, entries[1].SubmissionID)
}

func TestRecomputeLeaderboard_TruncatesToPayoutTier(t *testing.T) {
	require := require.New(t)
	submissionRepo, contestRepo, _, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 100000})

	views := make([]int64, domain.PayoutTierSize+1)
	for i := range views {
		views[i] = int64(1000 - i)
	}
	submissionRepo.totals = totalsWithViews(views...)

	result, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Equal(31, result.Eligible)
	require.Equal(30, result.Written)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Len(entries, domain.PayoutTierSize)
	require.Equal(domain.PayoutTierSize, entries[len(entries)-1].Rank)
}

func TestRecomputeLeaderboard_ZeroEligibleClearsBoard(t *testing.T) {
	require := require.New(t)
	_, contestRepo, leaderboardRepo, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 100000})

	// Stale rows from an earlier recompute
	leaderboardRepo.entries[contestID] = []domain.LeaderboardEntry{
		{ContestID: contestID, Rank: 1, PrizeCents: 20000},
	}

	result, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Equal(0, result.Eligible)
	require.Equal(0, result.Written)
	require.Equal(1, leaderboardRepo.deleteCalls)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Empty(entries)
}

func TestRecomputeLeaderboard_MissingContestRanksWithZeroBudget(t *testing.T) {
	require := require.New(t)
	submissionRepo, _, _, svc := newLeaderboardFixture()

	contestID := primitive.NewObjectID() // never stored
	submissionRepo.totals = totalsWithViews(300, 200, 100)

	result, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	require.Equal(3, result.Written)

	entries, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)
	for _, entry := range entries {
		require.Zero(entry.PrizeCents)
	}
}

func TestRecomputeLeaderboard_Idempotent(t *testing.T) {
	require := require.New(t)
	submissionRepo, contestRepo, _, svc := newLeaderboardFixture()

	contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 75000})
	submissionRepo.totals = totalsWithViews(5000, 4000, 3000)

	_, err := svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	firstRun, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)

	_, err = svc.RecomputeLeaderboard(context.Background(), contestID)
	require.NoError(err)
	secondRun, err := svc.GetLeaderboard(context.Background(), contestID)
	require.NoError(err)

	require.Len(secondRun, len(firstRun))
	for i := range firstRun {
		require.Equal(firstRun[i].Rank, secondRun[i].Rank)
		require.Equal(firstRun[i].SubmissionID, secondRun[i].SubmissionID)
		require.Equal(firstRun[i].PrizeCents, secondRun[i].PrizeCents)
	}
}

func TestRecomputeLeaderboard_StorageErrorsPropagate(t *testing.T) {
	require := require.New(t)

	t.Run("totals query fails", func(t *testing.T) {
		submissionRepo, contestRepo, _, svc := newLeaderboardFixture()
		contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 1000})
		submissionRepo.totalsErr = errors.New("aggregation failed")

		_, err := svc.RecomputeLeaderboard(context.Background(), contestID)
		require.ErrorContains(err, "aggregation failed")
	})

	t.Run("delete fails", func(t *testing.T) {
		submissionRepo, contestRepo, leaderboardRepo, svc := newLeaderboardFixture()
		contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 1000})
		submissionRepo.totals = totalsWithViews(100)
		leaderboardRepo.deleteErr = errors.New("delete failed")

		_, err := svc.RecomputeLeaderboard(context.Background(), contestID)
		require.ErrorContains(err, "delete failed")
		require.Zero(leaderboardRepo.upsertCalls, "upsert must not run after a failed delete")
	})

	t.Run("upsert fails", func(t *testing.T) {
		submissionRepo, contestRepo, leaderboardRepo, svc := newLeaderboardFixture()
		contestID := contestRepo.add(&domain.Contest{TotalPrizeCents: 1000})
		submissionRepo.totals = totalsWithViews(100)
		leaderboardRepo.upsertErr = errors.New("bulk write failed")

		_, err := svc.RecomputeLeaderboard(context.Background(), contestID)
		require.ErrorContains(err, "bulk write failed")
	})
}

func TestRecomputeLeaderboard_RequiresContestID(t *testing.T) {
	require := require.New(t)
	_, _, _, svc := newLeaderboardFixture()

	_, err := svc.RecomputeLeaderboard(context.Background(), primitive.NilObjectID)
	require.Error(err)
}

func TestPrizeCentsForRank(t *testing.T) {
	require := require.New(t)

	// Fractional percentage slots must floor exactly. 1.2% of 999 cents is
	// 11.988 and must come out as 11, not 12.
	require.Equal(int64(11), prizeCentsForRank(10, 999))
	require.Equal(int64(199), prizeCentsForRank(0, 999)) // floor(199.8)
	require.Equal(int64(24), prizeCentsForRank(8, 999))  // floor(24.975)

	require.Zero(prizeCentsForRank(0, 0))
	require.Zero(prizeCentsForRank(0, -100))
	require.Zero(prizeCentsForRank(-1, 100000))
	require.Zero(prizeCentsForRank(domain.PayoutTierSize, 100000))
}

func TestStandardPrizePct_ScheduleShape(t *testing.T) {
	require := require.New(t)

	var sum float64
	for i, pct := range StandardPrizePct {
		require.Positive(pct)
		if i > 0 {
			require.LessOrEqual(pct, StandardPrizePct[i-1], "schedule must be non-increasing")
		}
		sum += pct
	}
	require.InDelta(96.7, sum, 1e-9)
}
