package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes with injectable errors. Only the behavior the
// services under test rely on is implemented faithfully; everything else is
// a thin map lookup.

type fakeSubmissionRepo struct {
	submissions map[primitive.ObjectID]*domain.Submission
	totals      []domain.SubmissionTotals
	approvedIDs []primitive.ObjectID

	totalsErr error
	idsErr    error
	createErr error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[primitive.ObjectID]*domain.Submission)}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	submission.ID = id
	copied := *submission
	f.submissions[id] = &copied
	return id, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *submission
	return &copied, nil
}

func (f *fakeSubmissionRepo) GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, submission := range f.submissions {
		if submission.CreatorID == creatorID {
			out = append(out, *submission)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) GetIDsByStatus(ctx context.Context, status domain.SubmissionStatus, contestID *primitive.ObjectID, limit int64) ([]primitive.ObjectID, error) {
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	return f.approvedIDs, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubmissionStatus) error {
	submission, ok := f.submissions[id]
	if !ok {
		return repository.ErrUpdateFailed
	}
	submission.Status = status
	return nil
}

func (f *fakeSubmissionRepo) GetApprovedTotalsByContest(ctx context.Context, contestID primitive.ObjectID) ([]domain.SubmissionTotals, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	out := make([]domain.SubmissionTotals, len(f.totals))
	copy(out, f.totals)
	return out, nil
}

type fakeUserRepo struct {
	users     map[primitive.ObjectID]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	user.ID = id
	copied := *user
	f.users[id] = &copied
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeContestRepo struct {
	contests map[primitive.ObjectID]*domain.Contest

	getErr    error
	createErr error
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{contests: make(map[primitive.ObjectID]*domain.Contest)}
}

func (f *fakeContestRepo) add(contest *domain.Contest) primitive.ObjectID {
	if contest.ID == primitive.NilObjectID {
		contest.ID = primitive.NewObjectID()
	}
	f.contests[contest.ID] = contest
	return contest.ID
}

func (f *fakeContestRepo) Create(ctx context.Context, contest *domain.Contest) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	copied := *contest
	return f.add(&copied), nil
}

func (f *fakeContestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	contest, ok := f.contests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *contest
	return &copied, nil
}

func (f *fakeContestRepo) GetByBrandID(ctx context.Context, brandID primitive.ObjectID) ([]domain.Contest, error) {
	var out []domain.Contest
	for _, contest := range f.contests {
		if contest.BrandID == brandID {
			out = append(out, *contest)
		}
	}
	return out, nil
}

func (f *fakeContestRepo) GetByStatus(ctx context.Context, status domain.ContestStatus) ([]domain.Contest, error) {
	var out []domain.Contest
	for _, contest := range f.contests {
		if contest.Status == status {
			out = append(out, *contest)
		}
	}
	return out, nil
}

func (f *fakeContestRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ContestStatus) error {
	contest, ok := f.contests[id]
	if !ok {
		return repository.ErrUpdateFailed
	}
	contest.Status = status
	return nil
}

func (f *fakeContestRepo) SetBannerObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	contest, ok := f.contests[id]
	if !ok {
		return repository.ErrUpdateFailed
	}
	contest.BannerObjectKey = objectKey
	return nil
}

type fakeLeaderboardRepo struct {
	entries     map[primitive.ObjectID][]domain.LeaderboardEntry
	deleteCalls int
	upsertCalls int

	deleteErr error
	upsertErr error
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{entries: make(map[primitive.ObjectID][]domain.LeaderboardEntry)}
}

func (f *fakeLeaderboardRepo) DeleteByContestID(ctx context.Context, contestID primitive.ObjectID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.entries, contestID)
	return nil
}

func (f *fakeLeaderboardRepo) UpsertMany(ctx context.Context, entries []domain.LeaderboardEntry) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, entry := range entries {
		f.entries[entry.ContestID] = append(f.entries[entry.ContestID], entry)
	}
	return nil
}

func (f *fakeLeaderboardRepo) GetByContestID(ctx context.Context, contestID primitive.ObjectID) ([]domain.LeaderboardEntry, error) {
	return f.entries[contestID], nil
}

type fakeMetricsRepo struct {
	snapshots []domain.MetricsSnapshot
	upsertErr error
}

func (f *fakeMetricsRepo) Upsert(ctx context.Context, snapshot *domain.MetricsSnapshot) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	// Replace on (submissionId, date), mirroring the unique index
	for i, existing := range f.snapshots {
		if existing.SubmissionID == snapshot.SubmissionID && existing.Date == snapshot.Date {
			f.snapshots[i] = *snapshot
			return nil
		}
	}
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *fakeMetricsRepo) GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) ([]domain.MetricsSnapshot, error) {
	var out []domain.MetricsSnapshot
	for _, snapshot := range f.snapshots {
		if snapshot.SubmissionID == submissionID {
			out = append(out, snapshot)
		}
	}
	return out, nil
}

type fakeCashoutRepo struct {
	cashouts  []domain.Cashout
	createErr error
}

func (f *fakeCashoutRepo) Create(ctx context.Context, cashout *domain.Cashout) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	cashout.ID = id
	f.cashouts = append(f.cashouts, *cashout)
	return id, nil
}

func (f *fakeCashoutRepo) GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Cashout, error) {
	var out []domain.Cashout
	for _, cashout := range f.cashouts {
		if cashout.CreatorID == creatorID {
			out = append(out, cashout)
		}
	}
	return out, nil
}
