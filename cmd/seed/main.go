package main

import (
	"cliprace/backend/internal/config"
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"cliprace/backend/internal/repository/mongo"
	"cliprace/backend/internal/service"
	"context"
	"errors"
	"log"
	"time"
)

// Seeds a local database with a demo brand, creator, contest and one
// approved submission with fresh mock metrics, then recomputes the
// contest leaderboard. Safe to re-run: existing users are reused.
func main() {
	log.Println("Seeding ClipRace demo data...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	userRepo := mongo.NewMongoUserRepository(appDB)
	contestRepo := mongo.NewMongoContestRepository(appDB)
	submissionRepo := mongo.NewMongoSubmissionRepository(appDB)
	metricsRepo := mongo.NewMongoMetricsRepository(appDB)
	leaderboardRepo := mongo.NewMongoLeaderboardRepository(appDB)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	contestService := service.NewContestService(contestRepo, nil) // no uploads during seeding
	submissionService := service.NewSubmissionService(submissionRepo, contestRepo)
	metricsService := service.NewMetricsService(submissionRepo, metricsRepo)
	leaderboardService := service.NewLeaderboardService(submissionRepo, contestRepo, leaderboardRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	brand, err := registerOrFetch(ctx, authService, userRepo, "Demo Brand", "brand@demo.cliprace.io", "demo1234", domain.RoleBrand)
	if err != nil {
		log.Fatalf("FATAL: Could not seed brand user: %v", err)
	}
	creator, err := registerOrFetch(ctx, authService, userRepo, "Demo Creator", "creator@demo.cliprace.io", "demo1234", domain.RoleCreator)
	if err != nil {
		log.Fatalf("FATAL: Could not seed creator user: %v", err)
	}
	log.Printf("Users ready: brand=%s creator=%s", brand.ID.Hex(), creator.ID.Hex())

	endsAt := time.Now().AddDate(0, 1, 0)
	contest, err := contestService.CreateContest(ctx, brand.ID,
		"Summer Clip Race",
		"Post your best clip featuring our product. Top 30 by views win.",
		100000, // 1000.00 EUR budget
		&endsAt)
	if err != nil {
		log.Fatalf("FATAL: Could not create contest: %v", err)
	}
	if _, err := contestService.UpdateContestStatus(ctx, brand.ID, contest.ID, domain.ContestActive); err != nil {
		log.Fatalf("FATAL: Could not activate contest: %v", err)
	}
	log.Printf("Contest created: %s", contest.ID.Hex())

	submission, err := submissionService.CreateSubmission(ctx, creator.ID, contest.ID,
		"https://www.tiktok.com/@democreator/video/7300000000000000001", nil)
	if err != nil {
		log.Fatalf("FATAL: Could not create submission: %v", err)
	}
	if _, err := submissionService.ApproveSubmission(ctx, brand.ID, submission.ID); err != nil {
		log.Fatalf("FATAL: Could not approve submission: %v", err)
	}
	log.Printf("Submission approved: %s", submission.ID.Hex())

	if err := metricsService.MockRefreshSubmission(ctx, submission.ID); err != nil {
		log.Fatalf("FATAL: Could not generate metrics: %v", err)
	}

	result, err := leaderboardService.RecomputeLeaderboard(ctx, contest.ID)
	if err != nil {
		log.Fatalf("FATAL: Could not recompute leaderboard: %v", err)
	}
	log.Printf("Leaderboard recomputed: eligible=%d written=%d", result.Eligible, result.Written)

	log.Println("Seeding complete.")
	log.Println("Login as brand@demo.cliprace.io or creator@demo.cliprace.io (password: demo1234)")
}

func registerOrFetch(ctx context.Context, authService service.AuthService, userRepo repository.UserRepository, name, email, password string, role domain.Role) (*domain.User, error) {
	user, err := authService.Register(ctx, name, email, password, role)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, service.ErrUserAlreadyExists) {
		return userRepo.GetByEmail(ctx, email)
	}
	return nil, err
}
