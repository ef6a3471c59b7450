package background

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"taskboard/internal/caching"
	"taskboard/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const digestWindow = 24 * time.Hour

// JobScheduler runs periodic maintenance: expired-lockout resets and the
// per-user due-soon task digest.
type JobScheduler struct {
	scheduler gocron.Scheduler
	userRepo  repositories.UserRepository
	taskRepo  repositories.TaskRepository
	cacheSvc  caching.CacheService
}

func NewJobScheduler(userRepo repositories.UserRepository, taskRepo repositories.TaskRepository, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		cacheSvc:  cacheSvc,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.clearExpiredLockouts),
		gocron.WithName("lockout-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return fmt.Errorf("failed to create lockout sweep job: %w", err)
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.refreshDueSoonDigest),
		gocron.WithName("due-soon-digest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return fmt.Errorf("failed to create due-soon digest job: %w", err)
	}

	return nil
}

// clearExpiredLockouts resets failed-login counters once a lockout window
// has passed.
func (js *JobScheduler) clearExpiredLockouts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := js.userRepo.ClearExpiredLockouts(ctx, time.Now())
	if err != nil {
		log.Printf("Lockout sweep failed: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("Lockout sweep cleared %d account(s)", cleared)
	}
}

// refreshDueSoonDigest counts tasks due within the digest window per user and
// caches the counts for cheap dashboard reads.
func (js *JobScheduler) refreshDueSoonDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(digestWindow)
	userIDs, err := js.taskRepo.ListUserIDsWithDueTasks(ctx, cutoff)
	if err != nil {
		log.Printf("Due-soon digest failed: %v", err)
		return
	}

	for _, userID := range userIDs {
		count, err := js.taskRepo.CountDueBefore(ctx, userID, cutoff)
		if err != nil {
			log.Printf("Due-soon count failed for user %d: %v", userID, err)
			continue
		}
		key := fmt.Sprintf("digest:due-soon:%d", userID)
		if err := js.cacheSvc.SetString(ctx, key, strconv.Itoa(count), digestWindow); err != nil {
			log.Printf("Failed to cache due-soon digest for user %d: %v", userID, err)
		}
	}
}
