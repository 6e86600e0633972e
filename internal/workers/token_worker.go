package workers

import (
	"context"
	"time"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/repositories"
)

const tokenCleanupInterval = 6 * time.Hour

// TokenWorker removes expired refresh tokens.
type TokenWorker struct {
	userRepo repositories.UserRepository
}

func NewTokenWorker(userRepo repositories.UserRepository) *TokenWorker {
	return &TokenWorker{userRepo: userRepo}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *TokenWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token", "Token worker stopped")
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
				logger.WorkerLog("token", "Failed to clean expired refresh tokens", "error", err)
			}
		}
	}
}
