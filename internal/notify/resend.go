// AngelaMos | 2026
// resend.go

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResendBusy means a resend for the same session is in flight or just
// completed. Callers surface it as "already on its way".
var ErrResendBusy = errors.New("resend already in progress")

const (
	inflightKeyPrefix = "resend:inflight:"
	sentKeyPrefix     = "resend:sent:"

	inflightTTL = 10 * time.Second
	sentTTL     = 5 * time.Second
)

// ResendService rate-guards access-link resends per checkout session.
// The guard is two-layered: an in-flight lock stops concurrent sends and
// a short sent marker absorbs double clicks after a send completes.
type ResendService struct {
	redis  *redis.Client
	sender Sender
	logger *slog.Logger
}

func NewResendService(
	redisClient *redis.Client,
	sender Sender,
	logger *slog.Logger,
) *ResendService {
	return &ResendService{
		redis:  redisClient,
		sender: sender,
		logger: logger,
	}
}

func (s *ResendService) Resend(
	ctx context.Context,
	sessionID string,
	params AccessLinkParams,
) error {
	inflightKey := inflightKeyPrefix + sessionID
	sentKey := sentKeyPrefix + sessionID

	acquired, err := s.redis.SetNX(ctx, inflightKey, "1", inflightTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire resend lock: %w", err)
	}
	if !acquired {
		return ErrResendBusy
	}
	//nolint:errcheck // best-effort release, TTL covers the failure case
	defer s.redis.Del(context.WithoutCancel(ctx), inflightKey)

	sent, err := s.redis.Exists(ctx, sentKey).Result()
	if err != nil {
		return fmt.Errorf("check sent marker: %w", err)
	}
	if sent > 0 {
		return ErrResendBusy
	}

	if err := s.sender.SendAccessLink(ctx, params); err != nil {
		return err
	}

	if err := s.redis.Set(ctx, sentKey, "1", sentTTL).Err(); err != nil {
		s.logger.Warn("set sent marker failed",
			"session_id", sessionID,
			"error", err,
		)
	}

	s.logger.Info("access link resent", "session_id", sessionID)

	return nil
}
