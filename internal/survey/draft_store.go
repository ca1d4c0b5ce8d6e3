package survey

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrDraftNotFound is returned by Load when no draft is stored for the user.
var ErrDraftNotFound = stderrors.New("survey draft not found")

// DraftStore persists unfinished surveys in Redis so a student can resume
// where they left off. The wizard itself never touches storage.
type DraftStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

// NewDraftStore keeps drafts in client under cfg.DraftKeyPrefix for cfg.DraftTTL.
func NewDraftStore(client redis.Cmdable, cfg *Config, log logger.Logger) *DraftStore {
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	return &DraftStore{
		client: client,
		prefix: cfg.DraftKeyPrefix,
		ttl:    cfg.DraftTTL,
		logger: logger.ForComponent(log, "survey-draft-store"),
	}
}

func (s *DraftStore) key(userID string) string {
	return s.prefix + userID
}

// Save stores the draft, refreshing its TTL.
func (s *DraftStore) Save(ctx context.Context, draft models.SurveyDraft) error {
	if draft.UserID == "" {
		return errors.NewDraftStoreFailedError("save", fmt.Errorf("user id is required"))
	}
	if draft.SavedAt.IsZero() {
		draft.SavedAt = time.Now().UTC()
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return errors.NewDraftStoreFailedError("save", err)
	}
	if err := s.client.Set(ctx, s.key(draft.UserID), data, s.ttl).Err(); err != nil {
		return errors.NewDraftStoreFailedError("save", err)
	}
	s.logger.Debug("draft saved", map[string]interface{}{
		"userId": draft.UserID,
		"step":   draft.CurrentStep,
	})
	return nil
}

// Load returns the user's draft, or ErrDraftNotFound.
func (s *DraftStore) Load(ctx context.Context, userID string) (*models.SurveyDraft, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, errors.NewDraftStoreFailedError("load", err)
	}
	var draft models.SurveyDraft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		// A corrupt draft is useless; drop it so the next visit starts clean.
		s.client.Del(ctx, s.key(userID))
		s.logger.Warn("discarded corrupt draft", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

// Delete removes the user's draft, typically after a successful submission.
func (s *DraftStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return errors.NewDraftStoreFailedError("delete", err)
	}
	return nil
}
