package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/redisclient"
	"github.com/perpetual-help/egov-api/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Session is the server-held state of one in-progress wizard.
// CurrentStep stays within [1, StepCount]; FormData is the flat superset of
// all steps' fields.
type Session struct {
	ID          string                 `json:"id"`
	Type        models.ApplicationType `json:"type"`
	CurrentStep int                    `json:"current_step"`
	FormData    map[string]interface{} `json:"form_data"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ApplyNext merges the submitted fields and advances one step if the current
// step validates. On failure the step does not advance and the validation
// result carries the field errors.
func (s *Session) ApplyNext(schema *Schema, fields map[string]interface{}) *utils.ValidationResult {
	s.merge(fields)

	result := schema.ValidateStep(s.CurrentStep, s.FormData)
	if !result.IsValid {
		return result
	}

	if s.CurrentStep < schema.StepCount() {
		s.CurrentStep++
	}
	s.UpdatedAt = time.Now()
	return result
}

// ApplyBack steps backwards, capped at step 1. Back navigation never blocks.
func (s *Session) ApplyBack() {
	if s.CurrentStep > 1 {
		s.CurrentStep--
	}
	s.UpdatedAt = time.Now()
}

// ValidateForSubmit gates the final submission: only legal on the last step,
// and the whole form must validate.
func (s *Session) ValidateForSubmit(schema *Schema, fields map[string]interface{}) (*utils.ValidationResult, error) {
	if s.CurrentStep != schema.StepCount() {
		return nil, models.ErrNotOnFinalStep
	}
	s.merge(fields)
	return schema.ValidateAll(s.FormData), nil
}

// Merge folds submitted fields into the session without validating.
// Used by back navigation so entered data is never lost.
func (s *Session) Merge(fields map[string]interface{}) {
	s.merge(fields)
	s.UpdatedAt = time.Now()
}

func (s *Session) merge(fields map[string]interface{}) {
	if s.FormData == nil {
		s.FormData = make(map[string]interface{})
	}
	for k, v := range fields {
		s.FormData[k] = v
	}
}

// Store persists wizard sessions in Redis with a TTL
type Store struct {
	redis  *redisclient.Client
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewStore creates a wizard session store
func NewStore(redis *redisclient.Client, ttl time.Duration, logger *logging.SafeLogger) *Store {
	return &Store{redis: redis, ttl: ttl, logger: logger}
}

func sessionKey(id string) string {
	return "wizard:session:" + id
}

// Start creates a new session for a service type at step 1
func (st *Store) Start(ctx context.Context, t models.ApplicationType) (*Session, error) {
	if _, err := SchemaFor(t); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:          utils.GenerateUUID(),
		Type:        t,
		CurrentStep: 1,
		FormData:    make(map[string]interface{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := st.Save(ctx, session); err != nil {
		return nil, err
	}

	st.logger.Info("wizard session started",
		zap.String("session_id", session.ID),
		zap.String("type", string(t)))

	return session, nil
}

// Get loads a session by ID
func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := st.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	return &session, nil
}

// Save persists a session, refreshing its TTL
func (st *Store) Save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}
	if err := st.redis.Set(ctx, sessionKey(session.ID), raw, st.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// Delete removes a session after successful submission or abandonment
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := st.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}
