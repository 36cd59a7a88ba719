package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// windowKey holds both bounds of the enrollment window as one JSON value so a
// reader never observes a half-updated window.
const windowKey = "enrollment:window"

// WindowRepository persists the enrollment window in Redis.
type WindowRepository struct {
	client *redis.Client
}

// NewWindowRepository constructs a WindowRepository.
func NewWindowRepository(client *redis.Client) *WindowRepository {
	return &WindowRepository{client: client}
}

// Get returns the stored window, or nil when none has been configured.
func (r *WindowRepository) Get(ctx context.Context) (*models.EnrollmentWindow, error) {
	raw, err := r.client.Get(ctx, windowKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment window: %w", err)
	}
	var window models.EnrollmentWindow
	if err := json.Unmarshal(raw, &window); err != nil {
		return nil, fmt.Errorf("unmarshal enrollment window: %w", err)
	}
	return &window, nil
}

// Set replaces both bounds atomically.
func (r *WindowRepository) Set(ctx context.Context, window models.EnrollmentWindow) error {
	payload, err := json.Marshal(window)
	if err != nil {
		return fmt.Errorf("marshal enrollment window: %w", err)
	}
	if err := r.client.Set(ctx, windowKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("set enrollment window: %w", err)
	}
	return nil
}
