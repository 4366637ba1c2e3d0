package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/observability"
)

// CourseCache is a cache-aside layer over course detail payloads. A nil
// redis client disables it; every module or course write invalidates the
// course's entry.
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCourseCache constructs the course detail cache.
func NewCourseCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CourseCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CourseCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "course_cache").Logger(),
	}
}

func courseCacheKey(courseID string) string {
	return "course:v1:" + courseID
}

// Fetch returns the cached detail for the course, if any.
func (c *CourseCache) Fetch(ctx context.Context, courseID string) (dto.CourseDetailResponse, bool) {
	if c == nil || c.client == nil {
		return dto.CourseDetailResponse{}, false
	}

	payload, err := c.client.Get(ctx, courseCacheKey(courseID)).Result()
	if err != nil {
		observability.CourseCache().WithLabelValues("miss").Inc()
		return dto.CourseDetailResponse{}, false
	}

	var detail dto.CourseDetailResponse
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		c.logger.Warn().Err(err).Msg("failed to decode course cache")
		return dto.CourseDetailResponse{}, false
	}

	observability.CourseCache().WithLabelValues("hit").Inc()
	return detail, true
}

// Store writes the detail payload under the course's key.
func (c *CourseCache) Store(ctx context.Context, courseID string, detail dto.CourseDetailResponse) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode course cache")
		return
	}
	if err := c.client.Set(ctx, courseCacheKey(courseID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store course cache")
	}
}

// Invalidate drops the cached detail for the course.
func (c *CourseCache) Invalidate(ctx context.Context, courseID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, courseCacheKey(courseID)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate course cache")
		return
	}
	observability.CourseCache().WithLabelValues("invalidate").Inc()
}
