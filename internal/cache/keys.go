package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	RequestKeyPrefix = "request:%d"
	ProfileKeyPrefix = "profile:%d"
	StatsKey         = "requests:stats"
)

const (
	RequestTTL = 10 * time.Minute
	ProfileTTL = 5 * time.Minute
	StatsTTL   = time.Minute
)

func RequestKey(requestID uint) string {
	return fmt.Sprintf(RequestKeyPrefix, requestID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateRequest drops the cached request row and the dashboard stats,
// which both go stale on any request mutation.
func InvalidateRequest(ctx context.Context, requestID uint) {
	Invalidate(ctx, RequestKey(requestID))
	Invalidate(ctx, StatsKey)
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
