package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// TagPlans marks cache entries derived from the plan table.
	TagPlans = "plans"
	// TagActuals marks cache entries derived from the actual table.
	TagActuals = "actuals"

	tagVersionPrefix = "report:version:"
	invalidationChan = "report.bump"
)

// Cache wraps Redis based memoization with per-tag versioning. Keys embed
// the current version of every tag they depend on, so bumping a tag's
// version orphans all entries built under it; orphans age out via TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current version of a tag, initialising when missing.
func (c *Cache) Version(ctx context.Context, tag string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	key := tagVersionPrefix + tag
	ver, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, key, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey composes the cache key from the signature parts plus the current
// version of each tag the entry depends on.
func (c *Cache) BuildKey(ctx context.Context, tags []string, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	for _, tag := range tags {
		ver, err := c.Version(ctx, tag)
		if err != nil {
			return "", err
		}
		joined = fmt.Sprintf("%s:%s%d", joined, tag, ver)
	}
	return joined, nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate bumps the tag's version and publishes the event so peer
// processes pick up the new version immediately.
func (c *Cache) Invalidate(ctx context.Context, tag string) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, tagVersionPrefix+tag).Result()
	if err != nil {
		return err
	}
	payload := tag + "=" + strconv.FormatInt(ver, 10)
	return c.client.Publish(ctx, invalidationChan, payload).Err()
}

// ListenForInvalidation subscribes to version bump notifications.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, invalidationChan)
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				tag, raw, found := strings.Cut(msg.Payload, "=")
				if !found || tag == "" {
					continue
				}
				if ver, err := strconv.ParseInt(raw, 10, 64); err == nil {
					_ = c.client.Set(ctx, tagVersionPrefix+tag, ver, 0).Err()
					continue
				}
				_ = c.client.Incr(ctx, tagVersionPrefix+tag).Err()
			}
		}
	}()
	return nil
}

// signature renders a deterministic cache key body for one report request.
func signature(c FilterCriteria, p Period, hasUserDateFilter bool) string {
	parts := []string{
		"report", "fertilization",
		tokenDistrict(c.District),
		tokenString(c.Plantation),
		tokenCategory(c.Category),
		tokenString(c.Division),
		tokenString(c.PlantingYear),
		tokenString(c.Block),
		tokenString(c.FertilizerType),
		tokenInt(c.ApplicationRound),
		tokenInt(c.Year),
		p.Start.Format(dateLayout),
		p.End.Format(dateLayout),
		strconv.FormatBool(hasUserDateFilter),
	}
	return strings.Join(parts, ":")
}

func tokenString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func tokenInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func tokenDistrict(v *District) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}

func tokenCategory(v *Category) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}
