package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	resp "pulse/internal/models/response_models"
)

// ReportCache is a best-effort cache in front of the report queries. A miss
// or a Redis failure is never an error; callers fall back to the database.
type ReportCache interface {
	GetSummary(ctx context.Context, projectID string, monthStart time.Time) (*resp.MonthlySummary, bool)
	SetSummary(ctx context.Context, projectID string, summary *resp.MonthlySummary)
	GetLeaderboard(ctx context.Context, projectID string, limit int) ([]resp.LeaderboardEntry, bool)
	SetLeaderboard(ctx context.Context, projectID string, limit int, entries []resp.LeaderboardEntry)

	// InvalidateProject drops every cached report for the project; called
	// after a successful submit or points reset.
	InvalidateProject(ctx context.Context, projectID string)
}

const reportTTL = 5 * time.Minute

type RedisReportCache struct {
	rdb *redis.Client
}

// NewRedisReportCache wraps rdb; a nil client yields a cache where every
// read misses and every write is a no-op.
func NewRedisReportCache(rdb *redis.Client) *RedisReportCache {
	return &RedisReportCache{rdb: rdb}
}

func summaryKey(projectID string, monthStart time.Time) string {
	return "summary:" + projectID + ":" + monthStart.Format("2006-01")
}

func leaderboardKey(projectID string, limit int) string {
	return "leaderboard:" + projectID + ":" + strconv.Itoa(limit)
}

// summaryHash mirrors the redis hash layout; HGetAll returns strings, so
// every field is kept textual and converted after decoding.
type summaryHash struct {
	ProjectID  string `mapstructure:"project_id"`
	MonthStart string `mapstructure:"month_start"`
	MonthEnd   string `mapstructure:"month_end"`
	Count      string `mapstructure:"count"`
	Average    string `mapstructure:"average_satisfaction"`
	HasData    string `mapstructure:"has_data"`
	Votes      string `mapstructure:"votes"`
}

// encodeSummary lays a summary out as redis hash fields; every value is
// textual because HGetAll reads everything back as strings.
func encodeSummary(summary *resp.MonthlySummary) (map[string]interface{}, error) {
	votes, err := json.Marshal(summary.Votes)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"project_id":           summary.ProjectID,
		"month_start":          summary.MonthStart.Format(time.RFC3339Nano),
		"month_end":            summary.MonthEnd.Format(time.RFC3339Nano),
		"count":                strconv.Itoa(summary.Count),
		"average_satisfaction": strconv.FormatFloat(summary.AverageSatisfaction, 'f', -1, 64),
		"has_data":             strconv.FormatBool(summary.HasData),
		"votes":                string(votes),
	}, nil
}

func decodeSummary(data map[string]string) (*resp.MonthlySummary, bool) {
	var h summaryHash
	if err := mapstructure.Decode(data, &h); err != nil {
		return nil, false
	}

	start, err1 := time.Parse(time.RFC3339Nano, h.MonthStart)
	end, err2 := time.Parse(time.RFC3339Nano, h.MonthEnd)
	count, err3 := strconv.Atoi(h.Count)
	avg, err4 := strconv.ParseFloat(h.Average, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, false
	}

	out := resp.MonthlySummary{
		ProjectID:           h.ProjectID,
		MonthStart:          start,
		MonthEnd:            end,
		Count:               count,
		AverageSatisfaction: avg,
		HasData:             h.HasData == "true",
	}
	if err := json.Unmarshal([]byte(h.Votes), &out.Votes); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *RedisReportCache) GetSummary(ctx context.Context, projectID string, monthStart time.Time) (*resp.MonthlySummary, bool) {
	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.HGetAll(ctx, summaryKey(projectID, monthStart)).Result()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return decodeSummary(data)
}

func (c *RedisReportCache) SetSummary(ctx context.Context, projectID string, summary *resp.MonthlySummary) {
	if c.rdb == nil {
		return
	}

	fields, err := encodeSummary(summary)
	if err != nil {
		return
	}

	key := summaryKey(projectID, summary.MonthStart)
	if err := c.rdb.HSet(ctx, key, fields).Err(); err != nil {
		log.Printf("Failed to cache summary for %s: %v", projectID, err)
		return
	}
	c.rdb.Expire(ctx, key, reportTTL)
}

func (c *RedisReportCache) GetLeaderboard(ctx context.Context, projectID string, limit int) ([]resp.LeaderboardEntry, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, leaderboardKey(projectID, limit)).Result()
	if err != nil {
		return nil, false
	}

	var entries []resp.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *RedisReportCache) SetLeaderboard(ctx context.Context, projectID string, limit int, entries []resp.LeaderboardEntry) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, leaderboardKey(projectID, limit), raw, reportTTL).Err(); err != nil {
		log.Printf("Failed to cache leaderboard for %s: %v", projectID, err)
	}
}

func (c *RedisReportCache) InvalidateProject(ctx context.Context, projectID string) {
	if c.rdb == nil {
		return
	}

	for _, pattern := range []string{
		"summary:" + projectID + ":*",
		"leaderboard:" + projectID + ":*",
	} {
		var cursor uint64
		for {
			keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				log.Printf("Failed to scan cache keys for %s: %v", projectID, err)
				break
			}
			if len(keys) > 0 {
				c.rdb.Del(ctx, keys...)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
}
