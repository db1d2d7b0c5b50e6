package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	reportKeyPrefix   = "report:"
	roomReportsPrefix = "room:reports:" // sorted set of report IDs per room id
	defaultReportTTL  = 7 * 24 * time.Hour
)

// ErrReportNotFound is returned when a report is not found
var ErrReportNotFound = errors.New("report not found")

// Config holds configuration for the Redis archive repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL applied to every report; defaults to a week
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed archive repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

// SaveReport persists a report to Redis
func (r *redisRepository) SaveReport(ctx context.Context, input *SaveReportInput) error {
	if input == nil || input.Report == nil {
		return errors.New("input and report cannot be nil")
	}

	if input.Report.ID == "" || input.Report.RoomID == "" {
		return errors.New("report ID and room ID cannot be empty")
	}

	reportJSON, err := json.Marshal(input.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := r.client.TxPipeline()

	reportKey := reportKeyPrefix + input.Report.ID
	pipe.Set(ctx, reportKey, reportJSON, r.ttl)

	// Room ids are recycled, so the index mixes sessions; the score keeps them apart in time
	indexKey := roomReportsPrefix + input.Report.RoomID
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(input.Report.CreatedAt.UnixMilli()),
		Member: input.Report.ID,
	})
	pipe.Expire(ctx, indexKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetReport retrieves a report by ID from Redis
func (r *redisRepository) GetReport(ctx context.Context, input *GetReportInput) (*models.RoomReport, error) {
	if input == nil || input.ReportID == "" {
		return nil, errors.New("input and report ID cannot be empty")
	}

	reportJSON, err := r.client.Get(ctx, reportKeyPrefix+input.ReportID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.RoomReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// ListReportsByRoom returns a room's reports from Redis, newest first
func (r *redisRepository) ListReportsByRoom(ctx context.Context, input *ListReportsByRoomInput) ([]*models.RoomReport, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = input.Limit - 1
	}

	reportIDs, err := r.client.ZRevRange(ctx, roomReportsPrefix+input.RoomID, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*models.RoomReport, 0, len(reportIDs))
	for _, id := range reportIDs {
		report, err := r.GetReport(ctx, &GetReportInput{ReportID: id})
		if err != nil {
			// Expired between the index read and the fetch
			if errors.Is(err, ErrReportNotFound) {
				continue
			}
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}
