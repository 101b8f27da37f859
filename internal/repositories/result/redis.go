package result

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/19506jk/briscola-server/internal/models"
)

const (
	// Key prefixes for Redis
	resultKeyPrefix = "result:"
	recentKey       = "results:recent"
	pointsKey       = "standings:points"
	gamesKey        = "standings:games"
	winsKey         = "standings:wins"

	// DefaultLimit is the number of recent results listed when no limit is given
	DefaultLimit = 10
)

// ErrResultNotFound is returned when a result is not found
var ErrResultNotFound = errors.New("result not found")

// Config holds configuration for the Redis result repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed result repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveResult stores the record, indexes it by completion time and adds each
// named player's points, games and wins to the standings. Anonymous seats
// are kept in the record but not ranked.
func (r *redisRepository) SaveResult(ctx context.Context, input *SaveResultInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}
	record := input.Record
	if record.ID == "" {
		return errors.New("record ID cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := r.client.TxPipeline()

	pipe.Set(ctx, resultKeyPrefix+record.ID, recordJSON, 0)
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(record.CompletedAt.UnixNano()),
		Member: record.ID,
	})

	for i, name := range record.Players {
		if name == "" {
			continue
		}
		if i < len(record.Points) {
			pipe.HIncrBy(ctx, pointsKey, name, int64(record.Points[i]))
		}
		pipe.HIncrBy(ctx, gamesKey, name, 1)
		if record.Won(i) {
			pipe.HIncrBy(ctx, winsKey, name, 1)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// GetResult retrieves a result by ID from Redis
func (r *redisRepository) GetResult(ctx context.Context, input *GetResultInput) (*models.GameRecord, error) {
	if input == nil || input.ResultID == "" {
		return nil, errors.New("input and result ID cannot be empty")
	}

	recordJSON, err := r.client.Get(ctx, resultKeyPrefix+input.ResultID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var record models.GameRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &record, nil
}

// ListRecentResults returns the most recently completed deals
func (r *redisRepository) ListRecentResults(ctx context.Context, input *ListRecentResultsInput) (*ListRecentResultsOutput, error) {
	limit := DefaultLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	ids, err := r.client.ZRevRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent result IDs: %w", err)
	}

	if len(ids) == 0 {
		return &ListRecentResultsOutput{
			Records: []*models.GameRecord{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		commands[i] = pipe.Get(ctx, resultKeyPrefix+id)
	}

	// redis.Nil from a single missing record fails Exec; checked per command
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	records := make([]*models.GameRecord, 0, len(ids))
	for i, cmd := range commands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get result %s: %w", ids[i], err)
		}

		var record models.GameRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result %s: %w", ids[i], err)
		}
		records = append(records, &record)
	}

	return &ListRecentResultsOutput{
		Records: records,
	}, nil
}

// GetStandings ranks players by points, then wins, then name
func (r *redisRepository) GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error) {
	pipe := r.client.Pipeline()
	pointsCmd := pipe.HGetAll(ctx, pointsKey)
	gamesCmd := pipe.HGetAll(ctx, gamesKey)
	winsCmd := pipe.HGetAll(ctx, winsKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	byName := make(map[string]*models.Standing)
	standing := func(name string) *models.Standing {
		s, ok := byName[name]
		if !ok {
			s = &models.Standing{PlayerName: name}
			byName[name] = s
		}
		return s
	}

	fields := []struct {
		values map[string]string
		set    func(s *models.Standing, v int)
	}{
		{pointsCmd.Val(), func(s *models.Standing, v int) { s.Points = v }},
		{gamesCmd.Val(), func(s *models.Standing, v int) { s.Games = v }},
		{winsCmd.Val(), func(s *models.Standing, v int) { s.Wins = v }},
	}
	for _, field := range fields {
		for name, raw := range field.values {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse standing for %s: %w", name, err)
			}
			field.set(standing(name), v)
		}
	}

	standings := make([]*models.Standing, 0, len(byName))
	for _, s := range byName {
		standings = append(standings, s)
	}
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.PlayerName < b.PlayerName
	})

	if input != nil && input.Limit > 0 && len(standings) > input.Limit {
		standings = standings[:input.Limit]
	}

	return &GetStandingsOutput{
		Standings: standings,
	}, nil
}
