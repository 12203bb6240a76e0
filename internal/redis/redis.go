package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/sukalov/lyricle/internal/puzzle"
)

const (
	gameDataKey = "game_data"
	lastRunKey  = "last_run"
)

type DBManager struct {
	client *redisClient.Client
}

// NewDBManager connects to a TLS redis at addr (host:port)
func NewDBManager(addr, password string) (*DBManager, error) {
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", password, addr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &DBManager{client: redisClient.NewClient(opt)}, nil
}

func (redis *DBManager) Close() error {
	return redis.client.Close()
}

// SetList stores the curated batch
func (redis *DBManager) SetList(ctx context.Context, list []puzzle.Record) error {
	listJSON, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return redis.client.Set(ctx, gameDataKey, listJSON, 0).Err()
}

// GetList retrieves the curated batch
func (redis *DBManager) GetList(ctx context.Context) ([]puzzle.Record, error) {
	data, err := redis.client.Get(ctx, gameDataKey).Bytes()
	if err != nil {
		if err == redisClient.Nil {
			return []puzzle.Record{}, nil
		}
		return nil, err
	}
	var list []puzzle.Record
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IncrementSkip counts one skipped song for the run and marks it as the last run
func (redis *DBManager) IncrementSkip(ctx context.Context, runID, reason string) error {
	pipe := redis.client.TxPipeline()
	pipe.HIncrBy(ctx, skipsKey(runID), reason, 1)
	pipe.Set(ctx, lastRunKey, runID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment skip count for run %s and reason %s: %v", runID, reason, err)
	}
	return nil
}

// GetSkipCounts retrieves skip counts of a run; an empty runID means the last run
func (redis *DBManager) GetSkipCounts(ctx context.Context, runID string) (string, map[string]int, error) {
	result := make(map[string]int)
	if runID == "" {
		last, err := redis.client.Get(ctx, lastRunKey).Result()
		if err != nil {
			if err == redisClient.Nil {
				return "", result, nil
			}
			return "", nil, err
		}
		runID = last
	}

	raw, err := redis.client.HGetAll(ctx, skipsKey(runID)).Result()
	if err != nil {
		if err == redisClient.Nil {
			return runID, result, nil
		}
		return runID, nil, err
	}
	for reason, count := range raw {
		countInt, err := strconv.Atoi(count)
		if err != nil {
			continue // skip invalid counts
		}
		result[reason] = countInt
	}
	return runID, result, nil
}

func skipsKey(runID string) string {
	return "skips:" + runID
}
