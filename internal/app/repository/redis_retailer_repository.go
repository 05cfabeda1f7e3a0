package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/pkg/logger"
)

// redisRetailerRepository keeps each retailer as a JSON document in one
// hash, field = retailer id.
type redisRetailerRepository struct {
	client redis.UniversalClient
	key    string
}

func NewRedisRetailerRepository(client redis.UniversalClient, keyPrefix string) RetailerRepository {
	return &redisRetailerRepository{
		client: client,
		key:    keyPrefix + "retailers",
	}
}

func (r *redisRetailerRepository) LoadAll(ctx context.Context) ([]model.Retailer, error) {
	docs, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		logger.Error("Failed to load retailers from redis", err, logger.Fields{"key": r.key})
		return nil, err
	}

	retailers, err := decodeRetailerDocs(docs)
	if err != nil {
		logger.Error("Failed to decode retailers from redis", err, logger.Fields{"key": r.key})
		return nil, err
	}

	logger.Debug("Retailers loaded from redis", logger.Fields{
		"key":   r.key,
		"count": len(retailers),
	})
	return retailers, nil
}

func (r *redisRetailerRepository) SaveAll(ctx context.Context, retailers []model.Retailer) error {
	values := make([]interface{}, 0, len(retailers)*2)
	for _, retailer := range retailers {
		data, err := json.Marshal(retailer)
		if err != nil {
			return fmt.Errorf("failed to encode retailer %s: %w", retailer.ID, err)
		}
		values = append(values, retailer.ID, data)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(values) > 0 {
			pipe.HSet(ctx, r.key, values...)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to replace retailers in redis", err, logger.Fields{
			"key":   r.key,
			"count": len(retailers),
		})
		return err
	}
	return nil
}

func (r *redisRetailerRepository) Append(ctx context.Context, retailer model.Retailer) error {
	data, err := json.Marshal(retailer)
	if err != nil {
		return fmt.Errorf("failed to encode retailer %s: %w", retailer.ID, err)
	}

	created, err := r.client.HSetNX(ctx, r.key, retailer.ID, data).Result()
	if err != nil {
		logger.Error("Failed to store retailer in redis", err, logger.Fields{
			"key":         r.key,
			"retailer_id": retailer.ID,
		})
		return err
	}
	if !created {
		return ErrDuplicateID
	}
	return nil
}

func (r *redisRetailerRepository) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := r.client.HDel(ctx, r.key, id).Result()
	if err != nil {
		logger.Error("Failed to delete retailer from redis", err, logger.Fields{
			"key":         r.key,
			"retailer_id": id,
		})
		return false, err
	}
	return removed > 0, nil
}

// decodeRetailerDocs turns hash fields into retailers ordered by creation
// time, then id.
func decodeRetailerDocs(docs map[string]string) ([]model.Retailer, error) {
	retailers := make([]model.Retailer, 0, len(docs))
	for id, doc := range docs {
		var retailer model.Retailer
		if err := json.Unmarshal([]byte(doc), &retailer); err != nil {
			return nil, fmt.Errorf("%w: document %s: %v", ErrStoreCorrupted, id, err)
		}
		retailers = append(retailers, retailer)
	}

	sort.SliceStable(retailers, func(i, j int) bool {
		if !retailers[i].CreatedAt.Equal(retailers[j].CreatedAt) {
			return retailers[i].CreatedAt.Before(retailers[j].CreatedAt)
		}
		return retailers[i].ID < retailers[j].ID
	})
	return retailers, nil
}
