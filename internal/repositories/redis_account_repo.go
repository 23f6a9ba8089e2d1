package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/cloudnine-labs/account-service/internal/models"
)

const accountPrefix = "account:"
const accountIDsKey = "accounts:ids"
const accountSeqKey = "accounts:next_id"

// RedisAccountRepository stores accounts as JSON blobs under "account:{id}"
// with a membership set for listing and an INCR sequence for id assignment,
// so ids are unique and never reused.
type RedisAccountRepository struct {
	client *redis.Client
}

func NewRedisAccountRepository(client *redis.Client) *RedisAccountRepository {
	return &RedisAccountRepository{client: client}
}

func (r *RedisAccountRepository) Create(ctx context.Context, account *models.Account) error {
	id, err := r.client.Incr(ctx, accountSeqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to assign account id: %w", err)
	}
	account.ID = id
	if account.DateJoined.IsZero() {
		account.DateJoined = models.Today()
	}

	if err := r.put(ctx, account); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, accountIDsKey, account.ID).Err(); err != nil {
		return fmt.Errorf("failed to index account id: %w", err)
	}
	return nil
}

func (r *RedisAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	jsonData, err := r.client.Get(ctx, accountKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var account models.Account
	if err := json.Unmarshal([]byte(jsonData), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

func (r *RedisAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	ids, err := r.client.SMembers(ctx, accountIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", err)
	}

	accounts := []*models.Account{}
	var danglingIDs []interface{}

	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			danglingIDs = append(danglingIDs, raw)
			continue
		}
		account, err := r.GetByID(ctx, id)
		if err == ErrNotFound {
			danglingIDs = append(danglingIDs, raw)
			continue
		}
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	// Drop index entries whose account key is gone.
	if len(danglingIDs) > 0 {
		if err := r.client.SRem(ctx, accountIDsKey, danglingIDs...).Err(); err != nil {
			return nil, fmt.Errorf("failed to remove dangling account ids: %w", err)
		}
	}
	return accounts, nil
}

func (r *RedisAccountRepository) Update(ctx context.Context, account *models.Account) error {
	if account.ID == 0 {
		return fmt.Errorf("%w: update called with no id", models.ErrValidation)
	}

	exists, err := r.client.Exists(ctx, accountKey(account.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}
	return r.put(ctx, account)
}

func (r *RedisAccountRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.SRem(ctx, accountIDsKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex account: %w", err)
	}
	if err := r.client.Del(ctx, accountKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (r *RedisAccountRepository) put(ctx context.Context, account *models.Account) error {
	jsonData, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	if err := r.client.Set(ctx, accountKey(account.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	return nil
}

func accountKey(id int64) string {
	return fmt.Sprintf("%s%d", accountPrefix, id)
}
