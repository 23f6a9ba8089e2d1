package repositories

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnine-labs/account-service/internal/models"
)

func TestRedisAccountRepository_CreateAndGet(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	defer cleanupTestAccounts(t, client, ctx)

	account := newTestAccount()
	account.DateJoined = models.Date{}

	err := repo.Create(ctx, account)
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, models.Today().String(), account.DateJoined.String())

	retrieved, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Name, retrieved.Name)
	assert.Equal(t, account.Email, retrieved.Email)
	assert.Equal(t, account.Address, retrieved.Address)
	assert.Equal(t, account.DateJoined.String(), retrieved.DateJoined.String())
}

func TestRedisAccountRepository_IDsNeverReused(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	defer cleanupTestAccounts(t, client, ctx)

	first := newTestAccount()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := newTestAccount()
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestRedisAccountRepository_GetByID_NotFound(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)

	_, err := repo.GetByID(context.Background(), 999999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAccountRepository_List(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	cleanupTestAccounts(t, client, ctx)
	defer cleanupTestAccounts(t, client, ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newTestAccount()))
	}

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestRedisAccountRepository_ListCleansDanglingIDs(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	defer cleanupTestAccounts(t, client, ctx)

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))

	// Simulate a value key lost out from under its index entry.
	require.NoError(t, client.Del(ctx, accountKey(account.ID)).Err())

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 0)

	members, err := client.SMembers(ctx, accountIDsKey).Result()
	require.NoError(t, err)
	assert.Empty(t, members, "dangling index entry should be removed")
}

func TestRedisAccountRepository_Update(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	defer cleanupTestAccounts(t, client, ctx)

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))

	account.Name = "Updated Name"
	require.NoError(t, repo.Update(ctx, account))

	retrieved, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", retrieved.Name)
}

func TestRedisAccountRepository_Update_NoID(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)

	err := repo.Update(context.Background(), newTestAccount())
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRedisAccountRepository_Update_Gone(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)
	ctx := context.Background()

	defer cleanupTestAccounts(t, client, ctx)

	account := newTestAccount()
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.Delete(ctx, account.ID))

	err := repo.Update(ctx, account)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAccountRepository_Delete_Absent(t *testing.T) {
	client := getTestRedisClient(t)
	repo := NewRedisAccountRepository(client)

	assert.NoError(t, repo.Delete(context.Background(), 999999999))
}

// Helper functions for test setup

// getTestRedisClient returns a Redis client for testing, skipping the test
// when no Redis is reachable. DB 1 keeps test keys away from production.
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

func cleanupTestAccounts(t *testing.T, client *redis.Client, ctx context.Context) {
	keys, err := client.Keys(ctx, accountPrefix+"*").Result()
	if err != nil {
		t.Logf("Warning: failed to get keys: %v", err)
		return
	}
	keys = append(keys, accountIDsKey, accountSeqKey)
	if err := client.Del(ctx, keys...).Err(); err != nil {
		t.Logf("Warning: failed to cleanup test accounts: %v", err)
	}
}
