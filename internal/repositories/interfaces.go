package repositories

import (
	"context"
	"errors"

	"github.com/cloudnine-labs/account-service/internal/models"
)

var ErrNotFound = errors.New("not found")

// AccountRepository is the persistence contract for accounts. Two
// implementations exist: PostgresAccountRepository (the default) and
// RedisAccountRepository.
type AccountRepository interface {
	// Create inserts the account as a new record. The store assigns the id
	// and defaults date_joined to the current date when unset; both are
	// written back to the entity.
	Create(ctx context.Context, account *models.Account) error

	// GetByID returns the account with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// List returns every account in store-native order. The slice is empty,
	// never nil, when the store holds no accounts.
	List(ctx context.Context) ([]*models.Account, error)

	// Update persists the account's fields keyed by its id. It returns
	// models.ErrValidation when the id is unset and ErrNotFound when the
	// backing record no longer exists.
	Update(ctx context.Context, account *models.Account) error

	// Delete removes the account with the given id. Deleting an id with no
	// backing record is not an error.
	Delete(ctx context.Context, id int64) error
}
