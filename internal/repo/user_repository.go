package repo

import (
	"context"

	"github.com/bloomnext/pos-inventory/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}
