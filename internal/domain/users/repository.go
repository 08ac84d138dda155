package users

import (
	"context"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser and RenameUser move any other account holding the username
	// to a placeholder before claiming it.
	CreateUser(ctx context.Context, user *models.User) error
	// RenameUser rewrites the username on the user and every row that
	// denormalises it, trades included.
	RenameUser(ctx context.Context, userID, username string) error
	UpdateProfile(ctx context.Context, userID, lookingFor, pinnedCardID string) error

	GetInstance(ctx context.Context, instanceID string) (*models.CardInstance, error)
	ListOpenedCards(ctx context.Context, userID string) ([]*models.CardInstance, error)
}
