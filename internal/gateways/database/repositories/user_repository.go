package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

type userRepository struct {
	db *bun.DB
}

var _ users.Repository = &userRepository{}

func NewUserRepository(db *bun.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "user", userID, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return getUserByUsername(ctx, r.db, username)
}

func getUserByUsername(ctx context.Context, db bun.IDB, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user := new(models.User)
	err := db.NewSelect().
		Model(user).
		Where("LOWER(username) = LOWER(?)", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "user", username, err)
	}
	return user, nil
}

// CreateUser inserts the user. A stale account that still holds the same
// login is moved aside first.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	return withTransaction(ctx, r.db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		if err := releaseUsername(ctx, tx, user.UserID, user.Username); err != nil {
			return err
		}

		now := time.Now()
		user.CreatedAt = now
		user.UpdatedAt = now

		_, err := tx.NewInsert().
			Model(user).
			Exec(ctx)
		return handleError("insert", "user", user.UserID, err)
	})
}

// upsertUser creates the user or brings an existing one's username up to
// date, moving a stale holder of the login aside first.
func upsertUser(ctx context.Context, db *bun.DB, user *models.User) error {
	return withTransaction(ctx, db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		if err := releaseUsername(ctx, tx, user.UserID, user.Username); err != nil {
			return err
		}

		existing := new(models.User)
		err := tx.NewSelect().
			Model(existing).
			Where("user_id = ?", user.UserID).
			For("UPDATE").
			Scan(ctx)
		if err == nil {
			username := user.Username
			*user = *existing
			if existing.Username == username {
				return nil
			}
			user.Username = username
			return setUsername(ctx, tx, existing.UserID, username)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return handleError("select", "user", user.UserID, err)
		}

		now := time.Now()
		user.CreatedAt = now
		user.UpdatedAt = now
		_, err = tx.NewInsert().
			Model(user).
			Exec(ctx)
		return handleError("insert", "user", user.UserID, err)
	})
}

func (r *userRepository) RenameUser(ctx context.Context, userID, username string) error {
	return withTransaction(ctx, r.db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		if err := releaseUsername(ctx, tx, userID, username); err != nil {
			return err
		}
		return setUsername(ctx, tx, userID, username)
	})
}

// releasedUsername is the placeholder a displaced account carries until its
// owner logs in again. Twitch logins cannot contain "~".
func releasedUsername(userID string) string {
	return "~" + userID
}

// releaseUsername moves username off any account other than userID. Twitch
// logins are unique at any moment, so the holder is an account whose owner
// renamed away and has not logged in since.
func releaseUsername(ctx context.Context, tx bun.Tx, userID, username string) error {
	var holders []string
	err := tx.NewSelect().
		Model((*models.User)(nil)).
		Column("user_id").
		Where("LOWER(username) = LOWER(?)", username).
		Where("user_id <> ?", userID).
		For("UPDATE").
		Scan(ctx, &holders)
	if err != nil {
		return handleError("select", "user", username, err)
	}
	for _, holder := range holders {
		if err := setUsername(ctx, tx, holder, releasedUsername(holder)); err != nil {
			return err
		}
		slog.Info("Released username held by stale account",
			slog.String("type", "database"),
			slog.String("username", username),
			slog.String("holder_id", holder),
			slog.String("claimed_by", userID))
	}
	return nil
}

// setUsername rewrites the username on the user and every row that
// denormalises it.
func setUsername(ctx context.Context, tx bun.Tx, userID, username string) error {
	res, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("username = ?", username).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return handleError("update", "user", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "user", ID: userID}
	}

	for _, model := range []any{
		(*models.Pack)(nil),
		(*models.CardInstance)(nil),
		(*models.Preorder)(nil),
		(*models.Moment)(nil),
	} {
		if _, err := tx.NewUpdate().
			Model(model).
			Set("username = ?", username).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return handleError("update", "username", userID, err)
		}
	}
	for _, side := range []string{"sender", "receiver"} {
		if _, err := tx.NewUpdate().
			Model((*models.Trade)(nil)).
			Set("? = ?", bun.Ident(side+"_username"), username).
			Where("? = ?", bun.Ident(side+"_id"), userID).
			Exec(ctx); err != nil {
			return handleError("update", "trade username", userID, err)
		}
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID, lookingFor, pinnedCardID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("looking_for = NULLIF(?, '')", lookingFor).
		Set("pinned_card_id = NULLIF(?, '')", pinnedCardID).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return handleError("update", "user", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "user", ID: userID}
	}
	return nil
}

func (r *userRepository) GetInstance(ctx context.Context, instanceID string) (*models.CardInstance, error) {
	return getInstance(ctx, r.db, instanceID)
}

func getInstance(ctx context.Context, db bun.IDB, instanceID string) (*models.CardInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	instance := new(models.CardInstance)
	err := db.NewSelect().
		Model(instance).
		Where("ci.instance_id = ?", instanceID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "card instance", instanceID, err)
	}
	return instance, nil
}

func (r *userRepository) ListOpenedCards(ctx context.Context, userID string) ([]*models.CardInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cards []*models.CardInstance
	err := r.db.NewSelect().
		Model(&cards).
		Relation("Design").
		Relation("Rarity").
		Where("ci.user_id = ?", userID).
		Where("ci.opened = TRUE").
		Order("ci.opened_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "card instance", userID, err)
	}
	return cards, nil
}
