package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const maxLookingForLength = 500

type Profile struct {
	User       *models.User           `json:"user"`
	Cards      []*models.CardInstance `json:"cards"`
	PinnedCard *models.CardInstance   `json:"pinnedCard,omitempty"`
}

// ProfileUpdate leaves a field untouched when it is nil. An empty string
// clears it.
type ProfileUpdate struct {
	LookingFor   *string
	PinnedCardID *string
}

type Service interface {
	GetProfile(ctx context.Context, username string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error)
	UpsertFromLogin(ctx context.Context, userID, username string) (*models.User, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

func (s *service) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.repository.GetUserByUsername(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("User %s not found", username)
	}
	if err != nil {
		return nil, errs.Internal("failed to load user", err)
	}

	cards, err := s.repository.ListOpenedCards(ctx, user.UserID)
	if err != nil {
		return nil, errs.Internal("failed to load cards", err)
	}

	profile := &Profile{User: user, Cards: cards}
	if user.PinnedCardID != "" {
		for _, c := range cards {
			if c.InstanceID == user.PinnedCardID {
				profile.PinnedCard = c
				break
			}
		}
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.repository.GetUser(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("User not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to load user", err)
	}

	lookingFor, pinned := user.LookingFor, user.PinnedCardID
	if in.LookingFor != nil {
		lookingFor = strings.TrimSpace(*in.LookingFor)
		if utf8.RuneCountInString(lookingFor) > maxLookingForLength {
			return nil, errs.Validation("lookingFor", "lookingFor must be at most 500 characters")
		}
	}
	if in.PinnedCardID != nil {
		pinned = *in.PinnedCardID
		if pinned != "" {
			card, err := s.repository.GetInstance(ctx, pinned)
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.NotFound("Card instance not found")
			}
			if err != nil {
				return nil, errs.Internal("failed to load card instance", err)
			}
			if card.UserID != userID || !card.Opened {
				return nil, errs.Validation("pinnedCardId", "You can only pin opened cards you own")
			}
		}
	}

	if err := s.repository.UpdateProfile(ctx, userID, lookingFor, pinned); err != nil {
		return nil, errs.Internal("failed to update profile", err)
	}
	user.LookingFor = lookingFor
	user.PinnedCardID = pinned
	return user, nil
}

// UpsertFromLogin creates the user on first login and follows Twitch
// renames after that. The repository moves a stale account off the login
// first, so a conflict here means another login claimed it concurrently.
func (s *service) UpsertFromLogin(ctx context.Context, userID, username string) (*models.User, error) {
	if userID == "" || username == "" {
		return nil, errs.Validation("userId", "userId and username are required")
	}

	user, err := s.repository.GetUser(ctx, userID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		user = &models.User{UserID: userID, Username: username}
		if err := s.repository.CreateUser(ctx, user); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return nil, errs.Conflict("Username %s is already taken", username)
			}
			return nil, errs.Internal("failed to create user", err)
		}
		slog.Info("Created user from login",
			slog.String("user_id", userID),
			slog.String("username", username))
		return user, nil
	case err != nil:
		return nil, errs.Internal("failed to load user", err)
	}

	if user.Username != username {
		if err := s.repository.RenameUser(ctx, userID, username); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return nil, errs.Conflict("Username %s is already taken", username)
			}
			return nil, errs.Internal("failed to rename user", err)
		}
		slog.Info("Renamed user",
			slog.String("user_id", userID),
			slog.String("from", user.Username),
			slog.String("to", username))
		user.Username = username
	}
	return user, nil
}
