package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users/mock"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

func repoMock(t *testing.T) *mock.MockRepository {
	return mock.NewMockRepository(gomock.NewController(t))
}

func ptr(s string) *string { return &s }

func Test_service_UpdateProfile(t *testing.T) {
	user := func() *models.User {
		return &models.User{UserID: "u1", Username: "alice", LookingFor: "snails"}
	}

	tests := []struct {
		name        string
		in          ProfileUpdate
		setup       func(r *mock.MockRepository)
		wantErr     error
		wantLooking string
		wantPinned  string
	}{
		{
			name: "looking for only",
			in:   ProfileUpdate{LookingFor: ptr("  bread  ")},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(user(), nil)
				r.EXPECT().UpdateProfile(gomock.Any(), "u1", "bread", "").Return(nil)
			},
			wantLooking: "bread",
		},
		{
			name: "too long",
			in:   ProfileUpdate{LookingFor: ptr(strings.Repeat("a", 501))},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(user(), nil)
			},
			wantErr: errs.ErrValidation,
		},
		{
			name: "pin own opened card",
			in:   ProfileUpdate{PinnedCardID: ptr("i1")},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(user(), nil)
				r.EXPECT().GetInstance(gomock.Any(), "i1").Return(&models.CardInstance{InstanceID: "i1", UserID: "u1", Opened: true}, nil)
				r.EXPECT().UpdateProfile(gomock.Any(), "u1", "snails", "i1").Return(nil)
			},
			wantLooking: "snails",
			wantPinned:  "i1",
		},
		{
			name: "pin unopened card",
			in:   ProfileUpdate{PinnedCardID: ptr("i1")},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(user(), nil)
				r.EXPECT().GetInstance(gomock.Any(), "i1").Return(&models.CardInstance{InstanceID: "i1", UserID: "u1"}, nil)
			},
			wantErr: errs.ErrValidation,
		},
		{
			name: "pin someone else's card",
			in:   ProfileUpdate{PinnedCardID: ptr("i1")},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(user(), nil)
				r.EXPECT().GetInstance(gomock.Any(), "i1").Return(&models.CardInstance{InstanceID: "i1", UserID: "u2", Opened: true}, nil)
			},
			wantErr: errs.ErrValidation,
		},
		{
			name: "unknown user",
			in:   ProfileUpdate{},
			setup: func(r *mock.MockRepository) {
				r.EXPECT().GetUser(gomock.Any(), "u1").Return(nil, errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoMock(t)
			tt.setup(repo)
			s := NewService(repo)

			got, err := s.UpdateProfile(context.Background(), "u1", tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLooking, got.LookingFor)
			assert.Equal(t, tt.wantPinned, got.PinnedCardID)
		})
	}
}

func Test_service_UpsertFromLogin(t *testing.T) {
	t.Run("first login", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u1").Return(nil, errs.ErrNotFound)
		repo.EXPECT().CreateUser(gomock.Any(), &models.User{UserID: "u1", Username: "alice"}).Return(nil)

		got, err := NewService(repo).UpsertFromLogin(context.Background(), "u1", "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("renamed on twitch", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u1").Return(&models.User{UserID: "u1", Username: "old"}, nil)
		repo.EXPECT().RenameUser(gomock.Any(), "u1", "alice").Return(nil)

		got, err := NewService(repo).UpsertFromLogin(context.Background(), "u1", "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("unchanged", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u1").Return(&models.User{UserID: "u1", Username: "alice"}, nil)

		_, err := NewService(repo).UpsertFromLogin(context.Background(), "u1", "alice")
		require.NoError(t, err)
	})

	t.Run("login taken during rename", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u1").Return(&models.User{UserID: "u1", Username: "old"}, nil)
		repo.EXPECT().RenameUser(gomock.Any(), "u1", "alice").
			Return(fmt.Errorf("rename: %w", errs.ErrConflict))

		_, err := NewService(repo).UpsertFromLogin(context.Background(), "u1", "alice")
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "Username alice is already taken", errs.Message(err))
	})

	t.Run("login taken during first login", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u2").Return(nil, errs.ErrNotFound)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("insert: %w", errs.ErrConflict))

		_, err := NewService(repo).UpsertFromLogin(context.Background(), "u2", "alice")
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("store failure", func(t *testing.T) {
		repo := repoMock(t)
		repo.EXPECT().GetUser(gomock.Any(), "u1").Return(nil, errors.New("db down"))

		_, err := NewService(repo).UpsertFromLogin(context.Background(), "u1", "alice")
		assert.ErrorIs(t, err, errs.ErrInternal)
	})
}

func Test_service_GetProfile(t *testing.T) {
	repo := repoMock(t)
	repo.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(&models.User{UserID: "u1", Username: "alice", PinnedCardID: "i2"}, nil)
	repo.EXPECT().ListOpenedCards(gomock.Any(), "u1").Return([]*models.CardInstance{
		{InstanceID: "i1", Opened: true},
		{InstanceID: "i2", Opened: true},
	}, nil)

	got, err := NewService(repo).GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, got.Cards, 2)
	require.NotNil(t, got.PinnedCard)
	assert.Equal(t, "i2", got.PinnedCard.InstanceID)
}
