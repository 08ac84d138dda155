package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog/mock"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

type fixture struct {
	repo    *mock.MockRepository
	storage *mock.MockStorage
	svc     *service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	storage := mock.NewMockStorage(ctrl)
	cache, err := NewCache(repo, 16)
	require.NoError(t, err)
	return &fixture{
		repo:    repo,
		storage: storage,
		svc:     NewService(repo, storage, cache),
	}
}

func Test_service_CreateSeason(t *testing.T) {
	tests := []struct {
		name    string
		in      SeasonInput
		setup   func(f *fixture)
		wantErr error
		wantMsg string
	}{
		{
			name:    "bad slug",
			in:      SeasonInput{SeasonID: "Bad Slug!", SeasonName: "Bad"},
			wantErr: errs.ErrValidation,
			wantMsg: MsgInvalidSeasonID,
		},
		{
			name:    "uppercase slug",
			in:      SeasonInput{SeasonID: "Season-2", SeasonName: "Two"},
			wantErr: errs.ErrValidation,
			wantMsg: MsgInvalidSeasonID,
		},
		{
			name:    "missing name",
			in:      SeasonInput{SeasonID: "season-2"},
			wantErr: errs.ErrValidation,
		},
		{
			name: "already exists",
			in:   SeasonInput{SeasonID: "season-2", SeasonName: "Two"},
			setup: func(f *fixture) {
				f.repo.EXPECT().GetSeason(gomock.Any(), "season-2").Return(&models.Season{SeasonID: "season-2"}, nil)
			},
			wantErr: errs.ErrConflict,
		},
		{
			name: "success",
			in:   SeasonInput{SeasonID: "season-2", SeasonName: " Two ", SeasonDescription: "second"},
			setup: func(f *fixture) {
				f.repo.EXPECT().GetSeason(gomock.Any(), "season-2").Return(nil, errs.ErrNotFound)
				f.repo.EXPECT().CreateSeason(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, s *models.Season) error {
						assert.Equal(t, "Two", s.SeasonName)
						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			got, err := f.svc.CreateSeason(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, errs.Message(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.SeasonID, got.SeasonID)
		})
	}
}

func Test_service_DeleteDesign(t *testing.T) {
	design := &models.CardDesign{DesignID: "d1", SeasonID: "s1", ImageKey: "designs/s1/d1.png"}

	tests := []struct {
		name    string
		setup   func(f *fixture)
		wantErr error
		wantMsg string
	}{
		{
			name: "has instances",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(design, nil)
				f.repo.EXPECT().CountDesignInstances(gomock.Any(), "d1").Return(1, nil)
			},
			wantErr: errs.ErrConflict,
			wantMsg: MsgDesignHasInstances,
		},
		{
			name: "no instances",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(design, nil)
				f.repo.EXPECT().CountDesignInstances(gomock.Any(), "d1").Return(0, nil)
				f.repo.EXPECT().DeleteDesign(gomock.Any(), "d1").Return(nil)
				f.storage.EXPECT().Delete(gomock.Any(), "designs/s1/d1.png").Return(nil)
			},
		},
		{
			name: "artwork cleanup failure is ignored",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(design, nil)
				f.repo.EXPECT().CountDesignInstances(gomock.Any(), "d1").Return(0, nil)
				f.repo.EXPECT().DeleteDesign(gomock.Any(), "d1").Return(nil)
				f.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("s3 down"))
			},
		},
		{
			name: "instance drawn after the count",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(design, nil)
				f.repo.EXPECT().CountDesignInstances(gomock.Any(), "d1").Return(0, nil)
				f.repo.EXPECT().DeleteDesign(gomock.Any(), "d1").
					Return(errs.Conflict("card design violates card_instances_design_fk"))
			},
			wantErr: errs.ErrConflict,
			wantMsg: MsgDesignHasInstances,
		},
		{
			name: "missing",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(nil, errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "count failure",
			setup: func(f *fixture) {
				f.repo.EXPECT().GetDesign(gomock.Any(), "d1").Return(design, nil)
				f.repo.EXPECT().CountDesignInstances(gomock.Any(), "d1").Return(0, errors.New("db down"))
			},
			wantErr: errs.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			err := f.svc.DeleteDesign(context.Background(), "d1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, errs.Message(err))
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_service_DeletePackType(t *testing.T) {
	t.Run("blocked by packs", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetPackType(gomock.Any(), "pt1").Return(&models.PackType{PackTypeID: "pt1"}, nil)
		f.repo.EXPECT().CountPacksOfType(gomock.Any(), "pt1").Return(3, nil)

		err := f.svc.DeletePackType(context.Background(), "pt1")
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, MsgPackTypeHasPacks, errs.Message(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetPackType(gomock.Any(), "pt1").Return(&models.PackType{PackTypeID: "pt1"}, nil)
		f.repo.EXPECT().CountPacksOfType(gomock.Any(), "pt1").Return(0, nil)
		f.repo.EXPECT().DeletePackType(gomock.Any(), "pt1").Return(nil)

		assert.NoError(t, f.svc.DeletePackType(context.Background(), "pt1"))
	})

	t.Run("pack issued after the count", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetPackType(gomock.Any(), "pt1").Return(&models.PackType{PackTypeID: "pt1"}, nil)
		f.repo.EXPECT().CountPacksOfType(gomock.Any(), "pt1").Return(0, nil)
		f.repo.EXPECT().DeletePackType(gomock.Any(), "pt1").
			Return(errs.Conflict("pack type violates packs_pack_type_fk"))

		err := f.svc.DeletePackType(context.Background(), "pt1")
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, MsgPackTypeHasPacks, errs.Message(err))
	})

	t.Run("missing id", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.DeletePackType(context.Background(), ""), errs.ErrValidation)
	})
}

func Test_service_CreateDesign(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetSeason(gomock.Any(), "season-1").Return(&models.Season{SeasonID: "season-1"}, nil)
	f.storage.EXPECT().
		Put(gomock.Any(), gomock.Any(), "image/png", gomock.Any(), int64(4)).
		DoAndReturn(func(_ context.Context, key, _ string, _ io.Reader, _ int64) (string, error) {
			assert.True(t, strings.HasPrefix(key, "designs/season-1/"))
			assert.True(t, strings.HasSuffix(key, ".png"))
			return "https://cdn.example/" + key, nil
		})
	f.repo.EXPECT().CreateDesign(gomock.Any(), gomock.Any()).Return(nil)

	got, err := f.svc.CreateDesign(context.Background(), DesignInput{
		CardName: "Snail",
		SeasonID: "season-1",
		Image:    &Upload{Filename: "snail.PNG", ContentType: "image/png", Size: 4, Body: strings.NewReader("png!")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Snail", got.CardName)
	assert.Contains(t, got.ImageURL, got.DesignID)
}

func Test_service_CreateDesign_RollsBackUpload(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetSeason(gomock.Any(), "season-1").Return(&models.Season{SeasonID: "season-1"}, nil)
	f.storage.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)
	f.repo.EXPECT().CreateDesign(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	f.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.CreateDesign(context.Background(), DesignInput{
		CardName: "Snail",
		SeasonID: "season-1",
		Image:    &Upload{Filename: "snail.png", Body: strings.NewReader("x")},
	})
	assert.ErrorIs(t, err, errs.ErrInternal)
}

func Test_service_DeleteRarity(t *testing.T) {
	rarity := &models.Rarity{RarityID: "gold", FrameKey: "frames/gold.png"}

	t.Run("frame cleaned up", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetRarity(gomock.Any(), "gold").Return(rarity, nil)
		f.repo.EXPECT().CountRarityInstances(gomock.Any(), "gold").Return(0, nil)
		f.repo.EXPECT().ListPackTypes(gomock.Any()).Return([]*models.PackType{
			{PackTypeID: "pt1", Composition: []models.PackSlot{{RarityID: "bronze", Count: 4}}},
		}, nil)
		f.repo.EXPECT().DeleteRarity(gomock.Any(), "gold").Return(nil)
		f.storage.EXPECT().Delete(gomock.Any(), "frames/gold.png").Return(nil)

		assert.NoError(t, f.svc.DeleteRarity(context.Background(), "gold"))
	})

	t.Run("named by a pack type", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetRarity(gomock.Any(), "gold").Return(rarity, nil)
		f.repo.EXPECT().CountRarityInstances(gomock.Any(), "gold").Return(0, nil)
		f.repo.EXPECT().ListPackTypes(gomock.Any()).Return([]*models.PackType{
			{PackTypeID: "pt1", PackTypeName: "Starter", Composition: []models.PackSlot{
				{RarityID: "bronze", Count: 4},
				{RarityID: "gold", Count: 1},
			}},
		}, nil)

		err := f.svc.DeleteRarity(context.Background(), "gold")
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "Cannot delete rarity used by pack type Starter", errs.Message(err))
	})

	t.Run("in use", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetRarity(gomock.Any(), "gold").Return(rarity, nil)
		f.repo.EXPECT().CountRarityInstances(gomock.Any(), "gold").Return(2, nil)

		err := f.svc.DeleteRarity(context.Background(), "gold")
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func Test_service_CreatePackType(t *testing.T) {
	t.Run("unknown rarity", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetRarity(gomock.Any(), "mythic").Return(nil, errs.ErrNotFound)

		_, err := f.svc.CreatePackType(context.Background(), PackTypeInput{
			PackTypeName: "Starter",
			Composition:  []models.PackSlot{{RarityID: "mythic", Count: 1}},
		})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("rarities are cached", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetRarity(gomock.Any(), "bronze").Return(&models.Rarity{RarityID: "bronze"}, nil).Times(1)
		f.repo.EXPECT().CreatePackType(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		in := PackTypeInput{
			PackTypeName: "Starter",
			Composition:  []models.PackSlot{{RarityID: "bronze", Count: 3}, {RarityID: "bronze", Count: 2}},
		}
		got, err := f.svc.CreatePackType(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 5, got.CardCount())

		_, err = f.svc.CreatePackType(context.Background(), in)
		require.NoError(t, err)
	})

	t.Run("empty composition", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreatePackType(context.Background(), PackTypeInput{PackTypeName: "Empty"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func Test_service_SearchDesigns(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().ListDesigns(gomock.Any(), "").Return([]*models.CardDesign{
		{DesignID: "1", CardName: "Snail Racer"},
		{DesignID: "2", CardName: "Bread"},
		{DesignID: "3", CardName: "Snack Attack"},
	}, nil)

	got, err := f.svc.SearchDesigns(context.Background(), "snail", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "1", got[0].DesignID)
	for _, d := range got {
		assert.NotEqual(t, "2", d.DesignID)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ultra-rare", slugify("Ultra Rare!"))
	assert.Equal(t, "bronze", slugify("  Bronze "))
	assert.True(t, ValidSlug("season-2"))
	assert.False(t, ValidSlug("Bad Slug!"))
}
