package packs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

// memRepository keeps instances and packs in maps. OpenInstance is a
// compare-and-swap on opened under one lock, the same guarantee the
// conditional UPDATE gives in Postgres.
type memRepository struct {
	mu        sync.Mutex
	instances map[string]*models.CardInstance
	packs     map[string]*models.Pack
	users     map[string]*models.User
}

var _ Repository = &memRepository{}

func newMemRepository() *memRepository {
	return &memRepository{
		instances: map[string]*models.CardInstance{},
		packs:     map[string]*models.Pack{},
		users:     map[string]*models.User{},
	}
}

func (r *memRepository) addPack(packID, userID string, instanceIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packs[packID] = &models.Pack{PackID: packID, UserID: userID, RemainingCards: len(instanceIDs)}
	for i, id := range instanceIDs {
		r.instances[id] = &models.CardInstance{
			InstanceID: id,
			DesignID:   "d1",
			RarityID:   "bronze",
			PackID:     packID,
			UserID:     userID,
			CardNumber: i + 1,
		}
	}
	if u, ok := r.users[userID]; ok {
		u.PackCount++
	} else {
		r.users[userID] = &models.User{UserID: userID, PackCount: 1}
	}
}

func (r *memRepository) unopenedIn(packID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, inst := range r.instances {
		if inst.PackID == packID && !inst.Opened {
			n++
		}
	}
	return n
}

func (r *memRepository) remaining(packID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.packs[packID].RemainingCards
}

func (r *memRepository) GetInstance(_ context.Context, instanceID string) (*models.CardInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[instanceID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (r *memRepository) OpenInstance(_ context.Context, instanceID string, openedAt time.Time) (*models.CardInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[instanceID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if inst.Opened {
		return nil, errs.ErrAlreadyOpened
	}
	pack := r.packs[inst.PackID]
	if pack.RemainingCards <= 0 {
		return nil, errors.New("remaining_cards check violated")
	}
	inst.Opened = true
	inst.OpenedAt = openedAt
	pack.RemainingCards--
	if pack.RemainingCards == 0 {
		r.users[pack.UserID].PackCount--
	}
	cp := *inst
	return &cp, nil
}

func (r *memRepository) GetPackType(context.Context, string) (*models.PackType, error) {
	return nil, errs.ErrNotFound
}

func (r *memRepository) IssuePack(context.Context, *models.Pack, *models.PackType) error {
	return errors.New("not supported")
}

func (r *memRepository) ListUserPacks(context.Context, string) ([]*models.Pack, error) {
	return nil, nil
}

func (r *memRepository) CreatePreorder(context.Context, *models.Preorder) error {
	return errors.New("not supported")
}

func (r *memRepository) ListPreorders(context.Context) ([]*models.Preorder, error) {
	return nil, nil
}

func (r *memRepository) ConvertPreorder(context.Context, *models.Preorder, *models.Pack, *models.PackType) error {
	return errors.New("not supported")
}

func (r *memRepository) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, errs.ErrNotFound
}

func (r *memRepository) UpsertUser(context.Context, *models.User) error {
	return errors.New("not supported")
}

type staticLookup struct{}

func (staticLookup) Design(_ context.Context, id string) (*models.CardDesign, error) {
	return &models.CardDesign{DesignID: id}, nil
}

func (staticLookup) Rarity(_ context.Context, id string) (*models.Rarity, error) {
	return &models.Rarity{RarityID: id}, nil
}

func TestOpenCard_ConcurrentOpensOfSameInstance(t *testing.T) {
	for round := 0; round < 50; round++ {
		repo := newMemRepository()
		repo.addPack("p1", "u1", "i1", "i2", "i3")
		svc := NewService(repo, staticLookup{}, nil, nil)

		start := make(chan struct{})
		results := make([]error, 2)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, results[i] = svc.OpenCard(context.Background(), OpenRequest{InstanceID: "i1", UserID: "u1"})
			}()
		}
		close(start)
		wg.Wait()

		successes, conflicts := 0, 0
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, errs.ErrAlreadyOpened):
				conflicts++
				assert.Equal(t, errs.KindConflict, errs.KindOf(err))
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, successes)
		require.Equal(t, 1, conflicts)

		inst, err := repo.GetInstance(context.Background(), "i1")
		require.NoError(t, err)
		assert.True(t, inst.Opened)
		assert.Equal(t, 2, repo.remaining("p1"))
	}
}

func TestOpenCard_RemainingMatchesUnopened(t *testing.T) {
	repo := newMemRepository()
	repo.addPack("p1", "u1", "a", "b", "c", "d")
	repo.addPack("p2", "u1", "e", "f")
	svc := NewService(repo, staticLookup{}, nil, nil)

	sequence := []string{"b", "e", "b", "a", "f", "f", "d", "c", "a"}
	for _, id := range sequence {
		_, _ = svc.OpenCard(context.Background(), OpenRequest{InstanceID: id})
		for _, p := range []string{"p1", "p2"} {
			assert.Equal(t, repo.unopenedIn(p), repo.remaining(p), "pack %s after opening %s", p, id)
		}
	}

	assert.Equal(t, 0, repo.remaining("p1"))
	assert.Equal(t, 0, repo.remaining("p2"))
	assert.Equal(t, 0, repo.users["u1"].PackCount)
}
