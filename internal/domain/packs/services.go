package packs

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const convertConcurrency = 4

type OpenRequest struct {
	InstanceID string
	// DesignID and PackID are optional; when set they must match the stored
	// instance.
	DesignID string
	PackID   string
	// UserID restricts the open to the instance's owner.
	UserID string
}

type IssueRequest struct {
	Username   string
	PackTypeID string
}

type Service interface {
	OpenCard(ctx context.Context, req OpenRequest) (*models.CardInstance, error)
	IssuePack(ctx context.Context, req IssueRequest) (*models.Pack, error)
	ConvertPreorders(ctx context.Context, packTypeID string) (int, error)
	CreatePreorder(ctx context.Context, username string) (*models.Preorder, error)
	ListUserPacks(ctx context.Context, userID string) ([]*models.Pack, error)
}

type service struct {
	repository Repository
	lookup     Lookup
	directory  Directory
	notifier   notify.Notifier
	now        func() time.Time
}

func NewService(repository Repository, lookup Lookup, directory Directory, notifier notify.Notifier) *service {
	if notifier == nil {
		notifier = notify.Nop()
	}
	return &service{
		repository: repository,
		lookup:     lookup,
		directory:  directory,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *service) OpenCard(ctx context.Context, req OpenRequest) (*models.CardInstance, error) {
	if req.InstanceID == "" {
		return nil, errs.Validation("instanceId", "instanceId is required")
	}

	instance, err := s.repository.GetInstance(ctx, req.InstanceID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("Card instance not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to load card instance", err)
	}

	switch {
	case req.DesignID != "" && req.DesignID != instance.DesignID,
		req.PackID != "" && req.PackID != instance.PackID,
		req.UserID != "" && req.UserID != instance.UserID:
		return nil, errs.NotFound("Card instance not found")
	}
	if instance.Opened {
		return nil, errs.ErrAlreadyOpened
	}

	opened, err := s.repository.OpenInstance(ctx, req.InstanceID, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyOpened):
			return nil, errs.ErrAlreadyOpened
		case errors.Is(err, errs.ErrNotFound):
			return nil, errs.NotFound("Card instance not found")
		}
		return nil, errs.Internal("failed to open card", err)
	}

	// The open has committed; a failed join only degrades the response.
	if design, err := s.lookup.Design(ctx, opened.DesignID); err == nil {
		opened.Design = design
	} else {
		slog.Warn("Failed to join design into revealed card",
			slog.String("instance_id", opened.InstanceID),
			slog.Any("error", err))
	}
	if rarity, err := s.lookup.Rarity(ctx, opened.RarityID); err == nil {
		opened.Rarity = rarity
	} else {
		slog.Warn("Failed to join rarity into revealed card",
			slog.String("instance_id", opened.InstanceID),
			slog.Any("error", err))
	}

	s.notifier.After(ctx, true, notify.Event{
		Name: notify.EventPackOpened,
		Detail: map[string]string{
			"instanceId": opened.InstanceID,
			"packId":     opened.PackID,
			"userId":     opened.UserID,
			"username":   opened.Username,
		},
	})
	return opened, nil
}

func (s *service) IssuePack(ctx context.Context, req IssueRequest) (*models.Pack, error) {
	packType, err := s.getPackType(ctx, req.PackTypeID)
	if err != nil {
		return nil, err
	}

	pack := &models.Pack{
		PackID:     uuid.NewString(),
		PackTypeID: packType.PackTypeID,
	}
	if username := strings.TrimSpace(req.Username); username != "" {
		user, err := s.resolveUser(ctx, username)
		if err != nil {
			return nil, err
		}
		pack.UserID = user.UserID
		pack.Username = user.Username
	}

	if err := s.repository.IssuePack(ctx, pack, packType); err != nil {
		switch errs.KindOf(err) {
		case errs.KindConflict:
			return nil, err
		case errs.KindNotFound:
			// The pack type was loaded above; a catalog row it names is gone.
			return nil, errs.Conflict("Pack type %s cannot be issued: %s", packType.PackTypeName, errs.Message(err))
		}
		return nil, errs.Internal("failed to issue pack", err)
	}

	s.notifier.After(ctx, true, notify.Event{
		Name: notify.EventPacksIssued,
		Detail: map[string]any{
			"packTypeId": packType.PackTypeID,
			"packIds":    []string{pack.PackID},
			"userId":     pack.UserID,
			"username":   pack.Username,
		},
	})
	return pack, nil
}

// ConvertPreorders turns every outstanding preorder into a pack of the given
// type. Each preorder is converted on its own; failures are logged and left
// for the next run.
func (s *service) ConvertPreorders(ctx context.Context, packTypeID string) (int, error) {
	packType, err := s.getPackType(ctx, packTypeID)
	if err != nil {
		return 0, err
	}

	preorders, err := s.repository.ListPreorders(ctx)
	if err != nil {
		return 0, errs.Internal("failed to list preorders", err)
	}
	if len(preorders) == 0 {
		return 0, nil
	}

	var (
		converted atomic.Int64
		g         errgroup.Group
	)
	g.SetLimit(convertConcurrency)
	for _, preorder := range preorders {
		g.Go(func() error {
			pack := &models.Pack{
				PackID:     uuid.NewString(),
				UserID:     preorder.UserID,
				Username:   preorder.Username,
				PackTypeID: packType.PackTypeID,
			}
			if err := s.repository.ConvertPreorder(ctx, preorder, pack, packType); err != nil {
				slog.Error("Failed to convert preorder",
					slog.String("preorder_id", preorder.PreorderID),
					slog.String("username", preorder.Username),
					slog.String("pack_type_id", packType.PackTypeID),
					slog.Any("error", err))
				return nil
			}
			converted.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	count := int(converted.Load())
	slog.Info("Converted preorders",
		slog.String("pack_type_id", packType.PackTypeID),
		slog.Int("converted", count),
		slog.Int("outstanding", len(preorders)-count))

	if count > 0 {
		s.notifier.After(ctx, true, notify.Event{
			Name: notify.EventPacksIssued,
			Detail: map[string]any{
				"packTypeId": packType.PackTypeID,
				"count":      count,
			},
		})
	}
	return count, nil
}

func (s *service) CreatePreorder(ctx context.Context, username string) (*models.Preorder, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.Validation("username", "username is required")
	}
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	preorder := &models.Preorder{
		PreorderID: uuid.NewString(),
		UserID:     user.UserID,
		Username:   user.Username,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repository.CreatePreorder(ctx, preorder); err != nil {
		return nil, errs.Internal("failed to create preorder", err)
	}
	return preorder, nil
}

// ListUserPacks returns the user's packs with their unopened instances.
// Designs stay hidden until the card is opened.
func (s *service) ListUserPacks(ctx context.Context, userID string) ([]*models.Pack, error) {
	if userID == "" {
		return nil, errs.Validation("userId", "userId is required")
	}
	packs, err := s.repository.ListUserPacks(ctx, userID)
	if err != nil {
		return nil, errs.Internal("failed to list packs", err)
	}
	for _, p := range packs {
		for _, inst := range p.Instances {
			inst.DesignID = ""
			inst.CardNumber = 0
			inst.TotalOfType = 0
			inst.Design = nil
		}
	}
	return packs, nil
}

func (s *service) getPackType(ctx context.Context, packTypeID string) (*models.PackType, error) {
	if packTypeID == "" {
		return nil, errs.Validation("packTypeId", "packTypeId is required")
	}
	packType, err := s.repository.GetPackType(ctx, packTypeID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("Pack type %s not found", packTypeID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load pack type", err)
	}
	return packType, nil
}

// resolveUser finds a user by username, falling back to Twitch for users who
// have never logged in.
func (s *service) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repository.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Internal("failed to load user", err)
	}
	if s.directory == nil {
		return nil, errs.NotFound("User %s not found", username)
	}

	userID, login, err := s.directory.LookupLogin(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("User %s not found", username)
	}
	if err != nil {
		return nil, errs.Internal("failed to look up twitch user", err)
	}

	user = &models.User{UserID: userID, Username: login}
	if err := s.repository.UpsertUser(ctx, user); err != nil {
		return nil, errs.Internal("failed to create user", err)
	}
	return user, nil
}
