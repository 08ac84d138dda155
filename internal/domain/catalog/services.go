package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const (
	MsgInvalidSeasonID      = "Invalid seasonId. Must only contain lowercase letters, numbers, and dashes."
	MsgDesignHasInstances   = "Cannot delete design with existing instances"
	MsgRarityHasInstances   = "Cannot delete rarity with existing instances"
	MsgPackTypeHasPacks     = "Cannot delete pack type with existing packs"
	MsgSeasonHasReferences  = "Cannot delete season with existing designs or pack types"
	MsgRarityInPackType     = "Cannot delete rarity used by pack type %s"
	defaultSearchLimit      = 20
	maxDescriptionLength    = 1000
	maxCompositionCardCount = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s may be used as a season or rarity id.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type SeasonInput struct {
	SeasonID          string
	SeasonName        string
	SeasonDescription string
}

type DesignInput struct {
	CardName        string
	CardDescription string
	SeasonID        string
	Artist          string
	Image           *Upload
}

type RarityInput struct {
	RarityID     string
	RarityName   string
	DefaultCount int
	Frame        *Upload
}

type PackTypeInput struct {
	PackTypeName        string
	PackTypeDescription string
	SeasonID            string
	Composition         []models.PackSlot
}

type Service interface {
	CreateSeason(ctx context.Context, in SeasonInput) (*models.Season, error)
	UpdateSeason(ctx context.Context, in SeasonInput) (*models.Season, error)
	DeleteSeason(ctx context.Context, seasonID string) error
	ListSeasons(ctx context.Context) ([]*models.Season, error)

	CreateDesign(ctx context.Context, in DesignInput) (*models.CardDesign, error)
	UpdateDesign(ctx context.Context, designID, description string) (*models.CardDesign, error)
	DeleteDesign(ctx context.Context, designID string) error
	ListDesigns(ctx context.Context, seasonID string) ([]*models.CardDesign, error)
	SearchDesigns(ctx context.Context, query string, limit int) ([]*models.CardDesign, error)

	CreateRarity(ctx context.Context, in RarityInput) (*models.Rarity, error)
	DeleteRarity(ctx context.Context, rarityID string) error
	ListRarities(ctx context.Context) ([]*models.Rarity, error)

	CreatePackType(ctx context.Context, in PackTypeInput) (*models.PackType, error)
	DeletePackType(ctx context.Context, packTypeID string) error
	ListPackTypes(ctx context.Context) ([]*models.PackType, error)
}

type service struct {
	repository Repository
	storage    Storage
	cache      *Cache
}

func NewService(repository Repository, storage Storage, cache *Cache) *service {
	return &service{
		repository: repository,
		storage:    storage,
		cache:      cache,
	}
}

func (s *service) CreateSeason(ctx context.Context, in SeasonInput) (*models.Season, error) {
	if !ValidSlug(in.SeasonID) {
		return nil, errs.Validation("seasonId", MsgInvalidSeasonID)
	}
	if strings.TrimSpace(in.SeasonName) == "" {
		return nil, errs.Validation("seasonName", "seasonName is required")
	}

	if _, err := s.repository.GetSeason(ctx, in.SeasonID); err == nil {
		return nil, errs.Conflict("Season %s already exists", in.SeasonID)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Internal("failed to check season", err)
	}

	season := &models.Season{
		SeasonID:          in.SeasonID,
		SeasonName:        strings.TrimSpace(in.SeasonName),
		SeasonDescription: strings.TrimSpace(in.SeasonDescription),
	}
	if err := s.repository.CreateSeason(ctx, season); err != nil {
		return nil, wrapWrite("failed to create season", err)
	}
	return season, nil
}

func (s *service) UpdateSeason(ctx context.Context, in SeasonInput) (*models.Season, error) {
	season, err := s.getSeason(ctx, in.SeasonID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.SeasonName); name != "" {
		season.SeasonName = name
	}
	season.SeasonDescription = strings.TrimSpace(in.SeasonDescription)

	if err := s.repository.UpdateSeason(ctx, season); err != nil {
		return nil, wrapWrite("failed to update season", err)
	}
	return season, nil
}

func (s *service) DeleteSeason(ctx context.Context, seasonID string) error {
	if _, err := s.getSeason(ctx, seasonID); err != nil {
		return err
	}
	inUse, err := s.repository.SeasonInUse(ctx, seasonID)
	if err != nil {
		return errs.Internal("failed to check season references", err)
	}
	if inUse {
		return errs.Conflict(MsgSeasonHasReferences)
	}
	if err := s.repository.DeleteSeason(ctx, seasonID); err != nil {
		return wrapDelete(MsgSeasonHasReferences, "failed to delete season", err)
	}
	return nil
}

func (s *service) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	seasons, err := s.repository.ListSeasons(ctx)
	if err != nil {
		return nil, errs.Internal("failed to list seasons", err)
	}
	return seasons, nil
}

func (s *service) getSeason(ctx context.Context, seasonID string) (*models.Season, error) {
	if seasonID == "" {
		return nil, errs.Validation("seasonId", "seasonId is required")
	}
	season, err := s.repository.GetSeason(ctx, seasonID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("Season %s not found", seasonID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load season", err)
	}
	return season, nil
}

func (s *service) CreateDesign(ctx context.Context, in DesignInput) (*models.CardDesign, error) {
	if strings.TrimSpace(in.CardName) == "" {
		return nil, errs.Validation("cardName", "cardName is required")
	}
	if len(in.CardDescription) > maxDescriptionLength {
		return nil, errs.Validation("cardDescription", "cardDescription is too long")
	}
	if in.Image == nil || in.Image.Body == nil {
		return nil, errs.Validation("image", "image is required")
	}
	if _, err := s.getSeason(ctx, in.SeasonID); err != nil {
		return nil, err
	}

	designID := uuid.NewString()
	key := fmt.Sprintf("designs/%s/%s%s", in.SeasonID, designID, extension(in.Image))
	url, err := s.storage.Put(ctx, key, in.Image.ContentType, in.Image.Body, in.Image.Size)
	if err != nil {
		return nil, errs.Internal("failed to upload design image", err)
	}

	design := &models.CardDesign{
		DesignID:        designID,
		CardName:        strings.TrimSpace(in.CardName),
		CardDescription: strings.TrimSpace(in.CardDescription),
		SeasonID:        in.SeasonID,
		Artist:          strings.TrimSpace(in.Artist),
		ImageURL:        url,
		ImageKey:        key,
	}
	if err := s.repository.CreateDesign(ctx, design); err != nil {
		s.removeObject(ctx, key)
		return nil, wrapWrite("failed to create design", err)
	}
	return design, nil
}

func (s *service) UpdateDesign(ctx context.Context, designID, description string) (*models.CardDesign, error) {
	if len(description) > maxDescriptionLength {
		return nil, errs.Validation("cardDescription", "cardDescription is too long")
	}
	design, err := s.getDesign(ctx, designID)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if err := s.repository.UpdateDesignDescription(ctx, designID, description); err != nil {
		return nil, wrapWrite("failed to update design", err)
	}
	s.cache.InvalidateDesign(designID)

	design.CardDescription = description
	return design, nil
}

func (s *service) DeleteDesign(ctx context.Context, designID string) error {
	design, err := s.getDesign(ctx, designID)
	if err != nil {
		return err
	}
	count, err := s.repository.CountDesignInstances(ctx, designID)
	if err != nil {
		return errs.Internal("failed to count design instances", err)
	}
	if count > 0 {
		return errs.Conflict(MsgDesignHasInstances)
	}
	if err := s.repository.DeleteDesign(ctx, designID); err != nil {
		return wrapDelete(MsgDesignHasInstances, "failed to delete design", err)
	}
	s.cache.InvalidateDesign(designID)

	if design.ImageKey != "" {
		s.removeObject(ctx, design.ImageKey)
	}
	return nil
}

func (s *service) ListDesigns(ctx context.Context, seasonID string) ([]*models.CardDesign, error) {
	if seasonID != "" {
		if _, err := s.getSeason(ctx, seasonID); err != nil {
			return nil, err
		}
	}
	designs, err := s.repository.ListDesigns(ctx, seasonID)
	if err != nil {
		return nil, errs.Internal("failed to list designs", err)
	}
	return designs, nil
}

type designNames []*models.CardDesign

func (d designNames) String(i int) string { return strings.ToLower(d[i].CardName) }
func (d designNames) Len() int            { return len(d) }

// SearchDesigns ranks every design by fuzzy match of its name against query.
func (s *service) SearchDesigns(ctx context.Context, query string, limit int) ([]*models.CardDesign, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errs.Validation("q", "search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	designs, err := s.repository.ListDesigns(ctx, "")
	if err != nil {
		return nil, errs.Internal("failed to list designs", err)
	}

	matches := fuzzy.FindFrom(query, designNames(designs))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]*models.CardDesign, len(matches))
	for i, m := range matches {
		results[i] = designs[m.Index]
	}
	return results, nil
}

func (s *service) getDesign(ctx context.Context, designID string) (*models.CardDesign, error) {
	if designID == "" {
		return nil, errs.Validation("designId", "designId is required")
	}
	design, err := s.repository.GetDesign(ctx, designID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("Design %s not found", designID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load design", err)
	}
	return design, nil
}

func (s *service) CreateRarity(ctx context.Context, in RarityInput) (*models.Rarity, error) {
	name := strings.TrimSpace(in.RarityName)
	if name == "" {
		return nil, errs.Validation("rarityName", "rarityName is required")
	}
	if in.DefaultCount <= 0 {
		return nil, errs.Validation("defaultCount", "defaultCount must be a positive number")
	}
	id := in.RarityID
	if id == "" {
		id = slugify(name)
	}
	if !ValidSlug(id) {
		return nil, errs.Validation("rarityId", "Invalid rarityId. Must only contain lowercase letters, numbers, and dashes.")
	}

	if _, err := s.repository.GetRarity(ctx, id); err == nil {
		return nil, errs.Conflict("Rarity %s already exists", id)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Internal("failed to check rarity", err)
	}

	rarity := &models.Rarity{
		RarityID:     id,
		RarityName:   name,
		DefaultCount: in.DefaultCount,
	}
	if in.Frame != nil && in.Frame.Body != nil {
		key := fmt.Sprintf("frames/%s%s", id, extension(in.Frame))
		url, err := s.storage.Put(ctx, key, in.Frame.ContentType, in.Frame.Body, in.Frame.Size)
		if err != nil {
			return nil, errs.Internal("failed to upload rarity frame", err)
		}
		rarity.FrameURL = url
		rarity.FrameKey = key
	}

	if err := s.repository.CreateRarity(ctx, rarity); err != nil {
		if rarity.FrameKey != "" {
			s.removeObject(ctx, rarity.FrameKey)
		}
		return nil, wrapWrite("failed to create rarity", err)
	}
	return rarity, nil
}

func (s *service) DeleteRarity(ctx context.Context, rarityID string) error {
	if rarityID == "" {
		return errs.Validation("rarityId", "rarityId is required")
	}
	rarity, err := s.repository.GetRarity(ctx, rarityID)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound("Rarity %s not found", rarityID)
	}
	if err != nil {
		return errs.Internal("failed to load rarity", err)
	}

	count, err := s.repository.CountRarityInstances(ctx, rarityID)
	if err != nil {
		return errs.Internal("failed to count rarity instances", err)
	}
	if count > 0 {
		return errs.Conflict(MsgRarityHasInstances)
	}
	packTypes, err := s.repository.ListPackTypes(ctx)
	if err != nil {
		return errs.Internal("failed to list pack types", err)
	}
	for _, pt := range packTypes {
		for _, slot := range pt.Composition {
			if slot.RarityID == rarityID {
				return errs.Conflict(MsgRarityInPackType, pt.PackTypeName)
			}
		}
	}
	if err := s.repository.DeleteRarity(ctx, rarityID); err != nil {
		return wrapDelete(MsgRarityHasInstances, "failed to delete rarity", err)
	}
	s.cache.InvalidateRarity(rarityID)

	if rarity.FrameKey != "" {
		s.removeObject(ctx, rarity.FrameKey)
	}
	return nil
}

func (s *service) ListRarities(ctx context.Context) ([]*models.Rarity, error) {
	rarities, err := s.repository.ListRarities(ctx)
	if err != nil {
		return nil, errs.Internal("failed to list rarities", err)
	}
	return rarities, nil
}

func (s *service) CreatePackType(ctx context.Context, in PackTypeInput) (*models.PackType, error) {
	name := strings.TrimSpace(in.PackTypeName)
	if name == "" {
		return nil, errs.Validation("packTypeName", "packTypeName is required")
	}
	if len(in.Composition) == 0 {
		return nil, errs.Validation("composition", "composition must name at least one rarity")
	}
	if in.SeasonID != "" {
		if _, err := s.getSeason(ctx, in.SeasonID); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, slot := range in.Composition {
		if slot.Count <= 0 {
			return nil, errs.Validation("composition", "each rarity count must be positive")
		}
		if _, err := s.cache.Rarity(ctx, slot.RarityID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.NotFound("Rarity %s not found", slot.RarityID)
			}
			return nil, errs.Internal("failed to load rarity", err)
		}
		total += slot.Count
	}
	if total > maxCompositionCardCount {
		return nil, errs.Validation("composition", fmt.Sprintf("a pack may hold at most %d cards", maxCompositionCardCount))
	}

	packType := &models.PackType{
		PackTypeID:          uuid.NewString(),
		PackTypeName:        name,
		PackTypeDescription: strings.TrimSpace(in.PackTypeDescription),
		SeasonID:            in.SeasonID,
		Composition:         in.Composition,
	}
	if err := s.repository.CreatePackType(ctx, packType); err != nil {
		return nil, wrapWrite("failed to create pack type", err)
	}
	return packType, nil
}

func (s *service) DeletePackType(ctx context.Context, packTypeID string) error {
	if packTypeID == "" {
		return errs.Validation("packTypeId", "packTypeId is required")
	}
	if _, err := s.repository.GetPackType(ctx, packTypeID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound("Pack type %s not found", packTypeID)
		}
		return errs.Internal("failed to load pack type", err)
	}

	count, err := s.repository.CountPacksOfType(ctx, packTypeID)
	if err != nil {
		return errs.Internal("failed to count packs", err)
	}
	if count > 0 {
		return errs.Conflict(MsgPackTypeHasPacks)
	}
	if err := s.repository.DeletePackType(ctx, packTypeID); err != nil {
		return wrapDelete(MsgPackTypeHasPacks, "failed to delete pack type", err)
	}
	return nil
}

func (s *service) ListPackTypes(ctx context.Context) ([]*models.PackType, error) {
	packTypes, err := s.repository.ListPackTypes(ctx)
	if err != nil {
		return nil, errs.Internal("failed to list pack types", err)
	}
	sort.Slice(packTypes, func(i, j int) bool {
		return packTypes[i].PackTypeName < packTypes[j].PackTypeName
	})
	return packTypes, nil
}

// removeObject is best effort; the row is already gone.
func (s *service) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("Failed to delete stored object",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

// wrapWrite keeps conflicts and not-found results visible to the caller.
func wrapWrite(msg string, err error) error {
	switch errs.KindOf(err) {
	case errs.KindConflict, errs.KindNotFound:
		return err
	}
	return errs.Internal(msg, err)
}

// wrapDelete reports a delete that lost a race with a new reference, and was
// stopped by a foreign key, with the same message as the up-front check.
func wrapDelete(referencedMsg, msg string, err error) error {
	if errs.KindOf(err) == errs.KindConflict {
		return errs.Conflict(referencedMsg)
	}
	return wrapWrite(msg, err)
}

func extension(u *Upload) string {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if ext != "" {
		return ext
	}
	switch u.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
