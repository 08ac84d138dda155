package models

import (
	cardmodels "github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

// Request bodies accept JSON or form encoding.

type OpenCardRequest struct {
	InstanceID string `json:"instanceId" form:"instanceId" validate:"required"`
}

type AdminOpenCardRequest struct {
	InstanceID string `json:"instanceId" form:"instanceId" validate:"required"`
	DesignID   string `json:"designId" form:"designId"`
	PackID     string `json:"packId" form:"packId"`
}

type UsernameRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=25"`
}

type PackTypeIDRequest struct {
	PackTypeID string `json:"packTypeId" form:"packTypeId" validate:"required"`
}

type IssuePackRequest struct {
	Username   string `json:"username" form:"username" validate:"omitempty,max=25"`
	PackTypeID string `json:"packTypeId" form:"packTypeId" validate:"required"`
}

type SeasonRequest struct {
	SeasonID          string `json:"seasonId" form:"seasonId" validate:"required"`
	SeasonName        string `json:"seasonName" form:"seasonName"`
	SeasonDescription string `json:"seasonDescription" form:"seasonDescription" validate:"max=1000"`
}

type SeasonIDRequest struct {
	SeasonID string `json:"seasonId" form:"seasonId" validate:"required"`
}

// DesignCreateRequest carries the text fields of the multipart upload.
type DesignCreateRequest struct {
	CardName        string `form:"cardName" validate:"required,max=100"`
	CardDescription string `form:"cardDescription" validate:"max=1000"`
	SeasonID        string `form:"seasonId" validate:"required"`
	Artist          string `form:"artist" validate:"max=100"`
}

type DesignUpdateRequest struct {
	DesignID        string `json:"designId" form:"designId" validate:"required"`
	CardDescription string `json:"cardDescription" form:"cardDescription" validate:"max=1000"`
}

type DesignIDRequest struct {
	DesignID string `json:"designId" form:"designId" validate:"required"`
}

type RarityCreateRequest struct {
	RarityID     string `form:"rarityId"`
	RarityName   string `form:"rarityName" validate:"required,max=50"`
	DefaultCount int    `form:"defaultCount" validate:"required,min=1"`
}

type RarityIDRequest struct {
	RarityID string `json:"rarityId" form:"rarityId" validate:"required"`
}

type PackTypeRequest struct {
	PackTypeName        string                `json:"packTypeName" validate:"required,max=100"`
	PackTypeDescription string                `json:"packTypeDescription" validate:"max=1000"`
	SeasonID            string                `json:"seasonId"`
	Composition         []cardmodels.PackSlot `json:"composition" validate:"required,min=1,dive"`
}

type TradeRequest struct {
	ReceiverUsername string   `json:"receiverUsername" validate:"required"`
	Offered          []string `json:"offered" validate:"dive,required"`
	Requested        []string `json:"requested" validate:"dive,required"`
	Message          string   `json:"message" validate:"max=280"`
}

// ProfileRequest leaves a field untouched when it is absent.
type ProfileRequest struct {
	LookingFor   *string `json:"lookingFor" validate:"omitempty,max=500"`
	PinnedCardID *string `json:"pinnedCardId"`
}
