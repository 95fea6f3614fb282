package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Brand struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Image           string             `json:"image,omitempty" bson:"image,omitempty"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	EstablishedYear int                `json:"establishedYear,omitempty" bson:"establishedYear,omitempty"`
	Headquarters    string             `json:"headquarters,omitempty" bson:"headquarters,omitempty"`
	Website         string             `json:"website,omitempty" bson:"website,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateBrandPayload struct {
	Name            string `json:"name" binding:"required,max=120"`
	Image           string `json:"image" binding:"max=2048"`
	Description     string `json:"description"`
	EstablishedYear int    `json:"establishedYear" binding:"omitempty,gte=1800,lte=2100"`
	Headquarters    string `json:"headquarters"`
	Website         string `json:"website" binding:"max=2048"`
}

// UpdateBrandPayload carries a partial update: empty fields keep the stored value.
type UpdateBrandPayload struct {
	Name            string `json:"name" binding:"max=120"`
	Image           string `json:"image" binding:"max=2048"`
	Description     string `json:"description"`
	EstablishedYear int    `json:"establishedYear" binding:"omitempty,gte=1800,lte=2100"`
	Headquarters    string `json:"headquarters"`
	Website         string `json:"website" binding:"max=2048"`
}
