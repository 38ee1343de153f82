package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type POI struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Category     string         `gorm:"type:varchar(120);index"`
	Description  string         `gorm:"type:text"`
	Latitude     *float64       `gorm:"type:double precision"`
	Longitude    *float64       `gorm:"type:double precision"`
	Rating       float64        `gorm:"default:0"`
	Amenities    datatypes.JSON `gorm:"type:jsonb"`
	OpeningHours datatypes.JSON `gorm:"type:jsonb"`
	ReviewCount  int            `gorm:"default:0"`
	LastReviewAt *time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (POI) TableName() string {
	return "pois"
}
