package specification

import "gorm.io/gorm"

// ByCategory filters POIs on their category label
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByTitleLike filters POIs on a case-insensitive title fragment
type ByTitleLike struct {
	Fragment string
}

func (s ByTitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Fragment+"%")
}

// ByMinRating filters POIs at or above a rating floor
type ByMinRating struct {
	Rating float64
}

func (s ByMinRating) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rating >= ?", s.Rating)
}
