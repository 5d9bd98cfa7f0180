// internal/models/favorites.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// FavoritesList is an insertion-ordered set of product ids.
type FavoritesList struct {
	ProductIDs []string `json:"favorites"`
}

func (f *FavoritesList) Add(productID string) {
	if f.Contains(productID) {
		return
	}
	f.ProductIDs = append(f.ProductIDs, productID)
}

func (f *FavoritesList) Remove(productID string) {
	kept := f.ProductIDs[:0]
	for _, id := range f.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	f.ProductIDs = kept
}

// Toggle flips membership and reports whether the product is now a favorite.
func (f *FavoritesList) Toggle(productID string) bool {
	if f.Contains(productID) {
		f.Remove(productID)
		return false
	}
	f.ProductIDs = append(f.ProductIDs, productID)
	return true
}

func (f FavoritesList) Contains(productID string) bool {
	for _, id := range f.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (f *FavoritesList) Clear() {
	f.ProductIDs = nil
}

// FavoriteListRecord stores a whole favorites list in one row.
type FavoriteListRecord struct {
	SessionID  string         `gorm:"primaryKey;size:64"`
	ProductIDs pq.StringArray `gorm:"type:text[]"`
	UpdatedAt  time.Time
}

func (FavoriteListRecord) TableName() string {
	return "favorite_lists"
}
