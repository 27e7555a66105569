package model

import "time"

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	// free-text; the admin form offers suggestions but storage accepts any string
	Category     string `gorm:"size:64;index;not null"`
	PriceInCents int64  `gorm:"not null"`

	// purchasable deliverable hosted in the remote asset store
	FilePath     string  `gorm:"size:512;not null"`
	FilePublicID *string `gorm:"size:255"`

	// preview image hosted in the remote asset store
	ImagePath     string  `gorm:"size:512;not null"`
	ImagePublicID *string `gorm:"size:255"`

	IsAvailableForPurchase bool `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID               string `gorm:"primaryKey;size:64;not null"`
	PricePaidInCents int64  `gorm:"not null"`
	// FK → product.id; no cascade, an existing row blocks product deletion
	ProductID string `gorm:"size:64;index;not null"`
	// FK → user.id
	UserID    string `gorm:"size:64;index;not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

type User struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Orders []Order `gorm:"foreignKey:UserID"`
}

type DownloadVerification struct {
	ID string `gorm:"primaryKey;size:64;not null"`
	// FK → product.id; rows are removed manually when the product is deleted
	ProductID string    `gorm:"size:64;index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
