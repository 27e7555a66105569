package dto

import (
	"kingtech-store/internal/model"
	"time"
)

// FileUpload is a binary payload lifted out of a multipart form.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProductInput is the admin form payload for Create and Update. File and Image
// are required on create, optional on update.
type ProductInput struct {
	Name         string `validate:"required"`
	Description  string `validate:"required"`
	Category     string `validate:"required"`
	PriceInCents int64  `validate:"min=1"`
	File         *FileUpload
	Image        *FileUpload
}

type ProductResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	Category               string    `json:"category"`
	PriceInCents           int64     `json:"price_in_cents"`
	ImagePath              string    `json:"image_path"`
	IsAvailableForPurchase bool      `json:"is_available_for_purchase"`
	CreatedAt              time.Time `json:"created_at"`
}

func NewProductResponse(p *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		Category:               p.Category,
		PriceInCents:           p.PriceInCents,
		ImagePath:              p.ImagePath,
		IsAvailableForPurchase: p.IsAvailableForPurchase,
		CreatedAt:              p.CreatedAt,
	}
}

type ToggleAvailabilityRequest struct {
	IsAvailableForPurchase bool `json:"is_available_for_purchase"`
}

type EmailOrderHistoryRequest struct {
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DashboardResponse struct {
	Sales    DashboardSales    `json:"sales"`
	Users    DashboardUsers    `json:"users"`
	Products DashboardProducts `json:"products"`
}

type DashboardSales struct {
	Amount        string `json:"amount"`
	NumberOfSales string `json:"number_of_sales"`
}

type DashboardUsers struct {
	UserCount           string `json:"user_count"`
	AverageValuePerUser string `json:"average_value_per_user"`
}

type DashboardProducts struct {
	ActiveCount   string `json:"active_count"`
	InactiveCount string `json:"inactive_count"`
}
