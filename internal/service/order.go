package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/money"
	"kingtech-store/internal/repository"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// neutral on purpose: the response must not reveal whether the address is known
const orderHistoryMessage = "Check your email to view your order history and download your products."

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type OrderService interface {
	EmailOrderHistory(ctx context.Context, email string) (string, error)
}

type orderServiceImpl struct {
	userRepo            repository.UserRepository
	orderRepo           repository.OrderRepository
	verificationService VerificationService
	mailer              Mailer
	baseURL             string
	validate            *validator.Validate
	log                 *logrus.Logger
}

func NewOrderService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	verificationService VerificationService,
	mailer Mailer,
	baseURL string,
	log *logrus.Logger,
) OrderService {
	return &orderServiceImpl{
		userRepo:            userRepo,
		orderRepo:           orderRepo,
		verificationService: verificationService,
		mailer:              mailer,
		baseURL:             baseURL,
		validate:            validator.New(),
		log:                 log,
	}
}

type orderHistoryItem struct {
	ProductName string
	Description string
	ImagePath   string
	PricePaid   string
	OrderedAt   string
	DownloadURL string
}

var orderHistoryTemplate = template.Must(template.New("orderHistory").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; background: #f6f6f6; padding: 24px;">
    <h1>Order History</h1>
    {{range .Items}}
    <div style="background: #fff; border-radius: 8px; padding: 16px; margin-bottom: 16px;">
      <h2 style="margin-top: 0;">{{.ProductName}}</h2>
      <p>{{.Description}}</p>
      <p>Ordered on {{.OrderedAt}} &middot; {{.PricePaid}}</p>
      <p><a href="{{.DownloadURL}}">Download</a></p>
    </div>
    {{else}}
    <p>You have no orders yet.</p>
    {{end}}
  </body>
</html>
`))

func (s *orderServiceImpl) EmailOrderHistory(ctx context.Context, email string) (string, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", &apperr.ValidationError{Fields: map[string]string{"email": "Invalid email address"}}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return orderHistoryMessage, nil
	}
	if err != nil {
		return "", fmt.Errorf("find user by email: %w", err)
	}

	orders, err := s.orderRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("find orders for user: %w", err)
	}

	items := make([]orderHistoryItem, 0, len(orders))
	for _, order := range orders {
		if order.Product == nil {
			continue
		}

		verification, err := s.verificationService.Issue(ctx, order.ProductID)
		if err != nil {
			return "", fmt.Errorf("issue download verification: %w", err)
		}

		items = append(items, orderHistoryItem{
			ProductName: order.Product.Name,
			Description: order.Product.Description,
			ImagePath:   order.Product.ImagePath,
			PricePaid:   money.FormatCents(order.PricePaidInCents),
			OrderedAt:   order.CreatedAt.Format(time.DateOnly),
			DownloadURL: fmt.Sprintf("%s/api/download/%s", s.baseURL, verification.ID),
		})
	}

	var body bytes.Buffer
	if err := orderHistoryTemplate.Execute(&body, map[string]any{"Items": items}); err != nil {
		return "", fmt.Errorf("render order history email: %w", err)
	}

	if err := s.mailer.Send(user.Email, "Order History", body.String()); err != nil {
		s.log.WithError(err).WithField("email", user.Email).Error("send order history email")
		return "", fmt.Errorf("send order history email: %w", err)
	}

	return orderHistoryMessage, nil
}
