// internal/services/notification_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"

	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/models"
)

// NotificationService sends transactional email. With no SMTP credentials
// configured it degrades to a no-op, which keeps checkout working in
// development and in tests.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: cfg,
	}
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<h2>Thanks for your order, {{.Name}}!</h2>
<p>Order #{{.OrderID}} has been placed and is now <strong>{{.Status}}</strong>.</p>
<table>
{{range .Items}}<tr><td>{{.ProdName}}</td><td>x{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p>Total: <strong>{{printf "%.2f" .Total}}</strong></p>
<p>Shipping to: {{.Address}}</p>
`))

var statusUpdateTmpl = template.Must(template.New("status_update").Parse(`
<h2>Order update</h2>
<p>Your order #{{.OrderID}} is now <strong>{{.Status}}</strong>.</p>
`))

func (s *NotificationService) SendOrderConfirmation(email string, orderID uint) error {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		return fmt.Errorf("failed to load order %d: %w", orderID, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("failed to load user %q: %w", email, err)
	}

	data := map[string]interface{}{
		"Name":    user.Name,
		"OrderID": order.OrderID,
		"Status":  order.OrderStatus,
		"Items":   order.Items,
		"Total":   order.TotalPrice,
		"Address": order.Address,
	}

	body, err := renderTemplate(orderConfirmationTmpl, data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order #%d confirmed", order.OrderID)
	return s.sendEmail(email, subject, body)
}

func (s *NotificationService) SendStatusUpdate(orderID uint, status models.OrderStatus) error {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return fmt.Errorf("failed to load order %d: %w", orderID, err)
	}

	data := map[string]interface{}{
		"OrderID": order.OrderID,
		"Status":  status,
	}

	body, err := renderTemplate(statusUpdateTmpl, data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order #%d is now %s", order.OrderID, status)
	return s.sendEmail(order.Email, subject, body)
}

func renderTemplate(tmpl *template.Template, data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, htmlBody string) error {
	if s.config.Email.SMTPUsername == "" {
		// Email delivery not configured.
		return nil
	}

	if to == "" {
		return errors.New("missing recipient address")
	}

	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" + htmlBody,
	)

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
