package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"ua-shop/models"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d - UA Shop", order.ID))

	var lines strings.Builder
	for _, item := range order.ProductsOrdered {
		lines.WriteString(fmt.Sprintf("<li>%s &times; %d</li>", item.ProductName, item.Quantity))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #000;">UA Shop</h2>
        <p>Thank you for your purchase! Your order has been placed.</p>
        <p><strong>Order #%d</strong> &mdash; placed on %s</p>
        <ul>%s</ul>
        <p style="font-size: 18px;"><strong>Total: &#8369;%d</strong></p>
    </div>
</body>
</html>`, order.ID, order.PurchasedOn.Format("January 2, 2006"), lines.String(), order.TotalPrice)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
