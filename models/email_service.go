package models

import (
	"fmt"
	"os"
	"strconv"

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

func (s *EmailService) SendOrderConfirmationEmail(toEmail, receiptID string, amount int64, currency string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation %s - Sparkle Jewels", receiptID))

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #faf7f2; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #b8860b; }
        .order-box { background-color: #fdf6e3; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Sparkle Jewels</div>
        </div>
        <h2 style="color: #333;">Payment Received</h2>
        <p>Thank you for your order!</p>

        <div class="order-box">
            <p><strong>Receipt:</strong> %s</p>
            <p><strong>Amount Paid:</strong> %s %s</p>
        </div>

        <p>Your jewellery is being prepared for dispatch. We'll notify you once it ships.</p>

        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, receiptID, currency, FormatAmount(amount))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// FormatAmount renders minor currency units as a decimal amount with
// thousands separators, e.g. 5000000 -> "50,000.00".
func FormatAmount(minor int64) string {
	major := minor / 100
	cents := minor % 100
	if cents < 0 {
		cents = -cents
	}

	str := strconv.FormatInt(major, 10)
	n := len(str)
	grouped := ""
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 && digit != '-' {
			grouped += ","
		}
		grouped += string(digit)
	}
	return fmt.Sprintf("%s.%02d", grouped, cents)
}
