package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReceiptData is everything the dispatch receipt shows.
type ReceiptData struct {
	Name           string
	Email          string
	Product        string
	Price          float64
	Quantity       float64
	TrackingNumber string
}

// Total is price × quantity at two decimals.
func (d ReceiptData) Total() string {
	return strconv.FormatFloat(d.Price*d.Quantity, 'f', 2, 64)
}

type ReceiptSender interface {
	SendReceipt(data ReceiptData) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) ReceiptSender {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendReceipt(data ReceiptData) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", data.Email)
	m.SetHeader("Subject", fmt.Sprintf("Receipt for %s", data.Product))
	m.SetBody("text/plain", receiptBody(data))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	return nil
}

func receiptBody(d ReceiptData) string {
	return fmt.Sprintf(`Hello %s,

Thank you for your order! Your order is dispatched and will be delivered soon.
Here are the details of your order:

Product: %s
Price: Rs.%s
Quantity: %s
Total Amount: Rs.%s
Tracking#: %s

Regards,
Your Company
`,
		d.Name,
		d.Product,
		strconv.FormatFloat(d.Price, 'f', -1, 64),
		strconv.FormatFloat(d.Quantity, 'f', -1, 64),
		d.Total(),
		d.TrackingNumber,
	)
}
