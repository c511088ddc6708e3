package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	appinventory "github.com/stockbook/backend/internal/application/inventory"
	"github.com/stockbook/backend/internal/infrastructure/config"
)

// EmailNotifier delivers low-stock alerts over SMTP. It implements the
// application layer's Notifier contract; delivery failures are returned and
// the caller decides how loudly to log them.
type EmailNotifier struct {
	cfg  config.AlertConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates an SMTP-backed notifier
func NewEmailNotifier(cfg config.AlertConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, send: smtp.SendMail}
}

// SendLowStockAlert sends one alert email for the product
func (n *EmailNotifier) SendLowStockAlert(_ context.Context, alert appinventory.LowStockAlert) error {
	if !n.cfg.Enabled() {
		return nil
	}

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPHost)
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", alert.ProductName, alert.ProductCode)
	body := fmt.Sprintf(
		"Product %s (%s) has fallen below its minimum stock level.\r\n\r\n"+
			"Current quantity: %s\r\nMinimum stock:    %s\r\n",
		alert.ProductName, alert.ProductCode, alert.Quantity.String(), alert.MinStock.String())

	var msg strings.Builder
	msg.WriteString("From: " + n.cfg.From + "\r\n")
	msg.WriteString("To: " + n.cfg.To + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := n.send(n.cfg.Addr(), auth, n.cfg.From, []string{n.cfg.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send low stock alert: %w", err)
	}
	return nil
}

var _ appinventory.Notifier = (*EmailNotifier)(nil)
