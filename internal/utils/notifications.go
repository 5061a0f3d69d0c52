package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"thrifttu_back_end/internal/models"
)

// SendSoldOutEmail tells the shop owner a product just sold out so the
// listing can be restocked or archived. Skipped silently when SMTP is not
// configured; thrift inventory is one-off, selling out is the normal case.
func SendSoldOutEmail(p models.Product) error {
	host := os.Getenv("SMTP_HOST")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if host == "" || adminEmail == "" {
		return nil
	}

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			port = n
		}
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(adminEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("📦 Stok habis: %s (%s)", p.Name, p.ID))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Produk %s — %s (%s) baru saja habis dan otomatis ditandai Sold.\nHarga: %s\n",
		p.ID, p.Name, p.Brand, FormatRupiah(p.Price),
	))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending sold-out alert to", adminEmail)
	return client.DialAndSend(msg)
}
