package models

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

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

func itemsTableHTML(items []OrderLine) string {
	var b strings.Builder
	for i, item := range items {
		var parts []string
		for section, option := range item.Selections {
			parts = append(parts, fmt.Sprintf("%s: %s", section, option))
		}
		b.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border-bottom:1px solid #eee;">#%d</td><td style="padding:8px;border-bottom:1px solid #eee;">%s</td><td style="padding:8px;border-bottom:1px solid #eee;">%dx</td><td style="padding:8px;border-bottom:1px solid #eee;text-align:right;">%.2f &euro;</td></tr>`,
			i+1, strings.Join(parts, ", "), item.Quantity, item.LineTotal))
	}
	return b.String()
}

func (s *EmailService) attachPDF(m *gomail.Message, pdfBase64, filename string) {
	if pdfBase64 == "" {
		return
	}
	data, err := base64.StdEncoding.DecodeString(pdfBase64)
	if err != nil {
		return
	}
	if filename == "" {
		filename = "objednavka.pdf"
	}
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}

// SendOrderConfirmation mails the buyer a summary of their order.
func (s *EmailService) SendOrderConfirmation(toEmail, customerName, orderNumber string, items []OrderLine, total float64, pdfBase64, pdfFilename string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Potvrdenie objednávky #%s - Sladká Dielňa", orderNumber))

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #db2777; }
        .order-box { background-color: #fdf2f8; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
        table { width: 100%%; border-collapse: collapse; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Sladká Dielňa</div>
        </div>
        <h2 style="color: #333;">Ďakujeme za objednávku, %s!</h2>

        <div class="order-box">
            <p><strong>Číslo objednávky:</strong> %s</p>
            <table>%s</table>
            <p style="text-align:right;"><strong>Spolu: %.2f &euro;</strong></p>
        </div>

        <p>Vašu objednávku sme prijali a čoskoro sa vám ozveme s termínom vyzdvihnutia.</p>

        <div class="footer">
            <p>Toto je automatický email, prosím neodpovedajte naň.</p>
        </div>
    </div>
</body>
</html>
	`, customerName, orderNumber, itemsTableHTML(items), total)

	m.SetBody("text/html", body)
	s.attachPDF(m, pdfBase64, pdfFilename)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendShopNotification mails the shop inbox about a new order.
func (s *EmailService) SendShopNotification(orderNumber, customerEmail, customerName string, items []OrderLine, total float64) error {
	shopEmail := os.Getenv("SHOP_EMAIL")
	if shopEmail == "" {
		shopEmail = os.Getenv("SMTP_FROM")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", shopEmail)
	m.SetHeader("Subject", fmt.Sprintf("Nová objednávka #%s od %s", orderNumber, customerName))

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Nová objednávka #%s</h2>
    <p><strong>Zákazník:</strong> %s (%s)</p>
    <table style="width:100%%;border-collapse:collapse;">%s</table>
    <p><strong>Spolu: %.2f &euro;</strong></p>
</body>
</html>
	`, orderNumber, customerName, customerEmail, itemsTableHTML(items), total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
