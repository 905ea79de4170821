package service

import (
	"context"
	"fmt"
	"strings"

	"garbage-billing-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client the service uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func newSendGridEmailService(client mailSender, fromEmail, fromName string) *sendGridEmailService {
	return &sendGridEmailService{client: client, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendGridEmailService) SendOutstandingDigest(ctx context.Context, to []string, digest OutstandingDigest) error {
	if len(to) == 0 {
		return nil
	}

	subject, plain, html := renderDigest(digest)

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	message.Subject = subject
	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", plain), mail.NewContent("text/html", html))

	logger.ExternalServiceCall("sendgrid", "send", "recipients", len(to))
	response, err := s.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send digest: %w", err)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

func renderDigest(d OutstandingDigest) (subject, plain, html string) {
	date := d.GeneratedAt.Format("2006-01-02")
	total := d.Total.StringFixed(2)
	subject = fmt.Sprintf("สรุปยอดค้างชำระค่าขยะ %s", date)

	var b strings.Builder
	fmt.Fprintf(&b, "ยอดค้างชำระรวม: %s บาท\n", total)
	fmt.Fprintf(&b, "จำนวนใบแจ้งหนี้ค้างชำระ: %d\n", d.InvoiceCount)
	fmt.Fprintf(&b, "จำนวนผู้ค้างชำระ: %d\n", d.Residents)
	fmt.Fprintf(&b, "ใบแจ้งหนี้ชำระไม่สำเร็จ: %d\n", d.Failed)
	plain = b.String()

	html = fmt.Sprintf(`<html>
	<body>
		<h2>%s</h2>
		<p>ยอดค้างชำระรวม: <strong>%s</strong> บาท</p>
		<p>จำนวนใบแจ้งหนี้ค้างชำระ: %d</p>
		<p>จำนวนผู้ค้างชำระ: %d</p>
		<p>ใบแจ้งหนี้ชำระไม่สำเร็จ: %d</p>
	</body>
</html>`, subject, total, d.InvoiceCount, d.Residents, d.Failed)
	return subject, plain, html
}

// logEmailService is used when no mail provider is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendOutstandingDigest(ctx context.Context, to []string, digest OutstandingDigest) error {
	logger.InfoContext(ctx, "Outstanding digest (email disabled)",
		"recipients", len(to),
		"invoices", digest.InvoiceCount,
		"residents", digest.Residents,
		"total", digest.Total.StringFixed(2),
		"failed", digest.Failed,
	)
	return nil
}
