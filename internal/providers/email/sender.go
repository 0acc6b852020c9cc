// Package email delivers outbound mail over SMTP.
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/mietwerklabs/mietwerk/internal/config"
	"go.uber.org/zap"
)

type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	cfg config.EmailConfig
	log *zap.Logger
}

func NewSender(cfg *config.Config, log *zap.Logger) Sender {
	return &smtpSender{cfg: cfg.Email, log: log.Named("email.sender")}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		s.log.Warn("dropping mail without recipient", zap.String("subject", msg.Subject))
		return nil
	}

	payload, err := buildMIME(s.cfg.From, msg)
	if err != nil {
		return err
	}

	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	s.log.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMIME(from string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", w.Boundary())

	textPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}

	for _, att := range msg.Attachments {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {att.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.FileName)},
		})
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(att.Data)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
