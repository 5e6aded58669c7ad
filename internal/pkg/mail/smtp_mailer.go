package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP.
func SendMail(to string, subject string, body string) error {
	return send(to, subject, buildSimpleMessage(to, subject, body))
}

// SendMailWithAttachment sends an HTML email with a single PDF attachment,
// used for donation receipts and annual statements.
func SendMailWithAttachment(to, subject, body string, attachment []byte, filename string) error {
	if len(attachment) == 0 {
		return SendMail(to, subject, body)
	}
	msg, err := buildMultipartMessage(to, subject, body, attachment, filename)
	if err != nil {
		return err
	}
	return send(to, subject, msg)
}

func send(to, subject string, msg []byte) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	err := smtp.SendMail(addr, auth, sender(), []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email %q sent to %s via %s", subject, to, addr)
	}
	return err
}

func sender() string {
	s := env.GetEnv("SMTP_SENDER", "")
	if s == "" {
		s = "no-reply@sparkcreatives.org"
		log.Printf("SMTP_SENDER not set, using default sender: %s", s)
	}
	return s
}

func buildSimpleMessage(to, subject, body string) []byte {
	return []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender(), to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)
}

func buildMultipartMessage(to, subject, body string, attachment []byte, filename string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender(), to, subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	pdfPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	// RFC 2045 line length limit.
	for len(encoded) > 0 {
		n := 76
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := pdfPart.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return nil, err
		}
		encoded = encoded[n:]
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return append([]byte(header), buf.Bytes()...), nil
}
