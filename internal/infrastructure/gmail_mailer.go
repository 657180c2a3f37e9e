package infrastructure

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"strings"

	"Tenure/config"
	"Tenure/internal/domain/notification"
	"Tenure/internal/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const defaultMailFrom = "Tenure <no-reply@tenurefi.com>"

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<!DOCTYPE html>
<html><body>
<p>Hi {{.name}},</p>
<p>{{.invitee}} invited you to join Tenure.</p>
<p>Sign in with <b>{{.email}}</b> and the temporary password <b>{{.password}}</b>, then change it in your profile.</p>
</body></html>{{end}}
{{define "forgotpassword"}}<!DOCTYPE html>
<html><body>
<p>We received a request to reset your Tenure password.</p>
<p><a href="{{.link}}">Reset password</a></p>
<p>The link expires in one hour. If you did not ask for it, ignore this email.</p>
</body></html>{{end}}
`))

// GmailMailer envia emails pela API do Gmail usando o refresh token OAuth da conta remetente.
type GmailMailer struct {
	service *gmail.Service
	from    string
}

var _ notification.Mailer = (*GmailMailer)(nil)

func NewGmailMailer(ctx context.Context, cfg config.MailConfig) (*GmailMailer, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao criar cliente do Gmail")
		return nil, err
	}

	from := cfg.From
	if from == "" {
		from = defaultMailFrom
	}
	return &GmailMailer{service: svc, from: from}, nil
}

func (m *GmailMailer) Send(ctx context.Context, mail notification.Mail) error {
	raw, err := buildMessage(m.from, mail)
	if err != nil {
		return err
	}

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := m.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		logger.Error().Err(err).Str("template", mail.Template).Msg("Falha ao enviar email")
		return err
	}

	logger.Info().Str("template", mail.Template).Msg("Email enviado")
	return nil
}

func renderMail(mail notification.Mail) (string, error) {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, mail.Template, mail.Data); err != nil {
		return "", fmt.Errorf("template de email %q: %w", mail.Template, err)
	}
	return body.String(), nil
}

func buildMessage(from string, mail notification.Mail) ([]byte, error) {
	body, err := renderMail(mail)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + mail.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", mail.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String()), nil
}

// LogMailer só registra o email. Usado quando o envio está desabilitado.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, mail notification.Mail) error {
	if _, err := renderMail(mail); err != nil {
		return err
	}
	logger.Info().
		Str("template", mail.Template).
		Str("subject", mail.Subject).
		Msg("Envio de email desabilitado; mensagem descartada")
	return nil
}
