package notification

import (
	"context"
)

const (
	JobSendMail = "mail.send"
	JobSendPush = "push.send"

	TemplateWelcome        = "welcome"
	TemplateForgotPassword = "forgotpassword"

	SubjectWelcome       = "Welcome to Tenure"
	SubjectResetPassword = "Reset Password"
)

type Mail struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

type PushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushJob é o payload enfileirado; os tokens são resolvidos no worker.
type PushJob struct {
	UserIDs []string          `json:"userIds"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type Pusher interface {
	Push(ctx context.Context, messages []PushMessage) error
}

func WelcomeMail(to, invitee, name, password string) Mail {
	return Mail{
		To:       to,
		Subject:  SubjectWelcome,
		Template: TemplateWelcome,
		Data: map[string]string{
			"invitee":  invitee,
			"name":     name,
			"email":    to,
			"password": password,
		},
	}
}

func ResetPasswordMail(to, userID, token, link string) Mail {
	return Mail{
		To:       to,
		Subject:  SubjectResetPassword,
		Template: TemplateForgotPassword,
		Data: map[string]string{
			"userID":             userID,
			"resetPasswordToken": token,
			"link":               link,
		},
	}
}
