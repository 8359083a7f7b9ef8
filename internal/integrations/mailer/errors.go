package mailer

import "errors"

var (
	ErrRender = errors.New("mailer: failed to render template")
	ErrSend   = errors.New("mailer: failed to send email")
)
