package mail

import (
	"bytes"
	"html/template"
)

const verifyEmailTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">Confirm your email</h2>
  <p>Welcome to NeuroBrief! Enter this code to verify your email address:</p>
  <p style="font-size:28px;letter-spacing:6px;font-weight:700;text-align:center;margin:24px 0">{{.Code}}</p>
  <p style="color:#999;font-size:12px">The code expires in one hour. If you did not sign up, you can ignore this email.</p>
</div>
</body>
</html>`

const passwordResetTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">Reset your password</h2>
  <p>We received a request to reset the password for your NeuroBrief account.</p>
  <p style="margin-top:24px">
    <a href="{{.ResetURL}}" style="background:#4f46e5;color:#fff;padding:8px 16px;text-decoration:none;border-radius:4px">Reset password</a>
  </p>
  <p style="color:#999;font-size:12px">The link expires in one hour. If you did not request this, you can ignore this email.</p>
</div>
</body>
</html>`

var (
	verifyTemplate = template.Must(template.New("verify").Parse(verifyEmailTpl))
	resetTemplate  = template.Must(template.New("reset").Parse(passwordResetTpl))
)

// VerificationMessage builds the email carrying the 6-digit signup code.
func VerificationMessage(to, code string) Message {
	var buf bytes.Buffer
	_ = verifyTemplate.Execute(&buf, struct{ Code string }{Code: code})
	return Message{
		To:      []string{to},
		Subject: "Your NeuroBrief verification code",
		HTML:    buf.String(),
	}
}

// PasswordResetMessage builds the email carrying the reset link.
func PasswordResetMessage(to, resetURL string) Message {
	var buf bytes.Buffer
	_ = resetTemplate.Execute(&buf, struct{ ResetURL string }{ResetURL: resetURL})
	return Message{
		To:      []string{to},
		Subject: "Reset your NeuroBrief password",
		HTML:    buf.String(),
	}
}
