package helpers

import (
	"fmt"
	"html"
)

const PasswordResetSubject = "Reset Your Password"

func BuildPasswordResetHTML(resetLink string) string {
	link := html.EscapeString(resetLink)
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <p style="font-size:16px; color:#222;">Hi,</p>
                <p>You requested a password reset. Click the link below to reset your password:</p>
                <p>
                  <a href="%s" style="display:inline-block;padding:12px 24px;background:#2d74da;color:#fff;text-decoration:none;border-radius:5px;font-weight:bold;">
                    Reset Password
                  </a>
                </p>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">If you did not request this, please ignore this email. The link will expire in 1 hour.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, link)
}

func BuildPasswordResetText(resetLink string) string {
	return fmt.Sprintf(
		"You requested a password reset. Click the link to reset your password: %s\n\n"+
			"If you did not request this, please ignore this email. The link will expire in 1 hour.\n",
		resetLink,
	)
}
