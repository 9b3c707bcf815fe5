package emails

import (
	"fmt"
	"strings"
	"time"
)

const (
	siteName       = "Inmobiliaria"
	themePrimary   = "#1E3A5F"
	themeTextMain  = "#1F2937"
	themeTextMuted = "#6B7280"
	themeBgBody    = "#F3F4F6"
	themeWhite     = "#FFFFFF"
)

// EmailLayout wraps content in the site's HTML email frame.
func EmailLayout(contentHTML string) string {
	year := time.Now().Year()
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; font-family: -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: %s; }
    .content-body p { margin: 0 0 16px 0; font-size: 16px; line-height: 1.6; }
    .content-body h1 { font-size: 22px; margin: 0 0 20px 0; color: %s; }
    .content-body td { padding: 6px 12px 6px 0; vertical-align: top; }
    .footer-text { color: %s; font-size: 13px; }
  </style>
</head>
<body>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 32px 0;">
        <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="background-color: %s; border-radius: 8px;">
          <tr><td class="content-body" style="padding: 40px 48px 24px 48px;">%s</td></tr>
          <tr><td align="center" style="padding: 0 48px 32px 48px;"><p class="footer-text">© %d %s</p></td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		siteName, themeBgBody, themeTextMain, themePrimary, themeTextMuted, themeWhite, contentHTML, year, siteName)
}

// EscapeHTML escapes HTML specials for safe interpolation.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
