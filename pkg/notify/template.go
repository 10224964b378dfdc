package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

const (
	brandColor  = "#2E86C1"
	accentColor = "#1ABC9C"
)

var emailTemplate = template.Must(template.New("email").Parse(`<html>
<head>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; background-color: #f8f9fa; color: #333; margin: 0; padding: 0; }
.container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 10px; overflow: hidden; box-shadow: 0 3px 10px rgba(0,0,0,0.1); }
.header { background-color: {{.BrandColor}}; color: #ffffff; padding: 20px; text-align: center; }
.content { padding: 25px; line-height: 1.6; }
.footer { background-color: #f1f1f1; text-align: center; padding: 10px; font-size: 12px; color: #666; }
.button { display: inline-block; background-color: {{.AccentColor}}; color: white; padding: 10px 20px; border-radius: 5px; text-decoration: none; margin-top: 10px; }
</style>
</head>
<body>
<div class='container'>
<div class='header'><h2>{{.Title}}</h2></div>
<div class='content'>{{.Body}}</div>
<div class='footer'>
<p>&copy; {{.Year}} Elite Rentals. All rights reserved.</p>
<p>This is an automated message, please do not reply directly.</p>
</div>
</div>
</body>
</html>`))

// WrapEmail wraps a message body in the branded HTML email layout.
// The body is trusted application-generated HTML, not user input.
func WrapEmail(title, body string) string {
	var out strings.Builder
	err := emailTemplate.Execute(&out, struct {
		Title       string
		Body        template.HTML
		BrandColor  template.CSS
		AccentColor template.CSS
		Year        int
	}{
		Title:       title,
		Body:        template.HTML(body),
		BrandColor:  template.CSS(brandColor),
		AccentColor: template.CSS(accentColor),
		Year:        time.Now().UTC().Year(),
	})
	if err != nil {
		// Template is static; execution can only fail on a writer error,
		// which strings.Builder never returns.
		return fmt.Sprintf("<html><body><h2>%s</h2>%s</body></html>", title, body)
	}
	return out.String()
}
