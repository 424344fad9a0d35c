package email

import (
	"bytes"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>Welcome to the Skill Development Hub, {{.Username}}!</h2>
<p>Your {{.Role}} account is ready. Sign in to browse courses, e-resources and scholarship schemes,
build your resume and plan your study schedule.</p>
</body></html>`))

// Welcome builds the signup welcome message for username at addr.
func Welcome(username, addr, role string) (Message, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct{ Username, Role string }{username, role})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{addr},
		Subject: "Welcome to the Skill Development Hub",
		HTML:    buf.String(),
	}, nil
}
