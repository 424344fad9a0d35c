package resume

import (
	"strings"
	"time"

	"usdh/internal/domain/apperr"
)

// Template names.
const (
	TemplateProfessional = "professional"
	TemplateModern       = "modern"
	TemplateCreative     = "creative"
)

// Templates lists the selectable templates in display order.
var Templates = []string{TemplateProfessional, TemplateModern, TemplateCreative}

// HistoryLimit is how many past downloads are shown.
const HistoryLimit = 5

// Domain errors
var (
	ErrEmptyName  = apperr.Validation("full name is required")
	ErrEmptyEmail = apperr.Validation("email is required")
	ErrNotFound   = apperr.NotFound("resume not found")
)

// PersonalInfo is the header block of a resume.
type PersonalInfo struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Summary  string
}

// Education is one education entry.
type Education struct {
	Institution string
	Degree      string
	StartDate   string
	EndDate     string
}

// Experience is one work experience entry.
type Experience struct {
	Company     string
	Position    string
	StartDate   string
	EndDate     string
	Description string
}

// Certification is one certification line.
type Certification struct {
	Name         string
	Organization string
	Date         string
}

// Data is the assembled record substituted into a template.
type Data struct {
	Personal       PersonalInfo
	Education      []Education
	Experience     []Experience
	Skills         []string
	Certifications []Certification
	GeneratedAt    time.Time
}

// Validate checks the minimum fields a resume needs.
// PRE: Data struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Data) Validate() error {
	if strings.TrimSpace(d.Personal.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(d.Personal.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

// Compact drops education, experience and certification entries that are entirely blank.
func (d *Data) Compact() {
	edu := d.Education[:0]
	for _, e := range d.Education {
		if strings.TrimSpace(e.Institution+e.Degree+e.StartDate+e.EndDate) != "" {
			edu = append(edu, e)
		}
	}
	d.Education = edu

	exp := d.Experience[:0]
	for _, e := range d.Experience {
		if strings.TrimSpace(e.Company+e.Position+e.StartDate+e.EndDate+e.Description) != "" {
			exp = append(exp, e)
		}
	}
	d.Experience = exp

	certs := d.Certifications[:0]
	for _, c := range d.Certifications {
		if strings.TrimSpace(c.Name) != "" {
			certs = append(certs, c)
		}
	}
	d.Certifications = certs
}

// ParseSkills splits a comma separated skill list.
func ParseSkills(s string) []string {
	var out []string
	for _, sk := range strings.Split(s, ",") {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}

// NormalizeTemplate maps unknown template names to the professional template.
func NormalizeTemplate(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Templates {
		if t == name {
			return t
		}
	}
	return TemplateProfessional
}

// Download is a generated resume PDF recorded in the download history.
type Download struct {
	ID        int64
	UserID    int64
	Template  string
	FileName  string
	CreatedAt time.Time
}

// Key returns the blob key of the PDF.
func (d *Download) Key() string {
	return "resumes/" + itoa(d.UserID) + "/" + d.FileName
}
