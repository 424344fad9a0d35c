package resume

import (
	"strings"
	"testing"
)

func sampleData() Data {
	return Data{
		Personal: PersonalInfo{Name: "Asha Rao", Email: "asha@example.com", Phone: "555-0100", Summary: "Curious engineer"},
		Education: []Education{
			{Institution: "IIT Madras", Degree: "B.Tech", StartDate: "2018", EndDate: "2022"},
		},
		Experience: []Experience{
			{Company: "Acme", Position: "Intern", Description: "Built <things>"},
		},
		Skills:         ParseSkills("Go, SQL ,, HTML"),
		Certifications: []Certification{{Name: "AWS CCP", Date: "2023-01-10"}},
	}
}

func TestRender_AllTemplates(t *testing.T) {
	for _, name := range Templates {
		t.Run(name, func(t *testing.T) {
			out, err := Render(name, sampleData())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range []string{"Asha Rao", "IIT Madras", "AWS CCP", "<li>SQL</li>", `class="` + name + `-template"`} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
		})
	}
}

func TestRender_EscapesUserInput(t *testing.T) {
	out, err := Render(TemplateModern, sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "<things>") {
		t.Error("user text was not escaped")
	}
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	out, err := Render("retro", sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `class="professional-template"`) {
		t.Error("expected professional template for unknown name")
	}
}

func TestData_ValidateAndCompact(t *testing.T) {
	d := Data{Personal: PersonalInfo{Email: "a@b.co"}}
	if err := d.Validate(); err != ErrEmptyName {
		t.Errorf("Validate() = %v, want ErrEmptyName", err)
	}
	d = sampleData()
	d.Education = append(d.Education, Education{})
	d.Certifications = append(d.Certifications, Certification{Organization: "x"})
	d.Compact()
	if len(d.Education) != 1 || len(d.Certifications) != 1 {
		t.Errorf("Compact kept blank entries: edu=%d certs=%d", len(d.Education), len(d.Certifications))
	}
	if got := ParseSkills("Go, SQL ,, HTML"); len(got) != 3 {
		t.Errorf("ParseSkills = %v", got)
	}
}
