package web

import (
	"errors"
	"net/http"

	"usdh/internal/application/orchestrators"
	"usdh/internal/application/projections"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/resume"
)

// resumeRows is how many blank education, experience and certification rows the form offers.
const resumeRows = 3

func resumeDeps() orchestrators.ResumeDeps {
	return orchestrators.ResumeDeps{
		Certificates: stores.Certificates,
		Downloads:    stores.Resumes,
		Blobs:        services.Blobs,
		PDF:          services.PDF,
		PDFTimeout:   services.PDFTimeout,
		Now:          timeNow,
		NewID:        generateID,
	}
}

// blankResumeForm returns a form with empty repeatable rows.
func blankResumeForm() orchestrators.ResumeForm {
	return orchestrators.ResumeForm{
		Template:       resume.TemplateProfessional,
		Education:      make([]resume.Education, resumeRows),
		Experience:     make([]resume.Experience, resumeRows),
		Certifications: make([]resume.Certification, resumeRows),
	}
}

// parseResumeForm reads the builder form. Repeated rows are aligned by index.
func parseResumeForm(r *http.Request) (orchestrators.ResumeForm, error) {
	if err := r.ParseForm(); err != nil {
		return orchestrators.ResumeForm{}, errBadForm
	}
	at := func(key string, i int) string {
		if vs := r.Form[key]; i < len(vs) {
			return vs[i]
		}
		return ""
	}
	rows := func(keys ...string) int {
		n := 0
		for _, k := range keys {
			n = max(n, len(r.Form[k]))
		}
		return n
	}

	form := orchestrators.ResumeForm{
		Template: r.Form.Get("template"),
		Personal: resume.PersonalInfo{
			Name:     r.Form.Get("name"),
			Email:    r.Form.Get("email"),
			Phone:    r.Form.Get("phone"),
			Location: r.Form.Get("location"),
			Summary:  r.Form.Get("summary"),
		},
		Skills:         r.Form.Get("skills"),
		CertificateIDs: formIDs(r, "certificate_ids"),
	}
	for i := range rows("edu_institution", "edu_degree", "edu_start", "edu_end") {
		form.Education = append(form.Education, resume.Education{
			Institution: at("edu_institution", i),
			Degree:      at("edu_degree", i),
			StartDate:   at("edu_start", i),
			EndDate:     at("edu_end", i),
		})
	}
	for i := range rows("exp_company", "exp_position", "exp_start", "exp_end", "exp_description") {
		form.Experience = append(form.Experience, resume.Experience{
			Company:     at("exp_company", i),
			Position:    at("exp_position", i),
			StartDate:   at("exp_start", i),
			EndDate:     at("exp_end", i),
			Description: at("exp_description", i),
		})
	}
	for i := range rows("cert_name", "cert_organization", "cert_date") {
		form.Certifications = append(form.Certifications, resume.Certification{
			Name:         at("cert_name", i),
			Organization: at("cert_organization", i),
			Date:         at("cert_date", i),
		})
	}
	return form, nil
}

// renderResume renders the builder with saved certificates and download history.
func renderResume(w http.ResponseWriter, r *http.Request, form orchestrators.ResumeForm, data map[string]any) {
	sess := currentSession(r)
	res, err := projections.QueryResumeBuilder(r.Context(), projections.ResumeBuilderQuery{UserID: sess.UserID}, projections.ResumeBuilderDeps{
		Certificates: stores.Certificates,
		Resumes:      stores.Resumes,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Form"] = form
	data["Builder"] = res
	renderTemplate(w, r, "resume.html", data)
}

// handleResumePage renders GET /resume-maker
func handleResumePage(w http.ResponseWriter, r *http.Request) {
	renderResume(w, r, blankResumeForm(), nil)
}

// handleGenerateResume handles POST /resume-maker/generate.
// The preview is shown whether or not the PDF export worked.
func handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	form, err := parseResumeForm(r)
	if err != nil {
		renderResume(w, r, blankResumeForm(), map[string]any{"Status": failure(err)})
		return
	}
	res, err := orchestrators.ExecuteGenerateResume(r.Context(), sess.UserID, form, resumeDeps())
	if err != nil {
		renderResume(w, r, form, map[string]any{"Status": failure(err)})
		return
	}
	status := success("Resume generated. Your PDF is ready to download.")
	if !res.PDFAvailable {
		status = info(res.Notice)
	}
	renderResume(w, r, form, map[string]any{"Result": res, "Status": status})
}

// handleResumeCertificate handles POST /resume-maker/certificates
func handleResumeCertificate(w http.ResponseWriter, r *http.Request) {
	status := addCertificate(w, r)
	renderResume(w, r, blankResumeForm(), map[string]any{"Status": status})
}

// handleDownloadResume handles GET /download-resume/{id}
func handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	dl, data, err := orchestrators.ExecuteDownloadResume(r.Context(), sess.UserID, id, resumeDeps())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	serveAttachment(w, "resume-"+dl.Template+".pdf", data)
}
