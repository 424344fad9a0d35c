package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"usdh/internal/application/orchestrators"
	"usdh/internal/application/projections"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/userfile"
)

// multipartOverhead leaves room for the other form fields next to the file.
const multipartOverhead = 1 << 20

func uploadDeps() orchestrators.UploadDeps {
	return orchestrators.UploadDeps{
		Blobs:   services.Blobs,
		Scanner: services.Scanner,
		Now:     timeNow,
		NewID:   generateID,
	}
}

func fileDeps() orchestrators.FileDeps {
	return orchestrators.FileDeps{FileStore: stores.Files, UploadDeps: uploadDeps()}
}

func certificateDeps() orchestrators.CertificateDeps {
	return orchestrators.CertificateDeps{CertificateStore: stores.Certificates, UploadDeps: uploadDeps()}
}

// parseUpload parses a multipart form and reads the optional "file" part.
// A missing part yields an empty Upload.
func parseUpload(w http.ResponseWriter, r *http.Request) (orchestrators.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, userfile.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return orchestrators.Upload{}, userfile.ErrFileTooLarge
		}
		return orchestrators.Upload{}, errBadForm
	}
	f, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return orchestrators.Upload{}, nil
	}
	if err != nil {
		return orchestrators.Upload{}, errBadForm
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, userfile.MaxFileSize+1))
	if err != nil {
		return orchestrators.Upload{}, apperr.Storage("read upload", err)
	}
	return orchestrators.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// handleMySpace renders GET /my-space?folder=
func handleMySpace(w http.ResponseWriter, r *http.Request) {
	renderMySpace(w, r, r.URL.Query().Get("folder"), nil)
}

func renderMySpace(w http.ResponseWriter, r *http.Request, folder string, status *Status) {
	sess := currentSession(r)
	res, err := projections.QueryMySpace(r.Context(), projections.MySpaceQuery{
		UserID: sess.UserID,
		Folder: strings.TrimSpace(folder),
	}, projections.MySpaceDeps{Files: stores.Files, Certificates: stores.Certificates})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "my_space.html", map[string]any{
		"Space":  res,
		"MaxMB":  userfile.MaxFileSize >> 20,
		"Status": status,
	})
}

// handleUploadFile handles POST /my-space/files
func handleUploadFile(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	upload, err := parseUpload(w, r)
	if err != nil {
		renderMySpace(w, r, "", failure(err))
		return
	}
	input := orchestrators.UploadFileInput{
		UserID:      sess.UserID,
		Kind:        r.FormValue("kind"),
		Folder:      r.FormValue("folder"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Upload:      upload,
	}
	f, err := orchestrators.ExecuteUploadFile(r.Context(), input, fileDeps())
	if err != nil {
		renderMySpace(w, r, "", failure(err))
		return
	}
	renderMySpace(w, r, f.Folder, success("Uploaded "+f.Name+"."))
}

// handleDownloadFile handles GET /my-space/files/{id}
func handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, data, err := orchestrators.ExecuteDownloadFile(r.Context(), sess.UserID, id, fileDeps())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	serveAttachment(w, originalName(f.FileName), data)
}

// handleDeleteFile handles POST /my-space/files/{id}/delete
func handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err == nil {
		err = orchestrators.ExecuteDeleteFile(r.Context(), sess.UserID, id, fileDeps())
	}
	if err != nil {
		renderMySpace(w, r, r.FormValue("folder"), failure(err))
		return
	}
	renderMySpace(w, r, r.FormValue("folder"), success("File deleted."))
}

// handleAddCertificate handles POST /my-space/certificates
func handleAddCertificate(w http.ResponseWriter, r *http.Request) {
	status := addCertificate(w, r)
	renderMySpace(w, r, "", status)
}

// addCertificate runs the certificate upload shared by My Space and the resume builder.
func addCertificate(w http.ResponseWriter, r *http.Request) *Status {
	sess := currentSession(r)
	upload, err := parseUpload(w, r)
	if err != nil {
		return failure(err)
	}
	c, err := orchestrators.ExecuteAddCertificate(r.Context(), orchestrators.AddCertificateInput{
		UserID:       sess.UserID,
		Name:         r.FormValue("name"),
		Organization: r.FormValue("organization"),
		IssueDate:    r.FormValue("issue_date"),
		Upload:       upload,
	}, certificateDeps())
	if err != nil {
		return failure(err)
	}
	return success("Certificate " + c.Name + " saved.")
}

// handleDownloadCertificate handles GET /my-space/certificates/{id}
func handleDownloadCertificate(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c, data, err := orchestrators.ExecuteDownloadCertificate(r.Context(), sess.UserID, id, certificateDeps())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	serveAttachment(w, originalName(c.FileName), data)
}

// handleDeleteCertificate handles POST /my-space/certificates/{id}/delete
func handleDeleteCertificate(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err == nil {
		err = orchestrators.ExecuteDeleteCertificate(r.Context(), sess.UserID, id, certificateDeps())
	}
	if err != nil {
		renderMySpace(w, r, "", failure(err))
		return
	}
	renderMySpace(w, r, "", success("Certificate deleted."))
}
