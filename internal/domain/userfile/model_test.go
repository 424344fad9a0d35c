package userfile

import "testing"

func TestFile_Key(t *testing.T) {
	tests := []struct {
		name string
		file File
		want string
	}{
		{"document", File{UserID: 7, Kind: KindDocument, FileName: "a.pdf"}, "documents/7/a.pdf"},
		{"study material", File{UserID: 7, Kind: KindStudyMaterial, FileName: "n.txt"}, "study_materials/7/n.txt"},
		{"folder", File{UserID: 7, Kind: KindFolder, Folder: "Physics", FileName: "x.png"}, "folders/7/Physics/x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr error
	}{
		{"valid document", File{Kind: KindDocument, Name: "CV"}, nil},
		{"unknown kind", File{Kind: "photo", Name: "CV"}, ErrInvalidKind},
		{"missing name", File{Kind: KindDocument}, ErrEmptyName},
		{"folder without name", File{Kind: KindFolder, Name: "notes"}, ErrEmptyFolder},
		{"folder traversal", File{Kind: KindFolder, Name: "notes", Folder: "../etc"}, ErrInvalidFolder},
		{"folder ok", File{Kind: KindFolder, Name: "notes", Folder: "Term 1"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.file.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\cv.docx`: "cv.docx",
		"my notes (1).txt":    "my_notes_1.txt",
		".hidden":             "hidden",
		"???":                 "file",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
