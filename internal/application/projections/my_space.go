package projections

import (
	"context"

	domainCertificate "usdh/internal/domain/certificate"
	domainUserFile "usdh/internal/domain/userfile"
)

// MySpaceQuery carries query parameters.
type MySpaceQuery struct {
	UserID int64
	Folder string // optional: the folder whose files are listed
}

// MySpaceResult carries the query result.
type MySpaceResult struct {
	Documents      []domainUserFile.File
	StudyMaterials []domainUserFile.File
	Folders        []string
	Folder         string
	FolderFiles    []domainUserFile.File
	Certificates   []domainCertificate.Certificate
}

// MySpaceDeps holds dependencies for MySpace.
type MySpaceDeps struct {
	Files        FileStore
	Certificates CertificateStore
}

// QueryMySpace lists everything the user has uploaded.
// PRE: UserID identifies the session user
// POST: Only rows owned by UserID are returned; FolderFiles is empty unless Folder is set
func QueryMySpace(ctx context.Context, query MySpaceQuery, deps MySpaceDeps) (MySpaceResult, error) {
	var result MySpaceResult
	var err error

	if result.Documents, err = deps.Files.ListByOwner(ctx, query.UserID, domainUserFile.KindDocument); err != nil {
		return MySpaceResult{}, err
	}
	if result.StudyMaterials, err = deps.Files.ListByOwner(ctx, query.UserID, domainUserFile.KindStudyMaterial); err != nil {
		return MySpaceResult{}, err
	}
	if result.Folders, err = deps.Files.Folders(ctx, query.UserID); err != nil {
		return MySpaceResult{}, err
	}

	if query.Folder != "" {
		result.Folder = query.Folder
		all, err := deps.Files.ListByOwner(ctx, query.UserID, domainUserFile.KindFolder)
		if err != nil {
			return MySpaceResult{}, err
		}
		for _, f := range all {
			if f.Folder == query.Folder {
				result.FolderFiles = append(result.FolderFiles, f)
			}
		}
	}

	if result.Certificates, err = deps.Certificates.ListByOwner(ctx, query.UserID); err != nil {
		return MySpaceResult{}, err
	}
	return result, nil
}
