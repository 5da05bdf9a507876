// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// # File

// FileURL is one location a file has been seen at.
type FileURL struct {
	URL string `json:"url"`
	Rel string `json:"rel"`
}

// File is a concrete digital artifact (usually a PDF) identified by its
// content hashes. A file may embody zero or more releases.
type File struct {
	Meta

	Size     *int64  `json:"size,omitempty"`
	MD5      *string `json:"md5,omitempty"`
	SHA1     *string `json:"sha1,omitempty"`
	SHA256   *string `json:"sha256,omitempty"`
	Mimetype *string `json:"mimetype,omitempty"`

	URLs []FileURL `json:"urls,omitempty"`

	// ReleaseIDs are the idents of releases this file embodies.
	ReleaseIDs []string `json:"release_ids,omitempty"`

	// Releases is populated by expansion (releases flag) from ReleaseIDs.
	Releases []*Release `json:"releases,omitempty"`
}

func (f *File) EntityKind() Kind { return KindFile }
func (f *File) Common() *Meta    { return &f.Meta }

// Validate checks the content hashes and referenced release idents.
func (f *File) Validate() error {
	if f.MD5 != nil {
		if err := CheckMD5(*f.MD5); err != nil {
			return err
		}
	}
	if f.SHA1 != nil {
		if err := CheckSHA1(*f.SHA1); err != nil {
			return err
		}
	}
	if f.SHA256 != nil {
		if err := CheckSHA256(*f.SHA256); err != nil {
			return err
		}
	}
	return checkIdentList(f.ReleaseIDs)
}

// ApplyHide is a no-op: files carry no hideable fields.
func (f *File) ApplyHide(hide HideFlags) {}

// # Fileset

// FilesetFile is one member of a fileset manifest.
type FilesetFile struct {
	PathName  string         `json:"path"`
	SizeBytes int64          `json:"size"`
	MD5       *string        `json:"md5,omitempty"`
	SHA1      *string        `json:"sha1,omitempty"`
	SHA256    *string        `json:"sha256,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// FilesetURL is one base location the manifest contents are served from.
type FilesetURL struct {
	URL string `json:"url"`
	Rel string `json:"rel"`
}

// Fileset is a bundle of related files (e.g. a dataset with many members)
// treated as one catalog entity.
type Fileset struct {
	Meta

	// Manifest lists the member files. Hidden by the manifest hide flag.
	Manifest []FilesetFile `json:"manifest,omitempty"`

	URLs []FilesetURL `json:"urls,omitempty"`

	// ReleaseIDs are the idents of releases this fileset embodies.
	ReleaseIDs []string `json:"release_ids,omitempty"`

	// Releases is populated by expansion (releases flag) from ReleaseIDs.
	Releases []*Release `json:"releases,omitempty"`
}

func (f *Fileset) EntityKind() Kind { return KindFileset }
func (f *Fileset) Common() *Meta    { return &f.Meta }

// Validate checks every manifest member's hashes and the referenced
// release idents.
func (f *Fileset) Validate() error {
	for _, member := range f.Manifest {
		if member.MD5 != nil {
			if err := CheckMD5(*member.MD5); err != nil {
				return err
			}
		}
		if member.SHA1 != nil {
			if err := CheckSHA1(*member.SHA1); err != nil {
				return err
			}
		}
		if member.SHA256 != nil {
			if err := CheckSHA256(*member.SHA256); err != nil {
				return err
			}
		}
	}
	return checkIdentList(f.ReleaseIDs)
}

// ApplyHide clears the manifest when requested.
func (f *Fileset) ApplyHide(hide HideFlags) {
	if hide.Manifest {
		f.Manifest = nil
	}
}

// # Webcapture

// WebcaptureCDX is one crawled resource within a capture, in CDX terms.
type WebcaptureCDX struct {
	Surt       string  `json:"surt"`
	Timestamp  string  `json:"timestamp"`
	URL        string  `json:"url"`
	Mimetype   *string `json:"mimetype,omitempty"`
	StatusCode *int64  `json:"status_code,omitempty"`
	SizeBytes  *int64  `json:"size,omitempty"`
	SHA1       string  `json:"sha1"`
	SHA256     *string `json:"sha256,omitempty"`
}

// WebcaptureURL is one archival endpoint serving the capture.
type WebcaptureURL struct {
	URL string `json:"url"`
	Rel string `json:"rel"`
}

// Webcapture is an archived snapshot of a web resource (e.g. a blog post
// crawled at a point in time) treated as one catalog entity.
type Webcapture struct {
	Meta

	OriginalURL string `json:"original_url"`
	Timestamp   string `json:"timestamp"`

	// CDX lists the crawled resources. Hidden by the cdx hide flag.
	CDX []WebcaptureCDX `json:"cdx,omitempty"`

	URLs []WebcaptureURL `json:"archive_urls,omitempty"`

	// ReleaseIDs are the idents of releases this capture embodies.
	ReleaseIDs []string `json:"release_ids,omitempty"`

	// Releases is populated by expansion (releases flag) from ReleaseIDs.
	Releases []*Release `json:"releases,omitempty"`
}

func (w *Webcapture) EntityKind() Kind { return KindWebcapture }
func (w *Webcapture) Common() *Meta    { return &w.Meta }

// Validate checks every CDX line's hashes and the referenced release idents.
func (w *Webcapture) Validate() error {
	for _, line := range w.CDX {
		if err := CheckSHA1(line.SHA1); err != nil {
			return err
		}
		if line.SHA256 != nil {
			if err := CheckSHA256(*line.SHA256); err != nil {
				return err
			}
		}
	}
	return checkIdentList(w.ReleaseIDs)
}

// ApplyHide clears the CDX lines when requested.
func (w *Webcapture) ApplyHide(hide HideFlags) {
	if hide.CDX {
		w.CDX = nil
	}
}
