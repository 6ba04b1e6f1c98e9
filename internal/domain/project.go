package domain

import "time"

// PlaceholderImage is returned as a project's display image when no file was uploaded.
const PlaceholderImage = "/placeholder-project.jpg"

// Project categories. Uploads outside this set are rejected.
const (
	CategoryResidential    = "Residential"
	CategoryCommercial     = "Commercial"
	CategoryInfrastructure = "Infrastructure"
	CategoryIndustrial     = "Industrial"
)

// ValidCategory reports whether c is one of the fixed project categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryInfrastructure, CategoryIndustrial:
		return true
	}
	return false
}

// ProjectFile describes one uploaded file attached to a project submission.
// The object itself lives in the storage bucket under Path.
type ProjectFile struct {
	Name string  `json:"name"`
	Path string  `json:"path"`
	URL  *string `json:"url"`
	Type *string `json:"type"`
	Size *int64  `json:"size"`
}

// ProjectSubmissionInput carries the fields of a new project listing.
// Title, Category and Description are mandatory; the rest is free text.
type ProjectSubmissionInput struct {
	Title           string
	Category        string
	Description     string
	Location        *string
	Year            *string
	Size            *string
	Status          *string
	FullDescription *string
	Files           []ProjectFile
}

// ProjectSubmission is a stored project listing.
type ProjectSubmission struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
	Location        *string       `json:"location"`
	Year            *string       `json:"year"`
	Size            *string       `json:"size"`
	Status          *string       `json:"status"`
	FullDescription *string       `json:"fullDescription"`
	Files           []ProjectFile `json:"files"`
	SubmittedAt     time.Time     `json:"submittedAt"`
}

// Image returns the project's display image: the first file's public URL,
// or the placeholder when no file has one.
func (p *ProjectSubmission) Image() string {
	if len(p.Files) > 0 && p.Files[0].URL != nil && *p.Files[0].URL != "" {
		return *p.Files[0].URL
	}
	return PlaceholderImage
}
