package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subject is the inferred academic domain of a piece of study content.
type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectBiology   Subject = "biology"
	SubjectHistory   Subject = "history"
	SubjectLanguage  Subject = "language"
	SubjectGeneral   Subject = "general"
)

// ParseSubject maps free-form classifier output onto the closed subject set.
// Anything unrecognized becomes SubjectGeneral.
func ParseSubject(s string) Subject {
	switch Subject(strings.ToLower(strings.TrimSpace(s))) {
	case SubjectMath:
		return SubjectMath
	case SubjectPhysics:
		return SubjectPhysics
	case SubjectChemistry:
		return SubjectChemistry
	case SubjectBiology:
		return SubjectBiology
	case SubjectHistory:
		return SubjectHistory
	case SubjectLanguage:
		return SubjectLanguage
	default:
		return SubjectGeneral
	}
}

// Classification is the analysis result for one card-generation request.
// It is produced once per request and immutable afterwards.
type Classification struct {
	Subject                  Subject  `json:"subject"`
	Confidence               float64  `json:"confidence"`
	VisualizationType        string   `json:"visualization_type"`
	VisualizationDescription string   `json:"visualization_description"`
	KeyElements              []string `json:"key_elements"`
}

// Concept is one term/definition pair on a card.
type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Formula is one named formula on a card.
type Formula struct {
	Name        string `json:"name"`
	Formula     string `json:"formula"`
	Description string `json:"description"`
}

// NoteData is the structured payload of one knowledge card. Every field is
// optional; an absent or empty field simply means the section is skipped.
type NoteData struct {
	Title           string    `json:"title"`
	Concepts        []Concept `json:"concepts"`
	Formulas        []Formula `json:"formulas"`
	DetailedContent string    `json:"detailed_content"`
	Steps           []string  `json:"steps"`
	Notes           []string  `json:"notes"`
	Examples        string    `json:"examples"`
}

// HasSections reports whether any renderable section carries content.
// The title is not a section.
func (n NoteData) HasSections() bool {
	return len(n.Concepts) > 0 ||
		len(n.Formulas) > 0 ||
		strings.TrimSpace(n.DetailedContent) != "" ||
		len(n.Steps) > 0 ||
		len(n.Notes) > 0
}

// Course groups uploaded material files and the cards generated from them.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FileRecord describes one uploaded material file. Summaries are produced
// by the ingestion collaborator and may be empty or useless; card
// generation falls back to the file name in that case.
type FileRecord struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Path        string    `json:"path"`
	CourseID    uuid.UUID `json:"course_id"`
	Summary     string    `json:"summary"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Screenshots []string  `json:"screenshots,omitempty"`
}

// NoteCard is one rendered knowledge card plus the data it was built from.
type NoteCard struct {
	ID                uuid.UUID   `json:"id"`
	Title             string      `json:"title"`
	Content           string      `json:"content"`
	NoteData          NoteData    `json:"note_data"`
	Subject           Subject     `json:"subject"`
	Confidence        float64     `json:"confidence"`
	VisualizationType string      `json:"visualization_type"`
	Image             string      `json:"image"`
	ImageSource       string      `json:"image_source"`
	CourseID          uuid.UUID   `json:"course_id"`
	FileIDs           []uuid.UUID `json:"file_ids"`
	CreatedAt         time.Time   `json:"created_at"`
}
