// Package domain holds the plain-record types shared by every repository
// and engine. Entities carry opaque id fields and never hold pointers to
// each other; every reference is resolved through the graph store.
package domain

import "time"

// ExpressionType enumerates the role an Expression plays relative to its Work.
type ExpressionType string

const (
	ExpressionRoot               ExpressionType = "root"
	ExpressionTranslation        ExpressionType = "translation"
	ExpressionCommentary         ExpressionType = "commentary"
	ExpressionTranslationSource  ExpressionType = "translation_source"
)

// ManifestationType enumerates the kind of edition.
type ManifestationType string

const (
	ManifestationDiplomatic ManifestationType = "diplomatic"
	ManifestationCritical   ManifestationType = "critical"
	ManifestationCollated   ManifestationType = "collated"
)

// LicenseType is a closed set of Creative-Commons-style identifiers.
type LicenseType string

const (
	LicenseCC0        LicenseType = "CC0"
	LicenseCCBY       LicenseType = "CC-BY"
	LicenseCCBYSA     LicenseType = "CC-BY-SA"
	LicenseCCBYNC     LicenseType = "CC-BY-NC"
	LicenseCCBYNCSA   LicenseType = "CC-BY-NC-SA"
	LicensePublicDomainMark LicenseType = "PUBLIC_DOMAIN_MARK"
)

// CopyrightStatus describes whether a work is still under copyright.
type CopyrightStatus string

const (
	CopyrightPublicDomain CopyrightStatus = "PUBLIC_DOMAIN"
	CopyrightUnderCopyright CopyrightStatus = "UNDER_COPYRIGHT"
	CopyrightUnknown      CopyrightStatus = "UNKNOWN"
)

// AnnotationKind names the concrete shape of an annotation layer.
type AnnotationKind string

const (
	KindSegmentation     AnnotationKind = "segmentation"
	KindSearchSegmentation AnnotationKind = "search-segmentation"
	KindPagination       AnnotationKind = "pagination"
	KindAlignment        AnnotationKind = "alignment"
	KindDurchen          AnnotationKind = "durchen"
	KindBibliographic    AnnotationKind = "bibliographic"
	KindTableOfContents  AnnotationKind = "table-of-contents"
)

// Span is a half-open byte range [Start, End) into a Manifestation's base text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether s overlaps the half-open range [start, end).
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

// LocalizedText is one language/text pair, the leaf of a Nomen subgraph.
type LocalizedText struct {
	BaseLanguageCode string `json:"language"` // 2-3 char base code, validated against Language
	BCP47Tag         string `json:"bcp47,omitempty"`
	Text             string `json:"text"`
}

// Nomen is a localized-name subgraph: one primary set of localizations plus
// zero or more ALTERNATIVE_OF variants, each itself a set of localizations.
type Nomen struct {
	ID           string          `json:"id"`
	Primary      []LocalizedText `json:"primary"`
	Alternatives [][]LocalizedText `json:"alternatives,omitempty"`
}

// Contribution links a Person (or the AI node) to an Expression under a role.
type Contribution struct {
	PersonID string `json:"person_id"`
	Role     string `json:"role"`
	IsAI     bool   `json:"is_ai,omitempty"`
}

// Person is a directory node for a contributor.
type Person struct {
	ID        string  `json:"id"`
	BDRC      *string `json:"bdrc,omitempty"`
	Wiki      *string `json:"wiki,omitempty"`
	Name      Nomen   `json:"name"`
}

// Work is the abstract intellectual unit realised by one or more Expressions.
type Work struct {
	ID string `json:"id"`
}

// Expression is a language/authorship realisation of a Work.
type Expression struct {
	ID              string           `json:"id"`
	WorkID          string           `json:"work_id"`
	BDRC            *string          `json:"bdrc,omitempty"`
	Wiki            *string          `json:"wiki,omitempty"`
	Type            ExpressionType   `json:"type"`
	LanguageCode    string           `json:"language"`
	BCP47Tag        string           `json:"bcp47,omitempty"`
	Date            *string          `json:"date,omitempty"`
	Title           Nomen            `json:"title"`
	Contributions   []Contribution   `json:"contributions"`
	License         LicenseType      `json:"license"`
	Copyright       CopyrightStatus  `json:"copyright"`
	CategoryID      *string          `json:"category_id,omitempty"`
	// TargetID names the Expression or Work this one derives from via
	// COMMENTARY_OF/TRANSLATION_OF. Empty for type == root.
	TargetID string `json:"target,omitempty"`
	IsOriginal bool `json:"-"` // true on the EXPRESSION_OF edge when Type == root
}

// Manifestation is a concrete published form ("edition") of an Expression.
type Manifestation struct {
	ID               string             `json:"id"`
	ExpressionID     string             `json:"expression_id"`
	BDRC             *string            `json:"bdrc,omitempty"`
	Wiki             *string            `json:"wiki,omitempty"`
	Type             ManifestationType  `json:"type"`
	Source           string             `json:"source,omitempty"`
	Colophon         *string            `json:"colophon,omitempty"`
	IncipitTitle     *Nomen             `json:"incipit_title,omitempty"`
	AlternativeIncipits []Nomen         `json:"alt_incipit_titles,omitempty"`
}

// Segmentation groups Segments attached to one Manifestation.
type Segmentation struct {
	ID              string         `json:"id"`
	ManifestationID string         `json:"manifestation_id"`
	Kind            AnnotationKind `json:"kind"`
	// PeerID is set only for alignment segmentations: the sibling
	// Segmentation on the other side of the pair.
	PeerID *string `json:"peer_id,omitempty"`
}

// Segment belongs to exactly one Segmentation and owns one or more Spans.
type Segment struct {
	ID             string `json:"id"`
	SegmentationID string `json:"segmentation_id"`
	Spans          []Span `json:"spans"`
	// ReferenceLabel is set for pagination segments (page label text).
	ReferenceLabel *string `json:"reference,omitempty"`
}

// MinStart returns the smallest span start, used for ordering.
func (s Segment) MinStart() int {
	m := s.Spans[0].Start
	for _, sp := range s.Spans[1:] {
		if sp.Start < m {
			m = sp.Start
		}
	}
	return m
}

// MaxEnd returns the largest span end.
func (s Segment) MaxEnd() int {
	m := s.Spans[0].End
	for _, sp := range s.Spans[1:] {
		if sp.End > m {
			m = sp.End
		}
	}
	return m
}

// AlignedSegment is one source-side segment plus the target-list positions
// (indices into the sibling AlignmentInput.TargetSegments) it aligns to.
type AlignedSegment struct {
	Spans             []Span `json:"lines"`
	AlignmentIndices  []int  `json:"alignment_indices"`
}

// Note is attached to a Manifestation by span and typed by NoteType.
type Note struct {
	ID              string `json:"id"`
	ManifestationID string `json:"manifestation_id"`
	NoteType        string `json:"type"`
	Spans           []Span `json:"spans"`
}

// BibliographicMetadata is attached to a Manifestation by span and typed by
// BibliographyType (e.g. "colophon", "incipit").
type BibliographicMetadata struct {
	ID              string `json:"id"`
	ManifestationID string `json:"manifestation_id"`
	BiblioType      string `json:"type"`
	Spans           []Span `json:"spans"`
}

// Category is a named node in the per-Application category forest.
type Category struct {
	ID            string  `json:"id"`
	Application   string  `json:"application"`
	ParentID      *string `json:"parent_id,omitempty"`
	Title         Nomen   `json:"title"`
	HasChild      bool    `json:"has_child"`
}

// Application is an opaque tenant name scoping categories and API keys.
type Application struct {
	ID string `json:"id"`
}

// ApiKey is a hashed credential, optionally bound to an Application.
type ApiKey struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	APIKeyHash        string     `json:"-"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	BoundApplicationID *string   `json:"bound_application_id,omitempty"`
}

// Principal is the resolved identity attached to a request context after
// successful API-key validation.
type Principal struct {
	APIKeyID           string
	BoundApplicationID *string
}
