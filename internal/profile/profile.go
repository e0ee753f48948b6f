package profile

import (
	"fmt"
	"strings"
)

// Embedding field keys. Precomputed vectors in Profile.Embeddings are keyed by
// the name of the text field they were computed from.
const (
	FieldSeeking     = "seeking"
	FieldOffering    = "offering"
	FieldWhoYouServe = "who_you_serve"
	FieldWhatYouDo   = "what_you_do"
	FieldNiche       = "niche"
	FieldBio         = "bio"
)

// Revenue tiers in ascending order. The empty string means undisclosed; no
// factor may substitute a value for it.
var RevenueTiers = []string{
	"pre_revenue",
	"under_100k",
	"100k_500k",
	"500k_1m",
	"1m_5m",
	"5m_plus",
}

// JVEntry is one recorded joint-venture collaboration.
type JVEntry struct {
	PartnerName string `json:"partner_name"`
	Format      string `json:"format"`
}

// Profile is a read-only snapshot of a partner record as produced by the
// enrichment subsystem. The scoring engine never mutates it.
//
// Null conventions, fixed at this boundary: optional text and tier fields use
// "" for undisclosed, optional counts use 0, and the engagement score uses nil
// because 0 is a legitimate measured value there.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Email       string `json:"email"`
	BookingLink string `json:"booking_link"`

	Seeking        string `json:"seeking"`
	Offering       string `json:"offering"`
	WhoYouServe    string `json:"who_you_serve"`
	WhatYouDo      string `json:"what_you_do"`
	Niche          string `json:"niche"`
	Bio            string `json:"bio"`
	ActiveProjects string `json:"active_projects"`

	ListSize    int64  `json:"list_size"`
	SocialReach int64  `json:"social_reach"`
	RevenueTier string `json:"revenue_tier"`

	EngagementScore *float64 `json:"audience_engagement_score"`

	JVHistory        []JVEntry `json:"jv_history"`
	ContentPlatforms []string  `json:"content_platforms"`

	SourceQuality string `json:"source_quality"`

	// Embeddings holds optional precomputed vectors keyed by field name.
	// Absent entries degrade similarity scoring to word overlap.
	Embeddings map[string][]float32 `json:"embeddings,omitempty"`
}

// MalformedProfileError reports a profile missing a required identity field.
// It is the only hard error class in the engine: scoring garbage silently is
// worse than failing the pair.
type MalformedProfileError struct {
	Field string
}

func (e *MalformedProfileError) Error() string {
	return fmt.Sprintf("malformed profile: missing required field %q", e.Field)
}

// Validate checks the identity fields required before a profile may be scored.
func (p *Profile) Validate() error {
	if p == nil {
		return &MalformedProfileError{Field: "id"}
	}
	if strings.TrimSpace(p.ID) == "" {
		return &MalformedProfileError{Field: "id"}
	}
	return nil
}

// Text returns the named free-text field, or "" for unknown names.
func (p *Profile) Text(field string) string {
	switch field {
	case FieldSeeking:
		return p.Seeking
	case FieldOffering:
		return p.Offering
	case FieldWhoYouServe:
		return p.WhoYouServe
	case FieldWhatYouDo:
		return p.WhatYouDo
	case FieldNiche:
		return p.Niche
	case FieldBio:
		return p.Bio
	}
	return ""
}

// Embedding returns the precomputed vector for the named field, if any.
func (p *Profile) Embedding(field string) []float32 {
	if p.Embeddings == nil {
		return nil
	}
	return p.Embeddings[field]
}

// expectedFields is the set of fields the enrichment pipeline is expected to
// populate; Completeness is measured against it.
var expectedFields = []string{
	FieldSeeking, FieldOffering, FieldWhoYouServe, FieldWhatYouDo, FieldNiche, FieldBio,
}

// Completeness returns the populated fraction of the expected field set, in
// [0,1]. List size and content platforms count alongside the text fields.
func (p *Profile) Completeness() float64 {
	total := len(expectedFields) + 2
	populated := 0
	for _, f := range expectedFields {
		if strings.TrimSpace(p.Text(f)) != "" {
			populated++
		}
	}
	if p.ListSize > 0 {
		populated++
	}
	if len(p.ContentPlatforms) > 0 {
		populated++
	}
	return float64(populated) / float64(total)
}

// TierIndex returns the position of the profile's revenue tier in the
// canonical ordering, or -1 when the tier is undisclosed or unrecognized.
func (p *Profile) TierIndex() int {
	tier := strings.TrimSpace(strings.ToLower(p.RevenueTier))
	if tier == "" {
		return -1
	}
	for i, t := range RevenueTiers {
		if t == tier {
			return i
		}
	}
	return -1
}

// DisplayName returns the profile name, falling back to the id.
func (p *Profile) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.ID
}
