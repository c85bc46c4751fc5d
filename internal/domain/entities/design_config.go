package entities

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// LayoutVariant selects one of the profile renderers
type LayoutVariant string

const (
	LayoutStandard LayoutVariant = "standard"
	LayoutModern   LayoutVariant = "modern"
	LayoutVisual   LayoutVariant = "visual"
)

// IsValid reports whether v is a known variant
func (v LayoutVariant) IsValid() bool {
	switch v {
	case LayoutStandard, LayoutModern, LayoutVisual:
		return true
	}
	return false
}

// RequiresPremium reports whether only premium businesses may use the variant
func (v LayoutVariant) RequiresPremium() bool {
	return v == LayoutModern || v == LayoutVisual
}

// CoverType describes what the header cover shows
type CoverType string

const (
	CoverColor CoverType = "color"
	CoverImage CoverType = "image"
	CoverVideo CoverType = "video"
)

// Design defaults
const (
	DefaultPrimaryColor      = "#f97316"
	DefaultSecondaryColor    = "#374151"
	DefaultBackgroundOpacity = 0.3
)

// DesignConfig is the visual customization stored in businesses.design_config.
// BackgroundOpacity is a pointer so that an explicit 0 survives defaulting.
type DesignConfig struct {
	LayoutVariant     LayoutVariant `json:"layout_variant"`
	PrimaryColor      string        `json:"primary_color,omitempty"`
	SecondaryColor    string        `json:"secondary_color,omitempty"`
	CoverType         CoverType     `json:"cover_type,omitempty"`
	CoverURL          string        `json:"cover_url,omitempty"`
	BackgroundURL     string        `json:"background_url,omitempty"`
	BackgroundOpacity *float64      `json:"background_opacity,omitempty"`
}

// DefaultDesignConfig returns the configuration used when nothing is stored
func DefaultDesignConfig() DesignConfig {
	opacity := DefaultBackgroundOpacity
	return DesignConfig{
		LayoutVariant:     LayoutStandard,
		PrimaryColor:      DefaultPrimaryColor,
		SecondaryColor:    DefaultSecondaryColor,
		CoverType:         CoverColor,
		BackgroundOpacity: &opacity,
	}
}

// WithDefaults returns a copy with every unset field taken from DefaultDesignConfig
func (c DesignConfig) WithDefaults() DesignConfig {
	d := DefaultDesignConfig()
	if c.LayoutVariant == "" {
		c.LayoutVariant = d.LayoutVariant
	}
	if c.PrimaryColor == "" {
		c.PrimaryColor = d.PrimaryColor
	}
	if c.SecondaryColor == "" {
		c.SecondaryColor = d.SecondaryColor
	}
	if c.CoverType == "" {
		c.CoverType = d.CoverType
	}
	if c.BackgroundOpacity == nil {
		c.BackgroundOpacity = d.BackgroundOpacity
	}
	return c
}

// Opacity returns the background opacity or fallback when unset
func (c DesignConfig) Opacity(fallback float64) float64 {
	if c.BackgroundOpacity == nil {
		return fallback
	}
	return *c.BackgroundOpacity
}

// ParseDesignConfig decodes a stored design_config leniently. Unknown keys are
// ignored, numbers stored as strings are accepted and garbage yields defaults.
// The result is already merged over the defaults.
func ParseDesignConfig(raw []byte) DesignConfig {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return DefaultDesignConfig()
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return DefaultDesignConfig()
	}

	cfg := DesignConfig{
		LayoutVariant:  LayoutVariant(doc.Get("layout_variant").String()),
		PrimaryColor:   doc.Get("primary_color").String(),
		SecondaryColor: doc.Get("secondary_color").String(),
		CoverType:      CoverType(doc.Get("cover_type").String()),
		CoverURL:       doc.Get("cover_url").String(),
		BackgroundURL:  doc.Get("background_url").String(),
	}
	if !cfg.LayoutVariant.IsValid() {
		cfg.LayoutVariant = ""
	}
	switch op := doc.Get("background_opacity"); op.Type {
	case gjson.Number:
		v := op.Float()
		cfg.BackgroundOpacity = &v
	case gjson.String:
		if v, err := strconv.ParseFloat(strings.TrimSpace(op.Str), 64); err == nil {
			cfg.BackgroundOpacity = &v
		}
	}
	return cfg.WithDefaults()
}

// SocialLinks is stored in businesses.social_links
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Website   string `json:"website,omitempty"`
}

// IsEmpty reports whether no network is set
func (s SocialLinks) IsEmpty() bool {
	return s == SocialLinks{}
}

// ParseSocialLinks decodes stored social links, returning zero value on bad input
func ParseSocialLinks(raw []byte) SocialLinks {
	var s SocialLinks
	if len(raw) == 0 {
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return SocialLinks{}
	}
	return s
}
