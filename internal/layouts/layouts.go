// Package layouts renders the public business profile in one of three variants.
package layouts

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

const (
	placeholderLogo   = "https://via.placeholder.com/150"
	placeholderHeader = "https://via.placeholder.com/400"
	placeholderVisual = "https://via.placeholder.com/800x1200"
)

// Renderer writes one visual arrangement of a View
type Renderer interface {
	Variant() entities.LayoutVariant
	Render(w io.Writer, v View) error
}

var registry = map[entities.LayoutVariant]Renderer{
	entities.LayoutStandard: Standard{},
	entities.LayoutModern:   Modern{},
	entities.LayoutVisual:   Visual{},
}

// ForVariant returns the renderer of variant, falling back to Standard
func ForVariant(variant entities.LayoutVariant) Renderer {
	if r, ok := registry[variant]; ok {
		return r
	}
	return Standard{}
}

// View is derived once from a business, its design config and gallery
type View struct {
	Business    *entities.Business
	Config      entities.DesignConfig
	Gallery     []entities.BusinessImage
	Social      entities.SocialLinks
	WhatsAppURL string
	PhoneURL    template.URL
	MapsURL     string
	Website     string
	HasSocials  bool
}

// NewView precomputes contact links. config is used as given; callers pass
// the stored config, which is already merged over defaults, or an override.
func NewView(business *entities.Business, config entities.DesignConfig, gallery []entities.BusinessImage) View {
	v := View{
		Business: business,
		Config:   config,
		Gallery:  gallery,
		Social:   business.SocialLinks,
	}
	v.WhatsAppURL = WhatsAppLink(business.WhatsApp, business.Name)
	v.PhoneURL = PhoneLink(business.Phone)
	if business.HasCoordinates() {
		v.MapsURL = MapsLink(business.Latitude.Float64, business.Longitude.Float64)
	}
	v.Website = firstNonEmpty(business.WebsiteURL, v.Social.Website)
	s := v.Social
	v.HasSocials = s.Facebook != "" || s.Instagram != "" || s.TikTok != "" || v.Website != ""
	return v
}

// WhatsAppLink builds the wa.me chat link with the greeting prefilled.
// It is empty when number has no digits.
func WhatsAppLink(number, businessName string) string {
	digits := keep(number, func(r rune) bool { return r >= '0' && r <= '9' })
	if digits == "" {
		return ""
	}
	text := fmt.Sprintf("Hola %s, los vi en la app Qhoar.", businessName)
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// PhoneLink returns a tel: link, or "" when phone is empty
func PhoneLink(phone string) template.URL {
	n := keep(phone, func(r rune) bool { return (r >= '0' && r <= '9') || r == '+' })
	if n == "" {
		return ""
	}
	// only digits and '+' remain, safe for an href
	return template.URL("tel:" + n)
}

// MapsLink opens Google Maps at the given coordinates
func MapsLink(lat, lng float64) string {
	return "https://www.google.com/maps/search/?api=1&query=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

func keep(s string, ok func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if ok(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func limitGallery(images []entities.BusinessImage, n int) []entities.BusinessImage {
	if len(images) > n {
		return images[:n]
	}
	return images
}
