package layouts

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

func testBusiness() *entities.Business {
	return &entities.Business{
		ID:          uuid.New(),
		Name:        "Café Sol",
		Description: "Pan y café",
		Address:     "Jr. Lima 123",
		Phone:       "066 312 345",
		WhatsApp:    "+51 999 888 777",
		Latitude:    null.Float64From(-13.16),
		Longitude:   null.Float64From(-74.22),
		SocialLinks: entities.SocialLinks{Instagram: "https://instagram.com/cafesol"},
	}
}

func testGallery(n int) []entities.BusinessImage {
	images := make([]entities.BusinessImage, n)
	for i := range images {
		images[i] = entities.BusinessImage{
			ID:         uuid.New(),
			ImageURL:   fmt.Sprintf("https://cdn.test/g%d.jpg", i),
			OrderIndex: i,
		}
	}
	return images
}

func render(t *testing.T, r Renderer, v View) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, v))
	return buf.String()
}

func TestForVariant(t *testing.T) {
	assert.Equal(t, entities.LayoutStandard, ForVariant(entities.LayoutStandard).Variant())
	assert.Equal(t, entities.LayoutModern, ForVariant(entities.LayoutModern).Variant())
	assert.Equal(t, entities.LayoutVisual, ForVariant(entities.LayoutVisual).Variant())
	assert.Equal(t, entities.LayoutStandard, ForVariant("neon").Variant())
	assert.Equal(t, entities.LayoutStandard, ForVariant("").Variant())
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/51999888777?text=Hola%20Caf%C3%A9%20Sol%2C%20los%20vi%20en%20la%20app%20Qhoar.",
		WhatsAppLink("+51 999 888 777", "Café Sol"))
	assert.Empty(t, WhatsAppLink("", "Café Sol"))
	assert.Empty(t, WhatsAppLink("n/a", "Café Sol"))
}

func TestPhoneAndMapsLinks(t *testing.T) {
	assert.Equal(t, "tel:066312345", string(PhoneLink("066 312 345")))
	assert.Equal(t, "tel:+51066312345", string(PhoneLink("+51 066-312-345")))
	assert.Empty(t, PhoneLink(""))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=-13.16,-74.22", MapsLink(-13.16, -74.22))
}

func TestNewView(t *testing.T) {
	b := testBusiness()
	v := NewView(b, entities.DefaultDesignConfig(), nil)
	assert.NotEmpty(t, v.WhatsAppURL)
	assert.Equal(t, "tel:066312345", string(v.PhoneURL))
	assert.Contains(t, v.MapsURL, "query=-13.16,-74.22")
	assert.True(t, v.HasSocials)

	b.Latitude = null.Float64{}
	b.SocialLinks = entities.SocialLinks{}
	b.WhatsApp = ""
	v = NewView(b, entities.DefaultDesignConfig(), nil)
	assert.Empty(t, v.MapsURL)
	assert.Empty(t, v.WhatsAppURL)
	assert.False(t, v.HasSocials)

	b.SocialLinks.Website = "https://cafesol.pe"
	v = NewView(b, entities.DefaultDesignConfig(), nil)
	assert.Equal(t, "https://cafesol.pe", v.Website)
	assert.True(t, v.HasSocials)
}

func TestStandard_GalleryOnlyForPremium(t *testing.T) {
	b := testBusiness()
	gallery := testGallery(3)

	out := render(t, Standard{}, NewView(b, entities.DefaultDesignConfig(), gallery))
	assert.NotContains(t, out, "cdn.test/g0.jpg")
	assert.NotContains(t, out, "PRO")

	b.IsPremium = true
	out = render(t, Standard{}, NewView(b, entities.DefaultDesignConfig(), gallery))
	assert.Equal(t, 3, strings.Count(out, "https://cdn.test/g"))
	assert.Contains(t, out, "PRO")
}

func TestStandard_Fallbacks(t *testing.T) {
	b := testBusiness()
	b.Description = ""
	out := render(t, Standard{}, NewView(b, entities.DesignConfig{BackgroundURL: "https://cdn.test/bg.jpg"}, nil))

	assert.Contains(t, out, placeholderLogo)
	assert.Contains(t, out, "Bienvenido a nuestro negocio")
	assert.Contains(t, out, "opacity: 0.1")
	assert.Contains(t, out, "background-color: #f97316")
	assert.Contains(t, out, "api=1&amp;query=-13.16,-74.22")
	assert.Contains(t, out, `href="tel:066312345"`)
}

func TestStandard_CoverImage(t *testing.T) {
	cfg := entities.DefaultDesignConfig()
	cfg.CoverURL = "https://cdn.test/cover.jpg"
	out := render(t, Standard{}, NewView(testBusiness(), cfg, nil))
	assert.Contains(t, out, "https://cdn.test/cover.jpg")
}

func TestModern_HeaderChain(t *testing.T) {
	b := testBusiness()

	out := render(t, Modern{}, NewView(b, entities.DefaultDesignConfig(), nil))
	assert.Contains(t, out, placeholderHeader)

	b.HeroImageURL = "https://cdn.test/hero.jpg"
	out = render(t, Modern{}, NewView(b, entities.DefaultDesignConfig(), nil))
	assert.Contains(t, out, `<img src="https://cdn.test/hero.jpg" alt="Header">`)

	cfg := entities.DefaultDesignConfig()
	cfg.CoverURL = "https://cdn.test/cover.jpg"
	out = render(t, Modern{}, NewView(b, cfg, nil))
	assert.Contains(t, out, `<img src="https://cdn.test/cover.jpg" alt="Header">`)
	assert.NotContains(t, out, placeholderHeader)
}

func TestModern_PhotoCount(t *testing.T) {
	out := render(t, Modern{}, NewView(testBusiness(), entities.DefaultDesignConfig(), testGallery(1)))
	assert.Contains(t, out, "1 foto<")

	out = render(t, Modern{}, NewView(testBusiness(), entities.DefaultDesignConfig(), testGallery(5)))
	assert.Contains(t, out, "5 fotos")
	assert.Equal(t, 5, strings.Count(out, "https://cdn.test/g"))
}

func TestVisual_FallbacksAndGalleryLimit(t *testing.T) {
	b := testBusiness()
	out := render(t, Visual{}, NewView(b, entities.DesignConfig{}, testGallery(6)))

	assert.Contains(t, out, placeholderVisual)
	assert.Contains(t, out, visualSecondaryColor)
	assert.Contains(t, out, "opacity: 0.5")
	assert.Contains(t, out, "Contacto")
	assert.Equal(t, visualGalleryLimit, strings.Count(out, "https://cdn.test/g"))
}

func TestVisual_BackgroundChain(t *testing.T) {
	b := testBusiness()
	b.HeroImageURL = "https://cdn.test/hero.jpg"
	cfg := entities.DesignConfig{CoverURL: "https://cdn.test/cover.jpg"}

	out := render(t, Visual{}, NewView(b, cfg, nil))
	assert.Contains(t, out, "https://cdn.test/cover.jpg")
	assert.NotContains(t, out, "https://cdn.test/hero.jpg")

	cfg.BackgroundURL = "https://cdn.test/bg.jpg"
	out = render(t, Visual{}, NewView(b, cfg, nil))
	assert.Contains(t, out, "https://cdn.test/bg.jpg")
	assert.NotContains(t, out, "https://cdn.test/cover.jpg")
}

func TestRender_EscapesBusinessData(t *testing.T) {
	b := testBusiness()
	b.Name = `<script>alert(1)</script>`
	for _, r := range []Renderer{Standard{}, Modern{}, Visual{}} {
		out := render(t, r, NewView(b, entities.DefaultDesignConfig(), nil))
		assert.NotContains(t, out, "<script>", r.Variant())
		assert.Contains(t, out, "&lt;script&gt;", r.Variant())
	}
}
