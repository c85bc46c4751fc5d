package layouts

import (
	"io"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

const standardDefaultDescription = "Bienvenido a nuestro negocio. Estamos aquí para atenderte con la mejor calidad y servicio."

var standardTemplate = mustParse("standard", `<div class="layout layout-standard" style="background-color: {{.PageBackground}}">
{{if .Config.BackgroundURL}}<div class="background" style="background-image: url('{{.Config.BackgroundURL}}'); opacity: {{.Opacity}}"></div>{{end}}
{{if .HasCover}}<header class="cover" style="background-image: url('{{.Config.CoverURL}}')"></header>
{{else}}<header class="cover" style="background-color: {{.PrimaryColor}}"></header>{{end}}
<main>
  <div class="logo"><img src="{{.LogoURL}}" alt="{{.Business.Name}}">{{if .Business.IsPremium}}<span class="badge">PRO</span>{{end}}</div>
  <h1>{{.Business.Name}}</h1>
  {{with .Business.Address}}<p class="address">{{.}}</p>{{end}}
  {{template "contact" .}}
  <section class="about"><h2>Sobre Nosotros</h2><p>{{.Description}}</p></section>
  {{template "map" .}}
  {{template "social" .}}
  {{template "gallery" .}}
</main>
</div>`)

// Standard is the default layout. The gallery is shown to premium businesses only.
type Standard struct{}

type standardPage struct {
	View
	HasCover       bool
	PageBackground string
	PrimaryColor   string
	ButtonColor    string
	AccentColor    string
	WhatsAppLabel  string
	Opacity        float64
	LogoURL        string
	Description    string
	Images         []entities.BusinessImage
}

func (Standard) Variant() entities.LayoutVariant { return entities.LayoutStandard }

func (Standard) Render(w io.Writer, v View) error {
	p := standardPage{
		View:           v,
		HasCover:       v.Config.CoverURL != "",
		PageBackground: "#fafafa",
		PrimaryColor:   firstNonEmpty(v.Config.PrimaryColor, entities.DefaultPrimaryColor),
		ButtonColor:    "#22c55e",
		AccentColor:    "#f3f4f6",
		WhatsAppLabel:  "WhatsApp",
		Opacity:        v.Config.Opacity(0.1),
		LogoURL:        firstNonEmpty(v.Business.LogoURL, placeholderLogo),
		Description:    firstNonEmpty(v.Business.Description, standardDefaultDescription),
	}
	if v.Config.BackgroundURL != "" {
		p.PageBackground = "transparent"
	}
	if v.Business.IsPremium {
		p.Images = v.Gallery
	}
	return standardTemplate.Execute(w, p)
}
