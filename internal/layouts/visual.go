package layouts

import (
	"io"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

const (
	visualSecondaryColor = "#fbbf24"
	visualGalleryLimit   = 4
)

var visualTemplate = mustParse("visual", `<div class="layout layout-visual" style="background-color: #000">
<div class="background" style="background-image: url('{{.BackgroundImage}}'); opacity: {{.Opacity}}"></div>
<main>
  <div class="logo">{{with .Business.LogoURL}}<img src="{{.}}" alt="{{$.Business.Name}}">{{end}}{{if .PhotoCount}}<span class="count" style="background-color: {{.ButtonColor}}">{{.PhotoCount}}</span>{{end}}</div>
  <h1>{{.Business.Name}}</h1>
  <div class="divider" style="background-color: {{.AccentColor}}; border-color: {{.ButtonColor}}"></div>
  <p class="tagline">Experiencia Exclusiva</p>
  {{template "contact" .}}
  {{with .Business.Description}}<p class="description">{{.}}</p>{{end}}
  {{template "map" .}}
  {{template "social" .}}
  {{template "gallery" .}}
</main>
</div>`)

// Visual is a full-bleed layout over a background image
type Visual struct{}

type visualPage struct {
	View
	BackgroundImage string
	ButtonColor     string
	AccentColor     string
	WhatsAppLabel   string
	Opacity         float64
	PhotoCount      int
	Images          []entities.BusinessImage
}

func (Visual) Variant() entities.LayoutVariant { return entities.LayoutVisual }

func (Visual) Render(w io.Writer, v View) error {
	p := visualPage{
		View:            v,
		BackgroundImage: firstNonEmpty(v.Config.BackgroundURL, v.Config.CoverURL, v.Business.HeroImageURL, placeholderVisual),
		ButtonColor:     firstNonEmpty(v.Config.PrimaryColor, entities.DefaultPrimaryColor),
		AccentColor:     firstNonEmpty(v.Config.SecondaryColor, visualSecondaryColor),
		WhatsAppLabel:   "Contacto",
		Opacity:         v.Config.Opacity(0.5),
		PhotoCount:      len(v.Gallery),
		Images:          limitGallery(v.Gallery, visualGalleryLimit),
	}
	return visualTemplate.Execute(w, p)
}
