package layouts

import (
	"io"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

var modernTemplate = mustParse("modern", `<div class="layout layout-modern">
{{if .Config.BackgroundURL}}<div class="background" style="background-image: url('{{.Config.BackgroundURL}}'); opacity: {{.Opacity}}"></div>{{end}}
<header class="hero">
  <img src="{{.HeaderImage}}" alt="Header">
  {{if .PhotoCount}}<span class="photo-count">{{.PhotoCount}} {{.PhotoLabel}}</span>{{end}}
  {{with .Business.LogoURL}}<img class="logo" src="{{.}}" alt="{{$.Business.Name}}">{{end}}
</header>
<main>
  <h1>{{.Business.Name}}</h1>
  <div class="underline"><span style="background-color: {{.AccentColor}}"></span><span style="background-color: {{.ButtonColor}}"></span></div>
  <p class="description">{{.Business.Description}}</p>
  {{template "contact" .}}
  {{with .Business.HeroImageURL}}<figure class="featured"><img src="{{.}}" alt="Hero"></figure>{{end}}
  {{template "map" .}}
  {{template "social" .}}
  {{template "gallery" .}}
</main>
</div>`)

// Modern shows a full-width header image: cover, then hero, then a placeholder
type Modern struct{}

type modernPage struct {
	View
	HeaderImage   string
	ButtonColor   string
	AccentColor   string
	WhatsAppLabel string
	Opacity       float64
	PhotoCount    int
	PhotoLabel    string
	Images        []entities.BusinessImage
}

func (Modern) Variant() entities.LayoutVariant { return entities.LayoutModern }

func (Modern) Render(w io.Writer, v View) error {
	p := modernPage{
		View:          v,
		HeaderImage:   firstNonEmpty(v.Config.CoverURL, v.Business.HeroImageURL, placeholderHeader),
		ButtonColor:   firstNonEmpty(v.Config.PrimaryColor, entities.DefaultPrimaryColor),
		AccentColor:   firstNonEmpty(v.Config.SecondaryColor, entities.DefaultSecondaryColor),
		WhatsAppLabel: "WhatsApp",
		Opacity:       v.Config.Opacity(0.1),
		PhotoCount:    len(v.Gallery),
		PhotoLabel:    "fotos",
		Images:        v.Gallery,
	}
	if p.PhotoCount == 1 {
		p.PhotoLabel = "foto"
	}
	return modernTemplate.Execute(w, p)
}
