package layouts

import "html/template"

// shared partials: contact buttons, social links, map link and gallery grid
const partials = `
{{define "contact"}}
<div class="contact">
  {{if .WhatsAppURL}}<a class="btn whatsapp" href="{{.WhatsAppURL}}" target="_blank" rel="noopener" style="background-color: {{.ButtonColor}}">{{.WhatsAppLabel}}</a>{{end}}
  {{if .PhoneURL}}<a class="btn phone" href="{{.PhoneURL}}" style="background-color: {{.AccentColor}}">Llamar</a>{{end}}
</div>
{{end}}

{{define "social"}}
{{if .HasSocials}}
<div class="social">
  <h3>Encuéntranos</h3>
  {{with .Website}}<a href="{{.}}" target="_blank" rel="noopener">Web</a>{{end}}
  {{with .Social.Facebook}}<a href="{{.}}" target="_blank" rel="noopener">Facebook</a>{{end}}
  {{with .Social.Instagram}}<a href="{{.}}" target="_blank" rel="noopener">Instagram</a>{{end}}
  {{with .Social.TikTok}}<a href="{{.}}" target="_blank" rel="noopener">TikTok</a>{{end}}
</div>
{{end}}
{{end}}

{{define "map"}}
{{if .MapsURL}}<a class="map" href="{{.MapsURL}}" target="_blank" rel="noopener">Ver en el mapa</a>{{end}}
{{end}}

{{define "gallery"}}
{{if .Images}}
<div class="gallery">
  {{range .Images}}
  <figure data-order="{{.OrderIndex}}">
    <img src="{{.ImageURL}}" alt="{{.Title}}">
    {{if or .Title .Description}}<figcaption>{{with .Title}}<strong>{{.}}</strong>{{end}}{{with .Description}} <span>{{.}}</span>{{end}}</figcaption>{{end}}
  </figure>
  {{end}}
</div>
{{end}}
{{end}}
`

func mustParse(name, body string) *template.Template {
	base := template.Must(template.New(name).Parse(partials))
	return template.Must(base.Parse(body))
}
