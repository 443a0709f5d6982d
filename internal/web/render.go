package web

import (
	"fmt"
	"html/template"
	"io"

	"huangye/pkg/directory"
	"huangye/pkg/model"
	"huangye/pkg/page"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// DirectoryPage is the view model for the grouped company listing.
type DirectoryPage struct {
	Title  string
	Total  int
	Cities []CitySection
}

// CitySection is one city block with its anchor for the city nav.
type CitySection struct {
	Name       string
	Count      int
	Industries []IndustrySection
}

// IndustrySection carries either flat cards or category sub-sections.
type IndustrySection struct {
	Name       string
	Count      int
	Cards      []CompanyCard
	Categories []CategorySection
}

// CategorySection is one food category bucket.
type CategorySection struct {
	Name  string
	Cards []CompanyCard
}

// CompanyCard is one directory card.
type CompanyCard struct {
	Slug    string
	Name    string
	Summary string
	Cover   string
	Contact string
}

// BuildDirectoryPage converts the grouped directory into the template view
// model, resolving card covers and hiding sentinel contacts.
func BuildDirectoryPage(dir *directory.Directory, photos directory.CoverSource) *DirectoryPage {
	p := &DirectoryPage{
		Title: "华人黄页 - 墨西哥中文商家目录",
		Total: dir.Total,
	}
	for _, city := range dir.Cities {
		section := CitySection{Name: city.Name, Count: city.Count}
		for _, ind := range city.Industries {
			is := IndustrySection{Name: ind.Name, Count: ind.Count}
			for _, cat := range ind.Categories {
				is.Categories = append(is.Categories, CategorySection{
					Name:  cat.Name,
					Cards: buildCards(cat.Companies, photos),
				})
			}
			is.Cards = buildCards(ind.Companies, photos)
			section.Industries = append(section.Industries, is)
		}
		p.Cities = append(p.Cities, section)
	}
	return p
}

func buildCards(companies []model.Company, photos directory.CoverSource) []CompanyCard {
	cards := make([]CompanyCard, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		card := CompanyCard{
			Slug:    c.Slug,
			Name:    c.Name,
			Summary: c.Summary,
			Cover:   directory.ResolveCover(c, photos),
		}
		if c.HasContact() {
			card.Contact = c.Contact
		}
		cards = append(cards, card)
	}
	return cards
}

// CompanyPage wraps the page view for the template, marking the JSON-LD
// block as pre-rendered so html/template does not escape it.
type CompanyPage struct {
	*page.View
	JSONLDScript template.HTML
}

// RenderDirectory writes the directory page.
func (r *Renderer) RenderDirectory(w io.Writer, p *DirectoryPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "directory.html", p); err != nil {
		return fmt.Errorf("failed to render directory: %w", err)
	}
	return nil
}

// RenderCompany writes a company detail page.
func (r *Renderer) RenderCompany(w io.Writer, v *page.View) error {
	p := &CompanyPage{View: v}
	if v.JSONLD != "" {
		p.JSONLDScript = template.HTML(
			`<script type="application/ld+json">` + v.JSONLD + `</script>`)
	}
	if err := r.tmpl.ExecuteTemplate(w, "company.html", p); err != nil {
		return fmt.Errorf("failed to render company page: %w", err)
	}
	return nil
}
