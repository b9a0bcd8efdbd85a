package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"strings"

	m "smashers.dev/pkg/sitegen/internal/model"
)

//go:embed all:web
var embedded embed.FS

// Assets returns the embedded templates and content.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "web")
	if err != nil {
		panic(err)
	}

	return sub
}

const (
	layoutPattern   = "templates/layout.html"
	partialsPattern = "templates/partials/*.html"
	pagesDir        = "templates/pages"
)

var funcs = template.FuncMap{
	"rub":    FormatRub,
	"tgLink": TelegramLink,
	"inc":    func(i int) int { return i + 1 },
}

// Renderer executes page templates inside the shared chrome.
// It is safe for concurrent use once constructed.
type Renderer struct {
	state     State
	templates map[string]*template.Template
}

type view struct {
	Ctx   m.RenderContext
	Page  *Page
	Club  Club
	Nav   []NavLink
	Data  any
	Title string
}

// NewRenderer parses the layout, the partials and one template per page from fsys.
func NewRenderer(fsys fs.FS, state State, pages []*Page) (*Renderer, error) {
	base, err := template.New("").Funcs(funcs).Option("missingkey=error").ParseFS(fsys, layoutPattern, partialsPattern)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{state: state, templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		if _, ok := r.templates[page.Name]; ok {
			continue
		}

		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page.Name, err)
		}

		if _, err := t.ParseFS(fsys, path.Join(pagesDir, page.Name+".html")); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page.Name, err)
		}

		r.templates[page.Name] = t
	}

	return r, nil
}

// Render returns the mount-point markup for page at ctx. Nothing is returned on error.
func (r *Renderer) Render(page *Page, ctx m.RenderContext) (string, error) {
	t, ok := r.templates[page.Name]
	if !ok {
		return "", fmt.Errorf("no template for page %q", page.Name)
	}

	data, err := page.Data(r.state, ctx)
	if err != nil {
		return "", fmt.Errorf("load data for %s: %w", page.Name, err)
	}

	v := view{
		Ctx:   ctx,
		Page:  page,
		Club:  r.state.Club,
		Nav:   BuildNav(r.state.Nav, ctx.Pathname),
		Data:  data,
		Title: page.Title,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "app", v); err != nil {
		return "", fmt.Errorf("render %s: %w", page.Name, err)
	}

	return buf.String(), nil
}

// nbsp keeps digit groups and the currency sign on one line.
const nbsp = '\u00a0'

// FormatRub formats a price in rubles with grouped thousands.
func FormatRub(amount int) string {
	if amount == 0 {
		return "Бесплатно"
	}

	digits := strconv.Itoa(amount)
	sign := ""

	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(nbsp)
		}

		b.WriteRune(d)
	}

	return sign + b.String() + string(nbsp) + "₽"
}
