package pages

import (
	"embed"
	"html/template"
	"net/http"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/webtech/cameralog/internal/ctxkeys"
	"github.com/webtech/cameralog/internal/flash"
	"github.com/webtech/cameralog/internal/markdown"
	"github.com/webtech/cameralog/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var descriptions = markdown.NewParser()

var funcs = template.FuncMap{
	"cn":       cn,
	"markdown": descriptions.HTML,
	"alert":    alertClass,
	"active":   activeClass,
}

var (
	loginTemplate    = parse("login.html")
	registerTemplate = parse("register.html")
	cardsTemplate    = parse("cards.html")
	notFoundTemplate = parse("notfound.html")
)

// parse builds one template set per page so every page can define its own
// "title" and "content" blocks inside the shared layout.
func parse(page string) *template.Template {
	set := template.Must(template.New(page).Funcs(funcs).ParseFS(templatesFS,
		"templates/layout.html",
		"templates/"+page,
	))
	return set.Lookup("layout.html")
}

// Page is the data every page needs: layout chrome, request-scoped values
// and the flashes popped for this response.
type Page struct {
	AppName   string
	Path      string
	Nonce     string
	CSRFToken string
	Email     string
	LoggedIn  bool
	Flashes   []flash.Message
}

// NewPage collects the layout data for r and pops pending flash messages.
func NewPage(w http.ResponseWriter, r *http.Request) Page {
	ctx := r.Context()

	appName := "Camera Log"
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}

	return Page{
		AppName:   appName,
		Path:      ctxkeys.URLPath(ctx),
		Nonce:     templ.GetNonce(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Email:     ctxkeys.SessionEmail(ctx),
		LoggedIn:  ctxkeys.LoggedIn(ctx),
		Flashes:   flash.Pop(w, r),
	}
}

type RegisterData struct {
	Page
	Cameras []*model.Camera
	Edit    *model.Camera
}

type CardsData struct {
	Page
	Cameras []*model.Camera
}

func Login(page Page) templ.Component {
	return templ.FromGoHTML(loginTemplate, page)
}

func Register(data RegisterData) templ.Component {
	return templ.FromGoHTML(registerTemplate, data)
}

func Cards(data CardsData) templ.Component {
	return templ.FromGoHTML(cardsTemplate, data)
}

func NotFound(page Page) templ.Component {
	return templ.FromGoHTML(notFoundTemplate, page)
}

func cn(classes ...string) string {
	return twmerge.Merge(classes...)
}

func alertClass(category string) string {
	if category == flash.CategorySuccess {
		return "border-green-300 bg-green-50 text-green-800"
	}
	return "border-red-300 bg-red-50 text-red-800"
}

func activeClass(path, target string) string {
	if path == target {
		return "font-bold underline"
	}
	return ""
}
