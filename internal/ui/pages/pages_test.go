package pages

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtech/cameralog/internal/config"
	"github.com/webtech/cameralog/internal/ctxkeys"
	"github.com/webtech/cameralog/internal/flash"
	"github.com/webtech/cameralog/internal/model"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestNewPage(t *testing.T) {
	// Queue a flash on one response, carry it into the next request
	rec := httptest.NewRecorder()
	flash.Success(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Camera added successfully!")

	req := httptest.NewRequest(http.MethodGet, "/rgstr", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	ctx := ctxkeys.WithConfig(req.Context(), &config.Config{AppName: "Lens Shelf"})
	ctx = ctxkeys.WithURLPath(ctx, "/rgstr")
	ctx = ctxkeys.WithCSRFToken(ctx, "tok")
	ctx = ctxkeys.WithSessionEmail(ctx, "a@example.com")
	ctx = templ.WithNonce(ctx, "n0nce")

	page := NewPage(httptest.NewRecorder(), req.WithContext(ctx))

	assert.Equal(t, "Lens Shelf", page.AppName)
	assert.Equal(t, "/rgstr", page.Path)
	assert.Equal(t, "tok", page.CSRFToken)
	assert.Equal(t, "n0nce", page.Nonce)
	assert.True(t, page.LoggedIn)
	assert.Equal(t, []flash.Message{{Category: flash.CategorySuccess, Text: "Camera added successfully!"}}, page.Flashes)
}

func TestNewPageDefaults(t *testing.T) {
	page := NewPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Camera Log", page.AppName)
	assert.False(t, page.LoggedIn)
	assert.Empty(t, page.Flashes)
}

func TestLogin(t *testing.T) {
	out := render(t, Login(Page{
		AppName:   "Camera Log",
		Nonce:     "n0nce",
		CSRFToken: "tok",
		Flashes:   []flash.Message{{Category: flash.CategoryDanger, Text: "Invalid Email or Date"}},
	}))

	assert.Contains(t, out, `<style nonce="n0nce">`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
	assert.Contains(t, out, "Invalid Email or Date")
	assert.Contains(t, out, "bg-red-50")
	assert.Contains(t, out, `name="year_date"`)
}

func TestRegister(t *testing.T) {
	photo := "uploads/ae1.png"
	cameras := []*model.Camera{
		{ID: 1, Brand: "Canon", Model: "AE-1", Type: "SLR", Email: "a@example.com", Date: "1976-04-01", Photo: &photo, PhotoURL: "/static/uploads/ae1.png"},
		{ID: 2, Brand: "Leica", Model: "M6", Type: "Rangefinder", Email: "b@example.com", Date: "1984-01-01"},
	}

	t.Run("add mode", func(t *testing.T) {
		out := render(t, Register(RegisterData{Page: Page{AppName: "Camera Log"}, Cameras: cameras}))

		assert.Contains(t, out, "Add camera")
		assert.NotContains(t, out, `name="id"`)
		assert.Contains(t, out, `src="/static/uploads/ae1.png"`)
		assert.Contains(t, out, `href="/edit/2"`)
		assert.Contains(t, out, `href="/delete/1"`)
	})

	t.Run("edit mode", func(t *testing.T) {
		out := render(t, Register(RegisterData{Page: Page{AppName: "Camera Log"}, Cameras: cameras, Edit: cameras[1]}))

		assert.Contains(t, out, "Edit camera #2")
		assert.Contains(t, out, `name="id" value="2"`)
		assert.Contains(t, out, `value="Leica"`)
	})

	t.Run("empty", func(t *testing.T) {
		out := render(t, Register(RegisterData{Page: Page{AppName: "Camera Log"}}))
		assert.Contains(t, out, "No cameras yet.")
	})
}

func TestCardsRendersMarkdown(t *testing.T) {
	cameras := []*model.Camera{
		{ID: 3, Brand: "Nikon", Model: "F3", Type: "SLR", Date: "1980-01-01", Description: "**mint** <script>x</script>"},
	}

	out := render(t, Cards(CardsData{Page: Page{AppName: "Camera Log", CSRFToken: "tok"}, Cameras: cameras}))

	assert.Contains(t, out, "<strong>mint</strong>")
	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, `action="/update_description/3"`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
}

func TestCn(t *testing.T) {
	assert.ElementsMatch(t, []string{"px-3", "py-2"}, strings.Fields(cn("px-3 py-1", "py-2")))
	assert.Equal(t, "", activeClass("/", "/CRW"))
}
