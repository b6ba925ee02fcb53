package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies cookies set on rec onto a new request, like a browser would.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func TestAddAndPop(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, httptest.NewRequest(http.MethodPost, "/", nil), "Camera added successfully!")

	next := carry(rec)
	popRec := httptest.NewRecorder()
	messages := Pop(popRec, next)

	require.Len(t, messages, 1)
	assert.Equal(t, CategorySuccess, messages[0].Category)
	assert.Equal(t, "Camera added successfully!", messages[0].Text)

	cleared := popRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	// Shown once: the browser drops the cookie after the clear.
	assert.Empty(t, Pop(httptest.NewRecorder(), carry(popRec)))
}

func TestAddKeepsPendingMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Danger(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Login required to edit records")

	rec2 := httptest.NewRecorder()
	Success(rec2, carry(rec), "Logged out successfully")

	messages := Pop(httptest.NewRecorder(), carry(rec2))
	require.Len(t, messages, 2)
	assert.Equal(t, CategoryDanger, messages[0].Category)
	assert.Equal(t, CategorySuccess, messages[1].Category)
}

func TestPopIgnoresMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "%%%"})

	assert.Nil(t, Pop(httptest.NewRecorder(), req))
}
