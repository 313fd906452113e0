package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWhatsAppContact(t *testing.T) {
	server := newTestServer(t, ServerOptions{})

	var body contactResponse
	status := getJSON(t, server, "/api/contact/whatsapp?locale=en", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "+973 3993 9053", body.Number)
	assert.True(t, strings.HasPrefix(body.URL, "https://wa.me/97339939053?text=Hello%2C%20I%20would"))
}

func TestSiteMetadata(t *testing.T) {
	server := newTestServer(t, ServerOptions{})
	router := server.GetRouter()

	t.Run("sitemap", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
		assert.Contains(t, w.Body.String(), "<loc>https://allweather.bh/ar/crew-and-equipment</loc>")
		assert.Contains(t, w.Body.String(), "<lastmod>2026-10-14T07:30:00Z</lastmod>")
	})

	t.Run("robots", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Disallow: /admin/")
		assert.Contains(t, w.Body.String(), "Sitemap: https://allweather.bh/sitemap.xml")
	})

	t.Run("manifest", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifest.webmanifest", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/manifest+json", w.Header().Get("Content-Type"))
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ALL Weather Cleaning", body["name"])
		assert.Equal(t, "#faf9f6", body["background_color"])
	})
}
