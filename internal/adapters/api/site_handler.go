package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allweather.app/internal/core/site"
)

// getWhatsAppContact handles GET /api/contact/whatsapp requests
func (s *HTTPServerAdapter) getWhatsAppContact(c *gin.Context) {
	c.JSON(http.StatusOK, contactResponse{
		URL:    site.ContactLink(s.site.ContactNumber, localeOf(c)),
		Number: s.site.DisplayContact,
	})
}

func (s *HTTPServerAdapter) getSitemap(c *gin.Context) {
	body, err := site.MarshalSitemap(site.Sitemap(s.site.BaseURL, s.now()))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (s *HTTPServerAdapter) getRobots(c *gin.Context) {
	c.String(http.StatusOK, site.Robots(s.site.BaseURL))
}

func (s *HTTPServerAdapter) getManifest(c *gin.Context) {
	c.Header("Content-Type", "application/manifest+json")
	c.JSON(http.StatusOK, site.Manifest())
}
