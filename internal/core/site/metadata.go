package site

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"allweather.app/internal/i18n"
)

// Routes are the public pages listed in the sitemap, per locale.
var Routes = []string{"", "/about", "/book", "/crew-and-equipment"}

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc             string `xml:"loc"`
	LastModified    string `xml:"lastmod"`
	ChangeFrequency string `xml:"changefreq"`
	Priority        string `xml:"priority"`
}

// Sitemap lists every route once per locale. The home page has priority
// 1.0 and the rest 0.8.
func Sitemap(baseURL string, lastModified time.Time) URLSet {
	base := strings.TrimRight(baseURL, "/")
	set := URLSet{Xmlns: sitemapNamespace}
	for _, route := range Routes {
		priority := "0.8"
		if route == "" {
			priority = "1.0"
		}
		for _, locale := range i18n.Supported {
			set.URLs = append(set.URLs, SitemapURL{
				Loc:             fmt.Sprintf("%s/%s%s", base, locale, route),
				LastModified:    lastModified.UTC().Format(time.RFC3339),
				ChangeFrequency: "weekly",
				Priority:        priority,
			})
		}
	}
	return set
}

// MarshalSitemap renders the sitemap document with its XML header.
func MarshalSitemap(set URLSet) ([]byte, error) {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Robots allows everything except the private and admin areas.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-Agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /private/\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", strings.TrimRight(baseURL, "/"))
	return b.String()
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type WebManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

func Manifest() WebManifest {
	return WebManifest{
		Name:            "ALL Weather Cleaning",
		ShortName:       "ALL Weather",
		Description:     "Professional Drone Cleaning Services in Bahrain",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#faf9f6",
		ThemeColor:      "#06b6d4",
		Icons: []ManifestIcon{
			{Src: "/favicon.ico", Sizes: "any", Type: "image/x-icon"},
		},
	}
}
