package config

import (
	"slices"
	"strings"

	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
)

// Sites a login can start from.
const (
	SitePublic = "public"
	SiteAdmin  = "admin"
	SiteBeta   = "beta"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *cardsite.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *cardsite.Config) *WebAppConfig {
	environment := "development"
	if cfg.Web.Production {
		environment = "production"
	}
	return &WebAppConfig{
		Config:      cfg,
		Debug:       !cfg.Web.Production,
		Environment: environment,
	}
}

// SecureCookies reports whether cookies need the Secure flag.
func (w *WebAppConfig) SecureCookies() bool {
	return w.Environment == "production"
}

// SiteURL returns the frontend a login for site returns to. Unknown sites
// fall back to the public site.
func (w *WebAppConfig) SiteURL(site string) string {
	switch site {
	case SiteAdmin:
		return w.Config.Web.AdminURL
	case SiteBeta:
		if w.Config.Web.BetaURL != "" {
			return w.Config.Web.BetaURL
		}
	}
	return w.Config.Web.PublicURL
}

// ValidSite reports whether site names one of the frontends.
func ValidSite(site string) bool {
	return site == SitePublic || site == SiteAdmin || site == SiteBeta
}

// IsAdminUser reports whether the Twitch user may hold an admin session.
func (w *WebAppConfig) IsAdminUser(userID string) bool {
	if userID == "" {
		return false
	}
	if userID == w.Config.Twitch.StreamerUserID {
		return true
	}
	return slices.Contains(w.Config.Twitch.AdminUserIDs, userID)
}

// AllowedOrigins lists the CORS origins, trimmed.
func (w *WebAppConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(w.Config.Web.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
