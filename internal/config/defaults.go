package config

const (
	DefaultSiteTitle    = "My Blog"
	DefaultBaseURL      = "/"
	DefaultDateFormat   = "January 02 2006"
	DefaultIndexTitle   = "Latest posts"
	DefaultExcerptWords = 40
)

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = DefaultSiteTitle
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = DefaultBaseURL
	}
	if c.Site.DateFormat == "" {
		c.Site.DateFormat = DefaultDateFormat
	}
	if c.Site.IndexTitle == "" {
		c.Site.IndexTitle = DefaultIndexTitle
	}

	if c.Content.PostsDir == "" {
		c.Content.PostsDir = "posts"
	}
	if c.Content.PagesDir == "" {
		c.Content.PagesDir = "pages"
	}
	if c.Content.ThemeDir == "" {
		c.Content.ThemeDir = "theme"
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = "static"
	}

	if c.Slugs.Mode == "" {
		c.Slugs.Mode = SlugModeSeparate
	}
	if c.ExcerptWords == 0 {
		c.ExcerptWords = DefaultExcerptWords
	}

	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
