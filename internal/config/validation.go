package config

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
)

var pageFilePattern = regexp.MustCompile(`^[^/\\]+\.html$`)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	errs := validation.Errors{}
	collect := func(key string, err error) {
		if err != nil {
			errs[key] = err
		}
	}

	collect("site", validation.ValidateStruct(&c.Site,
		validation.Field(&c.Site.Title, validation.Required),
		validation.Field(&c.Site.BaseURL, validation.Required,
			validation.When(!strings.HasPrefix(c.Site.BaseURL, "/"), is.URL)),
		validation.Field(&c.Site.DateFormat, validation.Required),
		validation.Field(&c.Site.Pages),
	))
	collect("content", validation.ValidateStruct(&c.Content,
		validation.Field(&c.Content.PostsDir, validation.Required, validation.By(relativeDir)),
		validation.Field(&c.Content.PagesDir, validation.Required, validation.By(relativeDir)),
		validation.Field(&c.Content.ThemeDir, validation.Required, validation.By(relativeDir)),
		validation.Field(&c.Content.StaticDir, validation.Required, validation.By(relativeDir),
			validation.NotIn(".").Error("must name a subdirectory of the content root")),
	))
	collect("slugs", validation.ValidateStruct(&c.Slugs,
		validation.Field(&c.Slugs.Mode, validation.In(SlugModeSeparate, SlugModeShared)),
		validation.Field(&c.Slugs.MaxLength, validation.Min(0)),
	))
	collect("excerpt_words", validation.Validate(c.ExcerptWords, validation.Min(1)))

	if len(errs) == 0 {
		return nil
	}
	return ferrors.WrapError(errs, ferrors.CategoryConfig, "invalid configuration").Build()
}

// Validate implements validation.Validatable.
func (p PageConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.File, validation.Required,
			validation.Match(pageFilePattern).Error("must be an .html file name without directories")),
	)
}

func relativeDir(value any) error {
	s, _ := value.(string)
	if !fs.ValidPath(s) {
		return errors.New("must be a clean path relative to the content root")
	}
	return nil
}
