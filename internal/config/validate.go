package config

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	docconv "github.com/porticus-lab/go-docconv"
)

// Validate checks every section of c.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Page),
		validation.Field(&c.Image),
		validation.Field(&c.PDF),
		validation.Field(&c.Server),
		validation.Field(&c.Watch),
		validation.Field(&c.Chrome),
	)
}

func (p PageConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Size, validation.Required, validation.In("a3", "a4", "a5", "letter", "legal")),
		validation.Field(&p.Orientation, validation.Required, validation.In("portrait", "landscape")),
		validation.Field(&p.MarginCM, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&p.FontSize, validation.Min(4.0), validation.Max(72.0)),
	)
}

func (i ImageConfig) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.JPEGQuality, validation.Min(1), validation.Max(100)),
	)
}

func (p PDFConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TextMode, validation.Required, validation.In("heuristic", "parsed")),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.MaxUploadMB, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.CORSOrigins, validation.Each(validation.Required)),
	)
}

func (w WatchConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Output, validation.Required),
		validation.Field(&w.Target, validation.Required, validation.By(knownFormat)),
	)
}

func (c ChromeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Min(0)),
	)
}

func knownFormat(value interface{}) error {
	s, _ := value.(string)
	if _, err := docconv.ParseFormat(s); err != nil {
		return errors.New("must be one of pdf, docx, txt, html, png, jpg, zip")
	}
	return nil
}
