package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString `yaml:"address"`
	BaseURL InterpolatedString `yaml:"baseUrl"`
	Session Session            `yaml:"session"`
	Debug   InterpolatedBool   `yaml:"debug"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Path     InterpolatedString   `yaml:"path"`
	HTTPOnly InterpolatedBool     `yaml:"httpOnly"`
	Secure   InterpolatedBool     `yaml:"secure"`
	MaxAge   InterpolatedDuration `yaml:"maxAge"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${BILLETERIE_HTTP_ADDRESS:-:8080}",
		BaseURL: "${BILLETERIE_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Keys: InterpolatedStringSlice{"${BILLETERIE_HTTP_SESSION_KEY}"},
			Cookie: Cookie{
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   InterpolatedDuration(24 * time.Hour),
			},
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                       []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":               []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":               []*yaml.Comment{yaml.HeadComment(" Public base URL of the webserver")},
		".debug":                 []*yaml.Comment{yaml.HeadComment(" Expose runtime profiles and a database probe under /admin/debug")},
		".session.keys":          []*yaml.Comment{yaml.HeadComment(" Session cookie signing keys", " A random key is generated at startup if none is provided")},
		".session.cookie":        []*yaml.Comment{yaml.HeadComment(" Session cookie attributes")},
		".session.cookie.maxAge": []*yaml.Comment{yaml.HeadComment(" Session lifetime")},
	}
}
