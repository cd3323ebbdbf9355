package config

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Logger  Logger  `yaml:"logger"`
	HTTP    HTTP    `yaml:"http"`
	Store   Store   `yaml:"store"`
	Auth    Auth    `yaml:"auth"`
	Tickets Tickets `yaml:"tickets"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Logger:  NewDefaultLoggerConfig(),
		HTTP:    NewDefaultHTTPConfig(),
		Store:   NewDefaultStoreConfig(),
		Auth:    NewDefaultAuthConfig(),
		Tickets: NewDefaultTicketsConfig(),
	}
}

// Interpolate expands the environment expressions left in conf, i.e. the ones
// coming from default values.
func Interpolate(conf *Config) error {
	var buff bytes.Buffer

	if err := Dump(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	if err := Load(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func LoadFile(path string, conf *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	if err := Load(file, conf); err != nil {
		return errors.Wrapf(err, "could not load '%s'", path)
	}

	return nil
}

func Load(r io.Reader, conf *Config) error {
	decoder := yaml.NewDecoder(r)

	if err := decoder.Decode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var sections = map[string]yaml.CommentMap{
	"$.logger":  NewLoggerConfigCommentMap(),
	"$.http":    NewHTTPConfigCommentMap(),
	"$.store":   NewStoreConfigCommentMap(),
	"$.auth":    NewAuthConfigCommentMap(),
	"$.tickets": NewTicketsConfigCommentMap(),
}

func Dump(w io.Writer, conf *Config) error {
	comments := yaml.CommentMap{}
	for sectionPath, sectionComments := range sections {
		for path, comment := range sectionComments {
			comments[sectionPath+path] = comment
		}
	}

	encoder := yaml.NewEncoder(w, yaml.WithComment(comments))
	defer encoder.Close()

	if err := encoder.Encode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
