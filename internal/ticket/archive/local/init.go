package local

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/jofrance/billeterie/internal/ticket/archive"
	"github.com/pkg/errors"
)

const Type archive.Type = "local"

func init() {
	archive.Register(Type, CreateArchiveFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir"`
}

func CreateArchiveFromOptions(options any) (archive.Archive, error) {
	opts := Options{
		Dir: "tickets",
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' archive options decoder", Type)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' archive options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' archive: dir must not be empty", Type)
	}

	return NewArchive(opts.Dir), nil
}
