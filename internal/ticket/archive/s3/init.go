package s3

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/jofrance/billeterie/internal/ticket/archive"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const Type archive.Type = "s3"

func init() {
	archive.Register(Type, CreateArchiveFromOptions)
}

type Options struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Secure    bool   `mapstructure:"secure"`
}

func CreateArchiveFromOptions(options any) (archive.Archive, error) {
	opts := Options{
		Secure: true,
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

	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.Errorf("'%s' archive: endpoint and bucket are required", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' archive client", Type)
	}

	return NewArchive(client, opts.Bucket, opts.Prefix), nil
}
