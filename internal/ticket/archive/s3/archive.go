package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path"

	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/jofrance/billeterie/internal/ticket/archive"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Archive uploads e-tickets as JSON objects in a S3 bucket.
type Archive struct {
	client *minio.Client
	bucket string
	prefix string
}

// Store implements archive.Archive.
func (a *Archive) Store(ctx context.Context, t ticket.Ticket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return errors.WithStack(err)
	}

	key := path.Join(a.prefix, archive.Key(t))

	info, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return errors.Wrapf(err, "could not upload e-ticket '%s'", key)
	}

	endpoint := a.client.EndpointURL().JoinPath(a.bucket, key)

	slog.DebugContext(ctx, "e-ticket archived",
		log.ScrubbedURL("url", endpoint.String()),
		slog.String("etag", info.ETag),
	)

	return nil
}

func NewArchive(client *minio.Client, bucket string, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ archive.Archive = &Archive{}
