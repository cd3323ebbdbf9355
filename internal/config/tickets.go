package config

import "github.com/goccy/go-yaml"

type Tickets struct {
	Archive Archive `yaml:"archive"`
}

type Archive struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultTicketsConfig() Tickets {
	return Tickets{
		Archive: Archive{
			Type: "${BILLETERIE_TICKETS_ARCHIVE_TYPE:-none}",
			Options: &InterpolatedMap{
				Data: map[string]any{},
			},
		},
	}
}

func NewTicketsConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" E-tickets configuration")},
		".archive": []*yaml.Comment{yaml.HeadComment(" Archive of issued e-tickets")},
		".archive.type": []*yaml.Comment{
			yaml.HeadComment(" Archive type", " Available: none, local, s3"),
		},
		".archive.options": []*yaml.Comment{
			yaml.HeadComment(" Archive options"),
			yaml.FootComment(
				" local archive",
				" options:",
				"   dir: ./tickets",
				"",
				" s3 archive",
				" options:",
				"   endpoint: s3.example.org",
				"   accessKey: ${BILLETERIE_S3_ACCESS_KEY}",
				"   secretKey: ${BILLETERIE_S3_SECRET_KEY}",
				"   bucket: tickets",
				"   secure: true",
				"   region: us-east-1",
			),
		},
	}
}
