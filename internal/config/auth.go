package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Admins    InterpolatedStringSlice `yaml:"admins"`
	Rules     InterpolatedStringSlice `yaml:"rules"`
	RateLimit RateLimit               `yaml:"rateLimit"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Admins: InterpolatedStringSlice{
			"${BILLETERIE_ADMIN_EMAIL}",
		},
		Rules: InterpolatedStringSlice{
			"user.email in admins",
		},
		RateLimit: RateLimit{
			Rate:  1,
			Burst: 10,
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                 []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".admins":          []*yaml.Comment{yaml.HeadComment(" Email addresses of the administrators")},
		".rules":           []*yaml.Comment{yaml.HeadComment(" Admin access rules, a user is an administrator if any rule evaluates to true", " Available variables: user.id, user.email, user.firstName, user.lastName, admins", " See https://expr-lang.org/docs/language-definition")},
		".rateLimit":       []*yaml.Comment{yaml.HeadComment(" Login and registration rate limiting, per client address")},
		".rateLimit.rate":  []*yaml.Comment{yaml.HeadComment(" Allowed requests per second")},
		".rateLimit.burst": []*yaml.Comment{yaml.HeadComment(" Maximum burst of requests")},
	}
}
