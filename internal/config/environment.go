package config

import (
	"os"
	"strconv"
	"time"

	"github.com/drone/envsubst"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var getEnv = os.Getenv

// interpolate decodes a scalar YAML value as a string and expands the
// ${VAR}, ${VAR:-default} expressions it contains.
func interpolate(unmarshal func(any) error) (string, error) {
	var raw string

	if err := unmarshal(&raw); err != nil {
		return "", errors.WithStack(err)
	}

	str, err := envsubst.Eval(raw, getEnv)
	if err != nil {
		return "", errors.Wrapf(err, "could not interpolate '%s'", raw)
	}

	return str, nil
}

type InterpolatedString string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (is *InterpolatedString) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	*is = InterpolatedString(str)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedString)

type InterpolatedInt int

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ii *InterpolatedInt) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	value, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return errors.WithStack(err)
	}

	*ii = InterpolatedInt(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedInt)

type InterpolatedFloat float64

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ifl *InterpolatedFloat) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return errors.WithStack(err)
	}

	*ifl = InterpolatedFloat(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedFloat)

type InterpolatedBool bool

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ib *InterpolatedBool) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	value, err := strconv.ParseBool(str)
	if err != nil {
		return errors.WithStack(err)
	}

	*ib = InterpolatedBool(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedBool)

type InterpolatedStringSlice []string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (iss *InterpolatedStringSlice) UnmarshalYAML(unmarshal func(any) error) error {
	var values []string

	if err := unmarshal(&values); err != nil {
		return errors.WithStack(err)
	}

	interpolated := make([]string, 0, len(values))

	for _, raw := range values {
		str, err := envsubst.Eval(raw, getEnv)
		if err != nil {
			return errors.Wrapf(err, "could not interpolate '%s'", raw)
		}

		// Allows lists to be emptied through an unset variable
		if str == "" {
			continue
		}

		interpolated = append(interpolated, str)
	}

	*iss = interpolated

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedStringSlice)

type InterpolatedDuration time.Duration

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (id *InterpolatedDuration) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		seconds, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errors.WithStack(err)
		}

		duration = time.Duration(seconds) * time.Second
	}

	*id = InterpolatedDuration(duration)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (id InterpolatedDuration) MarshalYAML() (any, error) {
	return time.Duration(id).String(), nil
}

var (
	_ yaml.InterfaceUnmarshaler = new(InterpolatedDuration)
	_ yaml.InterfaceMarshaler   = InterpolatedDuration(0)
)

type InterpolatedMap struct {
	Data map[string]any
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (im *InterpolatedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var data map[string]any

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	interpolated, err := interpolateValue(data)
	if err != nil {
		return errors.WithStack(err)
	}

	im.Data, _ = interpolated.(map[string]any)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (im *InterpolatedMap) MarshalYAML() (any, error) {
	return im.Data, nil
}

var (
	_ yaml.InterfaceUnmarshaler = new(InterpolatedMap)
	_ yaml.InterfaceMarshaler   = new(InterpolatedMap)
)

func interpolateValue(value any) (any, error) {
	switch typ := value.(type) {
	case string:
		str, err := envsubst.Eval(typ, getEnv)
		if err != nil {
			return nil, errors.Wrapf(err, "could not interpolate '%s'", typ)
		}

		return str, nil

	case map[string]any:
		for key, item := range typ {
			interpolated, err := interpolateValue(item)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[key] = interpolated
		}

	case []any:
		for idx, item := range typ {
			interpolated, err := interpolateValue(item)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[idx] = interpolated
		}
	}

	return value, nil
}
