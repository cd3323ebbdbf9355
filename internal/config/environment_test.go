package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()

	previous := getEnv
	getEnv = func(key string) string {
		return env[key]
	}

	t.Cleanup(func() {
		getEnv = previous
	})
}

func TestInterpolatedMap(t *testing.T) {
	type testCase struct {
		Path   string
		Env    map[string]string
		Assert func(t *testing.T, parsed InterpolatedMap)
	}

	testCases := []testCase{
		{
			Path: "testdata/environment/interpolated-map.yml",
			Env: map[string]string{
				"TEST_S3_ENDPOINT":   "localhost:9000",
				"TEST_S3_ACCESS_KEY": "minio",
				"TEST_S3_SECRET_KEY": "minio123",
				"TEST_S3_REGION":     "us-east-1",
			},
			Assert: func(t *testing.T, parsed InterpolatedMap) {
				if e, g := "localhost:9000", parsed.Data["endpoint"]; e != g {
					t.Errorf("parsed.Data[\"endpoint\"]: expected '%v', got '%v'", e, g)
				}

				if e, g := "tickets", parsed.Data["bucket"]; e != g {
					t.Errorf("parsed.Data[\"bucket\"]: expected '%v', got '%v'", e, g)
				}

				credentials := parsed.Data["credentials"].(map[string]any)

				if e, g := "minio123", credentials["secretKey"]; e != g {
					t.Errorf("parsed.Data[\"credentials\"][\"secretKey\"]: expected '%v', got '%v'", e, g)
				}

				regions := parsed.Data["regions"].([]any)

				if e, g := "us-east-1", regions[0]; e != g {
					t.Errorf("parsed.Data[\"regions\"][0]: expected '%v', got '%v'", e, g)
				}

				if e, g := "eu-west-3", regions[1]; e != g {
					t.Errorf("parsed.Data[\"regions\"][1]: expected '%v', got '%v'", e, g)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile(tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			withEnv(t, tc.Env)

			var interpolatedMap InterpolatedMap

			if err := yaml.Unmarshal(data, &interpolatedMap); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			tc.Assert(t, interpolatedMap)
		})
	}
}

func TestInterpolatedDuration(t *testing.T) {
	type testCase struct {
		Env      map[string]string
		Expected time.Duration
	}

	testCases := []testCase{
		{
			Env:      map[string]string{"SESSION_MAX_AGE": "30m"},
			Expected: 30 * time.Minute,
		},
		{
			Env:      map[string]string{"SESSION_MAX_AGE": "3600"},
			Expected: time.Hour,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile("testdata/environment/interpolated-duration.yml")
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			withEnv(t, tc.Env)

			config := struct {
				Duration InterpolatedDuration `yaml:"duration"`
			}{}

			if err := yaml.Unmarshal(data, &config); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, time.Duration(config.Duration); e != g {
				t.Errorf("config.Duration: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestInterpolatedStringSlice(t *testing.T) {
	data, err := os.ReadFile("testdata/environment/interpolated-string-slice.yml")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	withEnv(t, map[string]string{
		"FIRST_ADMIN": "admin@jofrance.fr",
	})

	config := struct {
		Admins InterpolatedStringSlice `yaml:"admins"`
	}{}

	if err := yaml.Unmarshal(data, &config); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := []string{"admin@jofrance.fr", "billeterie@jofrance.fr"}

	if e, g := len(expected), len(config.Admins); e != g {
		t.Fatalf("len(config.Admins): expected '%v', got '%v'", e, g)
	}

	for idx := range expected {
		if e, g := expected[idx], config.Admins[idx]; e != g {
			t.Errorf("config.Admins[%d]: expected '%v', got '%v'", idx, e, g)
		}
	}
}
