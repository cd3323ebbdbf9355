package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadFile(t *testing.T) {
	withEnv(t, map[string]string{
		"HTTP_ADDRESS": "127.0.0.1:3000",
		"STORE_PATH":   "/var/lib/billeterie/data.db",
		"ADMIN_EMAIL":  "admin@jofrance.fr",
		"TICKETS_DIR":  "/var/lib/billeterie/tickets",
	})

	conf := NewDefaultConfig()

	if err := LoadFile("testdata/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := InterpolatedInt(slog.LevelInfo), conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected '%v', got '%v'", e, g)
	}

	if e, g := "127.0.0.1:3000", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := true, bool(conf.HTTP.Session.Cookie.Secure); e != g {
		t.Errorf("conf.HTTP.Session.Cookie.Secure: expected '%v', got '%v'", e, g)
	}

	if e, g := 2*time.Hour, time.Duration(conf.HTTP.Session.Cookie.MaxAge); e != g {
		t.Errorf("conf.HTTP.Session.Cookie.MaxAge: expected '%v', got '%v'", e, g)
	}

	if e, g := "/var/lib/billeterie/data.db", string(conf.Store.Path); e != g {
		t.Errorf("conf.Store.Path: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(conf.Auth.Admins); e != g {
		t.Fatalf("len(conf.Auth.Admins): expected '%v', got '%v'", e, g)
	}

	if e, g := "admin@jofrance.fr", conf.Auth.Admins[0]; e != g {
		t.Errorf("conf.Auth.Admins[0]: expected '%v', got '%v'", e, g)
	}

	if e, g := "user.email in admins", conf.Auth.Rules[0]; e != g {
		t.Errorf("conf.Auth.Rules[0]: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedFloat(0.5), conf.Auth.RateLimit.Rate; e != g {
		t.Errorf("conf.Auth.RateLimit.Rate: expected '%v', got '%v'", e, g)
	}

	if e, g := InterpolatedInt(3), conf.Auth.RateLimit.Burst; e != g {
		t.Errorf("conf.Auth.RateLimit.Burst: expected '%v', got '%v'", e, g)
	}

	if e, g := "local", string(conf.Tickets.Archive.Type); e != g {
		t.Errorf("conf.Tickets.Archive.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := "/var/lib/billeterie/tickets", conf.Tickets.Archive.Options.Data["dir"]; e != g {
		t.Errorf("conf.Tickets.Archive.Options.Data[\"dir\"]: expected '%v', got '%v'", e, g)
	}
}

func TestInterpolateDefaults(t *testing.T) {
	withEnv(t, map[string]string{
		"BILLETERIE_HTTP_ADDRESS": ":9090",
	})

	conf := NewDefaultConfig()

	if err := Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":9090", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := "data.db", string(conf.Store.Path); e != g {
		t.Errorf("conf.Store.Path: expected '%v', got '%v'", e, g)
	}

	if e, g := "none", string(conf.Tickets.Archive.Type); e != g {
		t.Errorf("conf.Tickets.Archive.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(conf.Auth.Admins); e != g {
		t.Errorf("len(conf.Auth.Admins): expected '%v', got '%v'", e, g)
	}

	if e, g := 24*time.Hour, time.Duration(conf.HTTP.Session.Cookie.MaxAge); e != g {
		t.Errorf("conf.HTTP.Session.Cookie.MaxAge: expected '%v', got '%v'", e, g)
	}
}

func TestDump(t *testing.T) {
	var buff bytes.Buffer

	if err := Dump(&buff, NewDefaultConfig()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	dump := buff.String()

	for _, expected := range []string{"${BILLETERIE_HTTP_ADDRESS:-:8080}", "# Webserver configuration", "# Admin access rules", "user.email in admins"} {
		if !strings.Contains(dump, expected) {
			t.Errorf("dump: expected to contain '%s', got '%s'", expected, dump)
		}
	}
}
