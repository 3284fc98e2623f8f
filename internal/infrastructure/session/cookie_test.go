package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCodec_MintParseRoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	value, err := codec.Mint("sid-123")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	sid, err := codec.Parse(value)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if sid != "sid-123" {
		t.Fatalf("expected sid-123, got %q", sid)
	}
}

func TestCodec_RejectsTamperedValue(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	value, err := codec.Mint("sid-123")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	tampered := value[:len(value)-2] + "xx"
	if _, err := codec.Parse(tampered); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie, got %v", err)
	}
}

func TestCodec_RejectsForeignSecret(t *testing.T) {
	value, err := NewCodec("their-secret", time.Hour).Mint("sid-123")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if _, err := NewCodec("our-secret", time.Hour).Parse(value); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie, got %v", err)
	}
}

func TestCodec_RejectsGarbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	for _, value := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Parse(value); !errors.Is(err, ErrBadCookie) {
			t.Fatalf("Parse(%q): expected ErrBadCookie, got %v", value, err)
		}
	}
}

func TestCodec_SetAndClearCookie(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	rec := httptest.NewRecorder()
	codec.SetCookie(rec, "value", true)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	set := cookies[0]
	if set.Name != CookieName || set.Value != "value" {
		t.Fatalf("unexpected cookie: %+v", set)
	}
	if !set.HttpOnly || !set.Secure || set.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", set)
	}

	rec = httptest.NewRecorder()
	codec.ClearCookie(rec, true)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("clear cookie must expire immediately: %+v", cookies)
	}
}
