package security

import (
	"errors"
	"testing"
	"time"
)

const (
	testAudience = "phresh:auth"
	testIssuer   = "phresh.io"
)

var testSecret = []byte("super-secret-signing-key")

func issueTestToken(t *testing.T, opts ClaimsOptions, secret []byte) string {
	t.Helper()

	if opts.Issuer == "" {
		opts.Issuer = testIssuer
	}
	if opts.Audience == "" {
		opts.Audience = testAudience
	}
	if opts.Subject == "" {
		opts.Subject = "lebron@james.io"
	}
	if opts.Username == "" {
		opts.Username = "lebronjames"
	}
	if opts.TTL == 0 {
		opts.TTL = time.Hour
	}

	codec := NewTokenCodec()
	signed, err := codec.Encode(NewAccessTokenClaims(opts), secret)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	return signed
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec()
	signed := issueTestToken(t, ClaimsOptions{}, testSecret)

	claims, err := codec.Decode(signed, testSecret, testAudience)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if claims.Username != "lebronjames" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Subject != "lebron@james.io" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Issuer != testIssuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenCodecWrongSecret(t *testing.T) {
	codec := NewTokenCodec()
	signed := issueTestToken(t, ClaimsOptions{}, testSecret)

	if _, err := codec.Decode(signed, []byte("some-other-secret"), testAudience); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenCodecExpired(t *testing.T) {
	codec := NewTokenCodec()
	signed := issueTestToken(t, ClaimsOptions{
		IssuedAt: time.Now().Add(-2 * time.Hour),
		TTL:      time.Hour,
	}, testSecret)

	if _, err := codec.Decode(signed, testSecret, testAudience); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodecAudienceMismatch(t *testing.T) {
	codec := NewTokenCodec()
	signed := issueTestToken(t, ClaimsOptions{Audience: "fake:audience"}, testSecret)

	if _, err := codec.Decode(signed, testSecret, testAudience); !errors.Is(err, ErrAudienceMismatch) {
		t.Fatalf("expected ErrAudienceMismatch, got %v", err)
	}
}

func TestTokenCodecMalformed(t *testing.T) {
	codec := NewTokenCodec()

	cases := []string{
		"",
		"   ",
		"not-a-token",
		"aaa.bbb",
	}

	for _, tc := range cases {
		if _, err := codec.Decode(tc, testSecret, testAudience); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Decode(%q): expected ErrMalformedToken, got %v", tc, err)
		}
	}
}

func TestTokenCodecMissingUsernameClaim(t *testing.T) {
	codec := NewTokenCodec()

	claims := NewAccessTokenClaims(ClaimsOptions{
		Issuer:   testIssuer,
		Audience: testAudience,
		Subject:  "lebron@james.io",
		TTL:      time.Hour,
	})

	signed, err := codec.Encode(claims, testSecret)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	if _, err := codec.Decode(signed, testSecret, testAudience); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken for missing username, got %v", err)
	}
}

func TestNewAccessTokenClaimsExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := NewAccessTokenClaims(ClaimsOptions{
		Issuer:   testIssuer,
		Audience: testAudience,
		Subject:  "lebron@james.io",
		Username: "lebronjames",
		IssuedAt: issuedAt,
		TTL:      30 * time.Minute,
	})

	if got := claims.IssuedAt.Time; !got.Equal(issuedAt) {
		t.Fatalf("unexpected issued at %v", got)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issuedAt.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", got)
	}
}
