package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature_RoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{"type":"checkout.session.completed"}`)
	header := Sign(body, "whsec_test", now)

	assert.NoError(t, VerifySignature(header, body, "whsec_test", now))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{}`)
	header := Sign(body, "whsec_test", now)

	assert.ErrorIs(t, VerifySignature(header, body, "whsec_other", now), ErrSignatureMismatch)
}

func TestVerifySignature_TamperedBody(t *testing.T) {
	now := time.Unix(1700000000, 0)
	header := Sign([]byte(`{"amount":10}`), "whsec_test", now)

	assert.ErrorIs(t, VerifySignature(header, []byte(`{"amount":9999}`), "whsec_test", now), ErrSignatureMismatch)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	body := []byte(`{}`)
	now := time.Now()

	assert.ErrorIs(t, VerifySignature("", body, "s", now), ErrBadSignatureHeader)
	assert.ErrorIs(t, VerifySignature("v1=abc", body, "s", now), ErrBadSignatureHeader)
	assert.ErrorIs(t, VerifySignature("t=123", body, "s", now), ErrBadSignatureHeader)
	assert.ErrorIs(t, VerifySignature("t=notanumber,v1=abc", body, "s", now), ErrBadSignatureHeader)
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	signedAt := time.Unix(1700000000, 0)
	body := []byte(`{}`)
	header := Sign(body, "whsec_test", signedAt)

	assert.ErrorIs(t, VerifySignature(header, body, "whsec_test", signedAt.Add(10*time.Minute)), ErrTimestampTooOld)
}

func TestVerifySignature_AcceptsAnyMatchingV1(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{}`)
	good := Sign(body, "whsec_test", now)
	// prepend a stale signature from a rotated secret
	header := good[:len("t=1700000000")] + ",v1=deadbeef" + good[len("t=1700000000"):]

	assert.NoError(t, VerifySignature(header, body, "whsec_test", now))
}
