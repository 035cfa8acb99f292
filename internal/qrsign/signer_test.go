package qrsign_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/baitolink/backend/internal/qrsign"
)

const testSecret = "unit-test-signing-secret"

func newSigner(t *testing.T) *qrsign.Signer {
	t.Helper()
	s, err := qrsign.NewSigner(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSigner_RequiresSecret(t *testing.T) {
	if _, err := qrsign.NewSigner(""); err == nil {
		t.Fatal("NewSigner must refuse an empty secret")
	}
}

func TestGenerateValidate_RoundTrip(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-123", "owner-456")
	if err != nil {
		t.Fatal(err)
	}

	if len(gen.SecretKey) != 32 {
		t.Errorf("secret key should be 16 random bytes hex-encoded, got %d chars", len(gen.SecretKey))
	}
	if !strings.HasPrefix(gen.QRDataURL, "data:image/png;base64,") {
		t.Error("QRDataURL should be a PNG data URL")
	}

	v := s.Validate(gen.QRData, gen.SecretKey)
	if !v.Valid {
		t.Fatalf("round trip should validate, got %+v", v)
	}
	if v.JobID != "job-123" || v.OwnerID != "owner-456" {
		t.Errorf("validated ids = (%s, %s), want (job-123, owner-456)", v.JobID, v.OwnerID)
	}
}

func TestValidate_NoExpectedSecret(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Validate(gen.QRData, ""); !v.Valid {
		t.Errorf("validation without a stored-secret check should pass, got %+v", v)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	s := newSigner(t)
	for _, raw := range []string{"", "not json", "{", `[1,2,3]`} {
		v := s.Validate(raw, "")
		if v.Valid || v.ErrorCode != qrsign.CodeInvalidFormat {
			t.Errorf("Validate(%q) = %+v, want INVALID_FORMAT", raw, v)
		}
	}
}

func TestValidate_UnknownFieldRejected(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(gen.QRData), &m); err != nil {
		t.Fatal(err)
	}
	m["extra"] = "field"
	raw, _ := json.Marshal(m)

	v := s.Validate(string(raw), "")
	if v.Valid || v.ErrorCode != qrsign.CodeInvalidFormat {
		t.Errorf("payload with unknown field = %+v, want INVALID_FORMAT", v)
	}
}

func TestValidate_MissingField(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"job_id", "owner_id", "secret_key", "created_at", "signature"} {
		var m map[string]any
		if err := json.Unmarshal([]byte(gen.QRData), &m); err != nil {
			t.Fatal(err)
		}
		delete(m, field)
		raw, _ := json.Marshal(m)

		v := s.Validate(string(raw), "")
		if v.Valid || v.ErrorCode != qrsign.CodeInvalidFormat {
			t.Errorf("payload without %s = %+v, want INVALID_FORMAT", field, v)
		}
	}
}

func TestValidate_StaleVersion(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(gen.QRData), &m); err != nil {
		t.Fatal(err)
	}
	m["version"] = 1
	raw, _ := json.Marshal(m)

	v := s.Validate(string(raw), "")
	if v.Valid || v.ErrorCode != qrsign.CodeInvalidFormat {
		t.Errorf("version 1 payload = %+v, want INVALID_FORMAT", v)
	}
}

// flipChar changes the first character of a string value so the payload no
// longer matches its signature.
func flipChar(s string) string {
	if s == "" {
		return "x"
	}
	c := byte('a')
	if s[0] == 'a' {
		c = 'b'
	}
	return string(c) + s[1:]
}

func TestValidate_TamperSensitivity(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-abc", "owner-def")
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"job_id", "owner_id", "secret_key", "created_at", "signature"} {
		var m map[string]any
		if err := json.Unmarshal([]byte(gen.QRData), &m); err != nil {
			t.Fatal(err)
		}
		m[field] = flipChar(m[field].(string))
		raw, _ := json.Marshal(m)

		v := s.Validate(string(raw), "")
		if v.Valid {
			t.Errorf("tampered %s: payload still validated", field)
		}
		if v.ErrorCode != qrsign.CodeInvalidSignature {
			t.Errorf("tampered %s: errorCode = %s, want INVALID_SIGNATURE (never a distinct error)", field, v.ErrorCode)
		}
	}
}

func TestValidate_SupersededSecret(t *testing.T) {
	s := newSigner(t)
	first, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}

	// The old QR's signature still verifies cryptographically, but the stored
	// secret has moved on; it must be rejected as INVALID_SIGNATURE.
	v := s.Validate(first.QRData, second.SecretKey)
	if v.Valid || v.ErrorCode != qrsign.CodeInvalidSignature {
		t.Errorf("superseded QR = %+v, want INVALID_SIGNATURE", v)
	}

	if v := s.Validate(second.QRData, second.SecretKey); !v.Valid {
		t.Errorf("current QR should validate, got %+v", v)
	}
}

func TestValidate_WrongServerSecret(t *testing.T) {
	s := newSigner(t)
	gen, err := s.Generate("job-1", "owner-1")
	if err != nil {
		t.Fatal(err)
	}

	other, err := qrsign.NewSigner("a-different-secret")
	if err != nil {
		t.Fatal(err)
	}
	v := other.Validate(gen.QRData, gen.SecretKey)
	if v.Valid || v.ErrorCode != qrsign.CodeInvalidSignature {
		t.Errorf("cross-secret validation = %+v, want INVALID_SIGNATURE", v)
	}
}
