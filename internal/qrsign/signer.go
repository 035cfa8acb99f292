// Package qrsign issues and validates the HMAC-signed QR payloads that
// authenticate a worker's physical check-in at a restaurant.
package qrsign

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"
	qrcode "github.com/skip2/go-qrcode"
)

// PayloadVersion is the only wire format the validator accepts. Older
// unversioned payloads are rejected as stale.
const PayloadVersion = 2

// Error codes surfaced to the scanning client. Any signature or secret
// mismatch maps to the single opaque INVALID_SIGNATURE code so the response
// never acts as an oracle for partial matches.
const (
	CodeInvalidFormat    = "INVALID_FORMAT"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeGPSOutOfRange    = "GPS_OUT_OF_RANGE"
)

var ErrMissingSecret = errors.New("qrsign: server signing secret is not configured")

// payload is the canonical signed content. Field order does not matter on the
// wire; signing always goes through RFC 8785 canonicalization.
type payload struct {
	JobID     string `json:"job_id"`
	OwnerID   string `json:"owner_id"`
	SecretKey string `json:"secret_key"`
	CreatedAt string `json:"created_at"`
}

// envelope is the full QR wire format: payload plus signature and version.
type envelope struct {
	payload
	Signature string `json:"signature"`
	Version   int    `json:"version"`
}

// Generated is the result of issuing a QR for a job.
type Generated struct {
	QRData    string // raw signed JSON string encoded into the QR image
	QRDataURL string // PNG data URL for direct rendering
	SecretKey string // one-time secret to persist alongside the job
	CreatedAt string
}

// Validation is the outcome of one scan.
type Validation struct {
	Valid     bool
	JobID     string
	OwnerID   string
	ErrorCode string
	Message   string
}

// Signer signs and verifies QR payloads with a server-side HMAC secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner fails when no secret is configured: silently signing with an
// empty key would make every QR forgeable.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

// Generate issues a fresh signed payload for a job: a random 16-byte hex
// secret key, an HMAC-SHA256 signature over the canonical JSON of the payload
// fields, and a PNG rendering of the result. The caller persists the secret
// key (upserting by job id) so reissuing supersedes any prior QR.
func (s *Signer) Generate(jobID, ownerID string) (Generated, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return Generated{}, fmt.Errorf("generate secret key: %w", err)
	}

	p := payload{
		JobID:     jobID,
		OwnerID:   ownerID,
		SecretKey: hex.EncodeToString(raw[:]),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	sig, err := s.sign(p)
	if err != nil {
		return Generated{}, err
	}

	env := envelope{payload: p, Signature: sig, Version: PayloadVersion}
	data, err := json.Marshal(env)
	if err != nil {
		return Generated{}, fmt.Errorf("marshal qr envelope: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return Generated{}, fmt.Errorf("encode qr png: %w", err)
	}

	return Generated{
		QRData:    string(data),
		QRDataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		SecretKey: p.SecretKey,
		CreatedAt: p.CreatedAt,
	}, nil
}

// Validate parses a scanned QR string and verifies its authenticity. When
// expectedSecret is non-empty (looked up from the job's stored QR record) the
// presented secret key must match it exactly; a reissued QR invalidates prior
// ones this way even though their signatures still verify.
func (s *Signer) Validate(qrRaw string, expectedSecret string) Validation {
	dec := json.NewDecoder(bytes.NewReader([]byte(qrRaw)))
	dec.DisallowUnknownFields()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return Validation{ErrorCode: CodeInvalidFormat, Message: "malformed QR payload"}
	}
	if env.Version != PayloadVersion {
		return Validation{ErrorCode: CodeInvalidFormat, Message: "stale QR format"}
	}
	if env.JobID == "" || env.OwnerID == "" || env.SecretKey == "" ||
		env.CreatedAt == "" || env.Signature == "" {
		return Validation{ErrorCode: CodeInvalidFormat, Message: "incomplete QR payload"}
	}

	want, err := s.sign(env.payload)
	if err != nil {
		return Validation{ErrorCode: CodeInvalidSignature, Message: "QR verification failed"}
	}
	if !hmac.Equal([]byte(want), []byte(env.Signature)) {
		return Validation{ErrorCode: CodeInvalidSignature, Message: "QR verification failed"}
	}
	if expectedSecret != "" &&
		subtle.ConstantTimeCompare([]byte(env.SecretKey), []byte(expectedSecret)) != 1 {
		return Validation{ErrorCode: CodeInvalidSignature, Message: "QR verification failed"}
	}

	return Validation{Valid: true, JobID: env.JobID, OwnerID: env.OwnerID}
}

// sign computes the hex HMAC-SHA256 of the RFC 8785 canonical form of p,
// excluding signature and version.
func (s *Signer) sign(p payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal qr payload: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize qr payload: %w", err)
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
