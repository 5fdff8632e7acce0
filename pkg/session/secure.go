package session

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// MinSecretLength is the shortest secret accepted by NewSecureCodec.
const MinSecretLength = 32

const (
	keyIterations = 10000
	keyLength     = 32
	separator     = "--"
)

// SecureCodec encrypts session content with AES-256-GCM and signs the
// result with HMAC-SHA256. Both keys are derived from the secret with
// PBKDF2, salted by Config.Salt and Config.SignedSalt.
//
// Cookie value format: base64url(nonce|ciphertext) "--" base64url(signature).
type SecureCodec struct {
	aead    cipher.AEAD
	signKey []byte
}

// NewSecureCodec derives the codec keys from cfg.
func NewSecureCodec(cfg Config) (*SecureCodec, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrBadSecret
	}
	def := DefaultConfig()
	if cfg.Salt == "" {
		cfg.Salt = def.Salt
	}
	if cfg.SignedSalt == "" {
		cfg.SignedSalt = def.SignedSalt
	}

	encKey := pbkdf2.Key([]byte(cfg.Secret), []byte(cfg.Salt), keyIterations, keyLength, sha256.New)
	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &SecureCodec{
		aead:    aead,
		signKey: pbkdf2.Key([]byte(cfg.Secret), []byte(cfg.SignedSalt), keyIterations, keyLength, sha256.New),
	}, nil
}

// Encode serializes, encrypts and signs the content.
func (c *SecureCodec) Encode(_ context.Context, content *params.Object) (string, error) {
	if content == nil {
		content = params.NewObject()
	}
	plaintext, err := json.Marshal(content)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(c.aead.Seal(nonce, nonce, plaintext, nil))

	return payload + separator + base64.RawURLEncoding.EncodeToString(c.sign(payload)), nil
}

// Decode verifies, decrypts and parses a cookie value.
func (c *SecureCodec) Decode(_ context.Context, value string) (*params.Object, error) {
	i := strings.LastIndex(value, separator)
	if i < 0 {
		return nil, ErrInvalidSignature
	}
	payload, sigText := value[:i], value[i+len(separator):]

	sig, err := base64.RawURLEncoding.DecodeString(sigText)
	if err != nil || !hmac.Equal(sig, c.sign(payload)) {
		return nil, ErrInvalidSignature
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrDecrypt
	}
	ns := c.aead.NonceSize()
	if len(data) < ns {
		return nil, ErrDecrypt
	}
	plaintext, err := c.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	v, err := params.Decode(plaintext)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	obj, ok := v.(*params.Object)
	if !ok {
		return nil, ErrInvalidPayload
	}
	return obj, nil
}

func (c *SecureCodec) sign(payload string) []byte {
	mac := hmac.New(sha256.New, c.signKey)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
