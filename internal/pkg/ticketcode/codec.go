// Package ticketcode seals a reservation's natural key into an opaque,
// scannable code. Codes are authenticated ciphertext: tampering with any byte
// fails decryption, and a fresh random nonce per Encode keeps two codes for
// the same reservation from ever looking alike.
package ticketcode

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKey    = errors.New("ticket key must be 32 bytes")
	ErrMalformedCode = errors.New("malformed ticket code")
)

// Payload is the reservation natural key carried inside a ticket code.
type Payload struct {
	RoomID     uuid.UUID
	StartTime  time.Time
	CustomerID uuid.UUID
	CreatedAt  time.Time
}

const payloadLen = 16 + 8 + 16 + 8

type Codec struct {
	key []byte
}

func NewCodec(key []byte) (*Codec, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Codec{key: k}, nil
}

func (c *Codec) Encode(p Payload) (string, error) {
	plain := make([]byte, payloadLen)
	copy(plain[0:16], p.RoomID[:])
	binary.BigEndian.PutUint64(plain[16:24], uint64(p.StartTime.Unix()))
	copy(plain[24:40], p.CustomerID[:])
	binary.BigEndian.PutUint64(plain[40:48], uint64(p.CreatedAt.Unix()))

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode returns ErrMalformedCode for anything that is not a code sealed with
// this codec's key. It never reports which part of the input was wrong.
func (c *Codec) Decode(code string) (Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return Payload{}, ErrMalformedCode
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return Payload{}, err
	}

	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return Payload{}, ErrMalformedCode
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return Payload{}, ErrMalformedCode
	}
	if len(plain) != payloadLen {
		return Payload{}, ErrMalformedCode
	}

	var p Payload
	copy(p.RoomID[:], plain[0:16])
	p.StartTime = time.Unix(int64(binary.BigEndian.Uint64(plain[16:24])), 0).UTC()
	copy(p.CustomerID[:], plain[24:40])
	p.CreatedAt = time.Unix(int64(binary.BigEndian.Uint64(plain[40:48])), 0).UTC()
	return p, nil
}
