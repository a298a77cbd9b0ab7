package hashid

import (
	"errors"

	hashids "github.com/speps/go-hashids/v2"
)

var ErrInvalidToken = errors.New("invalid token")

// Codec obfuscates integer primary keys into short opaque tokens for URLs.
// It is reversible obfuscation, not authorization.
type Codec struct {
	h *hashids.HashID
}

func New(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id uint) (string, error) {
	if id == 0 {
		return "", ErrInvalidToken
	}
	return c.h.EncodeInt64([]int64{int64(id)})
}

// Decode reverses Encode. Any token that is malformed, decodes to more than
// one number, or does not yield a positive integer fails with ErrInvalidToken.
func (c *Codec) Decode(token string) (uint, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	ids, err := c.h.DecodeInt64WithError(token)
	if err != nil || len(ids) != 1 || ids[0] <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(ids[0]), nil
}
