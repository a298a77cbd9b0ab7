package hashid

import (
	"errors"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := New("test-salt", 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return codec
}

func TestRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	ids := []uint{1, 2, 7, 10, 99, 1000, 123456, 987654321}
	for _, id := range ids {
		token, err := codec.Encode(id)
		if err != nil {
			t.Fatalf("Encode(%d): %v", id, err)
		}
		if token == "" {
			t.Fatalf("Encode(%d): empty token", id)
		}

		decoded, err := codec.Decode(token)
		if err != nil {
			t.Fatalf("Decode(%q): %v", token, err)
		}
		if decoded != id {
			t.Fatalf("round trip: got %d, want %d", decoded, id)
		}
	}
}

func TestEncodeZero(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := codec.Encode(0); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Encode(0): got %v, want ErrInvalidToken", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	codec := newTestCodec(t)

	tokens := []string{"", "!!!", "not a token", "   ", "ZZZZZZZZZZZZZZZZZZ", "0"}
	for _, token := range tokens {
		if _, err := codec.Decode(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Decode(%q): got %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestDecodeForeignSalt(t *testing.T) {
	codec := newTestCodec(t)

	other, err := New("another-salt", 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, err := other.Encode(42)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if decoded, err := codec.Decode(token); err == nil && decoded == 42 {
		t.Fatalf("Decode with wrong salt returned the original id")
	}
}

func TestTokenHidesID(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(42)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if token == "42" {
		t.Fatalf("token must not be the plain id")
	}
}
