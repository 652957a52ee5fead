package crypto

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(4) // min cost keeps the test fast

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("password stored in plain text")
	}
	if !h.Verify("s3cret", hash) {
		t.Fatalf("correct password rejected")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash with fallback cost: %v", err)
	}
	if !h.Verify("pw", hash) {
		t.Fatalf("round trip failed")
	}
}
