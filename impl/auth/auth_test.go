package auth

import "testing"

func TestCheckToken(t *testing.T) {
	a := New("s3cret")
	if err := a.CheckToken("s3cret"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := a.CheckToken("nope"); err == nil {
		t.Fatal("invalid token accepted")
	}
	if err := New("").CheckToken(""); err == nil {
		t.Fatal("empty configured token accepts everything")
	}
}
