package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cretpw" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "s3cretpw") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrongpw") {
		t.Fatal("wrong password accepted")
	}
}
