package security

import "testing"

func TestHasherGenerateSaltIsUnique(t *testing.T) {
	hasher := NewHasher(Argon2Params{})

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		salt, err := hasher.GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt returned error: %v", err)
		}
		if salt == "" {
			t.Fatal("GenerateSalt returned empty salt")
		}
		if seen[salt] {
			t.Fatalf("GenerateSalt produced a repeated salt %q", salt)
		}
		seen[salt] = true
	}
}

func TestHasherHashIsDeterministicPerSalt(t *testing.T) {
	hasher := NewHasher(Argon2Params{})

	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}

	first, err := hasher.Hash("theracoon", salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("theracoon", salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first != second {
		t.Fatal("same password and salt produced different digests")
	}

	otherSalt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	third, err := hasher.Hash("theracoon", otherSalt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if third == first {
		t.Fatal("distinct salts produced identical digests")
	}
}

func TestHasherHashRejectsEmptySalt(t *testing.T) {
	hasher := NewHasher(Argon2Params{})

	if _, err := hasher.Hash("theracoon", ""); err == nil {
		t.Fatal("expected error for empty salt")
	}
}

func TestHasherVerify(t *testing.T) {
	hasher := NewHasher(Argon2Params{})

	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	hashed, err := hasher.Hash("theracoon", salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := hasher.Verify("theracoon", salt, hashed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = hasher.Verify("not-the-raccoon", salt, hashed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHasherVerifyRejectsEmptyArguments(t *testing.T) {
	hasher := NewHasher(Argon2Params{})

	if _, err := hasher.Verify("theracoon", "", "digest"); err == nil {
		t.Fatal("expected error for empty salt")
	}
	if _, err := hasher.Verify("theracoon", "salt", ""); err == nil {
		t.Fatal("expected error for empty hash")
	}
}
