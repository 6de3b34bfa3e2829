package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/paylock/paylocktest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}

	var broken PrivateKey
	if _, err := broken.Sign(msg); err == nil {
		t.Fatal("empty private key must not sign")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("different keys produce the same condition")
	}
	if empty.Condition() != nil {
		t.Fatal("empty key must not produce a condition")
	}
	assert.Nil(t, pub.Address().Validate())
}

func TestPrivKeyFromName(t *testing.T) {
	a := PrivKeyFromName("alice").PublicKey().Address()
	b := PrivKeyFromName("alice").PublicKey().Address()
	c := PrivKeyFromName("bob").PublicKey().Address()
	if !a.Equals(b) {
		t.Fatal("name derived keys must be deterministic")
	}
	if a.Equals(c) {
		t.Fatal("different names must derive different keys")
	}
}
