package signature

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// personalMessagePrefix is the EIP-191 domain separation tag. Prefixing the
// message length keeps wallet login signatures from being replayed as raw
// transaction signatures.
const personalMessagePrefix = "\x19Ethereum Signed Message:\n"

var (
	ErrInvalidSignature = errors.New("invalid signature encoding")
	ErrRecoveryFailed   = errors.New("public key recovery failed")
)

// Keccak256 hashes data with legacy Keccak-256
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// HashPersonalMessage hashes a message per the Ethereum personal-message
// convention: keccak256(prefix || len(message) || message)
func HashPersonalMessage(message []byte) []byte {
	prefixed := fmt.Sprintf("%s%d", personalMessagePrefix, len(message))
	return Keccak256([]byte(prefixed), message)
}

// ParseRPCSignature decodes a hex RPC signature into the 65-byte [R||S||V]
// form expected by recovery, normalizing V from 27/28 to 0/1
func ParseRPCSignature(signatureHex string) ([]byte, error) {
	sigHex := strings.TrimPrefix(strings.TrimSpace(signatureHex), "0x")
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(sig) != 65 {
		return nil, ErrInvalidSignature
	}

	v := sig[64]
	if v == 27 || v == 28 {
		v -= 27
	}
	if v > 1 {
		return nil, ErrInvalidSignature
	}
	sig[64] = v

	return sig, nil
}

// RecoverAddress recovers the signer address from a message hash and a
// parsed 65-byte signature
func RecoverAddress(msgHash, sig []byte) (string, error) {
	pubKey, err := ethcrypto.Ecrecover(msgHash, sig)
	if err != nil {
		return "", ErrRecoveryFailed
	}
	if len(pubKey) != 65 {
		return "", ErrRecoveryFailed
	}

	// Address = last 20 bytes of keccak256(uncompressed pubkey without the
	// 0x04 prefix byte)
	addrBytes := Keccak256(pubKey[1:])[12:]
	return "0x" + hex.EncodeToString(addrBytes), nil
}

// Verify reports whether signatureHex over message was produced by the
// holder of claimedAddress. Malformed input and recovery failures return
// false — nothing here ever reaches the caller as an error, so a bad
// signature is indistinguishable from a mismatched one.
func Verify(claimedAddress, signatureHex, message string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	sig, err := ParseRPCSignature(signatureHex)
	if err != nil {
		return false
	}

	msgHash := HashPersonalMessage([]byte(message))
	recovered, err := RecoverAddress(msgHash, sig)
	if err != nil {
		return false
	}

	return strings.EqualFold(recovered, claimedAddress)
}
