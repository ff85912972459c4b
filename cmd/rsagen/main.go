// Command rsagen is the demonstration harness for package rsago: generate a
// key pair of a given bit length and print it base64-encoded, encrypt a
// UTF-8 string and print the ciphertext hex, or decrypt hex ciphertext and
// print the recovered plaintext. It is not part of the cryptographic core
// (spec §6) — it only exercises the library's public API.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tomsons/rsago"
	"github.com/tomsons/rsago/internal/labelhash"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	engine := rsago.NewEngine()
	engine.Logger = log

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(engine, os.Args[2:])
	case "encrypt":
		err = runEncrypt(engine, os.Args[2:])
	case "decrypt":
		err = runDecrypt(engine, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Errorf("rsagen: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  rsagen generate <bits>")
	fmt.Fprintln(os.Stderr, "  rsagen encrypt <pubkey-b64> <message> [identity]")
	fmt.Fprintln(os.Stderr, "  rsagen decrypt <privkey-b64> <hex-ciphertext> [identity]")
}

func runGenerate(engine *rsago.Engine, args []string) error {
	if len(args) != 1 {
		usage()
		return fmt.Errorf("generate: expected <bits>")
	}
	bits, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("generate: invalid bit length %q", args[0])
	}

	pub, priv, err := engine.GenerateKey(bits)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	pubBlob, err := rsago.EncodePublicKey(pub)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	privBlob, err := rsago.EncodePrivateKey(priv)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Printf("public:  %s\n", pubBlob)
	fmt.Printf("private: %s\n", privBlob)
	return nil
}

func runEncrypt(engine *rsago.Engine, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		usage()
		return fmt.Errorf("encrypt: expected <pubkey-b64> <message> [identity]")
	}

	pub, err := rsago.DecodePublicKey(args[0])
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	var ciphertext []byte
	if len(args) == 3 {
		label := labelhash.Derive([]byte(args[2]))
		ciphertext, err = engine.EncryptOAEPWithLabel(pub, label, []byte(args[1]))
	} else {
		ciphertext, err = engine.EncryptOAEP(pub, []byte(args[1]))
	}
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	fmt.Println(hex.EncodeToString(ciphertext))
	return nil
}

func runDecrypt(engine *rsago.Engine, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		usage()
		return fmt.Errorf("decrypt: expected <privkey-b64> <hex-ciphertext> [identity]")
	}

	priv, err := rsago.DecodePrivateKey(args[0])
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	ciphertext, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("decrypt: invalid hex ciphertext: %w", err)
	}

	var plaintext []byte
	if len(args) == 3 {
		label := labelhash.Derive([]byte(args[2]))
		plaintext, err = engine.DecryptOAEPWithLabel(priv, label, ciphertext, rsago.OpBlindedCRT)
	} else {
		plaintext, err = engine.DecryptOAEP(priv, ciphertext, rsago.OpBlindedCRT)
	}
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	fmt.Println(string(plaintext))
	return nil
}
