// Command hashpass prints the encoded argon2id hash of a master password,
// for use as the server's master password hash setting.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/passkeep/passkeep/internal/server/auth"
)

func main() {

	fmt.Fprint(os.Stderr, "Master password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	hash, err := auth.HashPassword(string(pw))
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	fmt.Println(hash)
}
