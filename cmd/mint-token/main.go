// Command mint-token issues a maintainer token for the admin endpoints.
//
// Usage:
//
//	mint-token -subject nino [-ttl 12h]
//
// Requires AUTH_MAINTAINER_SECRET environment variable to be set; the
// issuer defaults to the server's and can be overridden with AUTH_ISSUER.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nkalandadze/zmna-backend/internal/auth"
)

func main() {
	subject := flag.String("subject", "", "token subject, typically the maintainer's name")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	secret := os.Getenv("AUTH_MAINTAINER_SECRET")
	if secret == "" {
		log.Fatal("AUTH_MAINTAINER_SECRET environment variable is required")
	}
	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		issuer = "zmna-editor"
	}

	token, err := auth.NewTokenManager(secret, issuer, *ttl).Generate(*subject)
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}

	fmt.Println(token)
}
