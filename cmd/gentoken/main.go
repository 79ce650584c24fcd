// Command gentoken mints a JWT for scripting against the admin API.
// It reads JWT_SECRET from the environment (or a .env file) and prints the
// signed token to stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mibcs/clubsite/internal/auth"
)

func main() {
	subject := flag.String("subject", "cli", "token subject (user id)")
	role := flag.String("role", "admin", "token role (admin, moderator, viewer)")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	issuer := flag.String("issuer", "clubsite", "token issuer")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	manager := auth.NewJWTManager(secret, *expiry, *issuer)
	token, err := manager.Generate(*subject, string(auth.NormalizeRole(*role)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
