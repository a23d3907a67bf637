// Command almapac-token mints a Bearer token for scripts and API clients.
//
//	ALMAPAC_SECRET=... almapac-token -user jperez -role 1 -role-name ADMINISTRADOR
//
// The token is signed with the key almapacd derives from the same secret.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/jwt"
)

func main() {
	if err := run(os.Args[1:], os.Getenv("ALMAPAC_SECRET"), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "almapac-token:", err)
		os.Exit(2)
	}
}

func run(args []string, secret string, out io.Writer) error {
	defaults := gateway.DefaultConfig()

	fs := flag.NewFlagSet("almapac-token", flag.ContinueOnError)
	var (
		id       gateway.Identity
		ttl      = fs.Duration("ttl", defaults.JWT.BearerTTL, "token lifetime")
		issuer   = fs.String("issuer", defaults.JWT.Issuer, "token issuer")
		audience = fs.String("audience", defaults.JWT.Audience, "token audience")
	)
	fs.StringVar(&id.Username, "user", "", "username (required)")
	fs.IntVar(&id.RoleID, "role", 0, "numeric role id (required)")
	fs.StringVar(&id.RoleName, "role-name", "", "role name")
	fs.StringVar(&id.FullName, "name", "", "full name")
	fs.StringVar(&id.EmployeeCode, "code", "", "employee code")
	fs.StringVar(&id.Email, "email", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("ALMAPAC_SECRET is required")
	}
	if !id.Complete() {
		return errors.New("-user and a positive -role are required")
	}

	key, err := jwt.DeriveKey([]byte(secret), jwt.PurposeBearer)
	if err != nil {
		return err
	}
	mgr, err := jwt.NewManager(jwt.Config{
		Key:      key,
		TTL:      *ttl,
		Issuer:   *issuer,
		Audience: *audience,
	})
	if err != nil {
		return err
	}

	token, err := mgr.IssueIdentity(id.Claims())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n# expires %s\n", token, time.Now().Add(*ttl).UTC().Format(time.RFC3339))
	return err
}
