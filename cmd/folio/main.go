package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aussiebroadwan/folio/internal/folio/app"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
)

const usage = `usage:
  folio                      run the server (configured from the environment)
  folio gen-secret           print a random value for DOWNLOAD_SECRET or ADMIN_TOKEN
  folio gen-totp <account>   print a new ADMIN_TOTP_SECRET and its otpauth:// URL
`

func main() {
	if len(os.Args) > 1 {
		if err := runCommand(os.Stdout, os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func runCommand(out io.Writer, args []string) error {
	switch args[0] {
	case "gen-secret":
		secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, secret)
		return nil

	case "gen-totp":
		if len(args) < 2 || args[1] == "" {
			return errors.New("gen-totp: account name required\n\n" + usage)
		}
		key, err := service.GenerateAdminTOTP(service.DefaultIssuer, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ADMIN_TOTP_SECRET=%s\n%s\n", key.Secret(), key.URL())
		return nil

	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}
