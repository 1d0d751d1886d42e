// Command mint-token prints a bearer token for the demo teacher account.
// Useful for exercising the API with curl without going through the UI.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/service"
)

func main() {
	cfg := config.Load()

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init auth service: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email [" + cfg.DemoEmail + "]: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		email = cfg.DemoEmail
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read password: %v\n", err)
		os.Exit(1)
	}

	token, _, err := authService.Login(email, string(passBytes))
	if err != nil {
		fmt.Fprintf(os.Stderr, "login: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
