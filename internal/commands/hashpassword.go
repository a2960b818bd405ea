package commands

import (
	"bufio"
	"fmt"
	"os"
	"syscall"

	"github.com/klabast/wb-services/harmonogram/internal/app"
	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand. It prompts for a
// username and password and writes the auth file protecting the reload
// endpoint. The AUTH_FILE environment variable overrides the file path.
func HashPassword(overwrite, insecureUnmask bool) error {
	// Prompt for username
	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	// Prompt for password
	var password, passwordConfirm string

	if insecureUnmask {
		// Plain text mode (insecure!)
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
		fmt.Print("Enter password:   ")
		if _, err := fmt.Scanln(&password); err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		fmt.Print("Confirm password: ")
		if _, err := fmt.Scanln(&passwordConfirm); err != nil {
			return fmt.Errorf("reading password confirmation: %w", err)
		}
	} else {
		// Masked mode with asterisks (default, secure)
		password = readPasswordWithMask("Enter password:   ")
		passwordConfirm = readPasswordWithMask("Confirm password: ")
	}

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if password != passwordConfirm {
		return fmt.Errorf("passwords do not match")
	}

	return app.CreateAuthFile(username, password, overwrite)
}

// readPasswordWithMask reads password input and displays asterisks
func readPasswordWithMask(prompt string) string {
	fmt.Print(prompt)

	// Save original terminal state
	oldState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		// Fallback to hidden input if we can't set raw mode
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	// Set terminal to raw mode
	if _, err := term.MakeRaw(int(syscall.Stdin)); err != nil {
		// Fallback to hidden input
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}

	var password []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		// Handle different key presses
		switch char {
		case '\n', '\r': // Enter key
			fmt.Println() // New line
			return string(password)
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				// Clear the asterisk: backspace, space, backspace
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Println()
			os.Exit(1)
		default:
			// Only accept printable characters
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Print("*")
			}
		}
	}

	fmt.Println()
	return string(password)
}
