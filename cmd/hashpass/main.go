// cmd/hashpass/main.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/utils"
)

// hashpass prints a bcrypt hash for ADMIN_PASSWORD_HASH. The password is
// taken from the first argument or, when absent, from the first line of stdin.
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logrus.Fatal("Failed to hash password: ", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	password, err := readPassword(args, stdin)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "ADMIN_PASSWORD_HASH=%s\n", hash)
	return err
}

func readPassword(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return requirePassword(args[0])
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return requirePassword(strings.TrimRight(line, "\r\n"))
}

func requirePassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}
