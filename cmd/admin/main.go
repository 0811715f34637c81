package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"niuniu-server/pkg/table"
)

var command = flag.String("c", "user", "specifies the command (user)")

var phoneRx = regexp.MustCompile(`^\+?[0-9]{7,15}\z`)

func main() {
	flag.Parse()

	switch *command {
	case "user":
		phone := getPhone()
		if phone == "" {
			os.Exit(1)
		}

		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		nickname, err := getInput("Nickname")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if nickname == "" {
			nickname = "Player"
		}

		user, err := table.CreateUser(context.Background(), phone, nickname, password)
		if err != nil {
			logrus.WithError(err).Fatal("could not create user")
		}

		fmt.Printf("Created user %d\n", user.ID)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func getPhone() string {
	for {
		str, err := getInput("Phone")
		if err != nil {
			logrus.WithError(err).Warn("could not read phone number")
		}

		if str == "" {
			return ""
		}

		if !phoneRx.MatchString(str) {
			_, _ = fmt.Fprintln(os.Stderr, "invalid phone number")
			continue
		}

		return str
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
