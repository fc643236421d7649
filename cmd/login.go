package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluentwave/fluentwave/internal/account"
	"github.com/fluentwave/fluentwave/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in from the command line",
	Long:  "Sign in without opening the TUI. Prompts for anything not passed as a flag.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		register, _ := cmd.Flags().GetBool("register")

		reader := bufio.NewReader(os.Stdin)
		if register && name == "" {
			name = prompt(reader, "Name: ")
		}
		if email == "" {
			email = prompt(reader, "Email: ")
		}
		if password == "" {
			password = prompt(reader, "Password: ")
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}

		ctx := cmd.Context()
		now := time.Now()
		if register {
			token, prof, err := deps.API.Register(ctx, name, email, password)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			sess, err := account.New(token, prof, now)
			if err != nil {
				return fmt.Errorf("parse session token: %w", err)
			}
			return saveSession(cmd, deps.Store, sess)
		}

		token, prof, err := deps.API.Login(ctx, email, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		sess, err := account.New(token, prof, now)
		if err != nil {
			return fmt.Errorf("parse session token: %w", err)
		}
		return saveSession(cmd, deps.Store, sess)
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password")
	loginCmd.Flags().String("name", "", "Display name (with --register)")
	loginCmd.Flags().Bool("register", false, "Create a new account instead of signing in")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func saveSession(cmd *cobra.Command, st *store.Store, sess *account.Session) error {
	err := st.SaveAccount(cmd.Context(), &store.CachedAccount{
		Token:     sess.Token,
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
		Profile:   sess.Profile,
		FetchedAt: sess.FetchedAt,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	name := ""
	if sess.Profile != nil {
		name = sess.Profile.Name
	}
	fmt.Printf("Signed in as %s\n", name)
	return nil
}
