package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/console"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

type authFlags struct {
	name, email, password, role string
}

// readPassword takes the password from stdin when the flag is empty.
func (f *authFlags) readPassword(cmd *cobra.Command) {
	if f.password != "" {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	sc := bufio.NewScanner(cmd.InOrStdin())
	if sc.Scan() {
		f.password = strings.TrimRight(sc.Text(), "\r\n")
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var f authFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.readPassword(cmd)
			auth := a.authClient(cmd)
			slot := console.NewErrorSlot(cmd.ErrOrStderr(), a.term)

			if _, err := auth.Login(cmd.Context(), f.email, f.password, domain.Role(strings.ToUpper(f.role)), slot); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			sess, _ := a.store.Load(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", sess.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&f.role, "role", string(domain.RoleUser), "USER or ADMIN")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var f authFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.readPassword(cmd)
			auth := a.authClient(cmd)
			slot := console.NewErrorSlot(cmd.ErrOrStderr(), a.term)

			if _, err := auth.Register(cmd.Context(), f.name, f.email, f.password, domain.Role(strings.ToUpper(f.role)), slot); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Complete your health profile to unlock the assistant.")
			return nil
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&f.role, "role", string(domain.RoleUser), "USER or ADMIN")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := a.authClient(cmd)
			auth.Logout(cmd.Context())
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, ok := a.store.Load(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", sess.Name, sess.Email, sess.Role)
			return nil
		},
	}
}
