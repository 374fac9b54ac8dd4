package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Start an operator session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	session, err := auth.NewService(s).Authenticate(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}
	if session == nil {
		return eris.New("invalid username or password")
	}

	mgr := auth.NewSessionManager(cfg.Session.Path)
	if err := mgr.CreateSession(session.Username, session.Role); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s).\n", session.Username, session.Role)
	zap.L().Info("login", zap.String("username", session.Username))
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	mgr := auth.NewSessionManager(cfg.Session.Path)
	if !mgr.IsAuthenticated() {
		fmt.Println("No active session.")
		return nil
	}
	if err := mgr.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	mgr := auth.NewSessionManager(cfg.Session.Path)
	session := mgr.Current()
	if session == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s), logged in since %s\n",
		session.Username, session.Role, session.LoginTime.Format("2006-01-02 15:04:05 UTC"))
	return nil
}
