package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/rdjhm0765/loanops-copilot/internal/auth"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an operator account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userRmCmd = &cobra.Command{
	Use:   "rm <username>",
	Short: "Delete an operator account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRm,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Change an account password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

func init() {
	userAddCmd.Flags().String("password", "", "account password")
	userAddCmd.Flags().String("fullname", "", "display name")
	userAddCmd.Flags().String("role", "user", "account role: user or admin")
	_ = userAddCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().String("password", "", "new password")
	_ = userPasswdCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd, userRmCmd, userPasswdCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	fullName, _ := cmd.Flags().GetString("fullname")
	role, _ := cmd.Flags().GetString("role")

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	created, err := auth.NewService(s).Register(cmd.Context(), args[0], password, fullName, role)
	if err != nil {
		return err
	}
	if !created {
		return eris.Errorf("user %s already exists", args[0])
	}
	fmt.Printf("User %s created.\n", args[0])
	return nil
}

func runUserRm(cmd *cobra.Command, args []string) error {
	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	if err := s.DeleteUser(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("User %s deleted.\n", args[0])
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")

	s, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	if err := auth.NewService(s).SetPassword(cmd.Context(), args[0], password); err != nil {
		return err
	}
	fmt.Printf("Password updated for %s.\n", args[0])
	return nil
}
