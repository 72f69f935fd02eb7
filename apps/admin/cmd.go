package main

import (
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

const defaultUsersFile = "config/users.yaml"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	file       string
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage the users seeded into the API at startup",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.PersistentFlags().StringVarP(&cli.file, "file", "f", cli.file, "The seed users file.")

	root.AddCommand(cli.addUserCmd(), cli.resetPasswordCmd(), cli.listUsersCmd())
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.Execute()
}

func (cli *commandLine) addUserCmd() *cobra.Command {
	var nu user.NewUser
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Add a user to the seed file, or update it if the username exists. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if nu.Username == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			nu.Password = pwd
			return cli.addUser(nu)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&nu.Username, "username", "u", "", "The user's username.")
	flags.StringVar(&nu.FullName, "name", "", "The user's full name.")
	flags.StringVar(&nu.ClassGrade, "class", "", "The user's class grade.")
	flags.StringVar(&nu.RollNumber, "roll", "", "The user's roll number.")
	flags.StringVar(&nu.SchoolCode, "school", "", "The user's school code.")
	flags.StringVar(&nu.ProfileImage, "image", "", "The user's profile image URL.")
	return cmd
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var uname string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a seeded user's password. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if uname == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.resetPassword(uname, pwd)
		},
	}
	cmd.Flags().StringVarP(&uname, "username", "u", "", "The user's username.")
	return cmd
}

func (cli *commandLine) listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listusers",
		Short: "List the seeded users.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cli.listUsers()
		},
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// validateUser applies the registration rules, except username uniqueness.
func (cli *commandLine) validateUser(nu *user.NewUser) error {
	nu.Clean()
	if err := cli.validate.Struct(nu); err != nil {
		return core.TranslateValidationErrors(err, cli.translator, "invalid user data")
	}
	return nil
}
