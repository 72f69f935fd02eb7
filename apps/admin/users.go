package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/seed"
)

// addUser updates or creates a user in the seed file.
func (cli *commandLine) addUser(nu user.NewUser) error {
	if err := cli.validateUser(&nu); err != nil {
		return err
	}
	f, err := seed.ReadUsersFile(cli.file)
	if err != nil {
		return err
	}

	usr := user.User{
		Username:     nu.Username,
		FullName:     nu.FullName,
		ClassGrade:   nu.ClassGrade,
		RollNumber:   nu.RollNumber,
		SchoolCode:   nu.SchoolCode,
		ProfileImage: nu.ProfileImage,
	}
	if err = usr.SetPassword(nu.Password); err != nil {
		return err
	}
	f.Upsert(usr)
	return seed.WriteUsersFile(cli.file, f)
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	f, err := seed.ReadUsersFile(cli.file)
	if err != nil {
		return err
	}
	i := f.Find(uname)
	if i < 0 {
		return user.ErrNotFound
	}

	usr := f.Users[i].ToUser()
	nu := user.NewUser{
		Username:     usr.Username,
		Password:     pwd,
		FullName:     usr.FullName,
		ClassGrade:   usr.ClassGrade,
		RollNumber:   usr.RollNumber,
		SchoolCode:   usr.SchoolCode,
		ProfileImage: usr.ProfileImage,
	}
	if err = cli.validateUser(&nu); err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	f.Upsert(usr)
	return seed.WriteUsersFile(cli.file, f)
}

func (cli *commandLine) listUsers() error {
	f, err := seed.ReadUsersFile(cli.file)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "USERNAME\tNAME\tCLASS\tROLL\tSCHOOL")
	for _, r := range f.Users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Username, r.FullName, r.ClassGrade, r.RollNumber, r.SchoolCode)
	}
	return w.Flush()
}
