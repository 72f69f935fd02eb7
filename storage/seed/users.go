package seed

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

type (
	// UserRecord is a user as stored in the seed file, with its bcrypt hash.
	UserRecord struct {
		user.User    `yaml:",inline"`
		PasswordHash string `yaml:"passwordHash"`
	}

	UsersFile struct {
		Users []UserRecord `yaml:"users"`
	}
)

func NewUserRecord(usr user.User) UserRecord {
	return UserRecord{User: usr, PasswordHash: string(usr.PasswordHash)}
}

// ToUser returns the record's user, password hash included.
func (r UserRecord) ToUser() user.User {
	usr := r.User
	usr.PasswordHash = []byte(r.PasswordHash)
	return usr
}

// ReadUsersFile reads the seed file at path. A missing file is an empty seed.
func ReadUsersFile(path string) (UsersFile, error) {
	var f UsersFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, errors.Wrap(err, "reading seed users file")
	}
	if err = yaml.Unmarshal(data, &f); err != nil {
		return f, errors.Wrapf(err, "parsing %s", path)
	}
	return f, nil
}

func WriteUsersFile(path string, f UsersFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encoding seed users")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "writing seed users file")
}

// Find returns the index of the user named uname, or -1.
func (f *UsersFile) Find(uname string) int {
	uname = core.CleanString(uname, true /* lower */)
	for i, r := range f.Users {
		if r.Username == uname {
			return i
		}
	}
	return -1
}

// Upsert replaces the user with the same username or appends usr.
func (f *UsersFile) Upsert(usr user.User) {
	usr.Username = core.CleanString(usr.Username, true /* lower */)
	if i := f.Find(usr.Username); i >= 0 {
		f.Users[i] = NewUserRecord(usr)
		return
	}
	f.Users = append(f.Users, NewUserRecord(usr))
}

// LoadUsers imports every user of the seed file at path, in file order.
func LoadUsers(path string, svc *user.Service) (int, error) {
	if path == "" {
		return 0, nil
	}
	f, err := ReadUsersFile(path)
	if err != nil {
		return 0, err
	}
	for _, r := range f.Users {
		if _, err = svc.Import(r.ToUser()); err != nil {
			return 0, errors.Wrapf(err, "importing user %q", r.Username)
		}
	}
	return len(f.Users), nil
}
