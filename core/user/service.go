package user

import (
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	Repository interface {
		// CreateUser assigns the next User.ID; it fails with ErrUsernameExists if the username is taken.
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckUniqueness reports a taken username as a field ValidationError.
func (svc *Service) CheckUniqueness(uname string) error {
	_, err := svc.repo.GetUserByUsername(uname)
	switch {
	case err == nil:
		return usernameExistsError()
	case errors.Cause(err) == ErrNotFound:
		return nil
	default:
		return errors.Wrap(err, "finding user by username")
	}
}

func usernameExistsError() error {
	return core.NewValidationError(
		errors.New("invalid user data"),
		core.FieldError{Field: "username", Error: ErrUsernameExists.Error()},
	)
}

func (svc *Service) Register(nu NewUser) (User, error) {
	usr := User{
		Username:     nu.Username,
		FullName:     nu.FullName,
		ClassGrade:   nu.ClassGrade,
		RollNumber:   nu.RollNumber,
		SchoolCode:   nu.SchoolCode,
		ProfileImage: nu.ProfileImage,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.Import(usr)
}

// Import stores a User whose password is already hashed (seed files).
func (svc *Service) Import(usr User) (User, error) {
	usr.Username = core.CleanString(usr.Username, true /* lower */)
	created, err := svc.repo.CreateUser(usr)
	if err != nil {
		// lost a race against a concurrent registration
		if errors.Cause(err) == ErrUsernameExists {
			return User{}, usernameExistsError()
		}
		return User{}, errors.Wrap(err, "creating user")
	}
	return created, nil
}

// Authenticate returns the User matching the credentials or ErrInvalidCredentials.
func (svc *Service) Authenticate(creds Credentials) (User, error) {
	usr, err := svc.GetByUsername(creds.Username)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}
