package user

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

type User struct {
	ID           int    `json:"id" yaml:"-"`
	Username     string `json:"username" yaml:"username"`
	PasswordHash []byte `json:"-" yaml:"-"`
	FullName     string `json:"fullName" yaml:"fullName"`
	ClassGrade   string `json:"classGrade" yaml:"classGrade"`
	RollNumber   string `json:"rollNumber" yaml:"rollNumber"`
	SchoolCode   string `json:"schoolCode" yaml:"schoolCode"`
	ProfileImage string `json:"profileImage,omitempty" yaml:"profileImage,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username     string `json:"username" validate:"required,max=150,alphanum_"`
	Password     string `json:"password" validate:"required"`
	FullName     string `json:"fullName" validate:"required"`
	ClassGrade   string `json:"classGrade" validate:"required"`
	RollNumber   string `json:"rollNumber" validate:"required"`
	SchoolCode   string `json:"schoolCode" validate:"required"`
	ProfileImage string `json:"profileImage" validate:"omitempty,url"`
}

// Clean trims every field and lowers the username.
func (nu *NewUser) Clean() {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.ClassGrade = core.CleanString(nu.ClassGrade)
	nu.RollNumber = core.CleanString(nu.RollNumber)
	nu.SchoolCode = core.CleanString(nu.SchoolCode)
	nu.ProfileImage = core.CleanString(nu.ProfileImage)
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Clean()
	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username)
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return validate.Struct(c)
}
