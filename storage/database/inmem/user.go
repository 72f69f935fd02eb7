package inmemdb

import (
	"github.com/trezcool/shule/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

// CreateUser checks username uniqueness and inserts under the same write lock.
func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, exists := repo.db.findLocked(byUsername(usr.Username)); exists {
		return user.User{}, user.ErrUsernameExists
	}
	return repo.db.insertLocked(usr), nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	return repo.db.list(nil), nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	if usr, ok := repo.db.find(byUsername(username)); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func byUsername(username string) func(user.User) bool {
	return func(usr user.User) bool { return usr.Username == username }
}
