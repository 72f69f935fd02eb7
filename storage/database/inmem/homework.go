package inmemdb

import (
	"github.com/trezcool/shule/core/homework"
)

type homeworkRepository struct {
	db *table[homework.Homework]
}

var _ homework.Repository = (*homeworkRepository)(nil)

func NewHomeworkRepository(db *DB) homework.Repository {
	return &homeworkRepository{db: db.homework}
}

func (repo *homeworkRepository) CreateHomework(hw homework.Homework) (homework.Homework, error) {
	if hw.Status == "" {
		hw.Status = homework.StatusPending
	}
	return repo.db.insert(hw), nil
}

func (repo *homeworkRepository) QueryHomeworks() ([]homework.Homework, error) {
	return repo.db.list(nil), nil
}

func (repo *homeworkRepository) GetHomeworkByID(id int) (homework.Homework, error) {
	if hw, ok := repo.db.get(id); ok {
		return hw, nil
	}
	return homework.Homework{}, homework.ErrNotFound
}

func (repo *homeworkRepository) UpdateHomeworkStatus(id int, status string) (homework.Homework, error) {
	hw, ok := repo.db.update(id, func(hw *homework.Homework) { hw.Status = status })
	if !ok {
		return homework.Homework{}, homework.ErrNotFound
	}
	return hw, nil
}
