package inmemdb

import (
	"github.com/trezcool/shule/core/liveclass"
)

type liveClassRepository struct {
	db *table[liveclass.LiveClass]
}

var _ liveclass.Repository = (*liveClassRepository)(nil)

func NewLiveClassRepository(db *DB) liveclass.Repository {
	return &liveClassRepository{db: db.liveClass}
}

func (repo *liveClassRepository) CreateLiveClass(lc liveclass.LiveClass) (liveclass.LiveClass, error) {
	if lc.Status == "" {
		lc.Status = liveclass.StatusUpcoming
	}
	return repo.db.insert(lc), nil
}

func (repo *liveClassRepository) QueryLiveClasses() ([]liveclass.LiveClass, error) {
	return repo.db.list(nil), nil
}

func (repo *liveClassRepository) GetLiveClassByID(id int) (liveclass.LiveClass, error) {
	if lc, ok := repo.db.get(id); ok {
		return lc, nil
	}
	return liveclass.LiveClass{}, liveclass.ErrNotFound
}

func (repo *liveClassRepository) UpdateLiveClassStatus(id int, status string) (liveclass.LiveClass, error) {
	lc, ok := repo.db.update(id, func(lc *liveclass.LiveClass) { lc.Status = status })
	if !ok {
		return liveclass.LiveClass{}, liveclass.ErrNotFound
	}
	return lc, nil
}
