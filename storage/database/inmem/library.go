package inmemdb

import (
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/textbook"
)

type textbookRepository struct {
	db *table[textbook.Textbook]
}

var _ textbook.Repository = (*textbookRepository)(nil)

func NewTextbookRepository(db *DB) textbook.Repository {
	return &textbookRepository{db: db.textbook}
}

func (repo *textbookRepository) CreateTextbook(tb textbook.Textbook) (textbook.Textbook, error) {
	return repo.db.insert(tb), nil
}

func (repo *textbookRepository) QueryTextbooks(filter textbook.QueryFilter) ([]textbook.Textbook, error) {
	return repo.db.list(filter.Matches), nil
}

func (repo *textbookRepository) GetTextbookByID(id int) (textbook.Textbook, error) {
	if tb, ok := repo.db.get(id); ok {
		return tb, nil
	}
	return textbook.Textbook{}, textbook.ErrNotFound
}

type noticeRepository struct {
	db *table[notice.Notice]
}

var _ notice.Repository = (*noticeRepository)(nil)

func NewNoticeRepository(db *DB) notice.Repository {
	return &noticeRepository{db: db.notice}
}

func (repo *noticeRepository) CreateNotice(n notice.Notice) (notice.Notice, error) {
	return repo.db.insert(n), nil
}

func (repo *noticeRepository) QueryNotices() ([]notice.Notice, error) {
	return repo.db.list(nil), nil
}

func (repo *noticeRepository) GetNoticeByID(id int) (notice.Notice, error) {
	if n, ok := repo.db.get(id); ok {
		return n, nil
	}
	return notice.Notice{}, notice.ErrNotFound
}

type circularRepository struct {
	db *table[circular.Circular]
}

var _ circular.Repository = (*circularRepository)(nil)

func NewCircularRepository(db *DB) circular.Repository {
	return &circularRepository{db: db.circular}
}

func (repo *circularRepository) CreateCircular(c circular.Circular) (circular.Circular, error) {
	if c.Category == "" {
		c.Category = circular.CategoryGeneral
	}
	return repo.db.insert(c), nil
}

func (repo *circularRepository) QueryCirculars(filter circular.QueryFilter) ([]circular.Circular, error) {
	return repo.db.list(filter.Matches), nil
}

func (repo *circularRepository) GetCircularByID(id int) (circular.Circular, error) {
	if c, ok := repo.db.get(id); ok {
		return c, nil
	}
	return circular.Circular{}, circular.ErrNotFound
}
