package inmemdb

import (
	"sync"

	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/core/user"
)

type (
	// DB holds one table per entity kind. Each table has its own lock and id sequence.
	DB struct {
		user      *table[user.User]
		homework  *table[homework.Homework]
		textbook  *table[textbook.Textbook]
		liveClass *table[liveclass.LiveClass]
		notice    *table[notice.Notice]
		circular  *table[circular.Circular]
		complaint *table[complaint.Complaint]
	}

	table[T any] struct {
		sync.RWMutex
		seq   int
		rows  map[int]*T
		order []int // insertion order
		setID func(row *T, id int)
	}

	Counts struct {
		Users       int `json:"users"`
		Homeworks   int `json:"homeworks"`
		Textbooks   int `json:"textbooks"`
		LiveClasses int `json:"liveClasses"`
		Notices     int `json:"notices"`
		Circulars   int `json:"circulars"`
		Complaints  int `json:"complaints"`
	}
)

func Open() *DB {
	return &DB{
		user:      newTable(func(u *user.User, id int) { u.ID = id }),
		homework:  newTable(func(hw *homework.Homework, id int) { hw.ID = id }),
		textbook:  newTable(func(tb *textbook.Textbook, id int) { tb.ID = id }),
		liveClass: newTable(func(lc *liveclass.LiveClass, id int) { lc.ID = id }),
		notice:    newTable(func(n *notice.Notice, id int) { n.ID = id }),
		circular:  newTable(func(c *circular.Circular, id int) { c.ID = id }),
		complaint: newTable(func(c *complaint.Complaint, id int) { c.ID = id }),
	}
}

func (db *DB) Counts() Counts {
	return Counts{
		Users:       db.user.len(),
		Homeworks:   db.homework.len(),
		Textbooks:   db.textbook.len(),
		LiveClasses: db.liveClass.len(),
		Notices:     db.notice.len(),
		Circulars:   db.circular.len(),
		Complaints:  db.complaint.len(),
	}
}

func newTable[T any](setID func(row *T, id int)) *table[T] {
	return &table[T]{rows: make(map[int]*T), setID: setID}
}

// insertLocked assigns the next id to row and stores it. The write lock must be held.
func (t *table[T]) insertLocked(row T) T {
	t.seq++
	t.setID(&row, t.seq)
	t.rows[t.seq] = &row
	t.order = append(t.order, t.seq)
	return row
}

func (t *table[T]) insert(row T) T {
	t.Lock()
	defer t.Unlock()
	return t.insertLocked(row)
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	if row, ok := t.rows[id]; ok {
		return *row, true
	}
	var zero T
	return zero, false
}

// findLocked returns the first row, in insertion order, matching keep. A lock must be held.
func (t *table[T]) findLocked(keep func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; keep(*row) {
			return *row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) find(keep func(T) bool) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	return t.findLocked(keep)
}

// list returns copies of the rows matching keep (all rows when nil), in insertion order.
func (t *table[T]) list(keep func(T) bool) []T {
	t.RLock()
	defer t.RUnlock()
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := *t.rows[id]
		if keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) update(id int, fn func(row *T)) (T, bool) {
	t.Lock()
	defer t.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(row)
	return *row, true
}

func (t *table[T]) len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.rows)
}
