package inmemdb

import (
	"github.com/trezcool/shule/core/complaint"
)

type complaintRepository struct {
	db *table[complaint.Complaint]
}

var _ complaint.Repository = (*complaintRepository)(nil)

func NewComplaintRepository(db *DB) complaint.Repository {
	return &complaintRepository{db: db.complaint}
}

func (repo *complaintRepository) CreateComplaint(c complaint.Complaint) (complaint.Complaint, error) {
	if c.IsAnonymous {
		c.UserID = nil
	} else if c.UserID != nil {
		uid := *c.UserID
		c.UserID = &uid
	}
	if c.Status == "" {
		c.Status = complaint.StatusPending
	}
	return repo.db.insert(c), nil
}

func (repo *complaintRepository) QueryComplaints(filter complaint.QueryFilter) ([]complaint.Complaint, error) {
	return repo.db.list(filter.Matches), nil
}

func (repo *complaintRepository) GetComplaintByID(id int) (complaint.Complaint, error) {
	if c, ok := repo.db.get(id); ok {
		return c, nil
	}
	return complaint.Complaint{}, complaint.ErrNotFound
}

func (repo *complaintRepository) UpdateComplaintStatus(id int, status string) (complaint.Complaint, error) {
	c, ok := repo.db.update(id, func(c *complaint.Complaint) { c.Status = status })
	if !ok {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	return c, nil
}
