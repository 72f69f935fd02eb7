package seed

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/storage/database/inmem"
)

// LoadDemoData fills db with the demo school's content, dated relative to now.
func LoadDemoData(db *inmemdb.DB, now time.Time) error {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	today := core.StartOfDay(now, now.Location())
	at := func(h, m int) time.Time { return today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tbRepo := inmemdb.NewTextbookRepository(db)
	for _, tb := range []textbook.Textbook{
		{
			Title:       "NCERT Mathematics",
			Subject:     "Mathematics",
			Description: "Class 10 Mathematics textbook for Term 1",
			ImageURL:    "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?ixlib=rb-4.0.3",
			FilePath:    "/textbooks/math-10-term1.pdf",
			ClassGrade:  "10",
			Term:        "Term 1",
		},
		{
			Title:       "NCERT Mathematics",
			Subject:     "Mathematics",
			Description: "Class 10 Mathematics textbook for Term 2",
			ImageURL:    "https://images.unsplash.com/photo-1596495577886-d920f1fb7238?ixlib=rb-4.0.3",
			FilePath:    "/textbooks/math-10-term2.pdf",
			ClassGrade:  "10",
			Term:        "Term 2",
		},
		{
			Title:       "NCERT Science",
			Subject:     "Science",
			Description: "Class 10 Physics textbook",
			ImageURL:    "https://images.unsplash.com/photo-1532094349884-543bc11b234d?ixlib=rb-4.0.3",
			FilePath:    "/textbooks/science-10-physics.pdf",
			ClassGrade:  "10",
			Term:        "Physics",
		},
		{
			Title:       "NCERT Science",
			Subject:     "Science",
			Description: "Class 10 Chemistry textbook",
			ImageURL:    "https://images.unsplash.com/photo-1603126857599-f6e157fa2fe6?ixlib=rb-4.0.3",
			FilePath:    "/textbooks/science-10-chemistry.pdf",
			ClassGrade:  "10",
			Term:        "Chemistry",
		},
	} {
		if _, err := tbRepo.CreateTextbook(tb); err != nil {
			return errors.Wrap(err, "seeding textbooks")
		}
	}

	hwRepo := inmemdb.NewHomeworkRepository(db)
	for _, hw := range []homework.Homework{
		{
			Subject:      "Mathematics",
			Description:  "Complete exercises 5.1 to 5.3 from textbook",
			DueDate:      daysAgo(-1),
			AssignedDate: daysAgo(1),
			Status:       homework.StatusPending,
		},
		{
			Subject:      "Science",
			Description:  "Prepare a chart on types of chemical reactions",
			DueDate:      daysAgo(-2),
			AssignedDate: daysAgo(2),
			Status:       homework.StatusPending,
		},
		{
			Subject:      "English",
			Description:  `Write an essay on "My Favorite Book"`,
			DueDate:      daysAgo(1),
			AssignedDate: daysAgo(5),
			Status:       homework.StatusCompleted,
		},
	} {
		if _, err := hwRepo.CreateHomework(hw); err != nil {
			return errors.Wrap(err, "seeding homeworks")
		}
	}

	lcRepo := inmemdb.NewLiveClassRepository(db)
	for _, lc := range []liveclass.LiveClass{
		{
			Subject:     "Mathematics",
			Teacher:     "Ms. Sharma",
			Date:        today,
			StartTime:   at(11, 30),
			EndTime:     at(12, 30),
			MeetingLink: "https://zoom.us/j/1234567890",
			Status:      liveclass.StatusLive,
		},
		{
			Subject:     "Science",
			Teacher:     "Mr. Patel",
			Date:        today,
			StartTime:   at(13, 30),
			EndTime:     at(14, 30),
			MeetingLink: "https://zoom.us/j/0987654321",
			Status:      liveclass.StatusUpcoming,
		},
		{
			Subject:     "English",
			Teacher:     "Ms. Roy",
			Date:        today,
			StartTime:   at(16, 0),
			EndTime:     at(17, 0),
			MeetingLink: "https://zoom.us/j/5678901234",
			Status:      liveclass.StatusUpcoming,
		},
	} {
		if _, err := lcRepo.CreateLiveClass(lc); err != nil {
			return errors.Wrap(err, "seeding live classes")
		}
	}

	nRepo := inmemdb.NewNoticeRepository(db)
	for _, n := range []notice.Notice{
		{
			Title:    "Annual Sports Day",
			Content:  "Annual sports day will be held on 15th March. All students must register by 10th March for various events. Parents are cordially invited to attend the event.",
			Date:     daysAgo(2),
			ImageURL: "https://images.unsplash.com/photo-1509062522246-3755977927d7?ixlib=rb-4.0.3",
			IsNew:    true,
		},
		{
			Title:   "Science Exhibition",
			Content: "Inter-school science exhibition will be held on 20th February. Interested students should register with their science teachers by 15th February.",
			Date:    daysAgo(6),
		},
		{
			Title:    "Term Examination Schedule",
			Content:  "Final term examinations will begin from 10th March. Detailed schedule has been shared in the circulars section. All students are requested to prepare accordingly.",
			Date:     daysAgo(9),
			ImageURL: "https://images.unsplash.com/photo-1427504494785-3a9ca7044f45?ixlib=rb-4.0.3",
		},
	} {
		if _, err := nRepo.CreateNotice(n); err != nil {
			return errors.Wrap(err, "seeding notices")
		}
	}

	cRepo := inmemdb.NewCircularRepository(db)
	for _, c := range []circular.Circular{
		{
			Title:       "Annual Examination Schedule",
			Description: "Final examination schedule for all classes",
			Date:        daysAgo(2),
			Category:    "exams",
			FilePath:    "/circulars/exam-schedule.pdf",
			IsNew:       true,
		},
		{
			Title:       "Annual Sports Day Notice",
			Description: "Details about annual sports day event and registration",
			Date:        daysAgo(9),
			Category:    "events",
			FilePath:    "/circulars/sports-day.pdf",
		},
		{
			Title:       "Holiday Notice - Republic Day",
			Description: "School will remain closed on 26th January",
			Date:        daysAgo(15),
			Category:    "holidays",
			FilePath:    "/circulars/republic-day.pdf",
		},
	} {
		if _, err := cRepo.CreateCircular(c); err != nil {
			return errors.Wrap(err, "seeding circulars")
		}
	}

	cmpRepo := inmemdb.NewComplaintRepository(db)
	for _, c := range []complaint.Complaint{
		{
			UserID:  core.IntPtr(1),
			Subject: "Classroom Cleanliness",
			Message: "The classrooms need better cleaning services. Dust accumulates on desks daily.",
			Date:    daysAgo(4),
			Status:  complaint.StatusPending,
		},
		{
			UserID:  core.IntPtr(1),
			Subject: "Library Access Hours",
			Message: "Request to extend library hours after school for students who stay for extracurricular activities.",
			Date:    daysAgo(20),
			Status:  complaint.StatusAddressed,
		},
	} {
		if _, err := cmpRepo.CreateComplaint(c); err != nil {
			return errors.Wrap(err, "seeding complaints")
		}
	}
	return nil
}
