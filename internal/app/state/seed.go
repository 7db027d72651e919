// internal/app/state/seed.go
package state

import (
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
)

// defaultSnapshot is the demo data set used when the snapshot backend
// is empty: three classes with members, pending approvals, welcome
// messages (one pinned per group), a poll, default fees, and an active
// live lecture.
func defaultSnapshot() *models.Snapshot {
	now := time.Now().UnixMilli()
	const (
		hour = int64(time.Hour / time.Millisecond)
		day  = 24 * hour
	)

	snap := models.NewSnapshot()

	snap.Groups = []models.Group{
		{ID: "g1", Name: "Class 8", NameCI: text.Fold("Class 8"), CreatedAt: now - 30*day},
		{ID: "g2", Name: "Class 9", NameCI: text.Fold("Class 9"), CreatedAt: now - 20*day},
		{ID: "g3", Name: "Class 10", NameCI: text.Fold("Class 10"), CreatedAt: now - 10*day},
	}

	snap.PendingStudents = []models.PendingStudent{
		{ID: "ps1", Name: "Rahul Sharma", Phone: "+91 98765 43210", RequestedAt: now - hour},
		{ID: "ps2", Name: "Priya Singh", Phone: "+91 87654 32109", RequestedAt: now - 2*hour},
		{ID: "ps3", Name: "Amit Kumar", Phone: "+91 76543 21098", RequestedAt: now - hour/2},
	}

	students := []models.Student{
		{ID: "current_user", Name: "Demo Student", Phone: "+91 99999 00000"},
		{ID: "s1", Name: "Arjun Mehta", Phone: "+91 99999 11111"},
		{ID: "s2", Name: "Kavya Patel", Phone: "+91 88888 22222"},
		{ID: "s3", Name: "Vikram Reddy", Phone: "+91 77777 33333"},
		{ID: "s4", Name: "Neha Gupta", Phone: "+91 66666 44444"},
		{ID: "s5", Name: "Rohan Desai", Phone: "+91 55555 55555"},
		{ID: "s6", Name: "Ananya Iyer", Phone: "+91 44444 66666"},
	}
	for _, st := range students {
		st.NameCI = text.Fold(st.Name)
		snap.Students[st.ID] = st
	}
	snap.Profile = snap.Students["current_user"]

	snap.GroupMembers = map[string][]string{
		"g1": {"s1", "s2", "current_user"},
		"g2": {"s3", "s4"},
		"g3": {"s5", "s6"},
	}

	for _, g := range snap.Groups {
		snap.Settings[g.ID] = models.DefaultGroupSettings()
	}

	snap.Messages = map[string][]models.Message{
		"g1": {
			{
				ID: uuid.NewString(), Type: models.TypeAnnouncement,
				SenderID: "admin", SenderName: "Admin",
				Text: "Welcome to Class 8! Please introduce yourself.", Timestamp: now - 2*day, Pinned: true,
			},
			{
				ID: uuid.NewString(), Type: models.TypeText,
				SenderID: "s1", SenderName: "Arjun Mehta",
				Text: "Hi everyone! I am Arjun.", Timestamp: now - 2*day + hour,
			},
			{
				ID: uuid.NewString(), Type: models.TypeText,
				SenderID: "admin", SenderName: "Admin",
				Text: "Great, Arjun!", Timestamp: now - day,
			},
		},
		"g2": {
			{
				ID: uuid.NewString(), Type: models.TypeAnnouncement,
				SenderID: "admin", SenderName: "Admin",
				Text: "Class 9 syllabus for this month is now available.", Timestamp: now - day, Pinned: true,
			},
		},
		"g3": {
			{
				ID: uuid.NewString(), Type: models.TypeAnnouncement,
				SenderID: "admin", SenderName: "Admin",
				Text: "Board exam preparation starts next week. Stay tuned!", Timestamp: now - day, Pinned: true,
			},
			{
				ID: uuid.NewString(), Type: models.TypePoll,
				SenderID: "admin", SenderName: "Admin",
				Question: "Preferred revision slot?",
				Options: []models.PollOption{
					{ID: "o1", Text: "Morning 7-9 AM", Votes: []string{}},
					{ID: "o2", Text: "Evening 5-7 PM", Votes: []string{}},
					{ID: "o3", Text: "Night 8-10 PM", Votes: []string{}},
				},
				Timestamp: now - 2*hour,
			},
		},
	}

	for id := range snap.Students {
		snap.Fees[id] = models.FeeRecord{Amount: 5000, Status: models.FeePending, DueDate: "N/A"}
	}

	snap.BankAccount = models.BankAccount{
		BankName:      "State Bank of India",
		AccountNumber: "XXXX XXXX 4521",
		AccountName:   "Coaching Institute",
	}

	snap.GroupLives = map[string]models.LiveLecture{
		"g3": {
			Active:     true,
			Title:      "Mathematics - Quadratic Equations",
			Instructor: "Prof. Rajesh Kumar",
			Link:       "https://meet.example.com/live",
			StartedAt:  now - 10*int64(time.Minute/time.Millisecond),
		},
	}

	snap.Theme = "default"
	return snap
}
