package state_test

import (
	"testing"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/dalemusser/coachhub/internal/testutil"
)

func TestAddMessageStampsIDAndTimestamp(t *testing.T) {
	s := testutil.NewStore(t)

	msg, ok := s.AddMessage(testutil.Admin(), testutil.SeedGroupClass8, models.Message{
		Type: models.TypeText, SenderID: "admin", SenderName: "Admin", Text: "hello",
	})
	if !ok {
		t.Fatal("AddMessage rejected a valid admin post")
	}
	if msg.ID == "" || msg.Timestamp == 0 {
		t.Errorf("draft should be stamped, got id=%q ts=%d", msg.ID, msg.Timestamp)
	}

	list := s.MessagesFor(testutil.SeedGroupClass8)
	if last := list[len(list)-1]; last.ID != msg.ID {
		t.Errorf("message not appended at the end: got %q, want %q", last.ID, msg.ID)
	}
}

func TestAddMessageUnknownGroupNoOp(t *testing.T) {
	s := testutil.NewStore(t)
	if _, ok := s.AddMessage(testutil.Admin(), "missing", models.Message{Type: models.TypeText, Text: "x"}); ok {
		t.Fatal("unknown group should reject the message")
	}
}

func TestStudentGatedByAllowStudentMessages(t *testing.T) {
	s := testutil.NewStore(t)
	gid := testutil.SeedGroupClass8
	student := testutil.Student("s1")

	if err := s.UpdateGroupSettings(testutil.Admin(), gid, "allowStudentMessages", false); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.AddMessage(student, gid, models.Message{Type: models.TypeText, Text: "hi"}); ok {
		t.Error("student post should be gated when allowStudentMessages is off")
	}
	// Admins are never gated.
	if _, ok := s.AddMessage(testutil.Admin(), gid, models.Message{Type: models.TypeText, Text: "hi"}); !ok {
		t.Error("admin post should bypass the gate")
	}
}

func TestStudentMediaAndPollGates(t *testing.T) {
	s := testutil.NewStore(t)
	gid := testutil.SeedGroupClass8
	student := testutil.Student("s1")

	if err := s.UpdateGroupSettings(testutil.Admin(), gid, "allowMedia", false); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.AddMessage(student, gid, models.Message{Type: models.TypeImage, URL: "/files/x.png"}); ok {
		t.Error("media post should be gated when allowMedia is off")
	}
	// Plain text is still allowed.
	if _, ok := s.AddMessage(student, gid, models.Message{Type: models.TypeText, Text: "ok"}); !ok {
		t.Error("text post should pass with media gated")
	}

	if err := s.UpdateGroupSettings(testutil.Admin(), gid, "allowPolls", false); err != nil {
		t.Fatal(err)
	}
	poll := models.Message{Type: models.TypePoll, Question: "q?", Options: []models.PollOption{{Text: "a"}, {Text: "b"}}}
	if _, ok := s.AddMessage(student, gid, poll); ok {
		t.Error("poll post should be gated when allowPolls is off")
	}
}

func TestStudentCannotPostAnnouncements(t *testing.T) {
	s := testutil.NewStore(t)
	student := testutil.Student("s1")

	if _, ok := s.AddMessage(student, testutil.SeedGroupClass8, models.Message{Type: models.TypeAnnouncement, Text: "mine"}); ok {
		t.Error("announcements are admin vocabulary")
	}
	if _, ok := s.AddMessage(student, testutil.SeedGroupClass8, models.Message{Type: models.TypeLecture, Text: "mine"}); ok {
		t.Error("lecture banners are admin vocabulary")
	}
}

func TestPinMessageUniquePerGroup(t *testing.T) {
	s := testutil.NewStore(t)
	gid := testutil.SeedGroupClass8

	m1, _ := s.AddMessage(testutil.Admin(), gid, models.Message{Type: models.TypeText, Text: "one"})
	m2, _ := s.AddMessage(testutil.Admin(), gid, models.Message{Type: models.TypeText, Text: "two"})

	if err := s.PinMessage(testutil.Admin(), gid, m1.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.PinMessage(testutil.Admin(), gid, m2.ID); err != nil {
		t.Fatal(err)
	}

	pinnedCount := 0
	for _, m := range s.MessagesFor(gid) {
		if m.Pinned {
			pinnedCount++
			if m.ID != m2.ID {
				t.Errorf("pinned message is %q, want %q", m.ID, m2.ID)
			}
		}
	}
	if pinnedCount != 1 {
		t.Errorf("pinned messages in group: got %d, want 1", pinnedCount)
	}
}

func TestPinUnknownMessageKeepsExistingPin(t *testing.T) {
	s := testutil.NewStore(t)
	gid := testutil.SeedGroupClass8

	before, ok := s.PinnedMessage(gid)
	if !ok {
		t.Fatal("seed data should have a pinned announcement in g1")
	}
	if err := s.PinMessage(testutil.Admin(), gid, "missing"); err != nil {
		t.Fatal(err)
	}
	after, ok := s.PinnedMessage(gid)
	if !ok || after.ID != before.ID {
		t.Errorf("existing pin should survive an unknown-id pin: got %+v", after)
	}
}

func TestDeleteMessage(t *testing.T) {
	s := testutil.NewStore(t)
	gid := testutil.SeedGroupClass8

	m, _ := s.AddMessage(testutil.Admin(), gid, models.Message{Type: models.TypeText, Text: "bye"})
	if err := s.DeleteMessage(testutil.Admin(), gid, m.ID); err != nil {
		t.Fatal(err)
	}
	for _, got := range s.MessagesFor(gid) {
		if got.ID == m.ID {
			t.Fatal("message still present after delete")
		}
	}

	if err := s.DeleteMessage(testutil.Student("s1"), gid, "x"); err != state.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestBroadcastIndependentCopies(t *testing.T) {
	s := testutil.NewStore(t)

	counts := map[string]int{}
	for _, g := range s.Groups() {
		counts[g.ID] = len(s.MessagesFor(g.ID))
	}

	if err := s.BroadcastMessage(testutil.Admin(), models.Message{
		Type: models.TypeAnnouncement, SenderID: "admin", SenderName: "Admin", Text: "Holiday tomorrow",
	}); err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, g := range s.Groups() {
		list := s.MessagesFor(g.ID)
		if len(list) != counts[g.ID]+1 {
			t.Errorf("group %s: got %d messages, want %d", g.ID, len(list), counts[g.ID]+1)
			continue
		}
		last := list[len(list)-1]
		if last.Text != "Holiday tomorrow" {
			t.Errorf("group %s: wrong broadcast text %q", g.ID, last.Text)
		}
		if seen[last.ID] {
			t.Errorf("broadcast copies must have independent ids; %q reused", last.ID)
		}
		seen[last.ID] = true
	}

	if err := s.BroadcastMessage(testutil.Student("s1"), models.Message{Type: models.TypeText, Text: "x"}); err != state.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
