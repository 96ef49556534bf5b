package classroom

import (
	"testing"
	"time"

	"github.com/trezcool/darasa/core/user"
)

func Test_answerNotification(t *testing.T) {
	now := time.Now().UTC()
	asg := Assignment{ID: "a1", Title: "Algebra II", TeacherID: "t1"}

	notif := answerNotification(asg, now)

	if notif.RecipientID != asg.TeacherID {
		t.Errorf("RecipientID = %q; want the assignment's teacher %q", notif.RecipientID, asg.TeacherID)
	}
	if want := "New answer submitted for assignment 'Algebra II'."; notif.Message != want {
		t.Errorf("Message = %q; want %q", notif.Message, want)
	}
	if notif.IsRead {
		t.Error("IsRead = true; want false")
	}
	if !notif.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v; want %v", notif.CreatedAt, now)
	}
}

func Test_commentNotification(t *testing.T) {
	now := time.Now().UTC()
	teacher := user.User{ID: "t1", IsTeacher: true}
	student := user.User{ID: "s1"}
	asg := Assignment{ID: "a1", Title: "Algebra II", TeacherID: teacher.ID}
	ans := Answer{ID: "an1", AssignmentID: asg.ID, StudentID: student.ID}

	tests := []struct {
		name            string
		author          user.User
		wantRecipientID string
	}{
		{name: "teacher comment notifies the student", author: teacher, wantRecipientID: student.ID},
		{name: "student comment notifies the teacher", author: student, wantRecipientID: teacher.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notif := commentNotification(tt.author, ans, asg, now)

			if notif.RecipientID != tt.wantRecipientID {
				t.Errorf("RecipientID = %q; want %q", notif.RecipientID, tt.wantRecipientID)
			}
			if notif.RecipientID == tt.author.ID {
				t.Error("the author must never be notified of their own comment")
			}
			if want := "New comment on the answer to 'Algebra II'."; notif.Message != want {
				t.Errorf("Message = %q; want %q", notif.Message, want)
			}
		})
	}
}
