package classroom

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// answerNotification derives the Notification for a freshly submitted Answer:
// the Assignment's teacher is notified, never the submitting student.
func answerNotification(asg Assignment, now time.Time) Notification {
	return Notification{
		Message:     fmt.Sprintf("New answer submitted for assignment '%s'.", asg.Title),
		RecipientID: asg.TeacherID,
		CreatedAt:   now,
	}
}

// commentNotification derives the Notification for a freshly posted Comment:
// a teacher's comment notifies the Answer's student, anyone else's notifies
// the Assignment's teacher. The recipient is never the comment's author;
// teachers cannot author Answers, so the role branch guarantees it.
func commentNotification(author user.User, ans Answer, asg Assignment, now time.Time) Notification {
	recipientID := asg.TeacherID
	if author.IsTeacher {
		recipientID = ans.StudentID
	}
	return Notification{
		Message:     fmt.Sprintf("New comment on the answer to '%s'.", asg.Title),
		RecipientID: recipientID,
		CreatedAt:   now,
	}
}

// sendNotificationMail emails the in-app notification to its recipient.
// Best effort: the notification record is the contract, the email is not.
func (svc *service) sendNotificationMail(notif Notification) {
	recipient, err := svc.usrRepo.GetUserByID(context.Background(), notif.RecipientID)
	if err != nil {
		return
	}
	svc.mailSvc.SendMessages(
		&core.EmailMessage{
			To:      []mail.Address{{Address: recipient.Email}},
			Subject: "New Notification",
			Body:    fmt.Sprintf("%s\n\nSee all your notifications: %s/notifications", notif.Message, svc.conf.FrontendBaseURL),
		},
	)
}
