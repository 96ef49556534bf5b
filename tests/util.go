package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/darasa/core/classroom"
	"github.com/trezcool/darasa/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	email, pwd string,
	isTeacher bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Email:     email,
		IsTeacher: isTeacher,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateSubject(
	t *testing.T,
	repo classroom.Repository,
	name, teacherID string,
	createdAt ...time.Time,
) classroom.Subject {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sub, err := repo.CreateSubject(context.Background(), classroom.Subject{
		Name:      name,
		TeacherID: teacherID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateAssignment(
	t *testing.T,
	repo classroom.Repository,
	title, subjectID, teacherID string,
	createdAt ...time.Time,
) classroom.Assignment {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	asg, err := repo.CreateAssignment(context.Background(), classroom.Assignment{
		Title:     title,
		SubjectID: subjectID,
		TeacherID: teacherID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func CreateAnswer(
	t *testing.T,
	repo classroom.Repository,
	content, assignmentID, studentID, notifRecipientID string,
	createdAt ...time.Time,
) classroom.Answer {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	ans, err := repo.CreateAnswer(
		context.Background(),
		classroom.Answer{
			Content:      content,
			AssignmentID: assignmentID,
			StudentID:    studentID,
			CreatedAt:    tstamp,
		},
		classroom.Notification{
			Message:     "New answer submitted.",
			RecipientID: notifRecipientID,
			CreatedAt:   tstamp,
		},
	)
	if err != nil {
		t.Fatalf("CreateAnswer() failed: %v", err)
	}
	return ans
}
