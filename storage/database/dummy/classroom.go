package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/classroom"
)

type classroomRepository struct {
	subjects      *subjectTable
	assignments   *assignmentTable
	answers       *answerTable
	comments      *commentTable
	notifications *notificationTable
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *DB) classroom.Repository {
	return &classroomRepository{
		subjects:      db.subject,
		assignments:   db.assignment,
		answers:       db.answer,
		comments:      db.comment,
		notifications: db.notification,
	}
}

func (repo *classroomRepository) CreateSubject(_ context.Context, sub classroom.Subject) (classroom.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	sub.ID = uuid.New().String()
	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *classroomRepository) GetSubjectByID(_ context.Context, id string) (classroom.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if sub, ok := repo.subjects.table[id]; ok {
		return *sub, nil
	}
	return classroom.Subject{}, classroom.ErrSubjectNotFound
}

func (repo *classroomRepository) CreateAssignment(_ context.Context, asg classroom.Assignment) (classroom.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	asg.ID = uuid.New().String()
	repo.assignments.table[asg.ID] = &asg
	return asg, nil
}

func (repo *classroomRepository) GetAssignmentByID(_ context.Context, id string) (classroom.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	if asg, ok := repo.assignments.table[id]; ok {
		return *asg, nil
	}
	return classroom.Assignment{}, classroom.ErrAssignmentNotFound
}

func (repo *classroomRepository) CreateAnswer(_ context.Context, ans classroom.Answer, notif classroom.Notification) (classroom.Answer, error) {
	repo.answers.Lock()
	defer repo.answers.Unlock()
	repo.notifications.Lock()
	defer repo.notifications.Unlock()

	ans.ID = uuid.New().String()
	notif.ID = uuid.New().String()
	repo.answers.table[ans.ID] = &ans
	repo.notifications.table[notif.ID] = &notif
	return ans, nil
}

func (repo *classroomRepository) GetAnswerByID(_ context.Context, id string) (classroom.Answer, error) {
	repo.answers.RLock()
	defer repo.answers.RUnlock()

	if ans, ok := repo.answers.table[id]; ok {
		return *ans, nil
	}
	return classroom.Answer{}, classroom.ErrAnswerNotFound
}

func (repo *classroomRepository) SetAnswerGrade(_ context.Context, answerID string, grade int) (classroom.Answer, error) {
	repo.answers.Lock()
	defer repo.answers.Unlock()

	ans, ok := repo.answers.table[answerID]
	if !ok {
		return classroom.Answer{}, classroom.ErrAnswerNotFound
	}
	ans.Grade.SetValid(grade)
	return *ans, nil
}

func (repo *classroomRepository) CreateComment(_ context.Context, cmt classroom.Comment, notif classroom.Notification) (classroom.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()
	repo.notifications.Lock()
	defer repo.notifications.Unlock()

	cmt.ID = uuid.New().String()
	notif.ID = uuid.New().String()
	repo.comments.table[cmt.ID] = &cmt
	repo.notifications.table[notif.ID] = &notif
	return cmt, nil
}

func (repo *classroomRepository) QueryAnswerComments(_ context.Context, answerID string) ([]classroom.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	comments := make([]classroom.Comment, 0)
	for _, cmt := range repo.comments.table {
		if cmt.AnswerID == answerID {
			comments = append(comments, *cmt)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (repo *classroomRepository) QueryUserNotifications(_ context.Context, userID string) ([]classroom.Notification, error) {
	repo.notifications.RLock()
	defer repo.notifications.RUnlock()

	notifs := make([]classroom.Notification, 0)
	for _, notif := range repo.notifications.table {
		if notif.RecipientID == userID {
			notifs = append(notifs, *notif)
		}
	}
	// newest first
	sort.Slice(notifs, func(i, j int) bool { return notifs[i].CreatedAt.After(notifs[j].CreatedAt) })
	return notifs, nil
}

func (repo *classroomRepository) MarkNotificationRead(_ context.Context, id, recipientID string) (classroom.Notification, error) {
	repo.notifications.Lock()
	defer repo.notifications.Unlock()

	notif, ok := repo.notifications.table[id]
	if !ok || notif.RecipientID != recipientID {
		return classroom.Notification{}, classroom.ErrNotificationNotFound
	}
	notif.IsRead = true
	return *notif, nil
}
