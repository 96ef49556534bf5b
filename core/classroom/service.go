package classroom

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var (
	// role gate errors; checked before any resource lookup so that
	// unauthorized callers cannot probe resource existence.
	ErrTeachersOnly = errors.New("only teachers may perform this action")
	ErrStudentsOnly = errors.New("only students may submit answers")

	// not-found errors
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		// CreateAnswer persists the Answer and its derived Notification in
		// one transaction: both are stored or neither is.
		CreateAnswer(ctx context.Context, ans Answer, notif Notification) (Answer, error)
		GetAnswerByID(ctx context.Context, id string) (Answer, error)
		// SetAnswerGrade overwrites any previous grade (last write wins).
		SetAnswerGrade(ctx context.Context, answerID string, grade int) (Answer, error)
		// CreateComment persists the Comment and its derived Notification in
		// one transaction: both are stored or neither is.
		CreateComment(ctx context.Context, cmt Comment, notif Notification) (Comment, error)
		QueryAnswerComments(ctx context.Context, answerID string) ([]Comment, error)
		// QueryUserNotifications returns the user's notifications, newest first.
		QueryUserNotifications(ctx context.Context, userID string) ([]Notification, error)
		// MarkNotificationRead flips is_read on the recipient's notification.
		// Existence and ownership collapse into a single ErrNotificationNotFound.
		MarkNotificationRead(ctx context.Context, id, recipientID string) (Notification, error)
	}

	Service interface {
		CreateSubject(ctx context.Context, actor user.User, ns NewSubject) (Subject, error)
		CreateAssignment(ctx context.Context, actor user.User, na NewAssignment) (Assignment, error)
		SubmitAnswer(ctx context.Context, actor user.User, na NewAnswer) (Answer, error)
		GetAnswer(ctx context.Context, id string) (Answer, error)
		GradeAnswer(ctx context.Context, actor user.User, answerID string, ag AnswerGrade) (Answer, error)
		AddComment(ctx context.Context, actor user.User, nc NewComment) (Comment, error)
		QueryAnswerComments(ctx context.Context, answerID string) ([]Comment, error)
		QueryNotifications(ctx context.Context, actor user.User) ([]Notification, error)
		MarkNotificationRead(ctx context.Context, actor user.User, id string) (Notification, error)
	}

	service struct {
		repo    Repository
		usrRepo user.Repository
		mailSvc core.EmailService
		conf    *core.Config

		syncMail bool // tests send notification mails synchronously
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrRepo user.Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		usrRepo: usrRepo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) notify(notif Notification) {
	if svc.syncMail {
		svc.sendNotificationMail(notif)
		return
	}
	go svc.sendNotificationMail(notif)
}

func (svc *service) CreateSubject(ctx context.Context, actor user.User, ns NewSubject) (Subject, error) {
	if !actor.IsTeacher {
		return Subject{}, ErrTeachersOnly
	}
	sub := Subject{
		Name:      ns.Name,
		TeacherID: actor.ID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *service) CreateAssignment(ctx context.Context, actor user.User, na NewAssignment) (Assignment, error) {
	if !actor.IsTeacher {
		return Assignment{}, ErrTeachersOnly
	}
	if _, err := svc.repo.GetSubjectByID(ctx, na.SubjectID); err != nil {
		return Assignment{}, err
	}
	asg := Assignment{
		Title:       na.Title,
		Description: na.Description,
		SubjectID:   na.SubjectID,
		TeacherID:   actor.ID, // the author; not necessarily the Subject's owner
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateAssignment(ctx, asg)
}

func (svc *service) SubmitAnswer(ctx context.Context, actor user.User, na NewAnswer) (Answer, error) {
	if actor.IsTeacher {
		return Answer{}, ErrStudentsOnly
	}
	asg, err := svc.repo.GetAssignmentByID(ctx, na.AssignmentID)
	if err != nil {
		return Answer{}, err
	}

	now := time.Now().UTC()
	ans := Answer{
		Content:      na.Content,
		AssignmentID: asg.ID,
		StudentID:    actor.ID,
		CreatedAt:    now,
	}
	notif := answerNotification(asg, now)

	ans, err = svc.repo.CreateAnswer(ctx, ans, notif)
	if err != nil {
		return Answer{}, err
	}
	svc.notify(notif)
	return ans, nil
}

func (svc *service) GetAnswer(ctx context.Context, id string) (Answer, error) {
	return svc.repo.GetAnswerByID(ctx, id)
}

// GradeAnswer sets the grade on an Answer. Any teacher may grade any answer;
// there is no authorship check on the target Assignment.
func (svc *service) GradeAnswer(ctx context.Context, actor user.User, answerID string, ag AnswerGrade) (Answer, error) {
	if !actor.IsTeacher {
		return Answer{}, ErrTeachersOnly
	}
	return svc.repo.SetAnswerGrade(ctx, answerID, *ag.Grade)
}

func (svc *service) AddComment(ctx context.Context, actor user.User, nc NewComment) (Comment, error) {
	ans, err := svc.repo.GetAnswerByID(ctx, nc.AnswerID)
	if err != nil {
		return Comment{}, err
	}
	asg, err := svc.repo.GetAssignmentByID(ctx, ans.AssignmentID)
	if err != nil {
		return Comment{}, errors.Wrap(err, "finding the answer's assignment")
	}

	now := time.Now().UTC()
	cmt := Comment{
		Content:   nc.Content,
		AnswerID:  ans.ID,
		AuthorID:  actor.ID,
		IsTeacher: actor.IsTeacher, // server-derived; the wire value is ignored
		CreatedAt: now,
	}
	notif := commentNotification(actor, ans, asg, now)

	cmt, err = svc.repo.CreateComment(ctx, cmt, notif)
	if err != nil {
		return Comment{}, err
	}
	svc.notify(notif)
	return cmt, nil
}

func (svc *service) QueryAnswerComments(ctx context.Context, answerID string) ([]Comment, error) {
	return svc.repo.QueryAnswerComments(ctx, answerID)
}

func (svc *service) QueryNotifications(ctx context.Context, actor user.User) ([]Notification, error) {
	return svc.repo.QueryUserNotifications(ctx, actor.ID)
}

func (svc *service) MarkNotificationRead(ctx context.Context, actor user.User, id string) (Notification, error) {
	return svc.repo.MarkNotificationRead(ctx, id, actor.ID)
}
