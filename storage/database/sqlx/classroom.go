package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/classroom"
)

type classroomRepository struct {
	db *sqlx.DB
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *sql.DB) classroom.Repository {
	return &classroomRepository{db: sqlx.NewDb(db, "postgres")}
}

type (
	subjectRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		TeacherID string    `db:"teacher_id"`
		CreatedAt time.Time `db:"created_at"`
	}

	assignmentRow struct {
		ID          string    `db:"id"`
		Title       string    `db:"title"`
		Description string    `db:"description"`
		SubjectID   string    `db:"subject_id"`
		TeacherID   string    `db:"teacher_id"`
		CreatedAt   time.Time `db:"created_at"`
	}

	answerRow struct {
		ID           string    `db:"id"`
		Content      string    `db:"content"`
		AssignmentID string    `db:"assignment_id"`
		StudentID    string    `db:"student_id"`
		Grade        null.Int  `db:"grade"`
		CreatedAt    time.Time `db:"created_at"`
	}

	commentRow struct {
		ID        string    `db:"id"`
		Content   string    `db:"content"`
		AnswerID  string    `db:"answer_id"`
		AuthorID  string    `db:"author_id"`
		IsTeacher bool      `db:"is_teacher"`
		CreatedAt time.Time `db:"created_at"`
	}

	notificationRow struct {
		ID          string    `db:"id"`
		Message     string    `db:"message"`
		RecipientID string    `db:"recipient_id"`
		IsRead      bool      `db:"is_read"`
		CreatedAt   time.Time `db:"created_at"`
	}
)

func (row answerRow) answer() classroom.Answer {
	return classroom.Answer{
		ID:           row.ID,
		Content:      row.Content,
		AssignmentID: row.AssignmentID,
		StudentID:    row.StudentID,
		Grade:        row.Grade,
		CreatedAt:    row.CreatedAt,
	}
}

func (row commentRow) comment() classroom.Comment {
	return classroom.Comment{
		ID:        row.ID,
		Content:   row.Content,
		AnswerID:  row.AnswerID,
		AuthorID:  row.AuthorID,
		IsTeacher: row.IsTeacher,
		CreatedAt: row.CreatedAt,
	}
}

func (row notificationRow) notification() classroom.Notification {
	return classroom.Notification{
		ID:          row.ID,
		Message:     row.Message,
		RecipientID: row.RecipientID,
		IsRead:      row.IsRead,
		CreatedAt:   row.CreatedAt,
	}
}

const insertNotification = `INSERT INTO notification (id, message, recipient_id, is_read, created_at)
VALUES (:id, :message, :recipient_id, :is_read, :created_at)`

func (repo *classroomRepository) CreateSubject(ctx context.Context, sub classroom.Subject) (classroom.Subject, error) {
	sub.ID = uuid.New().String()
	q := `INSERT INTO subject (id, name, teacher_id, created_at) VALUES (:id, :name, :teacher_id, :created_at)`
	row := subjectRow{ID: sub.ID, Name: sub.Name, TeacherID: sub.TeacherID, CreatedAt: sub.CreatedAt}
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return classroom.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *classroomRepository) GetSubjectByID(ctx context.Context, id string) (classroom.Subject, error) {
	var row subjectRow
	q := `SELECT id, name, teacher_id, created_at FROM subject WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classroom.Subject{}, classroom.ErrSubjectNotFound
		}
		return classroom.Subject{}, errors.Wrap(err, "getting subject by id")
	}
	return classroom.Subject(row), nil
}

func (repo *classroomRepository) CreateAssignment(ctx context.Context, asg classroom.Assignment) (classroom.Assignment, error) {
	asg.ID = uuid.New().String()
	q := `INSERT INTO assignment (id, title, description, subject_id, teacher_id, created_at)
VALUES (:id, :title, :description, :subject_id, :teacher_id, :created_at)`
	row := assignmentRow{
		ID:          asg.ID,
		Title:       asg.Title,
		Description: asg.Description,
		SubjectID:   asg.SubjectID,
		TeacherID:   asg.TeacherID,
		CreatedAt:   asg.CreatedAt,
	}
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return classroom.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return asg, nil
}

func (repo *classroomRepository) GetAssignmentByID(ctx context.Context, id string) (classroom.Assignment, error) {
	var row assignmentRow
	q := `SELECT id, title, description, subject_id, teacher_id, created_at FROM assignment WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classroom.Assignment{}, classroom.ErrAssignmentNotFound
		}
		return classroom.Assignment{}, errors.Wrap(err, "getting assignment by id")
	}
	return classroom.Assignment(row), nil
}

func (repo *classroomRepository) CreateAnswer(ctx context.Context, ans classroom.Answer, notif classroom.Notification) (classroom.Answer, error) {
	ans.ID = uuid.New().String()
	notif.ID = uuid.New().String()

	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		q := `INSERT INTO answer (id, content, assignment_id, student_id, grade, created_at)
VALUES (:id, :content, :assignment_id, :student_id, :grade, :created_at)`
		row := answerRow{
			ID:           ans.ID,
			Content:      ans.Content,
			AssignmentID: ans.AssignmentID,
			StudentID:    ans.StudentID,
			Grade:        ans.Grade,
			CreatedAt:    ans.CreatedAt,
		}
		if _, err := tx.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrap(err, "creating answer")
		}
		if _, err := tx.NamedExecContext(ctx, insertNotification, notificationRow(notif)); err != nil {
			return errors.Wrap(err, "creating answer notification")
		}
		return nil
	})
	if err != nil {
		return classroom.Answer{}, err
	}
	return ans, nil
}

func (repo *classroomRepository) GetAnswerByID(ctx context.Context, id string) (classroom.Answer, error) {
	var row answerRow
	q := `SELECT id, content, assignment_id, student_id, grade, created_at FROM answer WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classroom.Answer{}, classroom.ErrAnswerNotFound
		}
		return classroom.Answer{}, errors.Wrap(err, "getting answer by id")
	}
	return row.answer(), nil
}

func (repo *classroomRepository) SetAnswerGrade(ctx context.Context, answerID string, grade int) (classroom.Answer, error) {
	var row answerRow
	q := `UPDATE answer SET grade = $1 WHERE id = $2
RETURNING id, content, assignment_id, student_id, grade, created_at`
	if err := repo.db.GetContext(ctx, &row, q, grade, answerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classroom.Answer{}, classroom.ErrAnswerNotFound
		}
		return classroom.Answer{}, errors.Wrap(err, "grading answer")
	}
	return row.answer(), nil
}

func (repo *classroomRepository) CreateComment(ctx context.Context, cmt classroom.Comment, notif classroom.Notification) (classroom.Comment, error) {
	cmt.ID = uuid.New().String()
	notif.ID = uuid.New().String()

	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		q := `INSERT INTO comment (id, content, answer_id, author_id, is_teacher, created_at)
VALUES (:id, :content, :answer_id, :author_id, :is_teacher, :created_at)`
		if _, err := tx.NamedExecContext(ctx, q, commentRow(cmt)); err != nil {
			return errors.Wrap(err, "creating comment")
		}
		if _, err := tx.NamedExecContext(ctx, insertNotification, notificationRow(notif)); err != nil {
			return errors.Wrap(err, "creating comment notification")
		}
		return nil
	})
	if err != nil {
		return classroom.Comment{}, err
	}
	return cmt, nil
}

func (repo *classroomRepository) QueryAnswerComments(ctx context.Context, answerID string) ([]classroom.Comment, error) {
	var rows []commentRow
	q := `SELECT id, content, answer_id, author_id, is_teacher, created_at FROM comment
WHERE answer_id = $1 ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &rows, q, answerID); err != nil {
		return nil, errors.Wrap(err, "querying answer comments")
	}
	comments := make([]classroom.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.comment()
	}
	return comments, nil
}

func (repo *classroomRepository) QueryUserNotifications(ctx context.Context, userID string) ([]classroom.Notification, error) {
	var rows []notificationRow
	q := `SELECT id, message, recipient_id, is_read, created_at FROM notification
WHERE recipient_id = $1 ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying user notifications")
	}
	notifs := make([]classroom.Notification, len(rows))
	for i, row := range rows {
		notifs[i] = row.notification()
	}
	return notifs, nil
}

func (repo *classroomRepository) MarkNotificationRead(ctx context.Context, id, recipientID string) (classroom.Notification, error) {
	var row notificationRow
	q := `UPDATE notification SET is_read = TRUE WHERE id = $1 AND recipient_id = $2
RETURNING id, message, recipient_id, is_read, created_at`
	if err := repo.db.GetContext(ctx, &row, q, id, recipientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classroom.Notification{}, classroom.ErrNotificationNotFound
		}
		return classroom.Notification{}, errors.Wrap(err, "marking notification read")
	}
	return row.notification(), nil
}

func (repo *classroomRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
