package classroom

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SubjectID   string    `json:"subject_id"`
	TeacherID   string    `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type Answer struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	Grade        null.Int  `json:"grade"`      // absent until graded
	CreatedAt    time.Time `json:"created_at"` // UTC
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AnswerID  string    `json:"answer_id"`
	AuthorID  string    `json:"author_id"`
	IsTeacher bool      `json:"is_teacher"` // author's role snapshot at post time
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Notification struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	RecipientID string    `json:"recipient_id"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name string `json:"name" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	SubjectID   string `json:"subject_id" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

// NewAnswer contains information needed to submit a new Answer.
type NewAnswer struct {
	Content      string `json:"content" validate:"required"`
	AssignmentID string `json:"assignment_id" validate:"required"`
}

func (na *NewAnswer) Validate(validate *validator.Validate) error {
	na.Content = core.CleanString(na.Content)
	return validate.Struct(na)
}

// AnswerGrade carries the grade a teacher sets on an Answer.
// Overwrites are allowed: the latest grade wins.
type AnswerGrade struct {
	Grade *int `json:"grade" validate:"required"`
}

func (ag AnswerGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ag)
}

// NewComment contains information needed to post a new Comment.
// IsTeacher is accepted on the wire for backwards compatibility but
// always overridden with the authenticated author's actual role.
type NewComment struct {
	Content   string `json:"content" validate:"required"`
	AnswerID  string `json:"answer_id" validate:"required"`
	IsTeacher bool   `json:"is_teacher"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}
