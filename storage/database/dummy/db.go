package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/classroom"
	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user         *userTable
		subject      *subjectTable
		assignment   *assignmentTable
		answer       *answerTable
		comment      *commentTable
		notification *notificationTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*classroom.Subject
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*classroom.Assignment
	}

	answerTable struct {
		sync.RWMutex
		table map[string]*classroom.Answer
	}

	commentTable struct {
		sync.RWMutex
		table map[string]*classroom.Comment
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]*classroom.Notification
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		subject:      &subjectTable{table: make(map[string]*classroom.Subject)},
		assignment:   &assignmentTable{table: make(map[string]*classroom.Assignment)},
		answer:       &answerTable{table: make(map[string]*classroom.Answer)},
		comment:      &commentTable{table: make(map[string]*classroom.Comment)},
		notification: &notificationTable{table: make(map[string]*classroom.Notification)},
	}
	return db, nil
}
