package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/classroom"
	testutil "github.com/trezcool/darasa/tests"
)

var (
	errTeachersOnly = httpErr{Error: "only teachers may perform this action"}
	errStudentsOnly = httpErr{Error: "only students may submit answers"}
)

func intPtr(i int) *int { return &i }

func Test_classroomApi_createSubject(t *testing.T) {
	teacher := testutil.CreateUser(t, usrRepo, "sub.teacher@test.cd", "s3cr3t-p@s5", true)
	student := testutil.CreateUser(t, usrRepo, "sub.student@test.cd", "s3cr3t-p@s5", false)

	tests := []httpTest{
		{name: "Auth required", body: marchallObj(t, classroom.NewSubject{Name: "Maths"}), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teachers only", body: marchallObj(t, classroom.NewSubject{Name: "Maths"}), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errTeachersOnly),
		},
		{
			name: "Name required", body: marchallObj(t, classroom.NewSubject{}), token: getToken(t, teacher),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{name: "Subject created", body: marchallObj(t, classroom.NewSubject{Name: "Maths"}), token: getToken(t, teacher), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/subjects"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var sub classroom.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if sub.TeacherID != teacher.ID {
					t.Errorf("TeacherID = %q; want the creator %q", sub.TeacherID, teacher.ID)
				}
			}
		})
	}
}

func Test_classroomApi_createAssignment(t *testing.T) {
	teacher := testutil.CreateUser(t, usrRepo, "asg.teacher@test.cd", "s3cr3t-p@s5", true)
	student := testutil.CreateUser(t, usrRepo, "asg.student@test.cd", "s3cr3t-p@s5", false)
	sub := testutil.CreateSubject(t, clsRepo, "Physics", teacher.ID)

	tests := []httpTest{
		{
			name: "Teachers only", body: marchallObj(t, classroom.NewAssignment{Title: "Lab 1", SubjectID: sub.ID}),
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errTeachersOnly),
		},
		{
			name: "Subject must exist", body: marchallObj(t, classroom.NewAssignment{Title: "Lab 1", SubjectID: "lol"}),
			token: getToken(t, teacher), wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "Title required", body: marchallObj(t, classroom.NewAssignment{SubjectID: sub.ID}),
			token: getToken(t, teacher), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "Assignment created", body: marchallObj(t, classroom.NewAssignment{Title: "Lab 1", Description: "Free fall", SubjectID: sub.ID}),
			token: getToken(t, teacher), wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/assignments"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classroomApi_submitAndGradeAnswer(t *testing.T) {
	teacher := testutil.CreateUser(t, usrRepo, "ans.teacher@test.cd", "s3cr3t-p@s5", true)
	student := testutil.CreateUser(t, usrRepo, "ans.student@test.cd", "s3cr3t-p@s5", false)
	sub := testutil.CreateSubject(t, clsRepo, "Chemistry", teacher.ID)
	asg := testutil.CreateAssignment(t, clsRepo, "Titration", sub.ID, teacher.ID)

	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student)

	// submit
	tests := []httpTest{
		{
			name: "Students only", body: marchallObj(t, classroom.NewAnswer{Content: "42", AssignmentID: asg.ID}),
			token: teacherToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errStudentsOnly),
		},
		{
			name: "Assignment must exist", body: marchallObj(t, classroom.NewAnswer{Content: "42", AssignmentID: "lol"}),
			token: studentToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "assignment not found"}),
		},
		{
			name: "Answer submitted", body: marchallObj(t, classroom.NewAnswer{Content: "42", AssignmentID: asg.ID}),
			token: studentToken, wantCode: http.StatusCreated,
		},
	}
	var ans classroom.Answer
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/answers"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				if err := json.Unmarshal(rec.Body.Bytes(), &ans); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if ans.StudentID != student.ID {
					t.Errorf("StudentID = %q; want the submitter %q", ans.StudentID, student.ID)
				}
				if ans.Grade.Valid {
					t.Error("a fresh answer must not be graded")
				}
			}
		})
	}
	if ans.ID == "" {
		t.Fatal("no answer was created")
	}

	// the submission must notify the assignment's teacher
	t.Run("Submission notifies teacher", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; want %v", rec.Code, http.StatusOK)
		}
		var notifs []classroom.Notification
		if err := json.Unmarshal(rec.Body.Bytes(), &notifs); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(notifs) != 1 {
			t.Fatalf("len(notifs) = %d; want 1", len(notifs))
		}
		if want := "New answer submitted for assignment 'Titration'."; notifs[0].Message != want {
			t.Errorf("Message = %q; want %q", notifs[0].Message, want)
		}
		if notifs[0].IsRead {
			t.Error("a fresh notification must be unread")
		}
	})

	// retrieve
	t.Run("Answer retrieved", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/answers/"+ans.ID, studentToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, ans)}, rec)
	})

	// grade
	gradeTests := []httpTest{
		{
			name: "Teachers only", path: "/v1/answers/" + ans.ID + "/grade", body: marchallObj(t, classroom.AnswerGrade{Grade: intPtr(5)}),
			token: studentToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errTeachersOnly),
		},
		{
			name: "Answer must exist", path: "/v1/answers/lol/grade", body: marchallObj(t, classroom.AnswerGrade{Grade: intPtr(5)}),
			token: teacherToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "answer not found"}),
		},
		{
			name: "Grade required", path: "/v1/answers/" + ans.ID + "/grade", body: marchallObj(t, classroom.AnswerGrade{}),
			token: teacherToken, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"grade": "this field is required"}),
		},
		{
			name: "Answer graded", path: "/v1/answers/" + ans.ID + "/grade", body: marchallObj(t, classroom.AnswerGrade{Grade: intPtr(5)}),
			token: teacherToken, wantCode: http.StatusOK, extra: 5,
		},
		{
			name: "Regrade overwrites", path: "/v1/answers/" + ans.ID + "/grade", body: marchallObj(t, classroom.AnswerGrade{Grade: intPtr(3)}),
			token: teacherToken, wantCode: http.StatusOK, extra: 3,
		},
	}
	for _, tt := range gradeTests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusOK {
				var graded classroom.Answer
				if err := json.Unmarshal(rec.Body.Bytes(), &graded); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				want := tt.extra.(int)
				if !graded.Grade.Valid || graded.Grade.Int != want {
					t.Errorf("Grade = %v; want %d", graded.Grade, want)
				}
			}
		})
	}
}

func Test_classroomApi_comments(t *testing.T) {
	teacher := testutil.CreateUser(t, usrRepo, "cmt.teacher@test.cd", "s3cr3t-p@s5", true)
	student := testutil.CreateUser(t, usrRepo, "cmt.student@test.cd", "s3cr3t-p@s5", false)
	sub := testutil.CreateSubject(t, clsRepo, "History", teacher.ID)
	asg := testutil.CreateAssignment(t, clsRepo, "Essay", sub.ID, teacher.ID)
	ans := testutil.CreateAnswer(t, clsRepo, "Once upon a time...", asg.ID, student.ID, teacher.ID)

	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student)

	tests := []httpTest{
		{
			name: "Auth required", body: marchallObj(t, classroom.NewComment{Content: "Nice", AnswerID: ans.ID}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Answer must exist", body: marchallObj(t, classroom.NewComment{Content: "Nice", AnswerID: "lol"}),
			token: teacherToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "answer not found"}),
		},
		{
			name: "Content required", body: marchallObj(t, classroom.NewComment{AnswerID: ans.ID}),
			token: teacherToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"content": "this field is required"}),
		},
		{
			name: "Teacher comment notifies student", body: marchallObj(t, classroom.NewComment{Content: "Needs work", AnswerID: ans.ID}),
			token: teacherToken, wantCode: http.StatusCreated, extra: true, /* wantIsTeacher */
		},
		{
			// the client cannot spoof the author's role
			name: "Student comment notifies teacher", body: marchallObj(t, classroom.NewComment{Content: "Thanks!", AnswerID: ans.ID, IsTeacher: true}),
			token: studentToken, wantCode: http.StatusCreated, extra: false,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/comments"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var cmt classroom.Comment
				if err := json.Unmarshal(rec.Body.Bytes(), &cmt); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				wantIsTeacher := tt.extra.(bool)
				if cmt.IsTeacher != wantIsTeacher {
					t.Errorf("IsTeacher = %v; want %v", cmt.IsTeacher, wantIsTeacher)
				}
			}
		})
	}

	t.Run("Comments are public", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/answers/"+ans.ID+"/comments")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; want %v", rec.Code, http.StatusOK)
		}
		var comments []classroom.Comment
		if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(comments) != 2 {
			t.Fatalf("len(comments) = %d; want 2", len(comments))
		}
	})

	t.Run("Unknown answer has no comments", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/answers/lol/comments")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
	})

	// fanout checks
	t.Run("Student got the teacher's comment notification", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", studentToken)
		app.ServeHTTP(rec, req)
		var notifs []classroom.Notification
		if err := json.Unmarshal(rec.Body.Bytes(), &notifs); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(notifs) != 1 {
			t.Fatalf("len(notifs) = %d; want 1", len(notifs))
		}
		if want := "New comment on the answer to 'Essay'."; notifs[0].Message != want {
			t.Errorf("Message = %q; want %q", notifs[0].Message, want)
		}
	})
}

func Test_classroomApi_notifications(t *testing.T) {
	teacher := testutil.CreateUser(t, usrRepo, "notif.teacher@test.cd", "s3cr3t-p@s5", true)
	other := testutil.CreateUser(t, usrRepo, "notif.other@test.cd", "s3cr3t-p@s5", true)
	student := testutil.CreateUser(t, usrRepo, "notif.student@test.cd", "s3cr3t-p@s5", false)
	sub := testutil.CreateSubject(t, clsRepo, "Biology", teacher.ID)
	asg := testutil.CreateAssignment(t, clsRepo, "Cells", sub.ID, teacher.ID)

	teacherToken := getToken(t, teacher)

	// two submissions, the second one more recent
	testutil.CreateAnswer(t, clsRepo, "first", asg.ID, student.ID, teacher.ID)
	testutil.CreateAnswer(t, clsRepo, "second", asg.ID, student.ID, teacher.ID)

	var notifs []classroom.Notification

	t.Run("Newest first", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; want %v", rec.Code, http.StatusOK)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &notifs); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(notifs) != 2 {
			t.Fatalf("len(notifs) = %d; want 2", len(notifs))
		}
		if notifs[0].CreatedAt.Before(notifs[1].CreatedAt) {
			t.Error("notifications must be sorted newest first")
		}
	})
	if len(notifs) == 0 {
		t.Fatal("no notifications were created")
	}

	markPath := func(id string) string { return fmt.Sprintf("/v1/notifications/%s/read", id) }

	tests := []httpTest{
		{name: "Auth required", path: markPath(notifs[0].ID), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown notification", path: markPath("lol"), token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "notification not found"}),
		},
		{
			// someone else's notification is indistinguishable from a missing one
			name: "Foreign notification", path: markPath(notifs[0].ID), token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "notification not found"}),
		},
		{name: "Marked read", path: markPath(notifs[0].ID), token: teacherToken, wantCode: http.StatusOK},
		{name: "Marking read is idempotent", path: markPath(notifs[0].ID), token: teacherToken, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusOK {
				var notif classroom.Notification
				if err := json.Unmarshal(rec.Body.Bytes(), &notif); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if !notif.IsRead {
					t.Error("IsRead = false; want true")
				}
			}
		})
	}
}
