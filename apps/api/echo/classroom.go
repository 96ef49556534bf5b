package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/classroom"
	"github.com/trezcool/darasa/core/user"
)

type classroomApi struct {
	svc      classroom.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerClassroomAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc classroom.Service,
	usrSvc user.Service,
	validate *validator.Validate,
) {
	api := classroomApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	g.POST("/subjects", api.createSubject, jwt)
	g.POST("/assignments", api.createAssignment, jwt)
	g.POST("/comments", api.addComment, jwt)

	ag := g.Group("/answers")
	ag.POST("", api.submitAnswer, jwt)
	ag.GET("/:id", api.retrieveAnswer, jwt)
	ag.PUT("/:id/grade", api.gradeAnswer, jwt)
	// comments are public: no auth required to read a discussion
	ag.GET("/:id/comments", api.queryComments)

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.queryNotifications)
	ng.PUT("/:id/read", api.markNotificationRead)
}

// Handlers

func (api *classroomApi) createSubject(ctx echo.Context) error {
	var data classroom.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	sub, err := api.svc.CreateSubject(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *classroomApi) createAssignment(ctx echo.Context) error {
	var data classroom.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	asg, err := api.svc.CreateAssignment(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *classroomApi) submitAnswer(ctx echo.Context) error {
	var data classroom.NewAnswer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnswer")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	ans, err := api.svc.SubmitAnswer(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ans)
}

func (api *classroomApi) retrieveAnswer(ctx echo.Context) error {
	if _, err := getContextUser(ctx, api.usrSvc); err != nil {
		return err
	}

	ans, err := api.svc.GetAnswer(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ans)
}

func (api *classroomApi) gradeAnswer(ctx echo.Context) error {
	var data classroom.AnswerGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	ans, err := api.svc.GradeAnswer(ctx.Request().Context(), ctxUsr, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ans)
}

func (api *classroomApi) addComment(ctx echo.Context) error {
	var data classroom.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	cmt, err := api.svc.AddComment(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cmt)
}

func (api *classroomApi) queryComments(ctx echo.Context) error {
	comments, err := api.svc.QueryAnswerComments(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []classroom.Comment{}
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *classroomApi) queryNotifications(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	notifs, err := api.svc.QueryNotifications(ctx.Request().Context(), ctxUsr)
	if err != nil {
		return err
	}
	if notifs == nil {
		notifs = []classroom.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *classroomApi) markNotificationRead(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	notif, err := api.svc.MarkNotificationRead(ctx.Request().Context(), ctxUsr, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notif)
}
