package classroom

import (
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

func NewServiceMock(repo Repository, usrRepo user.Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:     repo,
		usrRepo:  usrRepo,
		mailSvc:  mailSvc,
		conf:     conf,
		syncMail: true,
	}
}
