package router

import (
	"net/http"
	"time"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/container"
	"github.com/Codebuster0001/portfolio3/internal/infrastructure/elastic"
	pginfra "github.com/Codebuster0001/portfolio3/internal/infrastructure/postgres"
	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/router/modules"
	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

// Services are the application services shared by the HTTP modules.
type Services struct {
	Users     *application.UserService
	Skills    *application.SkillService
	Projects  *application.ProjectService
	Timelines *application.TimelineService
	Messages  *application.MessageService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	assets := container.GetAssets()

	var geo mailtpl.GeoResolver
	if cfg.GeoLookupEnabled {
		geo = mailtpl.IPAPIResolver{Client: &http.Client{Timeout: 3 * time.Second}}
	}

	// A nil publisher must stay an untyped nil so the service can skip queueing.
	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	var index application.ProjectIndex
	if es := container.GetES(); es != nil {
		index = elastic.NewProjectIndex(es, cfg.ESProjectsIndex)
	}

	return Services{
		Users: application.NewUserService(
			pginfra.NewUserRepository(pool),
			container.GetJWT(),
			assets,
			container.GetMailSender(),
			geo,
			cfg,
			logger,
		),
		Skills:    application.NewSkillService(pginfra.NewSkillRepository(pool), logger),
		Projects:  application.NewProjectService(pginfra.NewProjectRepository(pool), assets, index, logger),
		Timelines: application.NewTimelineService(pginfra.NewTimelineRepository(pool)),
		Messages:  application.NewMessageService(pginfra.NewMessageRepository(pool), pub, cfg, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := buildServices()
	rdb := container.GetRedis()
	cookies := container.GetCookies()

	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, cookies), svc.Users, rdb))
	r.Add(modules.NewSkillModule(handlers.NewSkillHandler(svc.Skills), svc.Users))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects), svc.Users, rdb))
	r.Add(modules.NewTimelineModule(handlers.NewTimelineHandler(svc.Timelines), svc.Users))
	r.Add(modules.NewMessageModule(handlers.NewMessageHandler(svc.Messages), svc.Users, rdb))

	if container.GetConfig().DebugMetricsEnabled {
		r.AddRoot(modules.NewDebugModule(rdb))
	}
}
