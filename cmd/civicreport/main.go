package main

import (
	"context"
	"log/slog"
	"os"

	"civicreport/config"
	"civicreport/internal/delivery"
	"civicreport/internal/delivery/http"
	"civicreport/internal/delivery/http/middleware"
	"civicreport/internal/delivery/http/router/handler"
	"civicreport/internal/infra/auth"
	"civicreport/internal/infra/auth/civic"
	"civicreport/internal/infra/auth/session"
	logs "civicreport/internal/infra/log"
	"civicreport/internal/infra/media"
	"civicreport/internal/infra/persistence/memory"
	"civicreport/internal/infra/persistence/mongo"
	"civicreport/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		mongo.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongo.NewAccountRepository,
			mongo.NewIssueRepository,
			mongo.NewMediaRepository,
			memory.NewFallbackStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			session.NewJWTService,
			civic.NewVerifier,
			media.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountResolver,
			impl.NewAuthService,
			impl.NewIssueService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewIssueHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
