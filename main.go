package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/syndicate-server/api"
	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/config"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/operator"
	"github.com/carson-networks/syndicate-server/internal/service"
	"github.com/carson-networks/syndicate-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("syndicate-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	op := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	op.Start()
	defer op.Stop()

	issuer := auth.NewIssuer(envConfig.JWTSecret)
	svc := service.NewService(dbStorage, op, issuer)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:      logger,
			Port:        envConfig.Port,
			Service:     svc,
			TokenIssuer: issuer,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
