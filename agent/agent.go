package agent

import (
	"sync"

	"github.com/bonitasoft/bonita-engine-sub039/config"
	"github.com/bonitasoft/bonita-engine-sub039/container"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/rest"
)

type Agent struct {
	Config       config.Config
	container    *container.DIContiner
	httpServer   *rest.Server
	shutdown     bool
	shutdownLock sync.Mutex
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config: config,
	}
	setup := []func() error{
		a.setupLogger,
		a.setupContainer,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupLogger() error {
	if a.Config.LogLevel == "" {
		return nil
	}
	return logger.SetLevel(a.Config.LogLevel)
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	return a.container.Init(a.Config)
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.container.GetMetadataService(), a.container.GetInstantiationService())
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Container() *container.DIContiner {
	return a.container
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true

	shutdown := []func() error{
		a.httpServer.Stop,
		a.container.Close,
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
