package container

import (
	"io"

	"github.com/bonitasoft/bonita-engine-sub039/actor"
	"github.com/bonitasoft/bonita-engine-sub039/analytics"
	"github.com/bonitasoft/bonita-engine-sub039/config"
	"github.com/bonitasoft/bonita-engine-sub039/connector"
	"github.com/bonitasoft/bonita-engine-sub039/data"
	"github.com/bonitasoft/bonita-engine-sub039/expression"
	"github.com/bonitasoft/bonita-engine-sub039/instance"
	"github.com/bonitasoft/bonita-engine-sub039/metadata"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/persistence/memory"
	rd "github.com/bonitasoft/bonita-engine-sub039/persistence/redis"
	"github.com/bonitasoft/bonita-engine-sub039/service"
	"github.com/bonitasoft/bonita-engine-sub039/state"
)

var _ io.Closer = new(DIContiner)

type DIContiner struct {
	initialized          bool
	closers              []io.Closer
	storage              *persistence.Storage
	collector            analytics.InstantiationDataCollector
	metadataService      metadata.MetadataService
	instantiationService *service.InstantiationService
}

func (p *DIContiner) setInitialized() {
	p.initialized = true
}

func NewDiContainer() *DIContiner {
	return &DIContiner{
		initialized: false,
	}
}

func (d *DIContiner) Init(conf config.Config) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	var err error
	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     conf.RedisConfig.Addrs,
			Namespace: conf.RedisConfig.Namespace,
			PoolSize:  conf.RedisConfig.PoolSize,
			Password:  conf.RedisConfig.Password,
		}
		d.storage = rd.NewStorage(rdConf, conf.TransientDataTTL)
		if closer, ok := d.storage.Sequence.(io.Closer); ok {
			d.closers = append(d.closers, closer)
		}
	case config.STORAGE_TYPE_INMEM:
		d.storage = memory.NewStorage(conf.TransientDataTTL)
	}

	d.collector, err = analytics.NewDataCollector(conf.AnalyticsConfig)
	if err != nil {
		return err
	}
	if closer, ok := d.collector.(io.Closer); ok {
		d.closers = append(d.closers, closer)
	}
	registrar := connector.NewRegistrar(d.storage.Connectors)
	creator := instance.NewCreator(d.storage.FlowNodes, actor.NewResolver(d.storage.Actors), state.NewTable(), registrar, d.collector)
	binder := data.NewBinder(expression.NewEvaluator(), d.storage.Data, d.storage.TransientData, d.storage.RefBusinessData)
	d.metadataService = metadata.NewMetadataService(d.storage.Definitions, d.storage.Actors)
	d.instantiationService = service.NewInstantiationService(d.metadataService, d.storage, creator, binder, registrar, d.collector)
	d.setInitialized()
	return nil
}

func (d *DIContiner) GetStorage() *persistence.Storage {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.storage
}

func (d *DIContiner) GetMetadataService() metadata.MetadataService {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.metadataService
}

func (d *DIContiner) GetInstantiationService() *service.InstantiationService {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.instantiationService
}

// Close releases the storage connections and the analytics file.
func (d *DIContiner) Close() error {
	for _, closer := range d.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	d.closers = nil
	return nil
}
