package analytics

import "github.com/bonitasoft/bonita-engine-sub039/model"

type DataCollectorConfig struct {
	FileName      string
	CollectorType DataCollectorType
}

type DataCollectorType string

const LOG_FILE_DATA_COLLECTOR DataCollectorType = "LOG_FILE_DATA_COLLECTOR"
const NOOP_DATA_COLLECTOR DataCollectorType = "NOOP_DATA_COLLECTOR"

// InstantiationDataCollector records what the engine creates.
type InstantiationDataCollector interface {
	RecordProcessStarted(processDefinitionId int64, processInstanceId int64)
	RecordFlowNodeCreated(instance *model.FlowNodeInstance)
	RecordFlowNodeFailure(processDefinitionId int64, flowNodeName string, reason string)
}

func NewDataCollector(config DataCollectorConfig) (InstantiationDataCollector, error) {
	switch config.CollectorType {
	case LOG_FILE_DATA_COLLECTOR:
		return NewLogFileDataCollector(config.FileName)
	}
	return NoopDataCollector{}, nil
}

type NoopDataCollector struct{}

func (NoopDataCollector) RecordProcessStarted(processDefinitionId int64, processInstanceId int64) {
}

func (NoopDataCollector) RecordFlowNodeCreated(instance *model.FlowNodeInstance) {
}

func (NoopDataCollector) RecordFlowNodeFailure(processDefinitionId int64, flowNodeName string, reason string) {
}
