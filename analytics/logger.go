package analytics

import (
	"os"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ InstantiationDataCollector = new(LogFileDataCollector)

type LogFileDataCollector struct {
	fileName string
	logger   *zap.Logger
}

func NewLogFileDataCollector(fileName string) (*LogFileDataCollector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = ""
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	core := zapcore.NewCore(fileEncoder, writer, zapcore.InfoLevel)
	return &LogFileDataCollector{
		fileName: fileName,
		logger:   zap.New(core),
	}, nil
}

func (lc *LogFileDataCollector) RecordProcessStarted(processDefinitionId int64, processInstanceId int64) {
	lc.logger.Info("process started", zap.Int64("processDefinitionId", processDefinitionId), zap.Int64("processInstanceId", processInstanceId))
}

func (lc *LogFileDataCollector) RecordFlowNodeCreated(instance *model.FlowNodeInstance) {
	lc.logger.Info("flow node created",
		zap.Int64("id", instance.Id),
		zap.String("name", instance.Name),
		zap.String("type", string(instance.Type)),
		zap.String("state", instance.State.Name),
		zap.Int("loopCounter", instance.LoopCounter),
		zap.Int64("processDefinitionId", instance.ProcessDefinitionId),
		zap.Int64("rootProcessInstanceId", instance.RootProcessInstanceId),
		zap.Int64("parentContainerId", instance.ParentContainerId))
}

func (lc *LogFileDataCollector) RecordFlowNodeFailure(processDefinitionId int64, flowNodeName string, reason string) {
	lc.logger.Info("flow node failure", zap.Int64("processDefinitionId", processDefinitionId), zap.String("name", flowNodeName), zap.String("reason", reason))
}

func (lc *LogFileDataCollector) Close() error {
	return lc.logger.Sync()
}
