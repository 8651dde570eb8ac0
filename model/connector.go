package model

type ConnectorEvent string

const CONNECTOR_EVENT_ON_ENTER ConnectorEvent = "ON_ENTER"
const CONNECTOR_EVENT_ON_FINISH ConnectorEvent = "ON_FINISH"

type ConnectorContainerType string

const CONNECTOR_CONTAINER_FLOWNODE ConnectorContainerType = "FLOWNODE"
const CONNECTOR_CONTAINER_PROCESS ConnectorContainerType = "PROCESS"

type ConnectorState string

const CONNECTOR_STATE_TO_BE_EXECUTED ConnectorState = "TO_BE_EXECUTED"
const CONNECTOR_STATE_EXECUTING ConnectorState = "EXECUTING"
const CONNECTOR_STATE_DONE ConnectorState = "DONE"
const CONNECTOR_STATE_FAILED ConnectorState = "FAILED"

type ConnectorDefinition struct {
	Name            string         `json:"name" yaml:"name"`
	ConnectorId     string         `json:"connectorId" yaml:"connectorId"`
	Version         string         `json:"version" yaml:"version"`
	ActivationEvent ConnectorEvent `json:"activationEvent" yaml:"activationEvent"`
}

type ConnectorInstance struct {
	Id              int64                  `json:"id"`
	Name            string                 `json:"name"`
	ContainerId     int64                  `json:"containerId"`
	ContainerType   ConnectorContainerType `json:"containerType"`
	ConnectorId     string                 `json:"connectorId"`
	Version         string                 `json:"version"`
	ActivationEvent ConnectorEvent         `json:"activationEvent"`
	State           ConnectorState         `json:"state"`
	ExecutionOrder  int                    `json:"executionOrder"`
}
