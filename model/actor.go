package model

type ActorDefinition struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Initiator   bool   `json:"initiator,omitempty" yaml:"initiator,omitempty"`
}

type Actor struct {
	Id                  int64  `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	ProcessDefinitionId int64  `json:"processDefinitionId"`
	Initiator           bool   `json:"initiator,omitempty"`
}
