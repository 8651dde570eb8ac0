package model

// ProcessDefinition is the static description of a process, as deployed.
type ProcessDefinition struct {
	Id                      int64                    `json:"id" yaml:"id"`
	Name                    string                   `json:"name" yaml:"name"`
	Version                 string                   `json:"version" yaml:"version"`
	Description             string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Actors                  []ActorDefinition        `json:"actors,omitempty" yaml:"actors,omitempty"`
	DataDefinitions         []DataDefinition         `json:"data,omitempty" yaml:"data,omitempty"`
	BusinessDataDefinitions []BusinessDataDefinition `json:"businessData,omitempty" yaml:"businessData,omitempty"`
	Connectors              []ConnectorDefinition    `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	Container               *FlowElementContainer    `json:"container" yaml:"container"`
}

func NewProcessDefinition(id int64, name string, version string) *ProcessDefinition {
	return &ProcessDefinition{
		Id:        id,
		Name:      name,
		Version:   version,
		Container: &FlowElementContainer{},
	}
}

func (p *ProcessDefinition) WithActor(name string) *ProcessDefinition {
	p.Actors = append(p.Actors, ActorDefinition{Name: name})
	return p
}

func (p *ProcessDefinition) WithData(def DataDefinition) *ProcessDefinition {
	p.DataDefinitions = append(p.DataDefinitions, def)
	return p
}

func (p *ProcessDefinition) WithBusinessData(def BusinessDataDefinition) *ProcessDefinition {
	p.BusinessDataDefinitions = append(p.BusinessDataDefinitions, def)
	return p
}

func (p *ProcessDefinition) WithConnector(def ConnectorDefinition) *ProcessDefinition {
	p.Connectors = append(p.Connectors, def)
	return p
}

func (p *ProcessDefinition) AddFlowNode(def *FlowNodeDefinition) *ProcessDefinition {
	p.Container.AddFlowNode(def)
	return p
}

func (p *ProcessDefinition) BusinessData(name string) *BusinessDataDefinition {
	for i := range p.BusinessDataDefinitions {
		if p.BusinessDataDefinitions[i].Name == name {
			return &p.BusinessDataDefinitions[i]
		}
	}
	return nil
}

// FlowNode looks the flow node up in the whole container tree.
func (p *ProcessDefinition) FlowNode(id int64) *FlowNodeDefinition {
	if p.Container == nil {
		return nil
	}
	return p.Container.FlowNode(id)
}

type TransitionDefinition struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Source int64  `json:"source" yaml:"source"`
	Target int64  `json:"target" yaml:"target"`
}

// FlowElementContainer holds the flow nodes of a process or of a sub-process.
type FlowElementContainer struct {
	FlowNodes   []*FlowNodeDefinition  `json:"flowNodes,omitempty" yaml:"flowNodes,omitempty"`
	Transitions []TransitionDefinition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

func (c *FlowElementContainer) AddFlowNode(def *FlowNodeDefinition) *FlowElementContainer {
	c.FlowNodes = append(c.FlowNodes, def)
	return c
}

func (c *FlowElementContainer) AddTransition(source int64, target int64) *FlowElementContainer {
	c.Transitions = append(c.Transitions, TransitionDefinition{Source: source, Target: target})
	return c
}

// Walk visits every flow node of the container, depth first, descending into
// sub-process containers. Returning false from fn stops the traversal.
func (c *FlowElementContainer) Walk(fn func(parent *FlowNodeDefinition, def *FlowNodeDefinition) bool) bool {
	return c.walk(nil, fn)
}

func (c *FlowElementContainer) walk(parent *FlowNodeDefinition, fn func(*FlowNodeDefinition, *FlowNodeDefinition) bool) bool {
	if c == nil {
		return true
	}
	for _, def := range c.FlowNodes {
		if !fn(parent, def) {
			return false
		}
		if def.SubProcess != nil && !def.SubProcess.Container.walk(def, fn) {
			return false
		}
	}
	return true
}

func (c *FlowElementContainer) FlowNode(id int64) *FlowNodeDefinition {
	var found *FlowNodeDefinition
	c.Walk(func(_ *FlowNodeDefinition, def *FlowNodeDefinition) bool {
		if def.Id == id {
			found = def
			return false
		}
		return true
	})
	return found
}

// EventSubProcesses returns every sub-process triggered by an event, at any depth.
func (c *FlowElementContainer) EventSubProcesses() []*FlowNodeDefinition {
	var result []*FlowNodeDefinition
	c.Walk(func(_ *FlowNodeDefinition, def *FlowNodeDefinition) bool {
		if def.Type == FLOWNODE_TYPE_SUB_PROCESS && def.SubProcess != nil && def.SubProcess.TriggeredByEvent {
			result = append(result, def)
		}
		return true
	})
	return result
}

// StartFlowNodes returns the direct flow nodes instantiated when the container starts:
// nodes without incoming transition, except boundary events and event sub-processes.
func (c *FlowElementContainer) StartFlowNodes() []*FlowNodeDefinition {
	targets := make(map[int64]bool, len(c.Transitions))
	for _, tr := range c.Transitions {
		targets[tr.Target] = true
	}
	var result []*FlowNodeDefinition
	for _, def := range c.FlowNodes {
		if targets[def.Id] || def.Type == FLOWNODE_TYPE_BOUNDARY_EVENT {
			continue
		}
		if def.SubProcess != nil && def.SubProcess.TriggeredByEvent {
			continue
		}
		result = append(result, def)
	}
	return result
}

type LoopCharacteristics struct {
	Type       LoopType `json:"type" yaml:"type"`
	Sequential bool     `json:"sequential,omitempty" yaml:"sequential,omitempty"`
	// standard loop only
	TestBefore bool        `json:"testBefore,omitempty" yaml:"testBefore,omitempty"`
	LoopMax    *Expression `json:"loopMax,omitempty" yaml:"loopMax,omitempty"`
	// multi instance only
	LoopDataInputRef  string `json:"loopDataInputRef,omitempty" yaml:"loopDataInputRef,omitempty"`
	LoopDataOutputRef string `json:"loopDataOutputRef,omitempty" yaml:"loopDataOutputRef,omitempty"`
	DataInputItemRef  string `json:"dataInputItemRef,omitempty" yaml:"dataInputItemRef,omitempty"`
	DataOutputItemRef string `json:"dataOutputItemRef,omitempty" yaml:"dataOutputItemRef,omitempty"`
}

func NewStandardLoop(testBefore bool) *LoopCharacteristics {
	return &LoopCharacteristics{
		Type:       LOOP_TYPE_STANDARD,
		Sequential: true,
		TestBefore: testBefore,
	}
}

func NewMultiInstanceLoop(sequential bool, loopDataInputRef, loopDataOutputRef, dataInputItemRef, dataOutputItemRef string) *LoopCharacteristics {
	return &LoopCharacteristics{
		Type:              LOOP_TYPE_MULTI_INSTANCE,
		Sequential:        sequential,
		LoopDataInputRef:  loopDataInputRef,
		LoopDataOutputRef: loopDataOutputRef,
		DataInputItemRef:  dataInputItemRef,
		DataOutputItemRef: dataOutputItemRef,
	}
}

func (l *LoopCharacteristics) IsMultiInstance() bool {
	return l != nil && l.Type == LOOP_TYPE_MULTI_INSTANCE
}

type HumanTask struct {
	ActorName string       `json:"actorName" yaml:"actorName"`
	Priority  TaskPriority `json:"priority,omitempty" yaml:"priority,omitempty"`
	// ExpectedDuration in milliseconds, nil when not set
	ExpectedDuration *int64 `json:"expectedDuration,omitempty" yaml:"expectedDuration,omitempty"`
}

type BoundaryEvent struct {
	AttachedTo   int64 `json:"attachedTo" yaml:"attachedTo"`
	Interrupting bool  `json:"interrupting" yaml:"interrupting"`
}

type SubProcess struct {
	TriggeredByEvent bool                  `json:"triggeredByEvent,omitempty" yaml:"triggeredByEvent,omitempty"`
	Container        *FlowElementContainer `json:"container" yaml:"container"`
}

type CallActivity struct {
	CallableElement        *Expression `json:"callableElement" yaml:"callableElement"`
	CallableElementVersion *Expression `json:"callableElementVersion,omitempty" yaml:"callableElementVersion,omitempty"`
	TriggeredByEvent       bool        `json:"triggeredByEvent,omitempty" yaml:"triggeredByEvent,omitempty"`
}

type EventTrigger struct {
	Type EventTriggerType `json:"type" yaml:"type"`
	Name string           `json:"name,omitempty" yaml:"name,omitempty"`
}

// FlowNodeDefinition is a closed union keyed by Type: only the section matching
// the type (HumanTask, Gateway, Boundary, SubProcess, CallActivity) is read.
type FlowNodeDefinition struct {
	Id                  int64                 `json:"id" yaml:"id"`
	Name                string                `json:"name" yaml:"name"`
	DisplayName         string                `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description         string                `json:"description,omitempty" yaml:"description,omitempty"`
	Type                FlowNodeType          `json:"type" yaml:"type"`
	LoopCharacteristics *LoopCharacteristics  `json:"loop,omitempty" yaml:"loop,omitempty"`
	Connectors          []ConnectorDefinition `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	DataDefinitions     []DataDefinition      `json:"data,omitempty" yaml:"data,omitempty"`
	HumanTask           *HumanTask            `json:"humanTask,omitempty" yaml:"humanTask,omitempty"`
	GatewayType         GatewayType           `json:"gatewayType,omitempty" yaml:"gatewayType,omitempty"`
	Boundary            *BoundaryEvent        `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	SubProcess          *SubProcess           `json:"subProcess,omitempty" yaml:"subProcess,omitempty"`
	CallActivity        *CallActivity         `json:"callActivity,omitempty" yaml:"callActivity,omitempty"`
	EventTriggers       []EventTrigger        `json:"eventTriggers,omitempty" yaml:"eventTriggers,omitempty"`
}

func NewFlowNode(id int64, name string, nodeType FlowNodeType) *FlowNodeDefinition {
	return &FlowNodeDefinition{
		Id:   id,
		Name: name,
		Type: nodeType,
	}
}

func (f *FlowNodeDefinition) WithDescription(description string) *FlowNodeDefinition {
	f.Description = description
	return f
}

func (f *FlowNodeDefinition) WithLoop(loop *LoopCharacteristics) *FlowNodeDefinition {
	f.LoopCharacteristics = loop
	return f
}

func (f *FlowNodeDefinition) WithConnector(name, connectorId, version string, event ConnectorEvent) *FlowNodeDefinition {
	f.Connectors = append(f.Connectors, ConnectorDefinition{
		Name:            name,
		ConnectorId:     connectorId,
		Version:         version,
		ActivationEvent: event,
	})
	return f
}

func (f *FlowNodeDefinition) WithData(def DataDefinition) *FlowNodeDefinition {
	f.DataDefinitions = append(f.DataDefinitions, def)
	return f
}

func (f *FlowNodeDefinition) WithActor(actorName string, priority TaskPriority) *FlowNodeDefinition {
	if f.HumanTask == nil {
		f.HumanTask = &HumanTask{}
	}
	f.HumanTask.ActorName = actorName
	f.HumanTask.Priority = priority
	return f
}

func (f *FlowNodeDefinition) WithExpectedDuration(millis int64) *FlowNodeDefinition {
	if f.HumanTask == nil {
		f.HumanTask = &HumanTask{}
	}
	f.HumanTask.ExpectedDuration = &millis
	return f
}

func (f *FlowNodeDefinition) WithGatewayType(gatewayType GatewayType) *FlowNodeDefinition {
	f.GatewayType = gatewayType
	return f
}

func (f *FlowNodeDefinition) AttachedTo(activityId int64, interrupting bool) *FlowNodeDefinition {
	f.Boundary = &BoundaryEvent{AttachedTo: activityId, Interrupting: interrupting}
	return f
}

func (f *FlowNodeDefinition) WithSubProcess(triggeredByEvent bool, container *FlowElementContainer) *FlowNodeDefinition {
	f.SubProcess = &SubProcess{TriggeredByEvent: triggeredByEvent, Container: container}
	return f
}

func (f *FlowNodeDefinition) WithCallableElement(name *Expression, version *Expression) *FlowNodeDefinition {
	f.CallActivity = &CallActivity{CallableElement: name, CallableElementVersion: version}
	return f
}

func (f *FlowNodeDefinition) WithEventTrigger(triggerType EventTriggerType, name string) *FlowNodeDefinition {
	f.EventTriggers = append(f.EventTriggers, EventTrigger{Type: triggerType, Name: name})
	return f
}

// IsTriggeredByEvent applies to sub-processes and call activities.
func (f *FlowNodeDefinition) IsTriggeredByEvent() bool {
	if f.SubProcess != nil {
		return f.SubProcess.TriggeredByEvent
	}
	if f.CallActivity != nil {
		return f.CallActivity.TriggeredByEvent
	}
	return false
}
