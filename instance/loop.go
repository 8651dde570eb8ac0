package instance

import (
	"context"

	"github.com/bonitasoft/bonita-engine-sub039/model"
)

// createLoopInstance creates the outer instance of a looping activity. Iterations are
// created later through CreateInnerInstance with this instance as parent container.
// No connector is registered on the outer instance.
func (c *creator) createLoopInstance(ctx context.Context, req *FlowNodeRequest) (*model.FlowNodeInstance, error) {
	loop := req.Definition.LoopCharacteristics
	var instance *model.FlowNodeInstance
	if loop.IsMultiInstance() {
		instance = newInstance(req, model.FLOWNODE_TYPE_MULTI_INSTANCE_ACTIVITY)
		instance.Sequential = loop.Sequential
		instance.LoopDataInputRef = loop.LoopDataInputRef
		instance.LoopDataOutputRef = loop.LoopDataOutputRef
		instance.DataInputItemRef = loop.DataInputItemRef
		instance.DataOutputItemRef = loop.DataOutputItemRef
	} else {
		instance = newInstance(req, model.FLOWNODE_TYPE_LOOP_ACTIVITY)
		instance.Sequential = true
		instance.TestBefore = loop.TestBefore
	}
	instance.LoopCounter = -1
	if err := c.setFirstState(instance, req.StateCategory); err != nil {
		return nil, err
	}
	if err := c.flowNodeDao.CreateActivityInstance(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}
