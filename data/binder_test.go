package data

import (
	"context"
	"errors"
	"testing"
	"time"

	api "github.com/bonitasoft/bonita-engine-sub039/api/v1"
	"github.com/bonitasoft/bonita-engine-sub039/expression"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/persistence"
	"github.com/bonitasoft/bonita-engine-sub039/persistence/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const transientWarning = "creating transient data with null expression is not good practice"

func newTestBinder() (*binder, *persistence.Storage) {
	storage := memory.NewStorage(time.Hour)
	return NewBinder(expression.NewEvaluator(), storage.Data, storage.TransientData, storage.RefBusinessData), storage
}

func longData(name string, defaultValue string) model.DataDefinition {
	def := model.DataDefinition{Name: name, Type: model.DATA_TYPE_LONG}
	if defaultValue != "" {
		def.DefaultValue = model.NewConstantExpression(defaultValue, model.DATA_TYPE_LONG)
	}
	return def
}

func values(instances []*model.DataInstance) map[string]any {
	res := make(map[string]any, len(instances))
	for _, data := range instances {
		res[data.Name] = data.Value
	}
	return res
}

func TestCreateDataInstances(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, b *binder, storage *persistence.Storage){
		"operation overrides default":            testOperationOverridesDefault,
		"operation consumed once":                testOperationConsumedOnce,
		"earlier values are visible":             testEarlierValuesVisible,
		"value not matching type":                testNotWellFormed,
		"transient data goes to transient store": testTransientStore,
		"evaluation error propagates":            testEvaluationError,
	} {
		t.Run(scenario, func(t *testing.T) {
			b, storage := newTestBinder()
			fn(t, b, storage)
		})
	}
}

func testOperationOverridesDefault(t *testing.T, b *binder, storage *persistence.Storage) {
	ops := model.Operations{
		model.NewAssignment(model.LEFT_OPERAND_DATA, "A", model.NewConstantExpression("99", model.DATA_TYPE_LONG)),
	}
	created, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{longData("A", "1"), longData("B", "2")},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_PROCESS_INSTANCE,
		Operations:    &ops,
		LoopCounter:   -1,
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"A": int64(99), "B": int64(2)}, values(created))
	require.Empty(t, ops)

	stored, err := storage.Data.GetDataInstance(context.Background(), "A", 5, model.DATA_CONTAINER_PROCESS_INSTANCE)
	require.NoError(t, err)
	require.Equal(t, int64(99), stored.Value)
}

func testOperationConsumedOnce(t *testing.T, b *binder, storage *persistence.Storage) {
	second := model.NewAssignment(model.LEFT_OPERAND_DATA, "X", model.NewConstantExpression("2", model.DATA_TYPE_LONG))
	ops := model.Operations{
		model.NewAssignment(model.LEFT_OPERAND_DATA, "X", model.NewConstantExpression("1", model.DATA_TYPE_LONG)),
		second,
	}
	created, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{longData("X", "")},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_PROCESS_INSTANCE,
		Operations:    &ops,
		LoopCounter:   -1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created[0].Value)
	require.Equal(t, model.Operations{second}, ops)
}

func testEarlierValuesVisible(t *testing.T, b *binder, storage *persistence.Storage) {
	total := model.DataDefinition{
		Name:         "total",
		Type:         model.DATA_TYPE_LONG,
		DefaultValue: model.NewExpression(model.EXPRESSION_KIND_EXPR, "price * quantity", model.DATA_TYPE_LONG),
	}
	evalCtx := model.NewExpressionContext(5, model.DATA_CONTAINER_ACTIVITY_INSTANCE, 1)
	evalCtx.InputValues["quantity"] = int64(3)
	created, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{longData("price", "7"), total},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		Context:       evalCtx,
		LoopCounter:   -1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(21), values(created)["total"])
	require.NotContains(t, evalCtx.InputValues, "price")
}

func testNotWellFormed(t *testing.T, b *binder, storage *persistence.Storage) {
	def := model.DataDefinition{Name: "age", Type: model.DATA_TYPE_INTEGER, DefaultValue: model.NewConstantExpression("old", model.DATA_TYPE_STRING)}
	_, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{def},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		LoopCounter:   -1,
	})
	var notWellFormed api.NotWellFormedError
	require.True(t, errors.As(err, &notWellFormed))
	require.Equal(t, "age", notWellFormed.Name)

	_, err = storage.Data.GetDataInstance(context.Background(), "age", 5, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.Error(t, err)
}

func testTransientStore(t *testing.T, b *binder, storage *persistence.Storage) {
	def := model.DataDefinition{Name: "draft", Type: model.DATA_TYPE_STRING, Transient: true, DefaultValue: model.NewConstantExpression("x", model.DATA_TYPE_STRING)}
	_, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{def},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		LoopCounter:   -1,
	})
	require.NoError(t, err)

	_, err = storage.Data.GetDataInstance(context.Background(), "draft", 5, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.Error(t, err)
	stored, err := storage.TransientData.GetDataInstance(context.Background(), "draft", 5, model.DATA_CONTAINER_ACTIVITY_INSTANCE)
	require.NoError(t, err)
	require.Equal(t, "x", stored.Value)
}

func testEvaluationError(t *testing.T, b *binder, storage *persistence.Storage) {
	def := model.DataDefinition{Name: "x", Type: model.DATA_TYPE_STRING, DefaultValue: model.NewExpression(model.EXPRESSION_KIND_VARIABLE, "missing", model.DATA_TYPE_STRING)}
	_, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions:   []model.DataDefinition{def},
		ContainerId:   5,
		ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		LoopCounter:   -1,
	})
	var evalErr expression.EvaluationError
	require.True(t, errors.As(err, &evalErr))
}

func TestNullValueWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	b, _ := newTestBinder()
	created, err := b.CreateDataInstances(context.Background(), DataRequest{
		Definitions: []model.DataDefinition{
			{Name: "durable", Type: model.DATA_TYPE_STRING},
			{Name: "scratch", Type: model.DATA_TYPE_STRING, Transient: true},
		},
		ContainerId:   8,
		ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE,
		LoopCounter:   -1,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Nil(t, created[0].Value)
	require.Nil(t, created[1].Value)

	warnings := logs.FilterMessage(transientWarning).All()
	require.Len(t, warnings, 1)
	require.Equal(t, "scratch", warnings[0].ContextMap()["data"])
}

func TestLoopItem(t *testing.T) {
	ctx := context.Background()
	items := model.DataDefinition{Name: "items", Type: model.DATA_TYPE_LIST, DefaultValue: model.NewConstantExpression(`["a","b","c"]`, model.DATA_TYPE_LIST)}

	request := func(loopCounter int) DataRequest {
		return DataRequest{
			ContainerId:       100 + int64(loopCounter),
			ContainerType:     model.DATA_CONTAINER_ACTIVITY_INSTANCE,
			LoopDataInputRef:  "items",
			DataInputItemRef:  "item",
			LoopCounter:       loopCounter,
			ParentContainerId: 50,
			ProcessInstanceId: 10,
		}
	}

	t.Run("read from outer activity", func(t *testing.T) {
		b, _ := newTestBinder()
		_, err := b.CreateDataInstances(ctx, DataRequest{Definitions: []model.DataDefinition{items}, ContainerId: 50, ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE, LoopCounter: -1})
		require.NoError(t, err)

		created, err := b.CreateDataInstances(ctx, request(1))
		require.NoError(t, err)
		require.Len(t, created, 1)
		require.Equal(t, "item", created[0].Name)
		require.Equal(t, "b", created[0].Value)
	})

	t.Run("read from process instance", func(t *testing.T) {
		b, _ := newTestBinder()
		_, err := b.CreateDataInstances(ctx, DataRequest{Definitions: []model.DataDefinition{items}, ContainerId: 10, ContainerType: model.DATA_CONTAINER_PROCESS_INSTANCE, LoopCounter: -1})
		require.NoError(t, err)

		req := request(2)
		req.Definitions = []model.DataDefinition{{Name: "item", Type: model.DATA_TYPE_STRING}, {Name: "label", Type: model.DATA_TYPE_STRING, DefaultValue: model.NewExpression(model.EXPRESSION_KIND_EXPR, `"item " + item`, model.DATA_TYPE_STRING)}}
		created, err := b.CreateDataInstances(ctx, req)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"item": "c", "label": "item c"}, values(created))
	})

	t.Run("missing list", func(t *testing.T) {
		b, _ := newTestBinder()
		_, err := b.CreateDataInstances(ctx, request(0))
		var readErr api.ReadError
		require.True(t, errors.As(err, &readErr))
		require.Equal(t, "items", readErr.Name)
	})

	t.Run("source is not a list", func(t *testing.T) {
		b, _ := newTestBinder()
		scalar := model.DataDefinition{Name: "items", Type: model.DATA_TYPE_STRING, DefaultValue: model.NewConstantExpression("a,b,c", model.DATA_TYPE_STRING)}
		_, err := b.CreateDataInstances(ctx, DataRequest{Definitions: []model.DataDefinition{scalar}, ContainerId: 50, ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE, LoopCounter: -1})
		require.NoError(t, err)

		_, err = b.CreateDataInstances(ctx, request(0))
		var readErr api.ReadError
		require.True(t, errors.As(err, &readErr))
		require.Equal(t, "items", readErr.Name)
		require.Equal(t, int64(50), readErr.ContainerId)
		require.Equal(t, string(model.DATA_CONTAINER_ACTIVITY_INSTANCE), readErr.ContainerType)
		var castErr model.CastError
		require.True(t, errors.As(err, &castErr))
	})

	t.Run("loop counter out of range", func(t *testing.T) {
		b, _ := newTestBinder()
		_, err := b.CreateDataInstances(ctx, DataRequest{Definitions: []model.DataDefinition{items}, ContainerId: 50, ContainerType: model.DATA_CONTAINER_ACTIVITY_INSTANCE, LoopCounter: -1})
		require.NoError(t, err)

		_, err = b.CreateDataInstances(ctx, request(3))
		var readErr api.ReadError
		require.True(t, errors.As(err, &readErr))
		require.Equal(t, int64(50), readErr.ContainerId)
	})
}
