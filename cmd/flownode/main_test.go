package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/stretchr/testify/require"
)

const yamlDefinition = `id: 12
name: shipping
version: "1.0"
actors:
  - name: clerk
data:
  - name: parcels
    type: list
    defaultValue:
      kind: EXPR
      content: '["a", "b"]'
      returnType: list
container:
  flowNodes:
    - id: 1
      name: pack
      type: USER_TASK
      humanTask:
        actorName: clerk
`

const jsonDefinition = `{"id": 13, "name": "billing", "version": "2.0", "container": {"flowNodes": [{"id": 1, "name": "bill", "type": "AUTOMATIC_TASK"}]}}`

func TestReadDefinition(t *testing.T) {
	dir := t.TempDir()
	for scenario, tc := range map[string]struct {
		file    string
		content string
		check   func(t *testing.T, def *model.ProcessDefinition)
	}{
		"yaml": {"shipping.yaml", yamlDefinition, func(t *testing.T, def *model.ProcessDefinition) {
			require.Equal(t, int64(12), def.Id)
			require.Equal(t, "clerk", def.Actors[0].Name)
			require.Equal(t, model.EXPRESSION_KIND_EXPR, def.DataDefinitions[0].DefaultValue.Kind)
			require.Equal(t, "clerk", def.Container.FlowNodes[0].HumanTask.ActorName)
		}},
		"json": {"billing.json", jsonDefinition, func(t *testing.T, def *model.ProcessDefinition) {
			require.Equal(t, int64(13), def.Id)
			require.Equal(t, model.FLOWNODE_TYPE_AUTOMATIC_TASK, def.Container.FlowNodes[0].Type)
		}},
	} {
		t.Run(scenario, func(t *testing.T) {
			fileName := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(fileName, []byte(tc.content), 0o644))
			def, err := readDefinition(fileName, "")
			require.NoError(t, err)
			tc.check(t, def)
		})
	}
}

func TestReadDefinitionErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))

	_, err := readDefinition(broken, "")
	require.Error(t, err)
	_, err = readDefinition(filepath.Join(dir, "missing.yaml"), "")
	require.Error(t, err)
}
