package expression

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/model"
)

func evaluateConstant(content string, returnType model.DataType) (any, error) {
	switch returnType {
	case model.DATA_TYPE_STRING, "":
		return content, nil
	case model.DATA_TYPE_INTEGER, model.DATA_TYPE_LONG:
		return strconv.ParseInt(content, 10, 64)
	case model.DATA_TYPE_DOUBLE:
		return strconv.ParseFloat(content, 64)
	case model.DATA_TYPE_BOOLEAN:
		return strconv.ParseBool(content)
	case model.DATA_TYPE_DATE:
		return time.Parse(time.RFC3339, content)
	}
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, err
	}
	return value, nil
}
