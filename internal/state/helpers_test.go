package state

import (
	"encoding/json"

	"github.com/alexanderramin/syllabus/internal/domain"
)

func deepCopy(s domain.AppState) domain.AppState {
	data, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	var out domain.AppState
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}
