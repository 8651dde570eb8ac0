package rest

import (
	"encoding/json"
	"net/http"

	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/bonitasoft/bonita-engine-sub039/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandleStartProcess(w http.ResponseWriter, r *http.Request) {
	var req service.StartRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid start request")
		return
	}
	result, err := s.instantiationService.StartProcess(r.Context(), req)
	if err != nil {
		logger.Error("error starting process", zap.Int64("processDefinitionId", req.ProcessDefinitionId), zap.Error(err))
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

func (s *Server) HandleCreateIteration(w http.ResponseWriter, r *http.Request) {
	var req service.IterationRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid iteration request")
		return
	}
	result, err := s.instantiationService.CreateIteration(r.Context(), req)
	if err != nil {
		logger.Error("error creating iteration", zap.Int64("loopInstanceId", req.LoopInstanceId), zap.Int("loopCounter", req.LoopCounter), zap.Error(err))
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

func (s *Server) HandleGetFlowNode(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Var(w, r, "id")
	if !ok {
		return
	}
	flowNode, err := s.instantiationService.GetFlowNodeInstance(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, flowNode)
}

func (s *Server) HandleGetData(w http.ResponseWriter, r *http.Request) {
	containerId, ok := int64Var(w, r, "containerId")
	if !ok {
		return
	}
	containerType := model.DataContainerType(mux.Vars(r)["containerType"])
	data, err := s.instantiationService.GetDataInstances(r.Context(), containerId, containerType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, data)
}

func (s *Server) HandleGetConnectors(w http.ResponseWriter, r *http.Request) {
	containerId, ok := int64Var(w, r, "containerId")
	if !ok {
		return
	}
	containerType := model.ConnectorContainerType(mux.Vars(r)["containerType"])
	connectors, err := s.instantiationService.GetConnectorInstances(r.Context(), containerId, containerType)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, connectors)
}
