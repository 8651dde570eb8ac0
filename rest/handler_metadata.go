package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandleDeployProcess(w http.ResponseWriter, r *http.Request) {
	var def model.ProcessDefinition
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid process definition")
		return
	}
	actors, err := s.metadataService.DeployProcess(r.Context(), &def)
	if err != nil {
		logger.Error("error deploying process", zap.String("name", def.Name), zap.Error(err))
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]any{"id": def.Id, "actors": actors})
}

func (s *Server) HandleGetProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Var(w, r, "id")
	if !ok {
		return
	}
	def, err := s.metadataService.GetProcessDefinition(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, def)
}

func (s *Server) HandleAddActor(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Var(w, r, "id")
	if !ok {
		return
	}
	var declared model.ActorDefinition
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&declared); err != nil || declared.Name == "" {
		respondWithError(w, http.StatusBadRequest, "invalid actor")
		return
	}
	actor, err := s.metadataService.AddActor(r.Context(), id, declared)
	if err != nil {
		logger.Error("error adding actor", zap.Int64("processDefinitionId", id), zap.String("name", declared.Name), zap.Error(err))
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, actor)
}

func int64Var(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}
