package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/internal/idgen"
	"github.com/bonitasoft/bonita-engine-sub039/logger"
	"github.com/bonitasoft/bonita-engine-sub039/metadata"
	"github.com/bonitasoft/bonita-engine-sub039/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const REQUEST_ID_HEADER = "X-Request-Id"

type Server struct {
	http.Server
	Port                 int
	metadataService      metadata.MetadataService
	instantiationService *service.InstantiationService
}

func NewServer(httpPort int, metadataService metadata.MetadataService, instantiationService *service.InstantiationService) (*Server, error) {

	s := &Server{
		Server: http.Server{
			Addr:        fmt.Sprintf(":%d", httpPort),
			IdleTimeout: 2 * time.Second,
		},
		metadataService:      metadataService,
		instantiationService: instantiationService,
		Port:                 httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/metadata/process", s.HandleDeployProcess).Methods(http.MethodPost)
	router.HandleFunc("/metadata/process/{id}", s.HandleGetProcess).Methods(http.MethodGet)
	router.HandleFunc("/metadata/process/{id}/actor", s.HandleAddActor).Methods(http.MethodPost)

	router.HandleFunc("/instantiation", s.HandleStartProcess).Methods(http.MethodPost)
	router.HandleFunc("/instantiation/iteration", s.HandleCreateIteration).Methods(http.MethodPost)

	router.HandleFunc("/flownode/{id}", s.HandleGetFlowNode).Methods(http.MethodGet)
	router.HandleFunc("/data/{containerType}/{containerId}", s.HandleGetData).Methods(http.MethodGet)
	router.HandleFunc("/connector/{containerType}/{containerId}", s.HandleGetConnectors).Methods(http.MethodGet)

	router.Use(requestIdMiddleware, loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}
	return nil
}

func requestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(REQUEST_ID_HEADER)
		if requestId == "" {
			requestId = idgen.New()
		}
		w.Header().Set(REQUEST_ID_HEADER, requestId)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI, zap.String("method", r.Method), zap.String("requestId", w.Header().Get(REQUEST_ID_HEADER)))
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps the status code an engine error carries to an http status.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var st interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &st) {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s := st.GRPCStatus()
	respondWithError(w, httpStatus(s.Code()), s.Message())
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
