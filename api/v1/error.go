package api_v1

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

func withMessage(code codes.Code, msg string) *status.Status {
	st := status.New(code, msg)
	d := &errdetails.LocalizedMessage{
		Locale:  "en-US",
		Message: msg,
	}
	std, err := st.WithDetails(d)
	if err != nil {
		return st
	}
	return std
}

// NotFoundError is returned when an actor, a loop data source or a business data
// reference can not be found.
type NotFoundError struct {
	Entity string
	Name   string
	Scope  string
}

func (e NotFoundError) message() string {
	if len(e.Scope) == 0 {
		return fmt.Sprintf("%s %s not found", e.Entity, e.Name)
	}
	return fmt.Sprintf("%s %s not found in %s", e.Entity, e.Name, e.Scope)
}

func (e NotFoundError) GRPCStatus() *status.Status {
	return withMessage(codes.NotFound, e.message())
}

func (e NotFoundError) Error() string {
	return e.GRPCStatus().Err().Error()
}

func ActorNotFound(processDefinitionId int64, actorName string) NotFoundError {
	return NotFoundError{
		Entity: "actor",
		Name:   actorName,
		Scope:  fmt.Sprintf("process definition %d", processDefinitionId),
	}
}

// ReadError wraps a failure raised while reading data a new instance depends on.
type ReadError struct {
	Name          string
	ContainerId   int64
	ContainerType string
	Cause         error
}

func (e ReadError) message() string {
	msg := fmt.Sprintf("unable to read %s in container %s %d", e.Name, e.ContainerType, e.ContainerId)
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e ReadError) GRPCStatus() *status.Status {
	return withMessage(codes.Internal, e.message())
}

func (e ReadError) Error() string {
	return e.GRPCStatus().Err().Error()
}

func (e ReadError) Unwrap() error {
	return e.Cause
}

// NotWellFormedError is returned when a value does not match the declared data type.
type NotWellFormedError struct {
	Name  string
	Cause error
}

func (e NotWellFormedError) GRPCStatus() *status.Status {
	return withMessage(codes.InvalidArgument, fmt.Sprintf("data %s is not well formed: %v", e.Name, e.Cause))
}

func (e NotWellFormedError) Error() string {
	return e.GRPCStatus().Err().Error()
}

func (e NotWellFormedError) Unwrap() error {
	return e.Cause
}

type ActivityTypeNotFoundError struct {
	Type string
}

func (e ActivityTypeNotFoundError) GRPCStatus() *status.Status {
	return withMessage(codes.Internal, fmt.Sprintf("activity type %s not found", e.Type))
}

func (e ActivityTypeNotFoundError) Error() string {
	return e.GRPCStatus().Err().Error()
}

// ExecutionError wraps any failure raised while computing the data of an activity.
type ExecutionError struct {
	FlowNodeInstanceId int64
	Cause              error
}

func (e ExecutionError) GRPCStatus() *status.Status {
	return withMessage(codes.Internal, fmt.Sprintf("unable to create data of flow node instance %d: %v", e.FlowNodeInstanceId, e.Cause))
}

func (e ExecutionError) Error() string {
	return e.GRPCStatus().Err().Error()
}

func (e ExecutionError) Unwrap() error {
	return e.Cause
}

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) GRPCStatus() *status.Status {
	return withMessage(codes.Unavailable, fmt.Sprintf("error in underline storage layer %s", e.Message))
}

func (e StorageLayerError) Error() string {
	return e.GRPCStatus().Err().Error()
}

// InvalidLoopCounterError is returned when an iteration is requested with a negative loop counter.
type InvalidLoopCounterError struct {
	LoopInstanceId int64
	LoopCounter    int
}

func (e InvalidLoopCounterError) GRPCStatus() *status.Status {
	return withMessage(codes.InvalidArgument, fmt.Sprintf("invalid loop counter %d for loop instance %d", e.LoopCounter, e.LoopInstanceId))
}

func (e InvalidLoopCounterError) Error() string {
	return e.GRPCStatus().Err().Error()
}
