package grpc

// proto.go defines the gRPC server interface derived from
// vittam/origination/v1/conversation.proto. This file serves as a stand-in
// for buf-generated code; once `buf generate` is run, replace it with the
// import from github.com/vittamlabs/origination/api/gen/go/vittam/origination/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type InputPrompt struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	At      string `json:"at"`
}

type StartSessionRequest struct{}

type StartSessionResponse struct {
	SessionId string         `json:"session_id"`
	Stage     string         `json:"stage"`
	Greeting  string         `json:"greeting"`
	Prompts   []*InputPrompt `json:"prompts,omitempty"`
}

type SendMessageRequest struct {
	SessionId       string `json:"session_id"`
	Content         string `json:"content"`
	ClientMessageId string `json:"client_message_id,omitempty"`
}

type SendMessageResponse struct {
	SessionId string         `json:"session_id"`
	Stage     string         `json:"stage"`
	Reply     string         `json:"reply"`
	Prompts   []*InputPrompt `json:"prompts,omitempty"`
}

type GetHistoryRequest struct {
	SessionId string `json:"session_id"`
}

type GetHistoryResponse struct {
	SessionId string  `json:"session_id"`
	Stage     string  `json:"stage"`
	Active    bool    `json:"active"`
	Turns     []*Turn `json:"turns"`
}

type DeleteSessionRequest struct {
	SessionId string `json:"session_id"`
}

type DeleteSessionResponse struct{}

// ConversationServiceServer is the server API for ConversationService.
// It mirrors the proto-generated interface from
// vittam.origination.v1.ConversationService.
type ConversationServiceServer interface {
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	GetHistory(context.Context, *GetHistoryRequest) (*GetHistoryResponse, error)
	DeleteSession(context.Context, *DeleteSessionRequest) (*DeleteSessionResponse, error)
	mustEmbedUnimplementedConversationServiceServer()
}

// UnimplementedConversationServiceServer provides forward-compatible default implementations.
type UnimplementedConversationServiceServer struct{}

func (UnimplementedConversationServiceServer) StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartSession not implemented")
}
func (UnimplementedConversationServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedConversationServiceServer) GetHistory(context.Context, *GetHistoryRequest) (*GetHistoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetHistory not implemented")
}
func (UnimplementedConversationServiceServer) DeleteSession(context.Context, *DeleteSessionRequest) (*DeleteSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteSession not implemented")
}
func (UnimplementedConversationServiceServer) mustEmbedUnimplementedConversationServiceServer() {}

// RegisterConversationServiceServer registers the ConversationServiceServer with the gRPC server.
func RegisterConversationServiceServer(s *grpclib.Server, srv ConversationServiceServer) {
	s.RegisterService(&_ConversationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ConversationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "vittam.origination.v1.ConversationService",
	HandlerType: (*ConversationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "StartSession", Handler: _ConversationService_StartSession_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "SendMessage", Handler: _ConversationService_SendMessage_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "GetHistory", Handler: _ConversationService_GetHistory_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "DeleteSession", Handler: _ConversationService_DeleteSession_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ConversationService_StartSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(StartSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).StartSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vittam.origination.v1.ConversationService/StartSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversationServiceServer).StartSession(ctx, req.(*StartSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConversationService_SendMessage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).SendMessage(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vittam.origination.v1.ConversationService/SendMessage",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversationServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConversationService_GetHistory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetHistoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).GetHistory(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vittam.origination.v1.ConversationService/GetHistory",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversationServiceServer).GetHistory(ctx, req.(*GetHistoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConversationService_DeleteSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversationServiceServer).DeleteSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vittam.origination.v1.ConversationService/DeleteSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversationServiceServer).DeleteSession(ctx, req.(*DeleteSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}
