package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is declared by hand over well-known types so it needs no
// generated code. Any client speaking protobuf can call it.
const (
	ServiceName = "pulse.v1.PulseService"

	GetColumnMethod    = "/pulse.v1.PulseService/GetColumn"
	GetTokenMethod     = "/pulse.v1.PulseService/GetToken"
	StreamPricesMethod = "/pulse.v1.PulseService/StreamPrices"
)

type PulseServiceServer interface {
	GetColumn(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetToken(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	StreamPrices(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

func RegisterPulseServiceServer(s grpc.ServiceRegistrar, srv PulseServiceServer) {
	s.RegisterService(&PulseServiceDesc, srv)
}

var PulseServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PulseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetColumn", Handler: getColumnHandler},
		{MethodName: "GetToken", Handler: getTokenHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamPrices", Handler: streamPricesHandler, ServerStreams: true},
	},
	Metadata: "pulse/v1/pulse.proto",
}

func getColumnHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PulseServiceServer).GetColumn(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetColumnMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PulseServiceServer).GetColumn(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getTokenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PulseServiceServer).GetToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetTokenMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PulseServiceServer).GetToken(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func streamPricesHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(PulseServiceServer).StreamPrices(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// PulseServiceClient calls the service over an existing connection.
type PulseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPulseServiceClient(cc grpc.ClientConnInterface) *PulseServiceClient {
	return &PulseServiceClient{cc: cc}
}

func (c *PulseServiceClient) GetColumn(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetColumnMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PulseServiceClient) GetToken(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetTokenMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PulseServiceClient) StreamPrices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &PulseServiceDesc.Streams[0], StreamPricesMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
