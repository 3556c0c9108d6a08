// Package proto declares the batiknft.sequence.v1 gRPC contract. Messages are
// the protobuf well-known wrappers, so no generated message code is needed;
// the client stub and service descriptor below mirror what protoc-gen-go-grpc
// emits.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	SequenceServiceName = "batiknft.sequence.v1.SequenceService"

	SequenceService_Next_FullMethodName = "/" + SequenceServiceName + "/Next"
)

// SequenceServiceClient issues per-scope sequence values.
type SequenceServiceClient interface {
	Next(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
}

type sequenceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSequenceServiceClient(cc grpc.ClientConnInterface) SequenceServiceClient {
	return &sequenceServiceClient{cc}
}

func (c *sequenceServiceClient) Next(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, SequenceService_Next_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type SequenceServiceServer interface {
	Next(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
}

// UnimplementedSequenceServiceServer can be embedded for forward compatibility.
type UnimplementedSequenceServiceServer struct{}

func (UnimplementedSequenceServiceServer) Next(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Next not implemented")
}

func RegisterSequenceServiceServer(s grpc.ServiceRegistrar, srv SequenceServiceServer) {
	s.RegisterService(&SequenceService_ServiceDesc, srv)
}

func _SequenceService_Next_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequenceServiceServer).Next(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SequenceService_Next_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SequenceServiceServer).Next(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var SequenceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SequenceServiceName,
	HandlerType: (*SequenceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Next",
			Handler:    _SequenceService_Next_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "batiknft/sequence/v1/sequence.proto",
}
