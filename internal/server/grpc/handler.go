package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/serial"
)

// Next hands out the next value of the requested per-year scope.
func (s *GRPCServer) Next(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	operator, ok := operatorFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no operator")
	}

	scope := in.GetValue()
	if !serial.IsScope(scope) {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scope %q", scope)
	}

	value, err := s.sequences.Next(ctx, scope, operator)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSequenceOutOfRange):
			s.logger.Warn(ctx, "sequence exhausted", "scope", scope, "operator", operator)
			return nil, status.Errorf(codes.ResourceExhausted, "scope %s is exhausted", scope)
		case errors.Is(err, context.Canceled):
			return nil, status.Error(codes.Canceled, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return nil, status.Error(codes.DeadlineExceeded, err.Error())
		}
		s.logger.Error(ctx, "next sequence failed", "scope", scope, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "sequence issued", "scope", scope, "value", value, "operator", operator)
	return wrapperspb.Int64(value), nil
}
