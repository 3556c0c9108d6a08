package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
	pb "github.com/dmitrijs2005/batiknft/internal/proto"
	"github.com/dmitrijs2005/batiknft/internal/serial"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const requestTimeout = 10 * time.Second

// SequenceClient asks the sequence issuer for the next value of a scope.
type SequenceClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.SequenceServiceClient
	accessToken string
}

var _ serial.Sequencer = (*SequenceClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *SequenceClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewSequenceClient prepares a lazy connection to endpointURL. Extra dial
// options are appended after the defaults.
func NewSequenceClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*SequenceClient, error) {
	c := &SequenceClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.client = pb.NewSequenceServiceClient(conn)
	return c, nil
}

func (s *SequenceClient) Next(ctx context.Context, scope string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.Next(ctx, wrapperspb.String(scope))
	if err != nil {
		return 0, s.mapError(err)
	}

	v := resp.GetValue()
	if v < 0 || v > serial.MaxSequence {
		return 0, fmt.Errorf("%w: issuer returned %d", common.ErrSequenceOutOfRange, v)
	}
	return v, nil
}

func (s *SequenceClient) Close() error {
	return s.conn.Close()
}

func (s *SequenceClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", common.ErrSequenceOutOfRange, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
