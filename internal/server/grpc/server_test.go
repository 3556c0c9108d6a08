package grpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	pb "github.com/dmitrijs2005/batiknft/internal/proto"
	"github.com/dmitrijs2005/batiknft/internal/server/auth"
)

const testSecret = "secret"

type fakeRepo struct {
	mu        sync.Mutex
	values    map[string]int64
	operators []string
	err       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{values: map[string]int64{}}
}

func (f *fakeRepo) Next(ctx context.Context, scope, operator string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.values[scope]++
	f.operators = append(f.operators, operator)
	return f.values[scope], nil
}

func (f *fakeRepo) Current(ctx context.Context, scope string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[scope], nil
}

// startServer serves s over an in-memory listener until the test ends.
func startServer(t *testing.T, repo *fakeRepo) *grpc.ClientConn {
	t.Helper()

	s := NewGRPCServer("", logging.Nop(), repo, testSecret)
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func withToken(t *testing.T, operator string, validity time.Duration) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(operator, []byte(testSecret), validity)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}

func TestNext_IssuesIncreasingValuesPerScope(t *testing.T) {
	repo := newFakeRepo()
	client := pb.NewSequenceServiceClient(startServer(t, repo))
	ctx := withToken(t, "studio", time.Hour)

	for want := int64(1); want <= 3; want++ {
		resp, err := client.Next(ctx, wrapperspb.String("BATIK-2026"))
		require.NoError(t, err)
		assert.Equal(t, want, resp.GetValue())
	}

	resp, err := client.Next(ctx, wrapperspb.String("BATIK-2027"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.GetValue())

	assert.Equal(t, []string{"studio", "studio", "studio", "studio"}, repo.operators)
}

func TestNext_RequiresToken(t *testing.T) {
	client := pb.NewSequenceServiceClient(startServer(t, newFakeRepo()))

	_, err := client.Next(context.Background(), wrapperspb.String("BATIK-2026"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = client.Next(withToken(t, "studio", -time.Minute), wrapperspb.String("BATIK-2026"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "token expired", status.Convert(err).Message())
}

func TestNext_InvalidScope(t *testing.T) {
	client := pb.NewSequenceServiceClient(startServer(t, newFakeRepo()))

	_, err := client.Next(withToken(t, "studio", time.Hour), wrapperspb.String("2026"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestNext_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"exhausted", common.ErrSequenceOutOfRange, codes.ResourceExhausted},
		{"wrapped exhausted", errors.Join(errors.New("ctx"), common.ErrSequenceOutOfRange), codes.ResourceExhausted},
		{"db", errors.New("db error: down"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.err = tt.err
			client := pb.NewSequenceServiceClient(startServer(t, repo))

			_, err := client.Next(withToken(t, "studio", time.Hour), wrapperspb.String("BATIK-2026"))
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestHealth_ServesWithoutToken(t *testing.T) {
	hc := healthpb.NewHealthClient(startServer(t, newFakeRepo()))

	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: pb.SequenceServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = hc.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), newFakeRepo(), testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), newFakeRepo(), testSecret)

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
