package grpcserver

import (
	"context"
	"io"
	"math/rand/v2"
	"net"
	"testing"
	"time"

	"token-pulse-go/internal/catalog"
	"token-pulse-go/internal/dashboard"
	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/pricefeed"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func startServer(t *testing.T, load bool) (*PulseServiceClient, *dashboard.Dashboard) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := marketengine.New(
		marketengine.WithLogger(logger),
		marketengine.WithFlagWindow(time.Hour),
		marketengine.WithSimulator(pricefeed.NewSimulator(rand.New(rand.NewPCG(21, 22)))),
	)
	t.Cleanup(engine.Stop)

	board := dashboard.New(engine,
		dashboard.WithLogger(logger),
		dashboard.WithGenerator(catalog.NewGenerator(rand.New(rand.NewPCG(23, 24)), nil)),
	)
	if load {
		require.NoError(t, board.Load(context.Background()))
	}

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	RegisterPulseServiceServer(server, &PulseServer{Board: board, Logger: logger})
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewPulseServiceClient(conn), board
}

func TestGetColumn(t *testing.T) {
	client, _ := startServer(t, true)
	ctx := context.Background()

	res, err := client.GetColumn(ctx, wrapperspb.String("trending"))
	require.NoError(t, err)
	assert.Equal(t, "Final Stretch", res.Fields["title"].GetStringValue())
	assert.Equal(t, float64(dashboard.DefaultTokensPerCategory), res.Fields["count"].GetNumberValue())
	assert.Len(t, res.Fields["tokens"].GetListValue().GetValues(), dashboard.DefaultTokensPerCategory)
}

func TestGetColumnErrors(t *testing.T) {
	testCases := []struct {
		name     string
		load     bool
		category string
		code     codes.Code
	}{
		{name: "unknown category", load: true, category: "hot", code: codes.InvalidArgument},
		{name: "not loaded", load: false, category: "new", code: codes.Unavailable},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := startServer(t, tt.load)

			_, err := client.GetColumn(context.Background(), wrapperspb.String(tt.category))
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestGetToken(t *testing.T) {
	client, _ := startServer(t, true)
	ctx := context.Background()

	res, err := client.GetToken(ctx, wrapperspb.String("new-2"))
	require.NoError(t, err)
	assert.Equal(t, "new-2", res.Fields["id"].GetStringValue())
	assert.NotEmpty(t, res.Fields["displayPrice"].GetStringValue())

	_, err = client.GetToken(ctx, wrapperspb.String("new-404"))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestStreamPrices(t *testing.T) {
	client, board := startServer(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.StreamPrices(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Fields["sequence"].GetNumberValue())
	assert.Len(t, first.Fields["prices"].GetStructValue().GetFields(), 3*dashboard.DefaultTokensPerCategory)

	// the subscription exists once the first message arrived
	board.Engine().Tick()

	next, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1.0, next.Fields["sequence"].GetNumberValue())
}
