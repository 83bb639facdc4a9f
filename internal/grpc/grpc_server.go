package grpcserver

import (
	"context"
	"encoding/json"
	"errors"

	"token-pulse-go/internal/dashboard"
	"token-pulse-go/internal/models"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const streamBuffer = 16

type PulseServer struct {
	Board  *dashboard.Dashboard
	Logger logrus.FieldLogger
}

func (server *PulseServer) logger() logrus.FieldLogger {
	if server.Logger == nil {
		return logrus.StandardLogger()
	}
	return server.Logger
}

func (server *PulseServer) GetColumn(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	category, ok := models.ParseCategory(req.GetValue())
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown category %q", req.GetValue())
	}

	column, err := server.Board.Column(category)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(column)
}

func (server *PulseServer) GetToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	detail, err := server.Board.Token(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(detail)
}

// StreamPrices sends the current snapshot and then every published one
// until the client goes away.
func (server *PulseServer) StreamPrices(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	engine := server.Board.Engine()
	updates, unsubscribe := engine.Subscribe(streamBuffer)
	defer unsubscribe()

	server.logger().Info("[StreamPrices] Client connected")

	if err := sendSnapshot(stream, engine.Snapshot()); err != nil {
		server.logger().WithError(err).Warn("[StreamPrices] Send failed")
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			server.logger().Info("[StreamPrices] Client disconnected")
			return nil
		case snapshot, open := <-updates:
			if !open {
				return nil
			}
			if err := sendSnapshot(stream, snapshot); err != nil {
				server.logger().WithError(err).Warn("[StreamPrices] Send failed")
				return err
			}
		}
	}
}

func sendSnapshot(stream grpc.ServerStreamingServer[structpb.Struct], snapshot any) error {
	msg, err := toStruct(snapshot)
	if err != nil {
		return err
	}
	return stream.Send(msg)
}

// toStruct carries a value through its JSON form so the field names match
// the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrNotLoaded):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, dashboard.ErrUnknownCategory):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, dashboard.ErrTokenNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
