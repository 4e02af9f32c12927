package logger

import (
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var loggedMetadata = map[string]bool{
	"content-type":  true,
	"user-agent":    true,
	"x-trace-id":    true,
	"traceparent":   true,
	"authorization": true,
}

func MetadataAttrs(md metadata.MD) []slog.Attr {
	return multiMapAttrs("grpc.header", md, loggedMetadata)
}

// messageAttrs flattens a protobuf message through its JSON form. Anything
// else is logged with %v.
func messageAttrs(prefix string, m any) []slog.Attr {
	if m == nil {
		return nil
	}
	if pm, ok := m.(proto.Message); ok {
		if b, err := protojson.Marshal(pm); err == nil {
			return jsonAttrs(prefix, b)
		}
	}
	return []slog.Attr{slog.String(prefix, fmt.Sprintf("%v", m))}
}

// LogGRPCRequest describes a unary call. fullMethod is
// "/package.Service/Method".
func LogGRPCRequest(fullMethod, remote string, md metadata.MD, req any, direction string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("grpc.direction", direction),
		slog.String("grpc.method", fullMethod),
		slog.String("grpc.remote", remote),
	}
	attrs = append(attrs, MetadataAttrs(md)...)
	return append(attrs, messageAttrs("grpc.request", req)...)
}

func LogGRPCResponse(fullMethod string, code codes.Code, resp any, duration time.Duration, direction string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("grpc.direction", direction),
		slog.String("grpc.method", fullMethod),
		slog.String("grpc.code", code.String()),
		slog.Int64("grpc.duration_ms", duration.Milliseconds()),
	}
	return append(attrs, messageAttrs("grpc.response", resp)...)
}
