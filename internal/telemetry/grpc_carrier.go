package telemetry

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/metadata"
)

// MetadataTextMapCarrier lets the global propagator read and write gRPC
// metadata.
type MetadataTextMapCarrier metadata.MD

func (c MetadataTextMapCarrier) Get(key string) string {
	if v := metadata.MD(c).Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c MetadataTextMapCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c MetadataTextMapCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtractIncoming continues the caller's trace from incoming metadata and
// returns that metadata for logging. It never returns a nil MD.
func ExtractIncoming(ctx context.Context) (context.Context, metadata.MD) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	}
	return otel.GetTextMapPropagator().Extract(ctx, MetadataTextMapCarrier(md)), md
}

// InjectOutgoing writes the current trace into the outgoing metadata of ctx.
func InjectOutgoing(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	otel.GetTextMapPropagator().Inject(ctx, MetadataTextMapCarrier(md))
	return metadata.NewOutgoingContext(ctx, md)
}
