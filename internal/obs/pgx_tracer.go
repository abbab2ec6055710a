package obs

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxStatementLen = 300

// PGXTracer emits one client span per query. Set it as
// pgxpool.Config.ConnConfig.Tracer.
type PGXTracer struct{}

// TraceQueryStart implements pgx.QueryTracer.
func (PGXTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", statement(data.SQL)),
	}
	if op := sqlOperation(data.SQL); op != "" {
		attrs = append(attrs, attribute.String("db.operation", op))
	}
	ctx, _ = otel.Tracer("shipledger/pgx").Start(ctx, querySpanName(data.SQL),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx
}

// TraceQueryEnd implements pgx.QueryTracer.
func (PGXTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	if data.Err != nil {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	} else {
		span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	span.End()
}

func statement(sql string) string {
	sql = strings.TrimSpace(sql)
	if len(sql) <= maxStatementLen {
		return sql
	}
	return sql[:maxStatementLen] + "..."
}

// querySpanName prefers the sqlc "-- name: X :kind" header.
func querySpanName(sql string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(sql), "-- name:")
	if !ok {
		return "pgx.query"
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		return "pgx." + fields[0]
	}
	return "pgx.query"
}

// sqlOperation is the first keyword after any comment lines.
func sqlOperation(sql string) string {
	for line := range strings.Lines(sql) {
		if f := strings.Fields(line); len(f) > 0 && !strings.HasPrefix(f[0], "--") {
			return strings.ToUpper(f[0])
		}
	}
	return ""
}
