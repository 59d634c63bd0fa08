package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lukirizki/articlehub/internal/actorctx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestClassifyDBErr(t *testing.T) {
	assert.Equal(t, "unique_violation", ClassifyDBErr(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "pg_42P01", ClassifyDBErr(&pgconn.PgError{Code: "42P01"}))
	assert.Equal(t, "timeout", ClassifyDBErr(context.DeadlineExceeded))
	assert.Equal(t, "unknown", ClassifyDBErr(errors.New("boom")))
}

func TestObserveDB_CountsErrorsButNotMissingRows(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB(context.Background(), "articles.get", func(context.Context) error { return pgx.ErrNoRows })
	_ = p.ObserveDB(context.Background(), "articles.create", func(context.Context) error { return &pgconn.PgError{Code: "23505"} })

	assert.Equal(t, 0.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("articles.get", "unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("articles.create", "unique_violation")))
}

func TestNilPromIsSafe(t *testing.T) {
	var p *Prom

	called := false
	err := p.ObserveDB(context.Background(), "noop", func(context.Context) error { called = true; return nil })

	require.NoError(t, err)
	assert.True(t, called)
	p.ObserveCache(true)
	p.ObserveAuthFailure("invalid_token")
}

func TestLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "hello")
	span.End()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), record["span_id"])
}

func TestLogger_AddsActor(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	ctx := actorctx.WithIdentity(context.Background(), actorctx.Identity{UserID: "u-1", Email: "a@b.co"})
	log.InfoContext(ctx, "hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "u-1", record["user_id"])
	assert.NotContains(t, record, "trace_id")
}

func TestInitTracer_RequiresEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "articlehub", "dev", "")
	require.ErrorIs(t, err, errNoEndpoint)
	assert.Nil(t, shutdown)
}
