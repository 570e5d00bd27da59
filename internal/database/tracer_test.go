package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	slow := newSlowQueryTracer(&logger, time.Nanosecond)
	ctx := slow.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	time.Sleep(time.Millisecond)
	slow.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("canceled")})

	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	assert.Contains(t, buf.String(), `"error":"canceled"`)

	buf.Reset()
	fast := newSlowQueryTracer(&logger, time.Hour)
	ctx = fast.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	fast.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())

	// End without a matching start is ignored.
	fast.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())
}

func TestMultiTracer_ChainsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	mt := &multiTracer{tracers: []pgx.QueryTracer{
		newSlowQueryTracer(&logger, time.Hour),
		newSlowQueryTracer(&logger, time.Nanosecond),
	}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 2"})
	time.Sleep(time.Millisecond)
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("slow query")))
}
