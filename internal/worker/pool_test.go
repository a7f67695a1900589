package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMailer records deliveries for assertion.
type stubMailer struct {
	mu       sync.Mutex
	enviados []EmailPayload
}

func (m *stubMailer) Enviar(para, asunto, cuerpo, adjuntoPDF string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enviados = append(m.enviados, EmailPayload{Para: para, Asunto: asunto, Cuerpo: cuerpo, AdjuntoPDF: adjuntoPDF})
	return nil
}

func (m *stubMailer) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enviados)
}

var _ Mailer = (*stubMailer)(nil)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestEnqueueEmail_FormatoDelJob(t *testing.T) {
	rdb := testRedis(t)
	d := NewDispatcher(rdb)

	err := d.EnqueueEmail(context.Background(), EmailPayload{
		Para:       "gerencia@comercio.com",
		Asunto:     "Reporte diario",
		AdjuntoPDF: "/tmp/reporte.pdf",
	})
	require.NoError(t, err)

	n, err := rdb.LLen(context.Background(), QueueEmail).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	raw, err := rdb.RPop(context.Background(), QueueEmail).Result()
	require.NoError(t, err)
	assert.Contains(t, raw, `"type":"email"`)
	assert.Contains(t, raw, "gerencia@comercio.com")
}

func TestWorkerPool_ConsumeYEnvia(t *testing.T) {
	rdb := testRedis(t)
	d := NewDispatcher(rdb)
	mailer := &stubMailer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartWorkerPool(ctx, rdb, mailer, 2)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.EnqueueEmail(ctx, EmailPayload{
			Para:   "gerencia@comercio.com",
			Asunto: "Reporte diario",
		}))
	}

	require.Eventually(t, func() bool {
		return mailer.total() == 3
	}, 3*time.Second, 20*time.Millisecond)

	// Queue drained
	n, err := rdb.LLen(context.Background(), QueueEmail).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestWorkerPool_ApagadoEsperaALosWorkers(t *testing.T) {
	rdb := testRedis(t)
	mailer := &stubMailer{}

	ctx, cancel := context.WithCancel(context.Background())
	wg := StartWorkerPool(ctx, rdb, mailer, 3)

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("workers still running after cancellation")
	}
}

func TestWorkerPool_JobMalformadoNoDerriba(t *testing.T) {
	rdb := testRedis(t)
	d := NewDispatcher(rdb)
	mailer := &stubMailer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartWorkerPool(ctx, rdb, mailer, 1)

	require.NoError(t, rdb.LPush(ctx, QueueEmail, "esto no es json").Err())
	require.NoError(t, d.EnqueueEmail(ctx, EmailPayload{Para: "a@b.com", Asunto: "ok"}))

	// The bad job is discarded and the good one still goes through
	require.Eventually(t, func() bool {
		return mailer.total() == 1
	}, 3*time.Second, 20*time.Millisecond)
}
