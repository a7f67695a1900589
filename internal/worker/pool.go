package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EmailPayload carries one daily-report delivery: recipient, subject, body
// and the path of the already-rendered PDF attachment.
type EmailPayload struct {
	Para       string `json:"para"`
	Asunto     string `json:"asunto"`
	Cuerpo     string `json:"cuerpo"`
	AdjuntoPDF string `json:"adjunto_pdf"`
}

// Mailer is the delivery dependency of the email worker (satisfied by
// infra.Mailer; stubbed in tests).
type Mailer interface {
	Enviar(para, asunto, cuerpo, adjuntoPDF string) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes a report-delivery job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "email", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the email queue.
// Each goroutine blocks on BRPOP — zero CPU when idle. The returned WaitGroup
// is done once every worker has exited after context cancellation; waiting on
// it at shutdown lets an in-flight delivery finish instead of dying mid-send.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, mailer Mailer, numWorkers int) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, mailer, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return &wg
}

func runWorker(ctx context.Context, rdb *redis.Client, mailer Mailer, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(result[1], mailer)
		}
	}
}

func processJob(raw string, mailer Mailer) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "email":
		var payload EmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal email payload")
			return
		}
		if err := mailer.Enviar(payload.Para, payload.Asunto, payload.Cuerpo, payload.AdjuntoPDF); err != nil {
			log.Error().Err(err).Str("para", payload.Para).Msg("failed to send report email")
			return
		}
		log.Info().Str("para", payload.Para).Msg("report email sent")
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
