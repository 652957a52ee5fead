package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/trackhub/project-manager/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Message is one notification pending delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message synchronously (SMTP).
type Sender interface {
	Send(toAddress, subject, body string) error
}

// Dispatcher takes notification delivery off the request path. Messages
// are routed to a fixed set of workers using consistent hashing on the
// recipient address, keeping per-recipient delivery ordered.
//
// Dispatcher itself satisfies ports.Notifier: Send enqueues and returns
// immediately; delivery errors are logged and counted, never surfaced.
type Dispatcher struct {
	workers []chan Message
	sender  Sender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Message, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Message, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues the message for its recipient's worker. Non-blocking up
// to channelBuffer capacity.
func (d *Dispatcher) Send(toAddress, subject, body string) error {
	i := d.shardIndex(toAddress)
	d.workers[i] <- Message{To: toAddress, Subject: subject, Body: body}
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	return nil
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(toAddress string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(toAddress))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Message) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
				metrics.MailDeliveriesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailDeliveriesTotal.WithLabelValues("ok").Inc()
		}
	}
}
