package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
	"basegraph.app/accounts/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		consumer *mockConsumer
		registry *schema.Registry
		promReg  *prometheus.Registry
		metrics  *worker.Metrics
		handlers map[queue.TaskType]worker.Handler
		w        *worker.Worker
		calls    atomic.Int32
		result   error
	)

	userCreate := func(attempt int) queue.Message {
		return queue.Message{
			ID:       "1-0",
			TaskType: queue.TaskUserCreate,
			Payload:  []byte(`{"githubId":1981198}`),
			Attempt:  attempt,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		calls.Store(0)
		result = nil

		var err error
		registry, err = schema.NewRegistry()
		Expect(err).NotTo(HaveOccurred())

		promReg = prometheus.NewRegistry()
		metrics = worker.NewMetrics(promReg)
		handlers = map[queue.TaskType]worker.Handler{
			queue.TaskUserCreate: func(ctx context.Context, msg queue.Message) error {
				calls.Add(1)
				return result
			},
		}
	})

	JustBeforeEach(func() {
		w = worker.New(consumer, registry, handlers, metrics, worker.Config{MaxAttempts: 11, Concurrency: 2})
	})

	It("acks a message whose handler succeeds", func() {
		Expect(w.HandleMessage(ctx, userCreate(1))).To(Equal(worker.OutcomeCompleted))
		Expect(consumer.acked).To(HaveLen(1))
		Expect(consumer.requeued).To(BeEmpty())
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("requeues a retryable failure with the error attached", func() {
		result = errors.New("connection reset")

		Expect(w.HandleMessage(ctx, userCreate(3))).To(Equal(worker.OutcomeRetried))
		Expect(consumer.requeued).To(HaveLen(1))
		Expect(consumer.requeued[0].errMsg).To(ContainSubstring("connection reset"))
		Expect(consumer.acked).To(BeEmpty())
	})

	It("dead-letters a retryable failure once the attempt budget is spent", func() {
		result = errors.New("still failing")

		Expect(w.HandleMessage(ctx, userCreate(11))).To(Equal(worker.OutcomeExhausted))
		Expect(consumer.dlq).To(HaveLen(1))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("dead-letters a stop error on the first attempt", func() {
		result = &worker.WorkerStopError{Reason: "user is not a member"}

		Expect(w.HandleMessage(ctx, userCreate(1))).To(Equal(worker.OutcomeFatal))
		Expect(consumer.dlq).To(HaveLen(1))
		Expect(consumer.dlq[0].errMsg).To(Equal("user is not a member"))
	})

	It("dead-letters a payload that fails its schema without running the handler", func() {
		msg := userCreate(1)
		msg.Payload = []byte(`{"githubId":"not-a-number"}`)

		Expect(w.HandleMessage(ctx, msg)).To(Equal(worker.OutcomeFatal))
		Expect(calls.Load()).To(BeZero())
		Expect(consumer.dlq).To(HaveLen(1))
	})

	It("dead-letters a task nobody handles", func() {
		msg := userCreate(1)
		msg.TaskType = "organization.rename"

		Expect(w.HandleMessage(ctx, msg)).To(Equal(worker.OutcomeFatal))
		Expect(consumer.dlq[0].errMsg).To(ContainSubstring("no handler registered"))
	})

	Context("when the handler panics", func() {
		BeforeEach(func() {
			handlers[queue.TaskUserCreate] = func(ctx context.Context, msg queue.Message) error {
				panic("nil map")
			}
		})

		It("recovers and requeues", func() {
			Expect(w.HandleMessage(ctx, userCreate(1))).To(Equal(worker.OutcomeRetried))
			Expect(consumer.requeued[0].errMsg).To(ContainSubstring("panic: nil map"))
		})
	})

	It("counts outcomes per task", func() {
		w.HandleMessage(ctx, userCreate(1))
		result = errors.New("boom")
		w.HandleMessage(ctx, userCreate(1))
		w.HandleMessage(ctx, userCreate(1))

		count, err := testutil.GatherAndCount(promReg, "accounts_worker_jobs_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2)) // completed and retried series for user.create

		count, err = testutil.GatherAndCount(promReg, "accounts_worker_job_duration_seconds")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	Describe("CheckHandlers", func() {
		It("accepts the production handler set", func() {
			Expect(worker.CheckHandlers(registry, worker.NewHandlers(worker.Deps{}))).To(Succeed())
		})

		It("names handled tasks that have no schema", func() {
			handlers["organization.rename"] = handlers[queue.TaskUserCreate]

			err := worker.CheckHandlers(registry, handlers)
			Expect(err).To(MatchError(ContainSubstring("organization.rename")))
		})
	})

	Describe("Run", func() {
		It("processes batches until stopped", func() {
			consumer.batches = [][]queue.Message{
				{userCreate(1), userCreate(1)},
				{userCreate(1)},
			}

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			Eventually(consumer.ackedCount).Should(Equal(3))
			w.Stop()
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})

var _ = Describe("Reclaimer", func() {
	It("hands claimed deliveries to the handler", func() {
		claimer := &mockClaimer{pending: []queue.Message{{ID: "7-0"}, {ID: "8-0"}}}
		handled := make(chan string, 2)
		handle := func(ctx context.Context, msg queue.Message) worker.Outcome {
			handled <- msg.ID
			return worker.OutcomeCompleted
		}

		r := worker.NewReclaimer(claimer, handle, worker.ReclaimerConfig{
			MinIdle:   time.Minute,
			Interval:  5 * time.Millisecond,
			BatchSize: 10,
		})
		go r.Run(context.Background())

		Eventually(handled).Should(Receive(Equal("7-0")))
		Eventually(handled).Should(Receive(Equal("8-0")))
		r.Stop()
	})
})
