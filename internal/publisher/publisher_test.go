package publisher_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/publisher"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
)

type sent struct {
	stream string
	env    queue.Envelope
}

type recordingProducer struct {
	sent []sent
	err  error
}

func (p *recordingProducer) Enqueue(_ context.Context, stream string, env queue.Envelope) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.sent = append(p.sent, sent{stream: stream, env: env})
	return "1-0", nil
}

var _ = Describe("Publisher", func() {
	var (
		ctx      context.Context
		producer *recordingProducer
		pub      publisher.Publisher
	)

	BeforeEach(func() {
		ctx = context.Background()
		producer = &recordingProducer{}
		reg, err := schema.NewRegistry()
		Expect(err).NotTo(HaveOccurred())
		pub = publisher.New(producer, reg, publisher.Streams{
			Jobs:      "accounts_jobs",
			Events:    "accounts_events",
			Provision: "provisioning_jobs",
		})
	})

	ref := schema.OrganizationRef{ID: 10, GithubID: 2828361}

	It("routes provisioning jobs to the provisioning stream", func() {
		Expect(pub.PublishTask(ctx, queue.TaskOrganizationProvision, schema.ProvisionJob{Organization: ref})).To(Succeed())
		Expect(producer.sent).To(HaveLen(1))
		Expect(producer.sent[0].stream).To(Equal("provisioning_jobs"))
	})

	It("routes other jobs to the jobs stream", func() {
		Expect(pub.PublishTask(ctx, queue.TaskOrganizationUserAdd, schema.MembershipJob{
			OrganizationGithubID: 2828361,
			UserGithubID:         1981198,
		})).To(Succeed())
		Expect(producer.sent[0].stream).To(Equal("accounts_jobs"))
		Expect(producer.sent[0].env.Payload).To(MatchJSON(`{"organizationGithubId":2828361,"userGithubId":1981198}`))
	})

	It("routes events to the events stream with a fresh tid", func() {
		Expect(pub.PublishEvent(ctx, queue.EventOrganizationDeleted, schema.OrganizationEvent{Organization: ref})).To(Succeed())
		Expect(producer.sent[0].stream).To(Equal("accounts_events"))
		_, err := uuid.Parse(producer.sent[0].env.Tid)
		Expect(err).NotTo(HaveOccurred())
	})

	It("carries the handled job's tid forward", func() {
		tid := "4f6c8a1e-5a3b-4c2d-9e1f-0a1b2c3d4e5f"
		ctx = logger.WithLogFields(ctx, logger.LogFields{Tid: &tid})
		Expect(pub.PublishEvent(ctx, queue.EventUserDeleted, schema.UserEvent{User: schema.UserRef{ID: 1, GithubID: 2}})).To(Succeed())
		Expect(producer.sent[0].env.Tid).To(Equal(tid))
	})

	It("never sends a payload that fails its schema", func() {
		err := pub.PublishEvent(ctx, queue.EventOrganizationUserAdded, schema.MembershipEvent{Organization: ref})
		var ve *schema.ValidationError
		Expect(errors.As(err, &ve)).To(BeTrue())
		Expect(producer.sent).To(BeEmpty())
	})

	It("wraps producer failures", func() {
		producer.err = errors.New("connection refused")
		err := pub.PublishEvent(ctx, queue.EventUserCreated, schema.UserEvent{User: schema.UserRef{ID: 1, GithubID: 2}})
		Expect(err).To(MatchError(ContainSubstring("connection refused")))
	})
})
