package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/samvad-hq/assistly-go/internal/domain"
	"github.com/samvad-hq/assistly-go/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func testEvent() Event {
	return NewEvent("https://acme.assistly.com/api/v1", domain.Customer{
		ID:         "42",
		Name:       "Ada Lovelace",
		Attributes: json.RawMessage(`{"id":42,"first_name":"Ada"}`),
	})
}

func decodeEvent(t *testing.T, body string) Event {
	t.Helper()
	var evt Event
	if err := json.Unmarshal([]byte(body), &evt); err != nil {
		t.Fatalf("decode event %q: %v", body, err)
	}
	return evt
}

func TestSQSPublisherSendsEventWithAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		typ:      TypeSQS,
		queueURL: "https://sqs.local/000000000000/customers",
		client:   client,
		log:      logger.NopLogger{},
	}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/000000000000/customers" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["customer_id"]
	if !ok || aws.ToString(attr.StringValue) != "42" {
		t.Fatalf("customer_id attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if got := aws.ToString(client.input.MessageAttributes["event_type"].StringValue); got != EventCustomerDiscovered {
		t.Fatalf("event_type attribute = %q", got)
	}

	evt := decodeEvent(t, aws.ToString(client.input.MessageBody))
	if evt.Customer.ID != "42" || evt.Customer.Name != "Ada Lovelace" {
		t.Fatalf("unexpected customer in body: %#v", evt.Customer)
	}
}

func TestSQSPublisherWrapsSendError(t *testing.T) {
	boom := errors.New("boom")
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://sqs.local/q",
		client:   &fakeSQSClient{err: boom},
		log:      logger.NopLogger{},
	}

	err := pub.Publish(context.Background(), testEvent())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSNSPublisherSendsEventWithAttributes(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:000000000000:customers",
		client:   client,
		log:      logger.NopLogger{},
	}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:us-east-1:000000000000:customers" {
		t.Fatalf("TopicArn = %s", got)
	}
	if got := aws.ToString(client.input.MessageAttributes["customer_id"].StringValue); got != "42" {
		t.Fatalf("customer_id attribute = %q", got)
	}
	evt := decodeEvent(t, aws.ToString(client.input.Message))
	if evt.Type != EventCustomerDiscovered {
		t.Fatalf("event type = %q", evt.Type)
	}
}

func TestSNSPublisherWrapsPublishError(t *testing.T) {
	boom := errors.New("boom")
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   &fakeSNSClient{err: boom},
		log:      logger.NopLogger{},
	}

	if err := pub.Publish(context.Background(), testEvent()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestNewSQSPublisherUsesStaticCredentials(t *testing.T) {
	pub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:   "queue",
		Type: TypeSQS,
		SQS: &SQSPublisherConfig{
			QueueURL: "http://localhost:4566/000000000000/customers",
			AWSConfig: AWSConfig{
				Region:          "us-east-1",
				Endpoint:        "http://localhost:4566",
				AccessKeyID:     "test",
				SecretAccessKey: "test",
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if pub.ID() != "queue" || pub.Type() != TypeSQS {
		t.Fatalf("unexpected publisher identity %s/%s", pub.ID(), pub.Type())
	}
}

func TestNewSNSPublisherRequiresConfig(t *testing.T) {
	if _, err := newSNSPublisher(context.Background(), PublisherConfig{ID: "topic", Type: TypeSNS}, nil); err == nil {
		t.Fatalf("expected error for missing sns block")
	}
}
