package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRegistryFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeRegistryFile(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
	if cfg, ok := reg.ByID("http2"); !ok || cfg.HTTP.Method != httpDefaultMethod || cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", cfg.HTTP)
	}
}

func TestLoadRegistryAllTypes(t *testing.T) {
	path := writeRegistryFile(t, "publishers.yaml", `
publishers:
  - id: queue
    type: SQS
    sqs:
      uri: " http://localhost:4566/000000000000/customers "
      region: us-east-1
      endpoint: http://localhost:4566
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:us-east-1:000000000000:customers
      region: us-east-1
      access_key_id: test
      secret_access_key: test
  - id: gcp
    type: pubsub
    pubsub:
      project_id: acme
      topic: customers
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 publishers, got %d", len(reg.All()))
	}
	queue, _ := reg.ByID("queue")
	if queue.Type != TypeSQS || queue.SQS.QueueURL != "http://localhost:4566/000000000000/customers" {
		t.Fatalf("sqs entry not sanitized: %#v", queue.SQS)
	}
	if queue.SQS.Region != "us-east-1" || queue.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("inline aws settings not decoded: %#v", queue.SQS.AWSConfig)
	}
	topic, _ := reg.ByID("topic")
	if topic.SNS.AccessKeyID != "test" {
		t.Fatalf("sns credentials not decoded: %#v", topic.SNS.AWSConfig)
	}
	gcp, _ := reg.ByID("gcp")
	if gcp.PubSub.Topic != "customers" {
		t.Fatalf("pubsub entry not decoded: %#v", gcp.PubSub)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeRegistryFile(t, "publishers.json", `{"publishers":[{"id":"hook","type":"http","http":{"url":"https://example.com"}}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("hook"); !ok {
		t.Fatalf("hook publisher missing")
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := writeRegistryFile(t, "publishers.yaml", `
publishers:
  - id: hook
    type: http
    http: {url: https://example.com}
  - id: hook
    type: http
    http: {url: https://example.com/2}
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := map[string]PublisherConfig{
		"missing http block": {ID: "h1", Type: TypeHTTP},
		"unknown type":       {ID: "k1", Type: "kafka"},
		"sqs without region": {ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}},
		"half credentials": {ID: "t1", Type: TypeSNS, SNS: &SNSPublisherConfig{
			TopicARN:  "arn",
			AWSConfig: AWSConfig{Region: "us-east-1", AccessKeyID: "only-key"},
		}},
		"pubsub without topic": {ID: "g1", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "acme"}},
		"missing id":           {Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}
	for name, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
