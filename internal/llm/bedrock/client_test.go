package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"utilitycompare-backend/internal/llm"
)

type fakeInvoke struct {
	lastInput *bedrockruntime.InvokeModelInput
	body      []byte
	err       error
}

func (f *fakeInvoke) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.body}, nil
}

func envelope(t *testing.T, text string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"content": []map[string]string{{"text": text}},
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestInterpretRequestShape(t *testing.T) {
	fake := &fakeInvoke{body: envelope(t, `{"supplier":"Electric Ireland"}`)}
	client := NewWithAPI(fake, "anthropic.claude-3-sonnet-20240229-v1:0", 2000)

	fields, err := client.Interpret(context.Background(), "bill text here")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if fields.Supplier == nil || *fields.Supplier != "Electric Ireland" {
		t.Fatalf("Supplier = %v", fields.Supplier)
	}

	in := fake.lastInput
	if in == nil || in.ModelId == nil || *in.ModelId != "anthropic.claude-3-sonnet-20240229-v1:0" {
		t.Fatalf("unexpected InvokeModelInput: %+v", in)
	}
	if *in.ContentType != "application/json" || *in.Accept != "application/json" {
		t.Fatalf("content negotiation headers wrong: %q %q", *in.ContentType, *in.Accept)
	}

	var req anthropicRequest
	if err := json.Unmarshal(in.Body, &req); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if req.AnthropicVersion != "bedrock-2023-05-31" {
		t.Errorf("anthropic_version = %q", req.AnthropicVersion)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("max_tokens = %d", req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v", req.Messages)
	}
	if !strings.HasSuffix(req.Messages[0].Content, "bill text here") {
		t.Error("prompt does not end with the bill text")
	}
	if !strings.Contains(req.Messages[0].Content, "If any field cannot be determined, use null.") {
		t.Error("prompt missing the null instruction")
	}
}

func TestInterpretNullFields(t *testing.T) {
	fake := &fakeInvoke{body: envelope(t, `{"utilityType":"gas","supplier":null,"costs":{"totalAmount":89.5,"vatAmount":null}}`)}
	client := NewWithAPI(fake, "model", 2000)

	fields, err := client.Interpret(context.Background(), "text")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if fields.UtilityType == nil || *fields.UtilityType != "gas" {
		t.Errorf("UtilityType = %v", fields.UtilityType)
	}
	if fields.Supplier != nil {
		t.Errorf("Supplier should stay nil, got %v", *fields.Supplier)
	}
	if fields.Costs.TotalAmount == nil || *fields.Costs.TotalAmount != 89.5 {
		t.Errorf("TotalAmount = %v", fields.Costs.TotalAmount)
	}
	if fields.Costs.VATAmount != nil {
		t.Errorf("VATAmount should stay nil")
	}
}

func TestInterpretInvocationFailure(t *testing.T) {
	fake := &fakeInvoke{err: errors.New("throttled")}
	client := NewWithAPI(fake, "model", 2000)

	_, err := client.Interpret(context.Background(), "text")
	var invErr llm.InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want InvocationError", err)
	}
}

func TestInterpretBadEnvelope(t *testing.T) {
	fake := &fakeInvoke{body: []byte("not json at all")}
	client := NewWithAPI(fake, "model", 2000)

	_, err := client.Interpret(context.Background(), "text")
	var invErr llm.InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want InvocationError for an undecodable envelope", err)
	}
}

func TestInterpretNonJSONAnswer(t *testing.T) {
	fake := &fakeInvoke{body: envelope(t, "Sorry, I cannot read this bill.")}
	client := NewWithAPI(fake, "model", 2000)

	_, err := client.Interpret(context.Background(), "text")
	var interpErr llm.InterpretationError
	if !errors.As(err, &interpErr) {
		t.Fatalf("error = %v, want InterpretationError", err)
	}
	if interpErr.Raw != "Sorry, I cannot read this bill." {
		t.Fatalf("Raw = %q", interpErr.Raw)
	}
}
