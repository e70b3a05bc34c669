package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"utilitycompare-backend/internal/bills"
	"utilitycompare-backend/internal/llm"
)

const anthropicVersion = "bedrock-2023-05-31"

// invokeAPI is the slice of the Bedrock runtime client the interpreter uses.
type invokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client implements llm.Interpreter over Amazon Bedrock's InvokeModel API
// using the Anthropic messages body format.
type Client struct {
	api       invokeAPI
	modelID   string
	maxTokens int32
}

// New builds a Client against the given region and model.
func New(ctx context.Context, region, modelID string, maxTokens int32) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{
		api:       bedrockruntime.NewFromConfig(cfg),
		modelID:   modelID,
		maxTokens: maxTokens,
	}, nil
}

// NewWithAPI builds a Client over an existing invoke API, for tests.
func NewWithAPI(api invokeAPI, modelID string, maxTokens int32) *Client {
	return &Client{api: api, modelID: modelID, maxTokens: maxTokens}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int32              `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Interpret sends the bill text to the model and decodes the structured
// fields from its reply. Envelope problems surface as InvocationError;
// a reply whose text is not the requested JSON surfaces as
// InterpretationError carrying the raw text.
func (c *Client) Interpret(ctx context.Context, text string) (bills.ExtractedFields, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(text)},
		},
	})
	if err != nil {
		return bills.ExtractedFields{}, llm.InvocationError{ModelID: c.modelID, Err: err}
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return bills.ExtractedFields{}, llm.InvocationError{ModelID: c.modelID, Err: err}
	}

	var envelope anthropicResponse
	if err := json.Unmarshal(out.Body, &envelope); err != nil {
		return bills.ExtractedFields{}, llm.InvocationError{ModelID: c.modelID, Err: fmt.Errorf("decode response envelope: %w", err)}
	}
	if len(envelope.Content) == 0 {
		return bills.ExtractedFields{}, llm.InvocationError{ModelID: c.modelID, Err: fmt.Errorf("response envelope has no content blocks")}
	}

	raw := envelope.Content[0].Text
	var fields bills.ExtractedFields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return bills.ExtractedFields{}, llm.InterpretationError{Raw: raw, Err: err}
	}
	return fields, nil
}

var _ llm.Interpreter = (*Client)(nil)
