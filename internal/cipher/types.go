package cipher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RowanDark/cryptokit/internal/logging"
	"github.com/RowanDark/cryptokit/internal/observability/metrics"
)

// OperationType defines the category of transformation operation
type OperationType string

const (
	OperationTypeEncode  OperationType = "encode"
	OperationTypeDecode  OperationType = "decode"
	OperationTypeEncrypt OperationType = "encrypt"
	OperationTypeDecrypt OperationType = "decrypt"
	OperationTypePad     OperationType = "pad"
	OperationTypeAnalyze OperationType = "analyze"
)

// ErrNotReversible is returned when a pipeline contains a one-way step.
var ErrNotReversible = errors.New("pipeline is not reversible")

// Operation represents a single transformation operation that can be applied to data
type Operation interface {
	// Name returns the unique identifier for this operation
	Name() string

	// Type returns the category of this operation
	Type() OperationType

	// Description returns a human-readable description
	Description() string

	// Execute applies the operation to the input data
	Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error)

	// Reverse returns the inverse operation if available
	Reverse() (Operation, bool)
}

// OperationConfig represents configuration for an operation in a pipeline
type OperationConfig struct {
	Name       string                 `json:"name" yaml:"name"`
	Parameters map[string]interface{} `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Pipeline represents a chain of operations that can be applied sequentially
type Pipeline struct {
	Operations []OperationConfig `json:"operations" yaml:"operations"`
	Reversible bool              `json:"reversible" yaml:"reversible"`
}

// Execute runs the pipeline on the input data
func (p *Pipeline) Execute(ctx context.Context, input []byte) ([]byte, error) {
	return p.run(ctx, input, nil)
}

// run executes each step, recording it in metrics and, when audit is set,
// in the audit trail.
func (p *Pipeline) run(ctx context.Context, input []byte, audit *logging.AuditLogger) ([]byte, error) {
	result := input
	for i, opConfig := range p.Operations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("%w at step %d: %s", ErrUnknownOperation, i, opConfig.Name)
		}

		start := time.Now()
		out, err := op.Execute(ctx, result, opConfig.Parameters)
		metrics.RecordOperation(op.Name(), err)
		if audit != nil {
			event := logging.AuditEvent{
				EventType: logging.EventPipelineStep,
				Outcome:   logging.OutcomeSuccess,
				Metadata: map[string]any{
					"step":        i,
					"operation":   op.Name(),
					"input_bytes": len(result),
					"duration_ms": time.Since(start).Milliseconds(),
				},
			}
			if err != nil {
				event.Outcome = logging.OutcomeFailure
				event.Reason = err.Error()
			}
			if emitErr := audit.Emit(event); emitErr != nil {
				slog.Warn("audit emit failed", "operation", op.Name(), "error", emitErr)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("operation %s failed at step %d: %w", opConfig.Name, i, err)
		}
		result = out
	}

	return result, nil
}

// Reverse creates a reversed pipeline if all operations are reversible
func (p *Pipeline) Reverse() (*Pipeline, error) {
	if !p.Reversible {
		return nil, ErrNotReversible
	}

	reversed := &Pipeline{
		Operations: make([]OperationConfig, len(p.Operations)),
		Reversible: true,
	}

	// Reverse the order and get inverse operations
	for i, opConfig := range p.Operations {
		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, opConfig.Name)
		}

		reverseOp, ok := op.Reverse()
		if !ok {
			return nil, fmt.Errorf("%w: operation %s has no inverse", ErrNotReversible, opConfig.Name)
		}

		reversed.Operations[len(p.Operations)-1-i] = OperationConfig{
			Name:       reverseOp.Name(),
			Parameters: opConfig.Parameters,
		}
	}

	return reversed, nil
}

// Recipe represents a named, reusable transformation pipeline
type Recipe struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Pipeline    Pipeline `json:"pipeline" yaml:"pipeline"`
	CreatedAt   string   `json:"created_at" yaml:"created_at"`
	UpdatedAt   string   `json:"updated_at" yaml:"updated_at"`
}

// DetectionResult represents the result of automatic encoding detection
type DetectionResult struct {
	Encoding   string  `json:"encoding"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Reasoning  string  `json:"reasoning"`
	Operation  string  `json:"operation"` // First operation to apply

	// Steps is the full pipeline that recovers the data, Operation first.
	Steps []OperationConfig `json:"steps,omitempty"`
}

// Detector identifies the encoding or format of input data
type Detector interface {
	// Detect attempts to identify the encoding of the input
	Detect(ctx context.Context, input []byte) ([]DetectionResult, error)

	// SupportedEncodings returns a list of encodings this detector can identify
	SupportedEncodings() []string
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	NameValue        string
	TypeValue        OperationType
	DescriptionValue string
	ReverseOp        Operation
}

func (b *BaseOperation) Name() string {
	return b.NameValue
}

func (b *BaseOperation) Type() OperationType {
	return b.TypeValue
}

func (b *BaseOperation) Description() string {
	return b.DescriptionValue
}

func (b *BaseOperation) Reverse() (Operation, bool) {
	if b.ReverseOp == nil {
		return nil, false
	}
	return b.ReverseOp, true
}
