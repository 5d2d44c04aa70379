package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/simbrella/cms-console/internal/errors"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "api", Classify(apperrors.API(422, "bad", nil)))
	assert.Equal(t, "transport", Classify(fmt.Errorf("wrapped: %w", apperrors.Transport(context.DeadlineExceeded))))
	assert.Equal(t, "context_deadlineexceedederror", Classify(fmt.Errorf("x: %w", context.DeadlineExceeded)))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("plain")))
}
