package webkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCancelledError(t *testing.T) {
	assert.False(t, IsCancelledError(nil))
	assert.True(t, IsCancelledError(errors.New("Load request cancelled")))
	assert.False(t, IsCancelledError(errors.New("Could not resolve host")))
	assert.False(t, IsCancelledError(fmt.Errorf("load: %w", ErrWebViewDestroyed)))
}
