package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("Category not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))

	wrapped := fmt.Errorf("load category: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDomainError(CodePaymentDeclined, "gateway unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "gateway unavailable: connection reset", err.Error())
}

func TestDomainError_WithStatus(t *testing.T) {
	base := NewNotFoundError("Email is not registerd")
	withStatus := base.WithStatus(http.StatusNotFound)

	assert.Equal(t, 0, base.Status)
	assert.Equal(t, http.StatusNotFound, withStatus.Status)
	assert.Equal(t, base.Message, withStatus.Message)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3, 4, 5, 6}, 13, 1, 6)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated([]int{}, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestFilter_OffsetBasic(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, PageSize: 6}.Offset())
	assert.Equal(t, 12, Filter{Page: 3, PageSize: 6}.Offset())
	assert.Equal(t, 0, Filter{Page: 3}.Offset())
}
