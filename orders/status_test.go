package orders

import (
	"testing"

	"tavolo/models"

	"github.com/stretchr/testify/assert"
)

func TestForwardChain(t *testing.T) {
	chain := []models.OrderStatus{
		models.StatusNew,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		next, ok := NextStatus(chain[i])
		assert.True(t, ok, "%s should have a successor", chain[i])
		assert.Equal(t, chain[i+1], next)
	}
}

func TestTerminalStatusesHaveNoSuccessor(t *testing.T) {
	_, ok := NextStatus(models.StatusDelivered)
	assert.False(t, ok)

	_, ok = NextStatus(models.StatusCancelled)
	assert.False(t, ok)
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(models.StatusNew))
	assert.True(t, CanCancel(models.StatusConfirmed))
	assert.True(t, CanCancel(models.StatusPreparing))
	assert.True(t, CanCancel(models.StatusReady))
	assert.False(t, CanCancel(models.StatusDelivered))
	assert.False(t, CanCancel(models.StatusCancelled))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.StatusNew))
	assert.True(t, ValidStatus(models.StatusCancelled))
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}
