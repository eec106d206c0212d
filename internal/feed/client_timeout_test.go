package feed

import (
	"io"
	"testing"
	"time"

	"inventorysync/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestNewClientTimeout(t *testing.T) {
	log := logger.NewWithWriter("error", "json", io.Discard)

	assert.Zero(t, NewClient(0, log).httpClient.Timeout)
	assert.Zero(t, NewClient(-time.Second, log).httpClient.Timeout)
	assert.Equal(t, 45*time.Second, NewClient(45*time.Second, log).httpClient.Timeout)
}
