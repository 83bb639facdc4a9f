package stream

import (
	"io"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/models"
	"token-pulse-go/internal/pricefeed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeStreamsSnapshots(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := marketengine.New(
		marketengine.WithLogger(logger),
		marketengine.WithFlagWindow(time.Hour),
		marketengine.WithSimulator(pricefeed.NewSimulator(rand.New(rand.NewPCG(1, 2)))),
	)
	defer engine.Stop()
	engine.Track([]models.Token{{ID: "new-0", Price: 10}, {ID: "new-1", Price: 20}})

	r := gin.New()
	r.GET("/stream", NewHub(engine, logger).Serve)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Type)
	assert.Equal(t, uint64(0), first.Data.Sequence)
	assert.Equal(t, 10.0, first.Data.Prices["new-0"])

	tick := engine.Tick()

	var next Message
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, uint64(1), next.Data.Sequence)
	for _, update := range tick.Updates {
		assert.Equal(t, update.Price, next.Data.Prices[update.TokenID])
	}
}

func TestServeRejectsPlainHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	r.GET("/stream", NewHub(marketengine.New(marketengine.WithLogger(logger)), logger).Serve)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stream", nil))

	assert.Equal(t, 400, w.Code)
}
