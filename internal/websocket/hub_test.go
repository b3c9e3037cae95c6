package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agrimarket/internal/model"
	"agrimarket/internal/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) (*Hub, *token.Manager, *httptest.Server) {
	return newServerWithDenylist(t, token.NopDenylist{})
}

func newServerWithDenylist(t *testing.T, denylist token.Denylist) (*Hub, *token.Manager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	tokens := token.NewManager([]byte("secret"), time.Hour)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, tokens, denylist, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, tok string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tok
}

func TestServeWs_RejectsMissingAndInvalidToken(t *testing.T) {
	_, _, srv := newServer(t)

	_, resp, err := gws.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp, err = gws.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestServeWs_RejectsRevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	denylist := token.NewDenylist(rdb)
	_, tokens, srv := newServerWithDenylist(t, denylist)

	revokedTok, claims, err := tokens.Issue(&model.User{ID: 1, Username: "a", Role: model.RoleRetailer})
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))
	liveTok, _, err := tokens.Issue(&model.User{ID: 1, Username: "a", Role: model.RoleRetailer})
	require.NoError(t, err)

	_, resp, err := gws.DefaultDialer.Dial(wsURL(srv, revokedTok), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	conn, _, err := gws.DefaultDialer.Dial(wsURL(srv, liveTok), nil)
	require.NoError(t, err)
	_ = conn.Close()
}

func TestServeWs_DenylistOutageLetsConnectionThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	_, tokens, srv := newServerWithDenylist(t, token.NewDenylist(rdb))
	mr.Close()

	tok, _, err := tokens.Issue(&model.User{ID: 1, Username: "a", Role: model.RoleRetailer})
	require.NoError(t, err)
	conn, _, err := gws.DefaultDialer.Dial(wsURL(srv, tok), nil)
	require.NoError(t, err)
	_ = conn.Close()
}

func TestNotify_ReachesOnlyTargetUser(t *testing.T) {
	hub, tokens, srv := newServer(t)

	tokA, _, err := tokens.Issue(&model.User{ID: 1, Username: "a", Role: model.RoleRetailer})
	require.NoError(t, err)
	tokB, _, err := tokens.Issue(&model.User{ID: 2, Username: "b", Role: model.RoleRetailer})
	require.NoError(t, err)

	connA, _, err := gws.DefaultDialer.Dial(wsURL(srv, tokA), nil)
	require.NoError(t, err)
	defer connA.Close()
	connB, _, err := gws.DefaultDialer.Dial(wsURL(srv, tokB), nil)
	require.NoError(t, err)
	defer connB.Close()

	// registration is asynchronous; keep notifying until the first read lands
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				hub.Notify(1, "alert", map[string]string{"message": "low stock"})
			}
		}
	}()

	require.NoError(t, connA.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := connA.ReadMessage()
	require.NoError(t, err)

	var msg Message
	first := strings.SplitN(string(data), "\n", 2)[0]
	require.NoError(t, json.Unmarshal([]byte(first), &msg))
	assert.Equal(t, "alert", msg.Event)

	_ = connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err, "user 2 must not receive user 1's alert")
}
