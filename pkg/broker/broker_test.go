package broker

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ctrlm.go/pkg/comm/mqtt"
)

// freeAddr returns a local address with a free port.
func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestBrokerPubSub(t *testing.T) {
	addr := freeAddr(t)
	b := New(addr)
	require.NoError(t, b.Start())
	defer b.Close()

	q, err := mqtt.NewQueueFromURL("mqtt://" + addr + "/test/")
	require.NoError(t, err)
	require.NoError(t, q.ConnectAndWait())
	defer q.Close()

	received := make(chan string, 1)
	sub := q.Sub("dev/msg", func(topic string, payload []byte) {
		received <- topic + ":" + string(payload)
	})
	sub.Token.Wait()
	require.NoError(t, sub.Token.Error())

	token := q.PubWith("dev/msg", []byte("hello"), 1, false)
	token.Wait()
	require.NoError(t, token.Error())
	select {
	case msg := <-received:
		require.Equal(t, "dev/msg:hello", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestBrokerCloseIdempotent(t *testing.T) {
	b := New(freeAddr(t))
	require.NoError(t, b.Close())
	require.NoError(t, b.Start())
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}
