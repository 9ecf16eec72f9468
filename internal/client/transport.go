package client

import (
	"context"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/codepairhq/codepair-server/internal/proto"
)

type wsTransport struct {
	conn *websocket.Conn
}

// DialTransport opens a websocket transport to a server's /ws endpoint.
func DialTransport(ctx context.Context, url string) (Transport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) Send(ctx context.Context, msg proto.Inbound) error {
	return wsjson.Write(ctx, t.conn, msg)
}

func (t *wsTransport) Receive(ctx context.Context) (proto.Envelope, error) {
	var env proto.Envelope
	err := wsjson.Read(ctx, t.conn, &env)
	return env, err
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "closing")
}
