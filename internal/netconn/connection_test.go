package netconn

import (
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/internal/protocol"
	"github.com/Faultbox/rocore/internal/protocol/handler"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

func noopKeepAlive(time.Time) []byte { return nil }

func recvEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func assertNoEvent(t *testing.T, ch <-chan events.Event) {
	t.Helper()
	select {
	case e := <-ch:
		t.Fatalf("unexpected event: %#v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

// pingEvent is a test-only event value, identified by its id field. It
// embeds an events variant to pick up the Event marker method, which
// a type outside package events cannot declare itself.
type pingEvent struct {
	events.CharacterDeleted
	id int
}

func newEchoHandler(t *testing.T) *handler.Handler {
	t.Helper()
	h := handler.New()
	if err := h.Register(0x1000, handler.Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		id, err := c.U32("id")
		if err != nil {
			return nil, err
		}
		return []events.Event{pingEvent{id: int(id)}}, nil
	}); err != nil {
		t.Fatal(err)
	}
	return h
}

func writePing(t *testing.T, conn net.Conn, id uint32) {
	t.Helper()
	enc := wire.NewEncoder(protocol.Version20220406, encoding.ASCII)
	enc.U16(0x1000)
	enc.U32(id)
	if _, err := conn.Write(enc.Bytes()); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunDeliversOneEvent(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	writePing(t, client, 42)

	evt := recvEvent(t, inbound)
	ping, ok := evt.(pingEvent)
	if !ok || ping.id != 42 {
		t.Fatalf("got %#v, want pingEvent{id: 42}", evt)
	}

	close(outbound)
}

func TestRunReassemblesSplitPacket(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	enc := wire.NewEncoder(protocol.Version20220406, encoding.ASCII)
	enc.U16(0x1000)
	enc.U32(99)
	full := enc.Bytes()

	go func() {
		client.Write(full[:3])
		time.Sleep(20 * time.Millisecond)
		client.Write(full[3:])
	}()

	evt := recvEvent(t, inbound)
	ping, ok := evt.(pingEvent)
	if !ok || ping.id != 99 {
		t.Fatalf("got %#v, want pingEvent{id: 99} after a split write", evt)
	}

	close(outbound)
}

func TestRunUnhandledOpcodeResyncsWithoutEvent(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	enc := wire.NewEncoder(protocol.Version20220406, encoding.ASCII)
	enc.U16(0xFFFF) // never registered
	enc.U32(0)
	if _, err := client.Write(enc.Bytes()); err != nil {
		t.Fatal(err)
	}

	assertNoEvent(t, inbound)

	writePing(t, client, 7)
	evt := recvEvent(t, inbound)
	ping, ok := evt.(pingEvent)
	if !ok || ping.id != 7 {
		t.Fatalf("got %#v after resync, want pingEvent{id: 7}", evt)
	}

	close(outbound)
}

func TestRunPeerCloseYieldsOneDisconnected(t *testing.T) {
	server, client := net.Pipe()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	client.Close()

	evt := recvEvent(t, inbound)
	d, ok := evt.(events.Disconnected)
	if !ok {
		t.Fatalf("got %#v, want events.Disconnected", evt)
	}
	if d.Role != protocol.RoleLogin.String() {
		t.Errorf("Role = %q, want %q", d.Role, protocol.RoleLogin.String())
	}
	if d.Reason != events.ConnectionError {
		t.Errorf("Reason = %v, want ConnectionError", d.Reason)
	}

	assertNoEvent(t, inbound)
}

func TestRunAccountIDPreambleForCharacterRole(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleCharacter, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	preamble := []byte{0x2A, 0x00, 0x00, 0x00} // account id 42, unframed
	if _, err := client.Write(preamble); err != nil {
		t.Fatal(err)
	}

	evt := recvEvent(t, inbound)
	accID, ok := evt.(events.AccountID)
	if !ok || accID.AccountID != 42 {
		t.Fatalf("got %#v, want events.AccountID{AccountID: 42}", evt)
	}

	writePing(t, client, 1)
	evt2 := recvEvent(t, inbound)
	if ping, ok := evt2.(pingEvent); !ok || ping.id != 1 {
		t.Fatalf("got %#v after preamble, want pingEvent{id: 1}", evt2)
	}

	close(outbound)
}

func TestRunOutboundChannelCloseEndsTaskCleanly(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	done := make(chan struct{})
	go func() {
		Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)
		close(done)
	}()

	close(outbound)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after outbound channel closed")
	}
	assertNoEvent(t, inbound)
}

func TestRunSendsWriteOnOutbound(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	outbound := make(chan []byte)
	inbound := make(chan events.Event, 8)
	log := zap.NewNop()

	go Run(server, protocol.RoleLogin, newEchoHandler(t), protocol.Version20220406, encoding.ASCII, outbound, inbound, noopKeepAlive, time.Hour, log)

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	readDone := make(chan []byte, 1)
	go func() {
		buf := make([]byte, len(payload))
		n, _ := client.Read(buf)
		readDone <- buf[:n]
	}()

	outbound <- payload

	select {
	case got := <-readDone:
		if string(got) != string(payload) {
			t.Errorf("client read %v, want %v", got, payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outbound write to reach the peer")
	}

	close(outbound)
}
