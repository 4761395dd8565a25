// Package netconn implements the per-role connection task: one task
// owns one TCP stream, interleaving outbound delivery, inbound
// reassembly, and keep-alive cadence. Go has no single-threaded
// cooperative executor, so a task is rendered as one goroutine
// selecting over channels, the language's native equivalent of a
// `select!`-driven async task.
package netconn

import (
	"encoding/binary"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/internal/protocol"
	"github.com/Faultbox/rocore/internal/protocol/handler"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

// readChunkSize is the scratch buffer size for one socket read. It is
// independent of the reassembly buffer's capacity: a read only ever
// needs to pick up whatever the kernel has ready, not an entire
// packet at once.
const readChunkSize = 4096

// KeepAliveFactory builds the role-specific keep-alive packet for the
// connection's next liveness probe, stamped with now. The map role's
// factory consults the clock synchronizer; login and
// character roles return a constant packet.
type KeepAliveFactory func(now time.Time) []byte

type readResult struct {
	data []byte
	err  error
}

// Run drives one connection's event loop until the outbound channel
// closes, the socket closes, or an I/O error occurs. It blocks the
// calling goroutine for the connection's entire lifetime; callers
// invoke it with `go netconn.Run(...)`.
//
// version and table parameterize every decode the handler performs;
// inbound receives every event the handler produces, in wire order,
// terminated by exactly one Disconnected event when the socket closes
// or an I/O error occurs; when the task ends because outbound closed,
// no Disconnected event is sent. keepAliveInterval sets
// the ticker cadence; log is expected to already be tagged with the
// connection's role (see logger.ForRole), so Run never repeats the tag
// itself.
func Run(
	conn net.Conn,
	role protocol.Role,
	h *handler.Handler,
	version wire.Version,
	table encoding.Table,
	outbound <-chan []byte,
	inbound chan<- events.Event,
	keepAlive KeepAliveFactory,
	keepAliveInterval time.Duration,
	log *zap.Logger,
) {
	defer conn.Close()

	readCh := make(chan readResult)
	go readLoop(conn, readCh)

	var buf reassemblyBuffer
	readingAccountID := role == protocol.RoleCharacter

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case action, ok := <-outbound:
			if !ok {
				log.Debug("outbound channel closed, ending connection task")
				return
			}
			if _, err := conn.Write(action); err != nil {
				log.Warn("write failed", zap.Error(err))
				inbound <- events.Disconnected{Role: role.String(), Reason: events.ConnectionError}
				return
			}

		case res := <-readCh:
			if res.err != nil || len(res.data) == 0 {
				log.Debug("connection closed by peer")
				inbound <- events.Disconnected{Role: role.String(), Reason: events.ConnectionError}
				return
			}

			space := buf.appendSpace()
			if space == nil || len(res.data) > len(space) {
				// Incoming data cannot fit even after the current packet is
				// drained; treat it the same as an oversized packet: drop
				// everything buffered and resync.
				log.Warn("reassembly buffer overrun, resetting")
				buf.reset()
				space = buf.appendSpace()
			}
			n := copy(space, res.data)
			buf.commit(n)

			if readingAccountID && buf.cursor >= 4 {
				accountID := binary.LittleEndian.Uint32(buf.view()[:4])
				buf.consume(4)
				readingAccountID = false
				inbound <- events.AccountID{AccountID: accountID}
			}

			drainBuffer(h, &buf, version, table, inbound, log)

		case now := <-ticker.C:
			packet := keepAlive(now)
			if _, err := conn.Write(packet); err != nil {
				log.Warn("keep-alive write failed", zap.Error(err))
				inbound <- events.Disconnected{Role: role.String(), Reason: events.ConnectionError}
				return
			}
		}
	}
}

// drainBuffer runs ProcessOne repeatedly over the buffered bytes
// until the handler reports PacketCutOff (wait for more data),
// UnhandledPacket, or InternalError.
func drainBuffer(h *handler.Handler, buf *reassemblyBuffer, version wire.Version, table encoding.Table, inbound chan<- events.Event, log *zap.Logger) {
	for {
		consumed, result, evts := h.ProcessOne(buf.view(), version, table)
		switch result.Kind {
		case handler.KindOK:
			buf.consume(consumed)
			for _, e := range evts {
				inbound <- e
			}
			if buf.cursor == 0 {
				return
			}
		case handler.KindPacketCutOff:
			if buf.full() {
				log.Warn("packet exceeds reassembly capacity, dropping")
				buf.reset()
			}
			return
		case handler.KindUnhandledPacket:
			log.Debug("unhandled opcode, resyncing")
			buf.reset()
			return
		case handler.KindInternalError:
			log.Warn("decode error, resyncing", zap.Error(result.Err))
			buf.reset()
			return
		}
	}
}

func readLoop(conn net.Conn, out chan<- readResult) {
	for {
		chunk := make([]byte, readChunkSize)
		n, err := conn.Read(chunk)
		out <- readResult{data: chunk[:n], err: err}
		if err != nil {
			return
		}
	}
}
