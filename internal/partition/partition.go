// Package partition implements the book-id canonicalization protocol
// that lets the simulation run as several independent compute blocks,
// each owning a contiguous range of book ids on its own goroutine. A
// canonical id folds a block index into a book's local id;
// decanonicalization splits it back apart.
package partition

import (
	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/message"
)

// Canonize rewrites msg's book id (if its payload carries one) from a
// block-local id to the global canonical id
// blockIdx*blockDim + localBookId. Every payload that carries a book id
// is rewritten, whether or not it is a distributed wrapper; a payload
// that does not carry a book id passes through unchanged.
func Canonize(msg message.Message, blockIdx, blockDim uint32) message.Message {
	carrier, ok := msg.Payload.(message.BookIDCarrier)
	if !ok {
		return msg
	}
	local := carrier.GetBookID()
	carrier.SetBookID(event.BookID(blockIdx)*event.BookID(blockDim) + local)
	return msg
}

// Decanonize splits msg's canonical book id back into its block-local
// id (stored back onto the payload) and the block index it came from.
// hasBookID is false if the payload carries no book id at all.
func Decanonize(msg message.Message, blockDim uint32) (out message.Message, blockIdx uint32, hasBookID bool) {
	carrier, ok := msg.Payload.(message.BookIDCarrier)
	if !ok {
		return msg, 0, false
	}
	if w, isWrapper := msg.Payload.(*message.DistributedAgentResponsePayload); isWrapper {
		if _, innerOK := w.Inner.(message.BookIDCarrier); !innerOK {
			return msg, 0, false
		}
	}
	canonical := carrier.GetBookID()
	local := uint32(canonical) % blockDim
	idx := uint32(canonical) / blockDim
	carrier.SetBookID(event.BookID(local))
	return msg, idx, true
}
