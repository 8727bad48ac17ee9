package message

import (
	"encoding/json"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/kernelerr"
)

// Payload is the closed set of message bodies the kernel understands.
// Each concrete type is a plain struct tagged by its PayloadType string,
// not a class hierarchy requiring downcasts.
type Payload interface {
	PayloadType() string
}

// BookIDCarrier is implemented by payloads that address a single book,
// letting internal/partition canonize/decanonize them without a type
// switch over the full payload set.
type BookIDCarrier interface {
	GetBookID() event.BookID
	SetBookID(event.BookID)
}

// Payload type strings, the discriminant used both on the wire and as
// the PayloadFactory key.
const (
	TypePlaceOrderMarket              = "PLACE_ORDER_MARKET"
	TypePlaceOrderMarketResponse      = "PLACE_ORDER_MARKET_RESPONSE"
	TypePlaceOrderMarketError         = "PLACE_ORDER_MARKET_ERROR_RESPONSE"
	TypePlaceOrderLimit               = "PLACE_ORDER_LIMIT"
	TypePlaceOrderLimitResponse       = "PLACE_ORDER_LIMIT_RESPONSE"
	TypePlaceOrderLimitError          = "PLACE_ORDER_LIMIT_ERROR_RESPONSE"
	TypeCancelOrders                  = "CANCEL_ORDERS"
	TypeCancelOrdersResponse          = "CANCEL_ORDERS_RESPONSE"
	TypeCancelOrdersError             = "CANCEL_ORDERS_ERROR_RESPONSE"
	TypeRetrieveOrders                = "RETRIEVE_ORDERS"
	TypeRetrieveL1                    = "RETRIEVE_L1"
	TypeRetrieveL1Response            = "RETRIEVE_L1_RESPONSE"
	TypeRetrieveBook                  = "RETRIEVE_BOOK"
	TypeEventTrade                    = "EVENT_TRADE"
	TypeDistributedAgentResponsePfx   = "DISTRIBUTED_"
	TypeBookStateMessage              = "BOOK_STATE_MESSAGE"
	TypeEmpty                         = "EMPTY"
)

// PlaceOrderMarketPayload requests a market order placement.
type PlaceOrderMarketPayload struct {
	BookID        event.BookID
	AgentID       event.AgentID
	ClientOrderID *uint64
	Direction     event.Direction
	Volume        decimal.Decimal
	Leverage      decimal.Decimal
	STPFlag       event.STPFlag
}

func (p *PlaceOrderMarketPayload) PayloadType() string       { return TypePlaceOrderMarket }
func (p *PlaceOrderMarketPayload) GetBookID() event.BookID   { return p.BookID }
func (p *PlaceOrderMarketPayload) SetBookID(id event.BookID) { p.BookID = id }

// PlaceOrderLimitPayload requests a limit order placement.
type PlaceOrderLimitPayload struct {
	BookID        event.BookID
	AgentID       event.AgentID
	ClientOrderID *uint64
	Direction     event.Direction
	Price         decimal.Decimal
	Volume        decimal.Decimal
	Leverage      decimal.Decimal
	TimeInForce   *event.TimeInForce
	PostOnly      bool
	ExpiryPeriod  *int64
	STPFlag       event.STPFlag
}

func (p *PlaceOrderLimitPayload) PayloadType() string       { return TypePlaceOrderLimit }
func (p *PlaceOrderLimitPayload) GetBookID() event.BookID   { return p.BookID }
func (p *PlaceOrderLimitPayload) SetBookID(id event.BookID) { p.BookID = id }

// PlaceOrderResponsePayload confirms a placement with the assigned
// order id. Used for both market and limit responses.
type PlaceOrderResponsePayload struct {
	BookID  event.BookID
	OrderID event.OrderID
	isLimit bool
}

func (p *PlaceOrderResponsePayload) PayloadType() string {
	if p.isLimit {
		return TypePlaceOrderLimitResponse
	}
	return TypePlaceOrderMarketResponse
}
func (p *PlaceOrderResponsePayload) GetBookID() event.BookID   { return p.BookID }
func (p *PlaceOrderResponsePayload) SetBookID(id event.BookID) { p.BookID = id }

// NewPlaceOrderLimitResponse / NewPlaceOrderMarketResponse construct the
// two PlaceOrderResponsePayload variants; the response type is fixed at
// construction since it cannot be inferred from the payload's fields
// alone.
func NewPlaceOrderLimitResponse(bookID event.BookID, orderID event.OrderID) *PlaceOrderResponsePayload {
	return &PlaceOrderResponsePayload{BookID: bookID, OrderID: orderID, isLimit: true}
}

func NewPlaceOrderMarketResponse(bookID event.BookID, orderID event.OrderID) *PlaceOrderResponsePayload {
	return &PlaceOrderResponsePayload{BookID: bookID, OrderID: orderID, isLimit: false}
}

// ErrorResponsePayload carries the original request's type and a
// machine-readable cause back to the submitter.
type ErrorResponsePayload struct {
	BookID      event.BookID
	RequestType string
	Cause       kernelerr.Cause
	Message     string
	responseOf  string
}

func (p *ErrorResponsePayload) PayloadType() string       { return p.responseOf }
func (p *ErrorResponsePayload) GetBookID() event.BookID   { return p.BookID }
func (p *ErrorResponsePayload) SetBookID(id event.BookID) { p.BookID = id }

func newErrorResponse(responseOf, requestType string, bookID event.BookID, err error) *ErrorResponsePayload {
	p := &ErrorResponsePayload{BookID: bookID, RequestType: requestType, responseOf: responseOf}
	if kerr, ok := err.(*kernelerr.Error); ok {
		p.Cause = kerr.Cause
		p.Message = kerr.Message
	} else if err != nil {
		p.Message = err.Error()
	}
	return p
}

func NewPlaceOrderMarketError(bookID event.BookID, err error) *ErrorResponsePayload {
	return newErrorResponse(TypePlaceOrderMarketError, TypePlaceOrderMarket, bookID, err)
}

func NewPlaceOrderLimitError(bookID event.BookID, err error) *ErrorResponsePayload {
	return newErrorResponse(TypePlaceOrderLimitError, TypePlaceOrderLimit, bookID, err)
}

func NewCancelOrdersError(bookID event.BookID, err error) *ErrorResponsePayload {
	return newErrorResponse(TypeCancelOrdersError, TypeCancelOrders, bookID, err)
}

// CancelOrdersPayload requests cancellation of one or more orders
// resting on a single book.
type CancelOrdersPayload struct {
	BookID        event.BookID
	Cancellations []event.Cancellation
}

func (p *CancelOrdersPayload) PayloadType() string       { return TypeCancelOrders }
func (p *CancelOrdersPayload) GetBookID() event.BookID   { return p.BookID }
func (p *CancelOrdersPayload) SetBookID(id event.BookID) { p.BookID = id }

// CancelOrdersResponsePayload reports the cancelled volume per order.
type CancelOrdersResponsePayload struct {
	BookID    event.BookID
	Cancelled map[event.OrderID]decimal.Decimal
}

func (p *CancelOrdersResponsePayload) PayloadType() string       { return TypeCancelOrdersResponse }
func (p *CancelOrdersResponsePayload) GetBookID() event.BookID   { return p.BookID }
func (p *CancelOrdersResponsePayload) SetBookID(id event.BookID) { p.BookID = id }

// RetrieveOrdersPayload requests the resting orders on a book.
type RetrieveOrdersPayload struct {
	BookID event.BookID
}

func (p *RetrieveOrdersPayload) PayloadType() string       { return TypeRetrieveOrders }
func (p *RetrieveOrdersPayload) GetBookID() event.BookID   { return p.BookID }
func (p *RetrieveOrdersPayload) SetBookID(id event.BookID) { p.BookID = id }

// RetrieveL1Payload requests the top-of-book quote for a book.
type RetrieveL1Payload struct {
	BookID event.BookID
}

func (p *RetrieveL1Payload) PayloadType() string       { return TypeRetrieveL1 }
func (p *RetrieveL1Payload) GetBookID() event.BookID   { return p.BookID }
func (p *RetrieveL1Payload) SetBookID(id event.BookID) { p.BookID = id }

// RetrieveL1ResponsePayload is the best bid/ask snapshot for a book.
type RetrieveL1ResponsePayload struct {
	BookID   event.BookID
	BidPrice *decimal.Decimal
	BidSize  *decimal.Decimal
	AskPrice *decimal.Decimal
	AskSize  *decimal.Decimal
}

func (p *RetrieveL1ResponsePayload) PayloadType() string       { return TypeRetrieveL1Response }
func (p *RetrieveL1ResponsePayload) GetBookID() event.BookID   { return p.BookID }
func (p *RetrieveL1ResponsePayload) SetBookID(id event.BookID) { p.BookID = id }

// RetrieveBookPayload requests a full book snapshot.
type RetrieveBookPayload struct {
	BookID event.BookID
}

func (p *RetrieveBookPayload) PayloadType() string       { return TypeRetrieveBook }
func (p *RetrieveBookPayload) GetBookID() event.BookID   { return p.BookID }
func (p *RetrieveBookPayload) SetBookID(id event.BookID) { p.BookID = id }

// EventTradePayload announces a completed trade to subscribed agents.
// Context carries its own bookId, mirrored from Trade.BookID, because
// the wire form nests it separately; both must be rewritten together
// during canonicalization.
type EventTradePayload struct {
	BookID  event.BookID
	Context event.TradeContext
	Trade   event.Trade
}

func (p *EventTradePayload) PayloadType() string     { return TypeEventTrade }
func (p *EventTradePayload) GetBookID() event.BookID { return p.BookID }
func (p *EventTradePayload) SetBookID(id event.BookID) {
	p.BookID = id
	p.Context.BookID = id
	p.Trade.BookID = id
}

// DistributedAgentResponsePayload wraps a response payload addressed to
// a specific agent across a block boundary. Its PayloadType is
// "DISTRIBUTED_"+the inner type; internal/transport builds the carrying
// message with that type and with Source set to ExchangeTarget.
type DistributedAgentResponsePayload struct {
	AgentID event.AgentID
	Inner   Payload
}

func (p *DistributedAgentResponsePayload) PayloadType() string {
	return TypeDistributedAgentResponsePfx + p.Inner.PayloadType()
}

// GetBookID/SetBookID delegate to the wrapped payload when it carries a
// book id, satisfying BookIDCarrier for canonicalization of nested
// requestPayload fields.
func (p *DistributedAgentResponsePayload) GetBookID() event.BookID {
	if c, ok := p.Inner.(BookIDCarrier); ok {
		return c.GetBookID()
	}
	return 0
}

func (p *DistributedAgentResponsePayload) SetBookID(id event.BookID) {
	if c, ok := p.Inner.(BookIDCarrier); ok {
		c.SetBookID(id)
	}
}

// BookStateMessagePayload carries a pre-serialized book snapshot
// between agents without the kernel interpreting its contents.
type BookStateMessagePayload struct {
	BookStateJSON string
}

func (p *BookStateMessagePayload) PayloadType() string { return TypeBookStateMessage }

// EmptyPayload carries no data; used for acks and heartbeats.
type EmptyPayload struct{}

func (p *EmptyPayload) PayloadType() string { return TypeEmpty }

// Factory decodes a (type, body) pair into a concrete Payload,
// dispatched through an explicit table rather than reflection.
// Unknown types fail with kernelerr's UnknownPayloadType.
type Factory struct {
	decoders map[string]func([]byte) (Payload, error)
}

// NewFactory returns a Factory pre-registered with the request payloads
// (place market/limit, cancel, retrieve orders/L1/book), EventTrade,
// BookStateMessage and Empty. Response and error payloads and the
// DISTRIBUTED_ wrapper are not registered and decode as unknown types.
func NewFactory() *Factory {
	f := &Factory{decoders: make(map[string]func([]byte) (Payload, error))}
	f.register(TypePlaceOrderMarket, func(b []byte) (Payload, error) {
		var p PlaceOrderMarketPayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypePlaceOrderLimit, func(b []byte) (Payload, error) {
		var p PlaceOrderLimitPayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeCancelOrders, func(b []byte) (Payload, error) {
		var p CancelOrdersPayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeRetrieveOrders, func(b []byte) (Payload, error) {
		var p RetrieveOrdersPayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeRetrieveL1, func(b []byte) (Payload, error) {
		var p RetrieveL1Payload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeRetrieveBook, func(b []byte) (Payload, error) {
		var p RetrieveBookPayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeEventTrade, func(b []byte) (Payload, error) {
		var p EventTradePayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeBookStateMessage, func(b []byte) (Payload, error) {
		var p BookStateMessagePayload
		return &p, json.Unmarshal(b, &p)
	})
	f.register(TypeEmpty, func(b []byte) (Payload, error) {
		return &EmptyPayload{}, nil
	})
	return f
}

func (f *Factory) register(typ string, decode func([]byte) (Payload, error)) {
	f.decoders[typ] = decode
}

// Decode looks up typ in the factory table and decodes body into the
// matching concrete Payload.
func (f *Factory) Decode(typ string, body []byte) (Payload, error) {
	decode, ok := f.decoders[typ]
	if !ok {
		return nil, kernelerr.New(kernelerr.KindUnknownPayload, kernelerr.CauseUnknownPayloadType,
			"unknown payload type %q", typ)
	}
	return decode(body)
}
