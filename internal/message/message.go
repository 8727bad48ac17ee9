// Package message implements the message envelope, payload taxonomy,
// and priority queue that route traffic between agents and the
// exchange. The envelope and dispatch-fanout shape follow a
// classify-and-bucket mempool style; the payload set is purpose-built
// for a multi-book distributed-agent protocol.
package message

import "strings"

// ExchangeTarget is the reserved target name for the exchange agent.
const ExchangeTarget = "EXCHANGE"

// TargetDelimiter separates multiple recipients in a target string.
const TargetDelimiter = "|"

// Message is the envelope carried through the simulation: a payload
// travelling from one source to one or more named targets, timestamped
// in simulated time.
type Message struct {
	Occurrence int64
	Arrival    int64
	Source     string
	Targets    []string
	Type       string
	Payload    Payload
}

// New builds a Message, parsing a delimiter-separated target string
// into its recipient list and computing Arrival from Occurrence+delay.
// Arrival is always >= Occurrence (a negative delay is clamped to zero).
func New(occurrence int64, delay int64, source string, targetList string, typ string, payload Payload) Message {
	if delay < 0 {
		delay = 0
	}
	return Message{
		Occurrence: occurrence,
		Arrival:    occurrence + delay,
		Source:     source,
		Targets:    ParseTargets(targetList),
		Type:       typ,
		Payload:    payload,
	}
}

// ParseTargets splits a delimiter-separated target string into its
// recipient names, discarding empty entries.
func ParseTargets(targetList string) []string {
	parts := strings.Split(targetList, TargetDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TargetString re-joins Targets into the delimiter-separated wire form.
func (m Message) TargetString() string {
	return strings.Join(m.Targets, TargetDelimiter)
}

// HasTarget reports whether name appears among the message's targets.
func (m Message) HasTarget(name string) bool {
	for _, t := range m.Targets {
		if t == name {
			return true
		}
	}
	return false
}
