package transport

import (
	"strconv"

	"github.com/axonsim/exchange-sim/internal/event"
)

// parseInt parses s into the pointed-to integer type (event.AgentID or
// event.BookID, the two id types transport routes carry in their URL
// path), returning the number of bytes consumed for a uniform error
// signature with strconv's own parsers.
func parseInt(s string, out any) (int, error) {
	switch p := out.(type) {
	case *event.AgentID:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		*p = event.AgentID(v)
	case *event.BookID:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, err
		}
		*p = event.BookID(v)
	}
	return len(s), nil
}
