package electrum

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
)

var (
	// ErrConnectionClosed is returned for requests pending when the stream ends and for every
	// request issued after that.
	ErrConnectionClosed = errors.New("indexer connection closed")

	// ErrRequestTimeout is returned when a single request exceeds its deadline. The connection
	// stays usable.
	ErrRequestTimeout = errors.New("indexer request timed out")

	errClosedByClient = errors.New("closed by client")
)

// ConnectionError reports that the indexer could not be reached or the handshake failed.
type ConnectionError struct {
	Endpoint model.Endpoint
	Err      error
}

func (e *ConnectionError) Error() string {
	hint := "try enabling TLS"
	if e.Endpoint.TLS {
		hint = "try disabling TLS"
	}
	return fmt.Sprintf("cannot reach indexer %s (tls=%t, %s): %v",
		e.Endpoint.Address(), e.Endpoint.TLS, hint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response that could not be decoded into the expected shape.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RPCError is an error object returned by the indexer for one request.
type RPCError struct {
	Method string
	btcjson.RPCError
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: indexer error %d: %s", e.Method, e.Code, e.Message)
}

// IsFatal reports whether err means the session is unusable, as opposed to a failure local to
// one request.
func IsFatal(err error) bool {
	var connErr *ConnectionError
	return errors.Is(err, ErrConnectionClosed) || errors.As(err, &connErr)
}

// parseRPCError accepts both the JSON-RPC error object and the bare string some servers send.
func parseRPCError(method string, raw json.RawMessage) *RPCError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var obj btcjson.RPCError
	if err := json.Unmarshal(raw, &obj); err == nil {
		return &RPCError{Method: method, RPCError: obj}
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return &RPCError{Method: method, RPCError: btcjson.RPCError{Message: msg}}
	}

	return &RPCError{Method: method, RPCError: btcjson.RPCError{Message: string(raw)}}
}
