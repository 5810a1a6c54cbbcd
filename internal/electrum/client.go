package electrum

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

// readBufferSize fits typical raw transactions on one buffered read.
const readBufferSize = 64 * 1024

type reply struct {
	result json.RawMessage
	err    error
}

type pendingRequest struct {
	method string
	done   chan reply
}

type response struct {
	ID     *uint64         `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// Client multiplexes concurrent requests over one connection, routing responses by request id.
type Client struct {
	conn    net.Conn
	cfg     Config
	logger  *zap.Logger
	limiter ratelimit.Limiter

	writeMu sync.Mutex

	mu       sync.Mutex
	nextID   uint64
	pending  map[uint64]*pendingRequest
	closed   bool
	closeErr error

	done chan struct{}
	wg   sync.WaitGroup
}

// Dial connects to the configured endpoint and performs the server.version handshake. Any
// failure is reported as a *ConnectionError.
func Dial(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	cfg = cfg.withDefaults()

	conn, err := dial(ctx, cfg)
	if err != nil {
		return nil, &ConnectionError{Endpoint: cfg.Endpoint, Err: err}
	}

	c := NewClient(conn, cfg, logger)
	version, err := c.ServerVersion(ctx, cfg.ClientName, cfg.ProtocolVersion)
	if err != nil {
		_ = c.Close()
		return nil, &ConnectionError{Endpoint: cfg.Endpoint, Err: err}
	}

	c.logger.Info("connected to indexer",
		zap.String("server", version.Software),
		zap.String("protocol", version.Protocol))
	return c, nil
}

// NewClient wraps an established connection and starts reading responses from it.
func NewClient(conn net.Conn, cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	c := &Client{
		conn:    conn,
		cfg:     cfg,
		logger:  logger.With(zap.String("indexer", cfg.Endpoint.Address())),
		limiter: limiter,
		pending: make(map[uint64]*pendingRequest),
		done:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.readLoop()
	return c
}

// Call sends method with params and decodes the result into result, which may be nil.
// Each call has its own timeout; a timeout or ctx cancellation only abandons this call.
func (c *Client) Call(ctx context.Context, method string, result any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.limiter.Take()
	// Take cannot be interrupted; drop calls whose caller gave up while waiting.
	if err := ctx.Err(); err != nil {
		return err
	}

	id, p, err := c.register(method)
	if err != nil {
		return err
	}

	req, err := btcjson.NewRequest(btcjson.RpcVersion2, id, method, params)
	if err != nil {
		c.forget(id)
		return fmt.Errorf("build %s request: %w", method, err)
	}
	line, err := json.Marshal(req)
	if err != nil {
		c.forget(id)
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	timer := time.NewTimer(c.cfg.RequestTimeout)
	defer timer.Stop()

	if err := c.write(append(line, '\n')); err != nil {
		c.shutdown(err)
		return fmt.Errorf("%s: %w", method, c.terminalErr())
	}

	select {
	case r := <-p.done:
		if r.err != nil {
			return r.err
		}
		if result == nil {
			return nil
		}
		if err := json.Unmarshal(r.result, result); err != nil {
			return &DecodeError{Method: method, Err: err}
		}
		return nil

	case <-timer.C:
		c.forget(id)
		return fmt.Errorf("%s after %s: %w", method, c.cfg.RequestTimeout, ErrRequestTimeout)

	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	}
}

// Close ends the session. Pending requests fail with ErrConnectionClosed.
func (c *Client) Close() error {
	c.shutdown(errClosedByClient)
	c.wg.Wait()
	return nil
}

// Done is closed once the connection is no longer usable.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Pending returns the number of requests awaiting a response.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Client) register(method string) (uint64, *pendingRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, nil, fmt.Errorf("%s: %w", method, c.closeErr)
	}

	c.nextID++
	p := &pendingRequest{method: method, done: make(chan reply, 1)}
	c.pending[c.nextID] = p
	return c.nextID, p, nil
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) write(line []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.RequestTimeout)); err != nil {
		return err
	}
	_, err := c.conn.Write(line)
	return err
}

func (c *Client) terminalErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeErr
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	rdr := bufio.NewReaderSize(c.conn, readBufferSize)
	for {
		line, err := rdr.ReadBytes('\n')
		if err == nil {
			c.dispatch(line)
			continue
		}
		if len(bytes.TrimSpace(line)) > 0 {
			c.logger.Warn("dropping truncated frame", zap.Int("bytes", len(line)))
		}
		c.shutdown(err)
		return
	}
}

func (c *Client) dispatch(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		c.logger.Warn("dropping malformed frame", zap.Int("bytes", len(line)), zap.Error(err))
		return
	}
	if resp.ID == nil {
		c.logger.Debug("ignoring notification", zap.String("method", resp.Method))
		return
	}

	c.mu.Lock()
	p, ok := c.pending[*resp.ID]
	delete(c.pending, *resp.ID)
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("response for unknown or expired request", zap.Uint64("id", *resp.ID))
		return
	}

	if rpcErr := parseRPCError(p.method, resp.Error); rpcErr != nil {
		p.done <- reply{err: rpcErr}
		return
	}
	p.done <- reply{result: resp.Result}
}

func (c *Client) shutdown(cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.closeErr = fmt.Errorf("%w: %v", ErrConnectionClosed, cause)
	pending := c.pending
	c.pending = make(map[uint64]*pendingRequest)
	closeErr := c.closeErr
	c.mu.Unlock()

	close(c.done)
	_ = c.conn.Close()

	if !errors.Is(cause, errClosedByClient) {
		c.logger.Warn("indexer connection lost",
			zap.Int("pending", len(pending)),
			zap.Error(cause))
	}
	for _, p := range pending {
		p.done <- reply{err: fmt.Errorf("%s: %w", p.method, closeErr)}
	}
}

func dial(ctx context.Context, cfg Config) (net.Conn, error) {
	base := &net.Dialer{Timeout: cfg.DialTimeout}

	var dialer proxy.ContextDialer = base
	if cfg.Proxy != "" {
		socks, err := proxy.SOCKS5("tcp", cfg.Proxy, nil, base)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy %s: %w", cfg.Proxy, err)
		}
		cd, ok := socks.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 proxy %s: dialer does not support contexts", cfg.Proxy)
		}
		dialer = cd
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, "tcp", cfg.Endpoint.Address())
	if err != nil {
		return nil, err
	}
	if !cfg.Endpoint.TLS {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         cfg.Endpoint.Host,
		InsecureSkipVerify: cfg.TLSSkipVerify, //nolint:gosec // opt-in for self-signed indexers
		MinVersion:         tls.VersionTLS12,
	})
	if err := tlsConn.HandshakeContext(dialCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	return tlsConn, nil
}
