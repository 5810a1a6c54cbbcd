package transport

import (
	"context"
	"errors"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/electrum"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/keyderiv"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/utils"
)

const maxRequestBytes = 1 << 20

// ServeMuxOptions configures a gateway mux to encode plain Go values as JSON. The default
// marshaler only understands protobuf messages.
func ServeMuxOptions() []gwruntime.ServeMuxOption {
	return []gwruntime.ServeMuxOption{
		gwruntime.WithMarshalerOption(gwruntime.MIMEWildcard, &gwruntime.JSONBuiltin{}),
	}
}

// PortfolioHandler serves the JSON balance and history endpoints.
type PortfolioHandler struct {
	portfolio PortfolioService
	queries   queryBuilder
	logger    *zap.Logger
}

// NewPortfolioHandler returns a handler. defaultEndpoint is used when a request names none.
func NewPortfolioHandler(
	portfolio PortfolioService,
	deriver *keyderiv.Deriver,
	defaultEndpoint model.Endpoint,
	logger *zap.Logger,
) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{
		portfolio: portfolio,
		queries:   queryBuilder{deriver: deriver, endpoint: defaultEndpoint},
		logger:    logger,
	}
}

// Register mounts the handlers on mux. Bodies are read and written with the marshaler mux
// selects for the request, see ServeMuxOptions.
func (h *PortfolioHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		pattern string
		handle  func(context.Context, service.Query) (any, error)
	}{
		{pattern: "/v1/balance", handle: h.balance},
		{pattern: "/v1/history", handle: h.history},
		{pattern: "/v1/summary", handle: h.summary},
	}
	for _, route := range routes {
		if err := mux.HandlePath(http.MethodPost, route.pattern, h.serve(mux, route.handle)); err != nil {
			return err
		}
	}
	return nil
}

func (h *PortfolioHandler) serve(
	mux *gwruntime.ServeMux,
	handle func(context.Context, service.Query) (any, error),
) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		inbound, outbound := gwruntime.MarshalerForRequest(mux, r)

		var req queryRequest
		dec := inbound.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if strict, ok := dec.(interface{ DisallowUnknownFields() }); ok {
			strict.DisallowUnknownFields()
		}
		if err := dec.Decode(&req); err != nil {
			h.write(w, outbound, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		q, err := h.queries.build(req)
		if err != nil {
			h.write(w, outbound, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		resp, err := handle(r.Context(), q)
		if err != nil {
			code := statusFor(err)
			h.logger.Warn("portfolio request failed",
				zap.String("path", r.URL.Path),
				zap.Int("status", code),
				zap.Error(err))
			h.write(w, outbound, code, errorResponse{Error: err.Error()})
			return
		}
		h.write(w, outbound, http.StatusOK, resp)
	}
}

func (h *PortfolioHandler) write(w http.ResponseWriter, m gwruntime.Marshaler, code int, v any) {
	body, err := m.Marshal(v)
	if err != nil {
		h.logger.Error("marshal response", zap.Error(err))
		code = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", m.ContentType(v))
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}

func (h *PortfolioHandler) balance(ctx context.Context, q service.Query) (any, error) {
	summary, err := h.portfolio.Balance(ctx, q)
	if err != nil {
		return nil, err
	}
	return newBalanceResponse(summary), nil
}

func (h *PortfolioHandler) history(ctx context.Context, q service.Query) (any, error) {
	points, report, err := h.portfolio.History(ctx, q)
	if err != nil {
		return nil, err
	}
	return historyResponse{Points: newPoints(points), Report: newReport(report)}, nil
}

func (h *PortfolioHandler) summary(ctx context.Context, q service.Query) (any, error) {
	s, err := h.portfolio.Summary(ctx, q)
	if err != nil {
		return nil, err
	}
	return summaryResponse{
		Balance:    newBalanceResponse(s.Balance),
		Points:     newPoints(s.History),
		Report:     newReport(s.Report),
		Consistent: s.Consistent,
	}, nil
}

func statusFor(err error) int {
	var connErr *electrum.ConnectionError
	switch {
	case errors.Is(err, service.ErrNoScriptHashes):
		return http.StatusBadRequest
	case errors.As(err, &connErr), errors.Is(err, electrum.ErrConnectionClosed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// Client went away.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type hashBalanceResponse struct {
	ScriptHash      string `json:"script_hash"`
	ConfirmedSats   int64  `json:"confirmed_sats"`
	UnconfirmedSats int64  `json:"unconfirmed_sats"`
	Error           string `json:"error,omitempty"`
}

type balanceResponse struct {
	TotalSats     int64                 `json:"total_sats"`
	ConfirmedSats int64                 `json:"confirmed_sats"`
	TotalBTC      float64               `json:"total_btc"`
	PerHash       []hashBalanceResponse `json:"per_hash"`
}

type pointResponse struct {
	Timestamp      int64   `json:"timestamp"`
	Height         int64   `json:"height"`
	TxID           string  `json:"txid"`
	DeltaSats      int64   `json:"delta_sats"`
	CumulativeSats int64   `json:"cumulative_sats"`
	CumulativeBTC  float64 `json:"cumulative_btc"`
}

type reportResponse struct {
	HistoryFailures    int `json:"history_failures"`
	HeaderFailures     int `json:"header_failures"`
	TxFailures         int `json:"tx_failures"`
	UnresolvedPrevouts int `json:"unresolved_prevouts"`
}

type historyResponse struct {
	Points []pointResponse `json:"points"`
	Report reportResponse  `json:"report"`
}

type summaryResponse struct {
	Balance    balanceResponse `json:"balance"`
	Points     []pointResponse `json:"points"`
	Report     reportResponse  `json:"report"`
	Consistent bool            `json:"consistent"`
}

func newBalanceResponse(s model.BalanceSummary) balanceResponse {
	resp := balanceResponse{
		TotalSats:     s.Total,
		ConfirmedSats: s.ConfirmedTotal,
		TotalBTC:      utils.SatsToBTC(s.Total),
		PerHash:       make([]hashBalanceResponse, 0, len(s.PerHash)),
	}
	for _, row := range s.PerHash {
		item := hashBalanceResponse{
			ScriptHash:      row.ScriptHash.String(),
			ConfirmedSats:   row.Confirmed,
			UnconfirmedSats: row.Unconfirmed,
		}
		if row.Err != nil {
			item.Error = row.Err.Error()
		}
		resp.PerHash = append(resp.PerHash, item)
	}
	return resp
}

func newPoints(points []model.AccumulationPoint) []pointResponse {
	out := make([]pointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, pointResponse{
			Timestamp:      p.Timestamp,
			Height:         p.Height,
			TxID:           p.TxID.String(),
			DeltaSats:      p.DeltaSats,
			CumulativeSats: p.CumulativeSats,
			CumulativeBTC:  utils.SatsToBTC(p.CumulativeSats),
		})
	}
	return out
}

func newReport(r service.Report) reportResponse {
	return reportResponse{
		HistoryFailures:    r.HistoryFailures,
		HeaderFailures:     r.HeaderFailures,
		TxFailures:         r.TxFailures,
		UnresolvedPrevouts: r.UnresolvedPrevouts,
	}
}
