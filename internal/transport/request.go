package transport

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/keyderiv"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/service"
)

type endpointJSON struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
	TLS  bool   `json:"tls"`
}

// queryRequest is the JSON body shared by every portfolio endpoint.
type queryRequest struct {
	Endpoint     *endpointJSON `json:"endpoint"`
	ScriptHashes []string      `json:"script_hashes"`
	Addresses    []string      `json:"addresses"`
	XPub         string        `json:"xpub"`
	ScriptType   string        `json:"script_type"`
	Count        uint32        `json:"count"`
}

// queryBuilder resolves a request into a service.Query.
type queryBuilder struct {
	deriver  *keyderiv.Deriver
	endpoint model.Endpoint
}

func (b queryBuilder) build(req queryRequest) (service.Query, error) {
	endpoint := b.endpoint
	if req.Endpoint != nil && req.Endpoint.Host != "" {
		endpoint = model.Endpoint{Host: req.Endpoint.Host, Port: req.Endpoint.Port, TLS: req.Endpoint.TLS}
	}
	if endpoint.Host == "" {
		return service.Query{}, errors.New("indexer endpoint host is required")
	}

	set, _, err := b.deriver.Resolve(keyderiv.Selection{
		ScriptHashes: req.ScriptHashes,
		Addresses:    req.Addresses,
		XPub:         req.XPub,
		ScriptType:   req.ScriptType,
		Count:        req.Count,
	})
	if err != nil {
		return service.Query{}, err
	}
	return service.Query{Endpoint: endpoint, ScriptHashes: set}, nil
}
