package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrAssetNotFound is returned when the upstream host does not know the
// requested handle (the resolve step answered not-ok).
var ErrAssetNotFound = errors.New("asset not found upstream")

// AssetProxy resolves opaque asset handles to bytes at the upstream file
// host. The host uses a two-step indirection: a resolve call maps the
// handle to an internal path, a second call fetches that path. Both are
// keyed by a shared bot token.
//
// The proxy knows nothing about caching; the handler in front of it
// consults the edge cache and stores successful responses.
type AssetProxy struct {
	client   *resty.Client
	apiBase  string
	fileBase string
	token    string
}

// NewAssetProxy builds a proxy against the given upstream bases.
func NewAssetProxy(apiBase, fileBase, token string) *AssetProxy {
	return &AssetProxy{
		client:   resty.New(),
		apiBase:  apiBase,
		fileBase: fileBase,
		token:    token,
	}
}

// AssetResponse is an upstream response ready to relay: final status,
// rewritten headers, and the (unconsumed) body stream. Callers own the
// body and must close it.
type AssetResponse struct {
	Status int
	Header http.Header
	Body   io.ReadCloser
}

type resolveReply struct {
	OK     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

// Fetch resolves handle and opens the asset stream. Headers are copied
// from upstream with Cache-Control forced to a long-lived immutable
// directive and a permissive CORS header added. A non-empty dlExt turns
// the response into an attachment named "<handle>.<dlExt>".
//
// Each upstream step is attempted exactly once; transport failures come
// back as plain errors and ErrAssetNotFound marks an unknown handle.
func (p *AssetProxy) Fetch(ctx context.Context, handle, dlExt string) (*AssetResponse, error) {
	resolved, err := p.resolve(ctx, handle)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(p.fileBase + "/bot" + p.token + "/" + resolved)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %s: %w", handle, err)
	}

	header := make(http.Header)
	for k, vals := range resp.RawResponse.Header {
		for _, v := range vals {
			header.Add(k, v)
		}
	}
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	header.Set("Access-Control-Allow-Origin", "*")
	if dlExt != "" {
		header.Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", handle+"."+dlExt))
	}

	return &AssetResponse{
		Status: resp.RawResponse.StatusCode,
		Header: header,
		Body:   resp.RawBody(),
	}, nil
}

func (p *AssetProxy) resolve(ctx context.Context, handle string) (string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("file_id", handle).
		Get(p.apiBase + "/bot" + p.token + "/getFile")
	if err != nil {
		return "", fmt.Errorf("resolve asset %s: %w", handle, err)
	}
	var reply resolveReply
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		return "", fmt.Errorf("resolve asset %s: decode reply: %w", handle, err)
	}
	if !reply.OK || reply.Result.FilePath == "" {
		return "", ErrAssetNotFound
	}
	return reply.Result.FilePath, nil
}
