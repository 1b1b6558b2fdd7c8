// Package node implements a client for the bitcoin node REST interface.
// The client never caches and never retries; it normalizes transport and
// node failures into the package error taxonomy.
package node

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/blockscope-backend/pkg/safe"
)

// Metrics records metrics for REST calls.
type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// ChainInfo is the subset of the node's chaininfo the explorer consumes.
type ChainInfo struct {
	Chain         string
	Blocks        uint64
	Headers       uint64
	BestBlockHash chainhash.Hash
	Difficulty    float64
	Pruned        bool
}

// MempoolInfo is the subset of the node's mempool state the explorer
// consumes. Fee rates are in BTC/kvB as the node reports them.
type MempoolInfo struct {
	Loaded          bool
	TxCount         uint64
	Bytes           uint64
	Usage           uint64
	TotalFee        btcutil.Amount
	MaxMempool      uint64
	MinFeeRate      float64
	MinRelayFeeRate float64
	Unbroadcast     uint64
}

// Config carries client construction parameters.
type Config struct {
	// BaseURL of the node REST interface, e.g. http://127.0.0.1:8332.
	BaseURL string
	// Timeout bounds each request; expiry surfaces as ErrUnavailable.
	Timeout time.Duration
	// RPS caps outbound request rate; non-positive means unlimited.
	RPS int
}

// Client issues fetch requests against the node REST interface.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	rl      ratelimit.Limiter
	metrics Metrics
}

// New constructs a Client.
func New(cfg Config, metrics Metrics) *Client {
	rl := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		rl = ratelimit.New(cfg.RPS)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{},
		timeout: timeout,
		rl:      rl,
		metrics: metrics,
	}
}

// FetchBlock returns the raw serialization of the block with the given hash.
func (c *Client) FetchBlock(ctx context.Context, hash chainhash.Hash) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("fetch_block", err, started)
	}()
	return c.get(ctx, fmt.Sprintf("/rest/block/%s.bin", hash))
}

// FetchHeader returns the raw 80-byte header of the block with the given
// hash.
func (c *Client) FetchHeader(ctx context.Context, hash chainhash.Hash) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("fetch_header", err, started)
	}()
	return c.get(ctx, fmt.Sprintf("/rest/headers/1/%s.bin", hash))
}

// FetchTx returns the raw serialization of the given transaction.
func (c *Client) FetchTx(ctx context.Context, txid chainhash.Hash) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("fetch_tx", err, started)
	}()
	return c.get(ctx, fmt.Sprintf("/rest/tx/%s.bin", txid))
}

// BlockHashAtHeight resolves the hash of the best-chain block at height.
func (c *Client) BlockHashAtHeight(ctx context.Context, height uint64) (hash chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("block_hash_at_height", err, started)
	}()

	body, err := c.get(ctx, fmt.Sprintf("/rest/blockhashbyheight/%d.json", height))
	if err != nil {
		return chainhash.Hash{}, err
	}
	var res struct {
		BlockHash string `json:"blockhash"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return chainhash.Hash{}, fmt.Errorf("blockhashbyheight response: %s: %w", err, ErrProtocol)
	}
	parsed, err := chainhash.NewHashFromStr(res.BlockHash)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("blockhashbyheight hash %q: %w", res.BlockHash, ErrProtocol)
	}
	return *parsed, nil
}

// ChainInfo fetches the node's current chain state.
func (c *Client) ChainInfo(ctx context.Context) (info ChainInfo, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("chain_info", err, started)
	}()

	body, err := c.get(ctx, "/rest/chaininfo.json")
	if err != nil {
		return ChainInfo{}, err
	}
	var res btcjson.GetBlockChainInfoResult
	if err := json.Unmarshal(body, &res); err != nil {
		return ChainInfo{}, fmt.Errorf("chaininfo response: %s: %w", err, ErrProtocol)
	}
	best, err := chainhash.NewHashFromStr(res.BestBlockHash)
	if err != nil {
		return ChainInfo{}, fmt.Errorf("chaininfo best hash %q: %w", res.BestBlockHash, ErrProtocol)
	}
	blocks, err := safe.Uint64(res.Blocks)
	if err != nil {
		return ChainInfo{}, fmt.Errorf("chaininfo blocks: %s: %w", err, ErrProtocol)
	}
	headers, err := safe.Uint64(res.Headers)
	if err != nil {
		return ChainInfo{}, fmt.Errorf("chaininfo headers: %s: %w", err, ErrProtocol)
	}
	return ChainInfo{
		Chain:         res.Chain,
		Blocks:        blocks,
		Headers:       headers,
		BestBlockHash: *best,
		Difficulty:    res.Difficulty,
		Pruned:        res.Pruned,
	}, nil
}

// MempoolInfo fetches the node's current mempool totals.
func (c *Client) MempoolInfo(ctx context.Context) (info MempoolInfo, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("mempool_info", err, started)
	}()

	body, err := c.get(ctx, "/rest/mempool/info.json")
	if err != nil {
		return MempoolInfo{}, err
	}
	var res struct {
		Loaded        bool    `json:"loaded"`
		Size          uint64  `json:"size"`
		Bytes         uint64  `json:"bytes"`
		Usage         uint64  `json:"usage"`
		TotalFee      float64 `json:"total_fee"`
		MaxMempool    uint64  `json:"maxmempool"`
		MempoolMinFee float64 `json:"mempoolminfee"`
		MinRelayTxFee float64 `json:"minrelaytxfee"`
		Unbroadcast   uint64  `json:"unbroadcastcount"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return MempoolInfo{}, fmt.Errorf("mempool info response: %s: %w", err, ErrProtocol)
	}
	totalFee, err := btcutil.NewAmount(res.TotalFee)
	if err != nil {
		return MempoolInfo{}, fmt.Errorf("mempool total fee %v: %s: %w", res.TotalFee, err, ErrProtocol)
	}
	return MempoolInfo{
		Loaded:          res.Loaded,
		TxCount:         res.Size,
		Bytes:           res.Bytes,
		Usage:           res.Usage,
		TotalFee:        totalFee,
		MaxMempool:      res.MaxMempool,
		MinFeeRate:      res.MempoolMinFee,
		MinRelayFeeRate: res.MinRelayTxFee,
		Unbroadcast:     res.Unbroadcast,
	}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	c.rl.Take()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %s: %w", path, err, ErrProtocol)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %s: %w", path, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("get %s: %w", path, ErrNotFound)
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("get %s: status %d: %w", path, resp.StatusCode, ErrUnavailable)
	default:
		return nil, fmt.Errorf("get %s: status %d: %w", path, resp.StatusCode, ErrProtocol)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %s: %w", path, err, ErrUnavailable)
	}
	return body, nil
}
